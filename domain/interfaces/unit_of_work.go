package interfaces

import "context"

// UnitOfWork scopes a set of repository operations and buffered events to a
// single database transaction. Either everything commits or nothing does.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events.
	Commit() error

	// Rollback aborts the transaction and discards buffered events.
	Rollback() error

	AssetRepository() AssetRepository
	AccountRepository() AccountRepository
	GameRepository() GameRepository
	GameParticipantRepository() GameParticipantRepository
	FeeRepository() FeeRepository
	RaffleRepository() RaffleRepository
	StakingRepository() StakingRepository

	// EventBus returns the transactional event publisher for this unit of work.
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates fresh units of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
