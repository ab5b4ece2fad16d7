package repository

import (
	"context"
	"fmt"

	"coinhouse/database"
	"coinhouse/domain/events"
	"coinhouse/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	assetRepo        interfaces.AssetRepository
	accountRepo      interfaces.AccountRepository
	gameRepo         interfaces.GameRepository
	participantRepo  interfaces.GameParticipantRepository
	feeRepo          interfaces.FeeRepository
	raffleRepo       interfaces.RaffleRepository
	stakingRepo      interfaces.StakingRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.assetRepo = NewAssetRepository(tx)
	u.accountRepo = NewAccountRepository(tx)
	u.gameRepo = NewGameRepository(tx)
	u.participantRepo = NewGameParticipantRepository(tx)
	u.feeRepo = NewFeeRepository(tx)
	u.raffleRepo = NewRaffleRepository(tx)
	u.stakingRepo = NewStakingRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events only after a successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

func (u *unitOfWork) AssetRepository() interfaces.AssetRepository {
	if u.assetRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.assetRepo
}

func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

func (u *unitOfWork) GameRepository() interfaces.GameRepository {
	if u.gameRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gameRepo
}

func (u *unitOfWork) GameParticipantRepository() interfaces.GameParticipantRepository {
	if u.participantRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.participantRepo
}

func (u *unitOfWork) FeeRepository() interfaces.FeeRepository {
	if u.feeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.feeRepo
}

func (u *unitOfWork) RaffleRepository() interfaces.RaffleRepository {
	if u.raffleRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.raffleRepo
}

func (u *unitOfWork) StakingRepository() interfaces.StakingRepository {
	if u.stakingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.stakingRepo
}

func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
