package entities

import "errors"

// ErrorKind classifies a domain failure. Every failure aborts the whole call
// with no partial state change; the kind tells the caller whether a retry can
// ever succeed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation: bad input shape, retry with corrected input.
	KindValidation
	// KindPrecondition: wrong phase or insufficient funds, retry later.
	KindPrecondition
	// KindAuthorization: caller is not allowed to perform the operation.
	KindAuthorization
	// KindIntegrity: a reveal that does not match its commitment. Treat as an
	// adversarial-input signal, not a retryable condition.
	KindIntegrity
)

// DomainError is a classified settlement error.
type DomainError struct {
	Code string
	Kind ErrorKind
}

func (e *DomainError) Error() string { return e.Code }

func newErr(code string, kind ErrorKind) *DomainError {
	return &DomainError{Code: code, Kind: kind}
}

var (
	ErrEmptyCommitment  = newErr("EmptyCommitment", KindValidation)
	ErrUnsupportedAsset = newErr("UnsupportedAsset", KindValidation)
	ErrZeroAmount       = newErr("ZeroAmount", KindValidation)
	ErrInvalidSide      = newErr("InvalidSide", KindValidation)
	ErrZeroAddress      = newErr("ZeroAddress", KindValidation)

	ErrGameRunning         = newErr("GameRunning", KindPrecondition)
	ErrGameNotRunning      = newErr("GameNotRunning", KindPrecondition)
	ErrGameExpired         = newErr("GameExpired", KindPrecondition)
	ErrGameNotExpired      = newErr("GameNotExpired", KindPrecondition)
	ErrWrongStake          = newErr("WrongStake", KindPrecondition)
	ErrAlreadyJoined       = newErr("AlreadyJoined", KindPrecondition)
	ErrStakeTooLow         = newErr("StakeTooLow", KindPrecondition)
	ErrNoFee               = newErr("NoFee", KindPrecondition)
	ErrNoPrize             = newErr("NoPrize", KindPrecondition)
	ErrNoStake             = newErr("NoStake", KindPrecondition)
	ErrInsufficientBalance = newErr("InsufficientBalance", KindPrecondition)
	ErrTransferFailed      = newErr("TransferFailed", KindPrecondition)

	ErrNotCreator = newErr("NotCreator", KindAuthorization)
	ErrNotOwner   = newErr("NotOwner", KindAuthorization)

	ErrInvalidReveal = newErr("InvalidReveal", KindIntegrity)
)

// Kind extracts the ErrorKind from an error chain, KindUnknown if none.
func Kind(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
