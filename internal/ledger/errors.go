package ledger

import (
	"errors"
	"fmt"
)

// Validation failures are rejected before anything is written.
var (
	ErrValidation = errors.New("validation failed")

	ErrDescriptionRequired  = fmt.Errorf("%w: the description must be set", ErrValidation)
	ErrMagnitudeNotPositive = fmt.Errorf("%w: the amount must be larger than zero", ErrValidation)
	ErrDateRequired         = fmt.Errorf("%w: the date must be set", ErrValidation)
	ErrTypeInvalid          = fmt.Errorf("%w: the transaction type must be income or expense", ErrValidation)
	ErrKindInvalid          = fmt.Errorf("%w: the transaction kind is invalid", ErrValidation)
	ErrAccountRequired      = fmt.Errorf("%w: an account is required but none was given or could be suggested", ErrValidation)
	ErrNoFieldsToUpdate     = fmt.Errorf("%w: at least one field must be updated", ErrValidation)
)

// ConsistencyError reports that the store may have diverged from the
// ledger invariants: a multi-step write failed and its compensation
// failed too, or a balance was adjusted without its row change. It is
// meant for operator visibility, not for silent retry.
type ConsistencyError struct {
	// Stage names the operation step that originally failed.
	Stage string

	// Err is the original failure.
	Err error

	// CompensationErr is the error from the failed compensation, if any.
	CompensationErr error
}

func (e *ConsistencyError) Error() string {
	if e.CompensationErr != nil {
		return fmt.Sprintf("consistency warning: %s failed (%v) and its compensation failed (%v), the store may be inconsistent", e.Stage, e.Err, e.CompensationErr)
	}

	return fmt.Sprintf("consistency warning: %s left the store in a diverged state: %v", e.Stage, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// IsConsistencyWarning reports whether err is a ConsistencyError.
func IsConsistencyWarning(err error) bool {
	var consistencyError *ConsistencyError
	return errors.As(err, &consistencyError)
}

// StageError wraps a failure with the stage it occurred in, so callers
// can tell which part of a multi-step operation failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
