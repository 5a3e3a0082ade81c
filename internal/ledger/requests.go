package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/models"
)

// TransactionType is the budget-side classification of a financial event.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is income or expense.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// CreateUnifiedRequest is the request to record a new financial event.
// The writer decides from it whether the event needs a budget-side
// record, an account-side record, or a linked pair.
type CreateUnifiedRequest struct {
	LedgerID    uuid.UUID       `json:"ledgerId"`
	Description string          `json:"description"`
	Magnitude   decimal.Decimal `json:"amount"` // Always positive, the Type carries the direction
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	AccountID   *uuid.UUID      `json:"accountId"`
	Notes       string          `json:"notes"`
	Source      string          `json:"source"`

	// NoAccount records the caller's explicit choice to not settle the
	// event against any account. It suppresses the suggestion resolver.
	NoAccount bool `json:"noAccount"`

	// RequireAccount makes the request fail validation when no account
	// is given and none can be suggested.
	RequireAccount bool `json:"requireAccount"`
}

// Validate rejects the request before anything is written.
func (r CreateUnifiedRequest) Validate() error {
	if r.Description == "" {
		return ErrDescriptionRequired
	}

	if !r.Magnitude.IsPositive() {
		return ErrMagnitudeNotPositive
	}

	if r.Date.IsZero() {
		return ErrDateRequired
	}

	if !r.Type.Valid() {
		return ErrTypeInvalid
	}

	return nil
}

// CreateUnifiedResult reports the rows a successful write created.
type CreateUnifiedResult struct {
	Transaction        models.Transaction         `json:"transaction"`
	AccountTransaction *models.AccountTransaction `json:"accountTransaction,omitempty"`

	// Suggested is set when the settlement account was adopted from the
	// suggestion resolver rather than chosen by the caller.
	Suggested *SuggestedAccount `json:"suggested,omitempty"`
}

// UpdateAccountTransactionRequest is a partial update of an
// account-side record. Nil fields are left unchanged.
type UpdateAccountTransactionRequest struct {
	ID uuid.UUID `json:"-"`

	Description *string                 `json:"description"`
	Magnitude   *decimal.Decimal        `json:"amount"`
	Date        *time.Time              `json:"date"`
	Kind        *models.TransactionKind `json:"kind"`
}

// Validate rejects the request before anything is written.
func (r UpdateAccountTransactionRequest) Validate() error {
	if r.Description == nil && r.Magnitude == nil && r.Date == nil && r.Kind == nil {
		return ErrNoFieldsToUpdate
	}

	if r.Magnitude != nil && !r.Magnitude.IsPositive() {
		return ErrMagnitudeNotPositive
	}

	if r.Kind != nil && !r.Kind.Valid() {
		return ErrKindInvalid
	}

	return nil
}

// DeleteAccountTransactionRequest deletes an account-side record and,
// when the record is part of a linked pair, its budget-side counterpart.
type DeleteAccountTransactionRequest struct {
	ID uuid.UUID `json:"-"`
}
