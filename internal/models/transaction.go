package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is the budget-side record of a financial event.
//
// Amount is signed: expenses are negative, income is positive.
//
// AccountTransactionID links the record to its account-side counterpart
// when the event settles against an account. The pair represents one
// real economic event from two angles, so both amounts always express
// the same magnitude in their own sign convention.
type Transaction struct {
	DefaultModel
	Ledger   Ledger    `json:"-"`
	LedgerID uuid.UUID `gorm:"index"`

	Category   *Category  `json:"-"`
	CategoryID *uuid.UUID `gorm:"index"`

	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date        time.Time
	Description string
	Source      string // Where the record came from, e.g. "manual" or "recurring"
	Notes       string

	AccountTransaction   *AccountTransaction `json:"-"`
	AccountTransactionID *uuid.UUID          `gorm:"index"`

	// Reference to the recurring definition that produced this
	// transaction. The recurrence engine itself lives elsewhere.
	RecurringID *uuid.UUID
}

// BeforeSave defaults the date and normalizes it to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)

	t.Date = t.Date.In(time.UTC)
	return nil
}
