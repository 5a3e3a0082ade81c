package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind classifies an account-side transaction. Together with
// the account class it determines the sign of the stored amount.
type TransactionKind string

const (
	KindDeposit      TransactionKind = "deposit"
	KindWithdrawal   TransactionKind = "withdrawal"
	KindPayment      TransactionKind = "payment"
	KindContribution TransactionKind = "contribution"
	KindInterest     TransactionKind = "interest"
	KindTransfer     TransactionKind = "transfer"
)

// Valid reports whether the kind is one of the known transaction kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindPayment, KindContribution, KindInterest, KindTransfer:
		return true
	}
	return false
}

// AccountTransaction is the account-side record of a financial event.
//
// Amount is signed according to the owning account's class, see
// ledger.SignedAmount.
type AccountTransaction struct {
	DefaultModel
	Account   Account   `json:"-"`
	AccountID uuid.UUID `gorm:"index"`

	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Kind        TransactionKind
	Date        time.Time
	Description string

	Transaction   *Transaction `json:"-"`
	TransactionID *uuid.UUID   `gorm:"index"`
}

// BeforeSave defaults the date and normalizes it to UTC.
func (t *AccountTransaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)

	return nil
}

func (t *AccountTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*AccountTransaction)
	return tx.First(&Account{}, toSave.AccountID).Error
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (t *AccountTransaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)

	t.Date = t.Date.In(time.UTC)
	return nil
}
