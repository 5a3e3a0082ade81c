package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountClass determines the sign convention for an account's
// transactions. Asset accounts grow with deposits, liability accounts
// grow with charges and shrink with payments.
type AccountClass string

const (
	AccountClassAsset     AccountClass = "asset"
	AccountClassLiability AccountClass = "liability"
)

// Valid reports whether the account class is one of the known classes.
func (c AccountClass) Valid() bool {
	return c == AccountClassAsset || c == AccountClassLiability
}

// Account represents a real-world account, e.g. a checking account or a
// credit card.
//
// Balance is a denormalized aggregate: it must always equal
// OpeningBalance plus the sum of the signed amounts of the account's
// AccountTransactions. It is maintained by the ledger service with
// delta updates, not recomputed on read.
type Account struct {
	DefaultModel
	Ledger         Ledger    `json:"-"`
	LedgerID       uuid.UUID `gorm:"uniqueIndex:account_ledger_name"`
	Name           string    `gorm:"uniqueIndex:account_ledger_name"`
	Note           string
	Class          AccountClass    `gorm:"default:asset"`
	OpeningBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Balance        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived       bool
}

// BeforeSave trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return a.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the account before
// committing an update to the database.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("LedgerID") {
		toSave := tx.Statement.Dest.(Account)
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (a *Account) checkIntegrity(tx *gorm.DB, toSave Account) error {
	return tx.First(&Ledger{}, toSave.LedgerID).Error
}

// Transactions returns all account-side transactions for this account.
func (a Account) Transactions(db *gorm.DB) ([]AccountTransaction, error) {
	var transactions []AccountTransaction

	err := db.Where(&AccountTransaction{AccountID: a.ID}).Find(&transactions).Error
	return transactions, err
}

// ComputedBalance calculates the balance from the live transaction rows.
// Used to verify the denormalized Balance aggregate.
func (a Account) ComputedBalance(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Model(&AccountTransaction{}).
		Where(&AccountTransaction{AccountID: a.ID}).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return a.OpeningBalance.Add(sum.Decimal), nil
}
