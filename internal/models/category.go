package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryType marks categories that settle against a specific account.
type CategoryType string

const (
	CategoryTypeRegular     CategoryType = "regular"
	CategoryTypeSavingsGoal CategoryType = "savings_goal"
	CategoryTypeDebtPayment CategoryType = "debt_payment"
)

// Valid reports whether the category type is one of the known types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeRegular || t == CategoryTypeSavingsGoal || t == CategoryTypeDebtPayment
}

// Category represents a budget category.
//
// Spend is a denormalized aggregate: it must always equal the negated
// sum of the amounts of the category's budget-side Transactions, so a
// net outflow is a positive Spend. It is maintained by the ledger
// service with delta updates.
type Category struct {
	DefaultModel
	Ledger          Ledger    `json:"-"`
	LedgerID        uuid.UUID `gorm:"uniqueIndex:category_ledger_name"`
	Name            string    `gorm:"uniqueIndex:category_ledger_name"`
	Note            string
	Type            CategoryType    `gorm:"default:regular"`
	LinkedAccount   *Account        `json:"-"`
	LinkedAccountID *uuid.UUID      // Settlement account for savings_goal and debt_payment categories
	BudgetCap       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Spend           decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived        bool
}

// BeforeSave trims whitespace and rejects negative budget caps.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if c.BudgetCap.IsNegative() {
		return ErrBudgetCapNegative
	}

	if (c.Type == CategoryTypeSavingsGoal || c.Type == CategoryTypeDebtPayment) && c.LinkedAccountID == nil {
		return ErrLinkedAccountUnset
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return c.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the category before
// committing an update to the database.
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("LedgerID") {
		toSave := tx.Statement.Dest.(Category)
		return c.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	err := tx.First(&Ledger{}, toSave.LedgerID).Error
	if err != nil {
		return err
	}

	if toSave.LinkedAccountID != nil {
		return tx.First(&Account{}, *toSave.LinkedAccountID).Error
	}

	return nil
}

// ComputedSpend calculates the spend from the live transaction rows.
// Used to verify the denormalized Spend aggregate.
func (c Category) ComputedSpend(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Model(&Transaction{}).
		Where("category_id = ?", c.ID).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal.Neg(), nil
}

// TransactionCount returns the number of budget-side transactions in the category.
func (c Category) TransactionCount(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Model(&Transaction{}).
		Where("category_id = ?", c.ID).
		Count(&count).Error
	return count, err
}
