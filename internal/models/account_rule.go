package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRule maps transaction descriptions to a settlement account.
// Match is a glob pattern; rules are evaluated in ascending Priority
// order by the suggestion resolver.
type AccountRule struct {
	DefaultModel
	Ledger   Ledger    `json:"-"`
	LedgerID uuid.UUID `gorm:"index"`

	Priority  uint
	Match     string
	Account   Account `json:"-"`
	AccountID uuid.UUID
}

// BeforeSave trims whitespace from the match pattern.
func (r *AccountRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)

	return nil
}

func (r *AccountRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*AccountRule)
	return tx.First(&Account{}, toSave.AccountID).Error
}
