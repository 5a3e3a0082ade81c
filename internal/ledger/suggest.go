package ledger

import (
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"

	"github.com/pocketfold/backend/internal/models"
)

// SuggestionReason explains why an account was (or was not) suggested.
type SuggestionReason string

const (
	ReasonLinkedSavingsGoal SuggestionReason = "linked_savings_goal"
	ReasonLinkedDebtPayment SuggestionReason = "linked_debt_payment"
	ReasonRuleMatch         SuggestionReason = "rule_match"
	ReasonNone              SuggestionReason = "none"
)

// SuggestedAccount is the ephemeral result of a suggestion lookup. It
// is never persisted.
type SuggestedAccount struct {
	CategoryID uuid.UUID        `json:"categoryId"`
	AccountID  *uuid.UUID       `json:"accountId"`
	Reason     SuggestionReason `json:"reason"`
}

// SuggestAccount resolves the recommended settlement account for a
// category. Savings goal and debt payment categories resolve to their
// configured linked account; otherwise the ledger's account rules are
// matched against the description, in priority order.
//
// This is a pure read with no side effects, safe to call speculatively
// on every category selection change in a form.
func (s *Service) SuggestAccount(categoryID uuid.UUID, description string) (SuggestedAccount, error) {
	suggestion := SuggestedAccount{
		CategoryID: categoryID,
		Reason:     ReasonNone,
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		return SuggestedAccount{}, err
	}

	if category.LinkedAccountID != nil {
		switch category.Type {
		case models.CategoryTypeSavingsGoal:
			suggestion.AccountID = category.LinkedAccountID
			suggestion.Reason = ReasonLinkedSavingsGoal
			return suggestion, nil
		case models.CategoryTypeDebtPayment:
			suggestion.AccountID = category.LinkedAccountID
			suggestion.Reason = ReasonLinkedDebtPayment
			return suggestion, nil
		}
	}

	if description == "" {
		return suggestion, nil
	}

	var rules []models.AccountRule
	err := s.db.
		Where(&models.AccountRule{LedgerID: category.LedgerID}).
		Order("priority ASC").
		Find(&rules).Error
	if err != nil {
		return SuggestedAccount{}, err
	}

	for _, rule := range rules {
		if glob.Glob(rule.Match, description) {
			accountID := rule.AccountID
			suggestion.AccountID = &accountID
			suggestion.Reason = ReasonRuleMatch
			return suggestion, nil
		}
	}

	return suggestion, nil
}
