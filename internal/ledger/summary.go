package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/internal/types"
)

// CategorySummary is the derived per-category budget view.
type CategorySummary struct {
	CategoryID            uuid.UUID       `json:"categoryId"`
	Name                  string          `json:"name"`
	BudgetCap             decimal.Decimal `json:"budgetCap"`
	ActualSpend           decimal.Decimal `json:"actualSpend"`
	Remaining             decimal.Decimal `json:"remaining"`
	UtilizationPercentage decimal.Decimal `json:"utilizationPercentage"`
	TransactionCount      int64           `json:"transactionCount"`
}

// LedgerSummary aggregates the category view at portfolio level.
type LedgerSummary struct {
	Categories       []CategorySummary `json:"categories"`
	TotalBudgetCaps  decimal.Decimal   `json:"totalBudgetCaps"`
	TotalSpend       decimal.Decimal   `json:"totalSpend"`
	UnallocatedFunds decimal.Decimal   `json:"unallocatedFunds"`
}

// AccountState is the derived per-account view.
type AccountState struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// Utilization returns spend as a percentage of the cap, rounded to two
// decimals. A zero cap yields zero, not a division error.
func Utilization(budgetCap, spend decimal.Decimal) decimal.Decimal {
	if budgetCap.IsZero() {
		return decimal.Zero
	}

	return spend.Div(budgetCap).Mul(decimal.NewFromInt(100)).Round(2)
}

func newCategorySummary(category models.Category, transactionCount int64) CategorySummary {
	return CategorySummary{
		CategoryID:            category.ID,
		Name:                  category.Name,
		BudgetCap:             category.BudgetCap,
		ActualSpend:           category.Spend,
		Remaining:             category.BudgetCap.Sub(category.Spend),
		UtilizationPercentage: Utilization(category.BudgetCap, category.Spend),
		TransactionCount:      transactionCount,
	}
}

// CategorySummary returns the derived budget view for one category,
// read from the denormalized aggregates.
func (s *Service) CategorySummary(categoryID uuid.UUID) (CategorySummary, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		return CategorySummary{}, err
	}

	count, err := category.TransactionCount(s.db)
	if err != nil {
		return CategorySummary{}, err
	}

	return newCategorySummary(category, count), nil
}

// LedgerSummary returns the category summaries of a ledger together
// with the portfolio totals. Unallocated funds are the asset balances
// that are not claimed by any budget cap.
func (s *Service) LedgerSummary(ledgerID uuid.UUID) (LedgerSummary, error) {
	var categories []models.Category
	err := s.db.
		Where(&models.Category{LedgerID: ledgerID}).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return LedgerSummary{}, err
	}

	summary := LedgerSummary{
		Categories: make([]CategorySummary, 0, len(categories)),
	}

	for _, category := range categories {
		count, err := category.TransactionCount(s.db)
		if err != nil {
			return LedgerSummary{}, err
		}

		summary.Categories = append(summary.Categories, newCategorySummary(category, count))
		summary.TotalBudgetCaps = summary.TotalBudgetCaps.Add(category.BudgetCap)
		summary.TotalSpend = summary.TotalSpend.Add(category.Spend)
	}

	var assetBalances decimal.NullDecimal
	err = s.db.Model(&models.Account{}).
		Where(&models.Account{LedgerID: ledgerID, Class: models.AccountClassAsset}).
		Select("SUM(balance)").
		Row().
		Scan(&assetBalances)
	if err != nil {
		return LedgerSummary{}, err
	}

	summary.UnallocatedFunds = assetBalances.Decimal.Sub(summary.TotalBudgetCaps)

	return summary, nil
}

// AccountState returns the derived view of one account.
func (s *Service) AccountState(accountID uuid.UUID) (AccountState, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		return AccountState{}, err
	}

	return AccountState{CurrentBalance: account.Balance}, nil
}

// PeriodTransactions lists the budget-side transactions of a ledger for
// one budgeting period, newest first. A zero month lists everything.
func (s *Service) PeriodTransactions(ledgerID uuid.UUID, month types.Month) ([]models.Transaction, error) {
	q := s.db.
		Where(&models.Transaction{LedgerID: ledgerID}).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC")

	if !month.IsZero() {
		start := time.Time(month)
		q = q.Where("transactions.date >= date(?)", start).
			Where("transactions.date < date(?)", time.Time(month.AddDate(0, 1)))
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	return transactions, err
}
