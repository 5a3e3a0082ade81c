package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/models"
)

// SignedAmount returns the signed account-side amount for a magnitude.
// It is pure and must be the only sign rule on both the create and the
// update path.
//
// Asset accounts: deposits, contributions and interest increase the
// balance, everything else decreases it. Liability accounts: payments
// reduce the liability, everything else increases it.
func SignedAmount(magnitude decimal.Decimal, kind models.TransactionKind, class models.AccountClass) decimal.Decimal {
	magnitude = magnitude.Abs()

	if class == models.AccountClassLiability {
		if kind == models.KindPayment {
			return magnitude.Neg()
		}
		return magnitude
	}

	switch kind {
	case models.KindDeposit, models.KindContribution, models.KindInterest:
		return magnitude
	default:
		return magnitude.Neg()
	}
}

// BudgetAmount returns the signed budget-side amount for a magnitude:
// negative for expenses, positive for income.
func BudgetAmount(magnitude decimal.Decimal, transactionType TransactionType) decimal.Decimal {
	magnitude = magnitude.Abs()

	if transactionType == TypeExpense {
		return magnitude.Neg()
	}
	return magnitude
}

// BudgetTypeForKind classifies an account-side kind for budget-side
// propagation: withdrawals and payments are expenses, everything else
// is income.
func BudgetTypeForKind(kind models.TransactionKind) TransactionType {
	if kind == models.KindWithdrawal || kind == models.KindPayment {
		return TypeExpense
	}
	return TypeIncome
}

// KindForType returns the account-side kind the unified writer records
// for a budget-side transaction type. Expenses withdraw from assets and
// charge liabilities; income deposits into assets and pays down
// liabilities.
func KindForType(transactionType TransactionType, class models.AccountClass) models.TransactionKind {
	if transactionType == TypeExpense {
		return models.KindWithdrawal
	}

	if class == models.AccountClassLiability {
		return models.KindPayment
	}
	return models.KindDeposit
}
