package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/ledger"
	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/test"
)

// createTestPair writes a linked expense against a fresh ledger, asset
// account and category.
func (suite *TestSuiteStandard) createTestPair(magnitude decimal.Decimal) (models.Account, models.Category, ledger.CreateUnifiedResult) {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID, OpeningBalance: decimal.NewFromInt(1000)})
	category := suite.createTestCategory(models.Category{LedgerID: l.ID, BudgetCap: decimal.NewFromInt(800)})

	result, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Dinner",
		Magnitude:   magnitude,
		Date:        testDate(),
		Type:        ledger.TypeExpense,
		CategoryID:  &category.ID,
		AccountID:   &account.ID,
	})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.AccountTransaction)

	return account, category, result
}

func (suite *TestSuiteStandard) TestGetAccountTransactionsFilteredByAccount() {
	account, _, _ := suite.createTestPair(decimal.NewFromInt(50))

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/account-transactions?account=%s", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var rows []models.AccountTransaction
	test.DecodeResponse(suite.T(), &recorder, &rows)
	suite.Assert().Len(rows, 1)
}

func (suite *TestSuiteStandard) TestGetAccountTransaction() {
	_, _, result := suite.createTestPair(decimal.NewFromInt(50))

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/account-transactions/%s", result.AccountTransaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)
}

func (suite *TestSuiteStandard) TestUpdateAccountTransaction() {
	account, category, result := suite.createTestPair(decimal.NewFromInt(50))

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/account-transactions/%s", result.AccountTransaction.ID), map[string]any{
		"amount": "80",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var updated models.AccountTransaction
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().True(decimal.NewFromInt(-80).Equal(updated.Amount), "amount is %s", updated.Amount)

	suite.Require().Nil(suite.db.First(&account, account.ID).Error)
	suite.Assert().True(decimal.NewFromInt(920).Equal(account.Balance), "balance is %s", account.Balance)

	suite.Require().Nil(suite.db.First(&category, category.ID).Error)
	suite.Assert().True(decimal.NewFromInt(80).Equal(category.Spend), "spend is %s", category.Spend)
}

func (suite *TestSuiteStandard) TestUpdateAccountTransactionNoFields() {
	_, _, result := suite.createTestPair(decimal.NewFromInt(50))

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/account-transactions/%s", result.AccountTransaction.ID), map[string]any{})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestDeleteAccountTransaction() {
	account, category, result := suite.createTestPair(decimal.NewFromInt(50))

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/account-transactions/%s", result.AccountTransaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	suite.Require().Nil(suite.db.First(&account, account.ID).Error)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(account.Balance), "balance is %s", account.Balance)

	suite.Require().Nil(suite.db.First(&category, category.ID).Error)
	suite.Assert().True(category.Spend.IsZero(), "spend is %s", category.Spend)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/transactions/%s", result.Transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestDeleteAccountTransactionNotFound() {
	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, "/v1/account-transactions/4a5918eb-0a5b-4f39-8447-2e6b12ba7904", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}
