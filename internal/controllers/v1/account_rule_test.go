package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	v1 "github.com/pocketfold/backend/internal/controllers/v1"
	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/test"
)

func (suite *TestSuiteStandard) TestCreateAccountRule() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/account-rules", v1.AccountRuleEditable{
		LedgerID:  l.ID,
		Priority:  1,
		Match:     "Mortgage*",
		AccountID: account.ID,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)
}

func (suite *TestSuiteStandard) TestCreateAccountRuleUnknownAccount() {
	l := suite.createTestLedger(models.Ledger{})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/account-rules", v1.AccountRuleEditable{
		LedgerID:  l.ID,
		Priority:  1,
		Match:     "Mortgage*",
		AccountID: uuid.New(),
	})
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestGetAccountRulesOrderedByPriority() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})

	suite.createTestAccountRule(models.AccountRule{LedgerID: l.ID, Priority: 2, Match: "*", AccountID: account.ID})
	suite.createTestAccountRule(models.AccountRule{LedgerID: l.ID, Priority: 1, Match: "Rent*", AccountID: account.ID})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/account-rules?ledger=%s", l.ID), nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var rules []models.AccountRule
	test.DecodeResponse(suite.T(), &recorder, &rules)
	suite.Require().Len(rules, 2)
	suite.Assert().Equal("Rent*", rules[0].Match)
}

func (suite *TestSuiteStandard) TestUpdateAccountRule() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})
	rule := suite.createTestAccountRule(models.AccountRule{LedgerID: l.ID, Priority: 1, Match: "Rent*", AccountID: account.ID})

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/account-rules/%s", rule.ID), map[string]any{
		"priority":  5,
		"match":     "Mortgage*",
		"accountId": account.ID,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	suite.Require().Nil(suite.db.First(&rule, rule.ID).Error)
	suite.Assert().Equal("Mortgage*", rule.Match)
	suite.Assert().Equal(uint(5), rule.Priority)
}

// A partial update only writes the fields present in the body.
func (suite *TestSuiteStandard) TestUpdateAccountRuleKeepsOmittedFields() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})
	rule := suite.createTestAccountRule(models.AccountRule{LedgerID: l.ID, Priority: 3, Match: "Rent*", AccountID: account.ID})

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/account-rules/%s", rule.ID), map[string]any{
		"match": "Mortgage*",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	suite.Require().Nil(suite.db.First(&rule, rule.ID).Error)
	suite.Assert().Equal("Mortgage*", rule.Match)
	suite.Assert().Equal(uint(3), rule.Priority)
	suite.Assert().Equal(account.ID, rule.AccountID)
}

func (suite *TestSuiteStandard) TestDeleteAccountRule() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})
	rule := suite.createTestAccountRule(models.AccountRule{LedgerID: l.ID, Priority: 1, Match: "Rent*", AccountID: account.ID})

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/account-rules/%s", rule.ID), nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)
}
