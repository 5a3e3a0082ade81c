package models_test

import (
	"github.com/pocketfold/backend/internal/models"
)

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	_, err := models.Connect("/this/path/does/not/exist/db.sqlite")
	suite.Assert().NotNil(err)
}

func (suite *TestSuiteStandard) TestQueryErrorIsUserFriendly() {
	var account models.Account
	err := suite.db.First(&account, models.Account{}.ID).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no account matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestQueryErrorPluralization() {
	var category models.Category
	err := suite.db.First(&category, models.Category{}.ID).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no category matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestUniqueConstraintsAreUserFriendly() {
	l := suite.createTestLedger(models.Ledger{})

	suite.createTestAccount(models.Account{LedgerID: l.ID, Name: "Checking"})
	err := suite.db.Create(&models.Account{LedgerID: l.ID, Name: "Checking"}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	suite.createTestCategory(models.Category{LedgerID: l.ID, Name: "Groceries"})
	err = suite.db.Create(&models.Category{LedgerID: l.ID, Name: "Groceries"}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

// The same name in different ledgers is fine.
func (suite *TestSuiteStandard) TestUniqueConstraintsScopedToLedger() {
	first := suite.createTestLedger(models.Ledger{})
	second := suite.createTestLedger(models.Ledger{})

	suite.createTestAccount(models.Account{LedgerID: first.ID, Name: "Checking"})
	err := suite.db.Create(&models.Account{LedgerID: second.ID, Name: "Checking"}).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestClosedDatabaseIsGeneralError() {
	suite.CloseDB()

	var ledgers []models.Ledger
	err := suite.db.Find(&ledgers).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
