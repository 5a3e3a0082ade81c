package v1

import "errors"

var (
	errAccountClassInvalid  = errors.New("the account class must be asset or liability")
	errCategoryTypeInvalid  = errors.New("the category type must be regular, savings_goal or debt_payment")
	errMonthInvalid         = errors.New("the month query parameter must be in the YYYY-MM format")
	errLedgerParameterUnset = errors.New("the ledger query parameter must be set")
)
