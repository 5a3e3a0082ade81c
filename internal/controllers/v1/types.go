// Package v1 implements the v1 API of the Pocketfold backend.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfold/backend/internal/httputil"
	"github.com/pocketfold/backend/internal/ledger"
	"github.com/pocketfold/backend/internal/models"
)

// Controller bundles the v1 handlers around the injected ledger service.
type Controller struct {
	Service *ledger.Service
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is
// passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", co.GetV1)
	r.OPTIONS("", OptionsV1)

	co.registerLedgerRoutes(r.Group("/ledgers"))
	co.registerAccountRoutes(r.Group("/accounts"))
	co.registerCategoryRoutes(r.Group("/categories"))
	co.registerTransactionRoutes(r.Group("/transactions"))
	co.registerAccountTransactionRoutes(r.Group("/account-transactions"))
	co.registerAccountRuleRoutes(r.Group("/account-rules"))
}

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if ledger.IsConsistencyWarning(err) || errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// abortWithError writes the error envelope with the mapped status.
func abortWithError(c *gin.Context, err error) {
	c.JSON(status(err), httpError{Error: err.Error()})
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Ledgers             string `json:"ledgers" example:"https://example.com/api/v1/ledgers"`
	Accounts            string `json:"accounts" example:"https://example.com/api/v1/accounts"`
	Categories          string `json:"categories" example:"https://example.com/api/v1/categories"`
	Transactions        string `json:"transactions" example:"https://example.com/api/v1/transactions"`
	AccountTransactions string `json:"accountTransactions" example:"https://example.com/api/v1/account-transactions"`
	AccountRules        string `json:"accountRules" example:"https://example.com/api/v1/account-rules"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func (co Controller) GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Ledgers:             "/v1/ledgers",
			Accounts:            "/v1/accounts",
			Categories:          "/v1/categories",
			Transactions:        "/v1/transactions",
			AccountTransactions: "/v1/account-transactions",
			AccountRules:        "/v1/account-rules",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
