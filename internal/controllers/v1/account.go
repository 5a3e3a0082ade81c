package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/httputil"
	"github.com/pocketfold/backend/internal/models"
)

func (co Controller) registerAccountRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccount)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetAccount)
		r.GET("/:id/balance", co.GetAccountBalance)
		r.PATCH("/:id", co.UpdateAccount)
		r.DELETE("/:id", co.DeleteAccount)
	}
}

type AccountEditable struct {
	LedgerID       uuid.UUID           `json:"ledgerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Name           string              `json:"name" example:"Checking"`
	Note           string              `json:"note" default:""`
	Class          models.AccountClass `json:"class" example:"asset" default:"asset"`
	OpeningBalance decimal.Decimal     `json:"openingBalance" example:"1000.00"`
	Archived       bool                `json:"archived" default:"false"`
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		LedgerID:       editable.LedgerID,
		Name:           editable.Name,
		Note:           editable.Note,
		Class:          editable.Class,
		OpeningBalance: editable.OpeningBalance,
		Archived:       editable.Archived,
	}
}

// @Summary		Create account
// @Description	Creates a new account. The balance starts at the opening balance.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.Account
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func (co Controller) CreateAccount(c *gin.Context) {
	var editable AccountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	if editable.Class == "" {
		editable.Class = models.AccountClassAsset
	}
	if !editable.Class.Valid() {
		abortWithError(c, errAccountClassInvalid)
		return
	}

	row := editable.model()
	row.Balance = row.OpeningBalance

	if err := co.Service.DB().Create(&row).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// @Summary		List accounts
// @Description	Returns a list of accounts
// @Tags			Accounts
// @Produce		json
// @Success		200	{array}		models.Account
// @Failure		400	{object}	httpError
// @Param			ledger	query	string	false	"Filter by ledger ID"
// @Router			/v1/accounts [get]
func (co Controller) GetAccounts(c *gin.Context) {
	q := co.Service.DB().Order("name ASC")

	if ledgerParam := c.Query("ledger"); ledgerParam != "" {
		ledgerID, err := httputil.UUIDFromString(ledgerParam)
		if err != nil {
			abortWithError(c, err)
			return
		}
		q = q.Where(&models.Account{LedgerID: ledgerID})
	}

	var rows []models.Account
	if err := q.Find(&rows).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	models.Account
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/accounts/{id} [get]
func (co Controller) GetAccount(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Account
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Account balance
// @Description	Returns the derived state of the account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	ledger.AccountState
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/accounts/{id}/balance [get]
func (co Controller) GetAccountBalance(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	state, err := co.Service.AccountState(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// @Summary		Update account
// @Description	Updates the editable metadata of an account. Balances change through transactions only.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.Account
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func (co Controller) UpdateAccount(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Account
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	var editable AccountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	// The class and the opening balance are fixed after creation, and
	// the balance changes through transactions only.
	fields := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		switch field {
		case "Name", "Note", "Archived":
			fields = append(fields, field)
		}
	}

	if len(fields) > 0 {
		err = co.Service.DB().Model(&row).Select("", fields...).Updates(editable.model()).Error
		if err != nil {
			abortWithError(c, err)
			return
		}
	}

	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Delete account
// @Description	Deletes an account
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/accounts/{id} [delete]
func (co Controller) DeleteAccount(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Account
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	if err := co.Service.DB().Delete(&row).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
