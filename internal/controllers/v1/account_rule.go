package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketfold/backend/internal/httputil"
	"github.com/pocketfold/backend/internal/models"
)

func (co Controller) registerAccountRuleRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetAccountRules)
		r.POST("", co.CreateAccountRule)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetAccountRule)
		r.PATCH("/:id", co.UpdateAccountRule)
		r.DELETE("/:id", co.DeleteAccountRule)
	}
}

type AccountRuleEditable struct {
	LedgerID  uuid.UUID `json:"ledgerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Priority  uint      `json:"priority" example:"1"`
	Match     string    `json:"match" example:"Mortgage*"`
	AccountID uuid.UUID `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`
}

func (editable AccountRuleEditable) model() models.AccountRule {
	return models.AccountRule{
		LedgerID:  editable.LedgerID,
		Priority:  editable.Priority,
		Match:     editable.Match,
		AccountID: editable.AccountID,
	}
}

// @Summary		Create account rule
// @Description	Creates a rule that matches transaction descriptions with globbing and maps them to an account
// @Tags			AccountRules
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.AccountRule
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			rule	body		AccountRuleEditable	true	"AccountRule"
// @Router			/v1/account-rules [post]
func (co Controller) CreateAccountRule(c *gin.Context) {
	var editable AccountRuleEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	row := editable.model()

	if err := co.Service.DB().Create(&row).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// @Summary		List account rules
// @Description	Returns a list of account rules, ordered by priority
// @Tags			AccountRules
// @Produce		json
// @Success		200	{array}		models.AccountRule
// @Failure		400	{object}	httpError
// @Param			ledger	query	string	false	"Filter by ledger ID"
// @Router			/v1/account-rules [get]
func (co Controller) GetAccountRules(c *gin.Context) {
	q := co.Service.DB().Order("priority ASC")

	if ledgerParam := c.Query("ledger"); ledgerParam != "" {
		ledgerID, err := httputil.UUIDFromString(ledgerParam)
		if err != nil {
			abortWithError(c, err)
			return
		}
		q = q.Where(&models.AccountRule{LedgerID: ledgerID})
	}

	var rows []models.AccountRule
	if err := q.Find(&rows).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary		Get account rule
// @Description	Returns a specific account rule
// @Tags			AccountRules
// @Produce		json
// @Success		200	{object}	models.AccountRule
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/account-rules/{id} [get]
func (co Controller) GetAccountRule(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.AccountRule
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Update account rule
// @Description	Updates an account rule
// @Tags			AccountRules
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.AccountRule
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string				true	"ID formatted as string"
// @Param			rule	body		AccountRuleEditable	true	"AccountRule"
// @Router			/v1/account-rules/{id} [patch]
func (co Controller) UpdateAccountRule(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.AccountRule
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountRuleEditable{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	var editable AccountRuleEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	// A rule cannot move between ledgers.
	fields := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		switch field {
		case "Priority", "Match", "AccountID":
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

// @Summary		Delete account rule
// @Description	Deletes an account rule
// @Tags			AccountRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/account-rules/{id} [delete]
func (co Controller) DeleteAccountRule(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.AccountRule
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
