package controllers

import (
	"net/http"

	"github.com/Fooshman135/BensBudget/internal/httputil"
	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func (co Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsAccountList)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", co.OptionsAccountDetail)
		r.GET("/:id", co.GetAccount)
		r.PATCH("/:id", co.UpdateAccount)
		r.DELETE("/:id", co.DeleteAccount)
	}
}

func (co Controller) OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func (co Controller) OptionsAccountDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

type AccountEditable struct {
	Name            string          `json:"name"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
}

type AccountUpdate struct {
	Name *string `json:"name"`
}

// GetAccounts returns all accounts. The name query parameter filters by name
// and supports the * wildcard.
func (co Controller) GetAccounts(c *gin.Context) {
	accounts, err := co.Ledger.Accounts()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if pattern := c.Query("name"); pattern != "" {
		filtered := make([]models.Account, 0, len(accounts))
		for _, account := range accounts {
			if glob.Glob(pattern, account.Name) {
				filtered = append(filtered, account)
			}
		}
		accounts = filtered
	}

	c.JSON(http.StatusOK, accounts)
}

// CreateAccount creates a new account. The starting balance is recorded as
// an opening transaction and adds to the unassigned funds.
func (co Controller) CreateAccount(c *gin.Context) {
	var editable AccountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	account, err := co.Ledger.CreateAccount(editable.Name, editable.StartingBalance)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetAccount returns a specific account.
func (co Controller) GetAccount(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	account, err := co.Ledger.Account(id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateAccount renames an account.
func (co Controller) UpdateAccount(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var update AccountUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if update.Name != nil {
		if err := co.Ledger.RenameAccount(id, *update.Name); err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
	}

	account, err := co.Ledger.Account(id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount deletes an account and absorbs its balance back into the
// unassigned funds.
func (co Controller) DeleteAccount(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if err := co.Ledger.DeleteAccount(id); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
