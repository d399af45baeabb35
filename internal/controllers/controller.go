package controllers

import (
	"net/http"

	"github.com/Fooshman135/BensBudget/internal/budget"
	"github.com/Fooshman135/BensBudget/internal/httputil"
	"github.com/Fooshman135/BensBudget/internal/ledger"
	"github.com/gin-gonic/gin"
)

// Controller holds the open budget session and the registry the handlers
// operate on.
type Controller struct {
	Ledger  *ledger.Ledger
	Budgets *budget.Registry

	// ActiveBudget is the name of the budget the Ledger is open on. It cannot
	// be deleted through the API.
	ActiveBudget string
}

// RegisterRoutes registers all v1 API routes with the RouterGroup that is
// passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterAccountRoutes(r.Group("/accounts"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterLedgerRoutes(r.Group("/ledger"))
}

// GetHealthz returns the health of the service. It verifies that the open
// budget database answers queries.
func (co Controller) GetHealthz(c *gin.Context) {
	if _, err := co.Ledger.Accounts(); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (co Controller) OptionsHealthz(c *gin.Context) {
	httputil.OptionsGet(c)
}
