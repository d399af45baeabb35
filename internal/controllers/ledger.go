package controllers

import (
	"net/http"

	"github.com/Fooshman135/BensBudget/internal/format"
	"github.com/Fooshman135/BensBudget/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterLedgerRoutes registers the routes for the ledger aggregates with
// the RouterGroup that is passed.
func (co Controller) RegisterLedgerRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsLedger)
	r.GET("", co.GetLedger)
}

func (co Controller) OptionsLedger(c *gin.Context) {
	httputil.OptionsGet(c)
}

type LedgerResponse struct {
	UnassignedFunds            decimal.Decimal `json:"unassignedFunds"`
	TotalAccountBalance        decimal.Decimal `json:"totalAccountBalance"`
	UnassignedFundsDisplay     string          `json:"unassignedFundsDisplay"`
	TotalAccountBalanceDisplay string          `json:"totalAccountBalanceDisplay"`
}

// GetLedger returns the two derived aggregates for display, as raw values
// and formatted for the menus.
func (co Controller) GetLedger(c *gin.Context) {
	unassigned := co.Ledger.UnassignedFunds()
	total := co.Ledger.TotalAccountBalance()

	c.JSON(http.StatusOK, LedgerResponse{
		UnassignedFunds:            unassigned,
		TotalAccountBalance:        total,
		UnassignedFundsDisplay:     format.Amount(unassigned),
		TotalAccountBalanceDisplay: format.Amount(total),
	})
}
