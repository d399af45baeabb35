package controllers_test

import (
	"net/http"

	"github.com/Fooshman135/BensBudget/internal/controllers"
	"github.com/Fooshman135/BensBudget/internal/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestLedgerOptions() {
	recorder := suite.Request(http.MethodOptions, "http://example.com/v1/ledger", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)
	suite.Assert().Equal("OPTIONS, GET", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetLedger() {
	_ = suite.createTestAccount("Checking", "1250.5")
	_ = suite.createTestCategory("Groceries", "250.5")

	recorder := suite.Request(http.MethodGet, "http://example.com/v1/ledger", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response controllers.LedgerResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().True(response.UnassignedFunds.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(response.TotalAccountBalance.Equal(decimal.RequireFromString("1250.5")))
	suite.Assert().Equal("$1,000.00", response.UnassignedFundsDisplay)
	suite.Assert().Equal("$1,250.50", response.TotalAccountBalanceDisplay)
}

func (suite *TestSuiteStandard) TestHealthz() {
	recorder := suite.Request(http.MethodGet, "http://example.com/healthz", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)
}

func (suite *TestSuiteStandard) TestHealthzDBError() {
	suite.CloseDB()

	recorder := suite.Request(http.MethodGet, "http://example.com/healthz", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusInternalServerError, &recorder)
}
