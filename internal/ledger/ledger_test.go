package ledger_test

import (
	"github.com/Fooshman135/BensBudget/internal/ledger"
	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestNewEmptyDatabase() {
	suite.Assert().True(suite.ledger.UnassignedFunds().IsZero())
	suite.Assert().True(suite.ledger.TotalAccountBalance().IsZero())
}

// New computes the aggregates from the stored rows, they are not persisted
// themselves.
func (suite *TestSuiteStandard) TestNewComputesAggregates() {
	suite.Require().Nil(suite.db.Create(&models.Account{Name: "Checking", Balance: decimal.NewFromInt(100)}).Error)
	suite.Require().Nil(suite.db.Create(&models.Account{Name: "Savings", Balance: decimal.NewFromInt(50)}).Error)
	suite.Require().Nil(suite.db.Create(&models.Category{Name: "Rent", Value: decimal.NewFromInt(30)}).Error)

	l, err := ledger.New(suite.db)
	suite.Require().Nil(err)

	suite.Assert().True(l.TotalAccountBalance().Equal(decimal.NewFromInt(150)))
	suite.Assert().True(l.UnassignedFunds().Equal(decimal.NewFromInt(120)))
}
