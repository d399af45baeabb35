package ledger_test

import (
	"time"

	"github.com/Fooshman135/BensBudget/internal/ledger"
	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateCategory() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(100))

	category := suite.createTestCategory("Groceries", decimal.NewFromInt(40))

	suite.Assert().NotEqual(uuid.Nil, category.ID)
	suite.Assert().True(category.Value.Equal(decimal.NewFromInt(40)))
	suite.assertUnassigned("60")
	suite.assertBalanceEquation()
}

func (suite *TestSuiteStandard) TestCreateCategoryEmptyName() {
	_, err := suite.ledger.CreateCategory("  ", decimal.Zero)
	suite.Assert().ErrorIs(err, ledger.ErrNameEmpty)
}

func (suite *TestSuiteStandard) TestCreateCategoryDuplicateName() {
	_ = suite.createTestCategory("Groceries", decimal.Zero)

	_, err := suite.ledger.CreateCategory("Groceries", decimal.Zero)
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCreateCategoryNegativeInitialValue() {
	_, err := suite.ledger.CreateCategory("Groceries", decimal.NewFromInt(-1))
	suite.Assert().ErrorIs(err, ledger.ErrValueOutOfRange)
}

func (suite *TestSuiteStandard) TestCreateCategoryExceedingUnassignedFunds() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(10))

	_, err := suite.ledger.CreateCategory("Groceries", decimal.NewFromInt(11))
	suite.Assert().ErrorIs(err, ledger.ErrInsufficientUnassignedFunds)
	suite.assertUnassigned("10")
}

// The unassigned funds pool may be drained exactly to zero.
func (suite *TestSuiteStandard) TestCreateCategoryExhaustsUnassignedFunds() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(75))

	category := suite.createTestCategory("Rent", decimal.NewFromInt(75))

	suite.Assert().True(category.Value.Equal(decimal.NewFromInt(75)))
	suite.assertUnassigned("0")
	suite.assertBalanceEquation()
}

func (suite *TestSuiteStandard) TestCategories() {
	_ = suite.createTestCategory("Rent", decimal.Zero)
	_ = suite.createTestCategory("Groceries", decimal.Zero)

	categories, err := suite.ledger.Categories()
	suite.Require().Nil(err)
	suite.Require().Len(categories, 2)
	suite.Assert().Equal("Groceries", categories[0].Name)
	suite.Assert().Equal("Rent", categories[1].Name)
}

func (suite *TestSuiteStandard) TestCategoryNotFound() {
	_, err := suite.ledger.Category(uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRenameCategory() {
	category := suite.createTestCategory("Groceries", decimal.Zero)

	suite.Require().Nil(suite.ledger.RenameCategory(category.ID, "Food"))

	renamed, err := suite.ledger.Category(category.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Food", renamed.Name)
}

func (suite *TestSuiteStandard) TestRenameCategorySameName() {
	category := suite.createTestCategory("Groceries", decimal.Zero)
	suite.Assert().Nil(suite.ledger.RenameCategory(category.ID, "Groceries"))
}

func (suite *TestSuiteStandard) TestRenameCategoryDuplicateName() {
	_ = suite.createTestCategory("Groceries", decimal.Zero)
	category := suite.createTestCategory("Rent", decimal.Zero)

	err := suite.ledger.RenameCategory(category.ID, "Groceries")
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestRevalueCategory() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(100))
	category := suite.createTestCategory("Groceries", decimal.NewFromInt(30))

	suite.Require().Nil(suite.ledger.RevalueCategory(category.ID, decimal.NewFromInt(20)))
	suite.assertUnassigned("50")

	suite.Require().Nil(suite.ledger.RevalueCategory(category.ID, decimal.NewFromInt(-50)))
	suite.assertUnassigned("100")

	revalued, err := suite.ledger.Category(category.ID)
	suite.Require().Nil(err)
	suite.Assert().True(revalued.Value.IsZero())
	suite.assertBalanceEquation()
}

// A zero delta succeeds and changes nothing.
func (suite *TestSuiteStandard) TestRevalueCategoryZeroDelta() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(100))
	category := suite.createTestCategory("Groceries", decimal.NewFromInt(30))

	suite.Require().Nil(suite.ledger.RevalueCategory(category.ID, decimal.Zero))
	suite.assertUnassigned("70")
	suite.assertBalanceEquation()
}

func (suite *TestSuiteStandard) TestRevalueCategoryExceedingUnassignedFunds() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(100))
	category := suite.createTestCategory("Groceries", decimal.NewFromInt(30))

	err := suite.ledger.RevalueCategory(category.ID, decimal.NewFromInt(71))
	suite.Assert().ErrorIs(err, ledger.ErrInsufficientUnassignedFunds)
	suite.assertUnassigned("70")
}

func (suite *TestSuiteStandard) TestRevalueCategoryBelowZero() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(100))
	category := suite.createTestCategory("Groceries", decimal.NewFromInt(30))

	err := suite.ledger.RevalueCategory(category.ID, decimal.NewFromInt(-31))
	suite.Assert().ErrorIs(err, ledger.ErrValueOutOfRange)
}

// An overspent category may only be assigned money, and at most back to zero.
func (suite *TestSuiteStandard) TestRevalueOverspentCategory() {
	account := suite.createTestAccount("Checking", decimal.NewFromInt(100))
	category := suite.createTestCategory("Groceries", decimal.Zero)

	_ = suite.createTestTransaction(ledger.TransactionCreate{
		AccountID:  account.ID,
		CategoryID: &category.ID,
		Amount:     decimal.NewFromInt(-30),
		Payee:      "The Grocery Emporium",
		Date:       time.Now(),
	})

	err := suite.ledger.RevalueCategory(category.ID, decimal.NewFromInt(-1))
	suite.Assert().ErrorIs(err, ledger.ErrValueOutOfRange)

	err = suite.ledger.RevalueCategory(category.ID, decimal.NewFromInt(31))
	suite.Assert().ErrorIs(err, ledger.ErrValueOutOfRange)

	suite.Require().Nil(suite.ledger.RevalueCategory(category.ID, decimal.NewFromInt(30)))

	repaired, err := suite.ledger.Category(category.ID)
	suite.Require().Nil(err)
	suite.Assert().True(repaired.Value.IsZero())
	suite.assertUnassigned("70")
	suite.assertBalanceEquation()
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(100))
	category := suite.createTestCategory("Groceries", decimal.NewFromInt(40))
	suite.assertUnassigned("60")

	suite.Require().Nil(suite.ledger.DeleteCategory(category.ID, true))

	_, err := suite.ledger.Category(category.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.assertUnassigned("100")
	suite.assertBalanceEquation()
}

func (suite *TestSuiteStandard) TestDeleteCategoryNotConfirmed() {
	category := suite.createTestCategory("Groceries", decimal.Zero)

	err := suite.ledger.DeleteCategory(category.ID, false)
	suite.Assert().ErrorIs(err, ledger.ErrNotConfirmed)

	_, err = suite.ledger.Category(category.ID)
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestDeleteCategoryReferenced() {
	account := suite.createTestAccount("Checking", decimal.NewFromInt(100))
	category := suite.createTestCategory("Groceries", decimal.NewFromInt(40))

	_ = suite.createTestTransaction(ledger.TransactionCreate{
		AccountID:  account.ID,
		CategoryID: &category.ID,
		Amount:     decimal.NewFromInt(-10),
		Payee:      "The Grocery Emporium",
		Date:       time.Now(),
	})

	err := suite.ledger.DeleteCategory(category.ID, true)
	suite.Assert().ErrorIs(err, ledger.ErrReferencedByTransactions)
	suite.assertBalanceEquation()
}

func (suite *TestSuiteStandard) TestDeleteCategoryNotFound() {
	err := suite.ledger.DeleteCategory(uuid.New(), true)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

// A failing commit must leave the in-memory aggregates untouched.
func (suite *TestSuiteStandard) TestCreateCategoryDBError() {
	_ = suite.createTestAccount("Checking", decimal.NewFromInt(100))

	suite.CloseDB()

	_, err := suite.ledger.CreateCategory("Groceries", decimal.NewFromInt(40))
	suite.Assert().ErrorIs(err, models.ErrGeneral)
	suite.assertUnassigned("100")
}
