package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// reservedPayees may not be set by user-facing transaction operations.
var reservedPayees = []string{models.StartingBalancePayee}

// TransactionCreate holds the user-supplied fields for a new transaction.
//
// Amount is signed: positive for income, negative for an expense. The
// presentation layer collects a magnitude and a classification and derives
// the sign before calling in.
type TransactionCreate struct {
	AccountID  uuid.UUID       `json:"accountId"`
	CategoryID *uuid.UUID      `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Payee      string          `json:"payee"`
	Date       time.Time       `json:"date"`
	Memo       string          `json:"memo"`
}

// Transactions returns all transactions, newest first.
func (l *Ledger) Transactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := l.db.Order("date DESC, uid DESC").Find(&transactions).Error
	return transactions, err
}

// Transaction returns a single transaction by its UID.
func (l *Ledger) Transaction(uid uint64) (models.Transaction, error) {
	var transaction models.Transaction
	err := l.db.First(&transaction, "uid = ?", uid).Error
	return transaction, err
}

// nextUID returns the UID for a new transaction, 1 + the highest UID
// currently in the budget.
func nextUID(tx *gorm.DB) (uint64, error) {
	var max sql.NullInt64

	err := tx.Model(&models.Transaction{}).
		Select("MAX(uid)").
		Row().
		Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("finding the highest transaction uid failed: %w", err)
	}

	return uint64(max.Int64) + 1, nil
}

// insertTransaction assigns the next UID and writes the row. It applies no
// balance effects, those are the caller's responsibility.
func insertTransaction(tx *gorm.DB, transaction *models.Transaction) error {
	uid, err := nextUID(tx)
	if err != nil {
		return err
	}

	transaction.UID = uid
	return tx.Create(transaction).Error
}

// CreateTransaction commits a new transaction and applies its balance
// effects: the amount is added to the account, to the category when one is
// set, and to the unassigned funds pool otherwise.
//
// An expense must carry a category and must not overdraw its account.
func (l *Ledger) CreateTransaction(create TransactionCreate) (models.Transaction, error) {
	var transaction models.Transaction

	err := l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		if slices.Contains(reservedPayees, strings.TrimSpace(create.Payee)) {
			return aggregateDelta{}, ErrPayeeReserved
		}

		var account models.Account
		if err := tx.First(&account, "id = ?", create.AccountID).Error; err != nil {
			return aggregateDelta{}, err
		}

		categoryID := create.CategoryID
		if categoryID != nil && *categoryID == uuid.Nil {
			categoryID = nil
		}

		if create.Amount.IsNegative() {
			if categoryID == nil {
				return aggregateDelta{}, ErrCategoryRequired
			}
			if account.Balance.Add(create.Amount).IsNegative() {
				return aggregateDelta{}, fmt.Errorf("%w: %s needed, %s available in %s", ErrInsufficientAccountBalance, create.Amount.Neg(), account.Balance, account.Name)
			}
		}

		delta := aggregateDelta{totalBalance: create.Amount}

		if categoryID != nil {
			var category models.Category
			if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
				return aggregateDelta{}, err
			}
			err := tx.Model(&category).Update("value", category.Value.Add(create.Amount)).Error
			if err != nil {
				return aggregateDelta{}, err
			}
		} else {
			delta.unassigned = create.Amount
		}

		err := tx.Model(&account).Update("balance", account.Balance.Add(create.Amount)).Error
		if err != nil {
			return aggregateDelta{}, err
		}

		transaction = models.Transaction{
			AccountID:  create.AccountID,
			CategoryID: categoryID,
			Amount:     create.Amount,
			Payee:      create.Payee,
			Date:       create.Date,
			Memo:       create.Memo,
		}
		if err := insertTransaction(tx, &transaction); err != nil {
			return aggregateDelta{}, err
		}

		return delta, nil
	})

	return transaction, err
}

// SetTransactionAccount moves a transaction to another account: the amount is
// reversed on the old account and applied to the new one.
//
// It fails when the old account cannot give the amount back (the transaction
// was income that has since been spent) and when the new account cannot
// absorb an outflow.
func (l *Ledger) SetTransactionAccount(uid uint64, accountID uuid.UUID) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var transaction models.Transaction
		if err := tx.First(&transaction, "uid = ?", uid).Error; err != nil {
			return aggregateDelta{}, err
		}

		if transaction.AccountID == accountID {
			return aggregateDelta{}, nil
		}

		var oldAccount, newAccount models.Account
		if err := tx.First(&oldAccount, "id = ?", transaction.AccountID).Error; err != nil {
			return aggregateDelta{}, err
		}
		if err := tx.First(&newAccount, "id = ?", accountID).Error; err != nil {
			return aggregateDelta{}, err
		}

		oldBalance := oldAccount.Balance.Sub(transaction.Amount)
		if oldBalance.IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: %s only holds %s", ErrReversalUnderflowsAccount, oldAccount.Name, oldAccount.Balance)
		}

		newBalance := newAccount.Balance.Add(transaction.Amount)
		if newBalance.IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: %s needed, %s available in %s", ErrInsufficientAccountBalance, transaction.Amount.Neg(), newAccount.Balance, newAccount.Name)
		}

		if err := tx.Model(&oldAccount).Update("balance", oldBalance).Error; err != nil {
			return aggregateDelta{}, err
		}
		if err := tx.Model(&newAccount).Update("balance", newBalance).Error; err != nil {
			return aggregateDelta{}, err
		}
		if err := tx.Model(&transaction).Update("account_id", accountID).Error; err != nil {
			return aggregateDelta{}, err
		}

		// The amount leaves one account and enters another, the totals are
		// unchanged.
		return aggregateDelta{}, nil
	})
}

// SetTransactionCategory moves a transaction's amount from its current
// category (or the unassigned funds pool) to another category (or the pool),
// mirroring the commit-time bookkeeping exactly.
//
// Passing nil routes the amount to the pool, which is only allowed for
// income and zero-amount transactions.
func (l *Ledger) SetTransactionCategory(uid uint64, categoryID *uuid.UUID) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var transaction models.Transaction
		if err := tx.First(&transaction, "uid = ?", uid).Error; err != nil {
			return aggregateDelta{}, err
		}

		if categoryID != nil && *categoryID == uuid.Nil {
			categoryID = nil
		}

		switch {
		case transaction.CategoryID == nil && categoryID == nil:
			return aggregateDelta{}, nil
		case transaction.CategoryID != nil && categoryID != nil && *transaction.CategoryID == *categoryID:
			return aggregateDelta{}, nil
		}

		if transaction.Amount.IsNegative() && categoryID == nil {
			return aggregateDelta{}, ErrCategoryRequired
		}

		poolDelta := decimal.Zero

		// Reverse the amount out of the old target.
		if transaction.CategoryID == nil {
			poolDelta = poolDelta.Sub(transaction.Amount)
		} else {
			var old models.Category
			if err := tx.First(&old, "id = ?", transaction.CategoryID).Error; err != nil {
				return aggregateDelta{}, err
			}
			err := tx.Model(&old).Update("value", old.Value.Sub(transaction.Amount)).Error
			if err != nil {
				return aggregateDelta{}, err
			}
		}

		// Apply the amount to the new target.
		if categoryID == nil {
			poolDelta = poolDelta.Add(transaction.Amount)
		} else {
			var category models.Category
			if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
				return aggregateDelta{}, err
			}
			err := tx.Model(&category).Update("value", category.Value.Add(transaction.Amount)).Error
			if err != nil {
				return aggregateDelta{}, err
			}
		}

		if l.unassignedFunds.Add(poolDelta).IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: %s needed, %s available", ErrReversalUnderflowsUnassigned, poolDelta.Neg(), l.unassignedFunds)
		}

		err := tx.Model(&transaction).Update("category_id", categoryID).Error
		if err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{unassigned: poolDelta}, nil
	})
}

// SetTransactionAmount changes a transaction's amount and applies the
// difference to the account and to the category or unassigned funds pool.
//
// The account must be able to absorb the difference. An edit that flips the
// transaction from income to expense requires a category to be set first.
func (l *Ledger) SetTransactionAmount(uid uint64, amount decimal.Decimal) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var transaction models.Transaction
		if err := tx.First(&transaction, "uid = ?", uid).Error; err != nil {
			return aggregateDelta{}, err
		}

		diff := amount.Sub(transaction.Amount)
		if diff.IsZero() {
			return aggregateDelta{}, nil
		}

		if amount.IsNegative() && transaction.CategoryID == nil {
			return aggregateDelta{}, ErrCategoryRequired
		}

		var account models.Account
		if err := tx.First(&account, "id = ?", transaction.AccountID).Error; err != nil {
			return aggregateDelta{}, err
		}

		balance := account.Balance.Add(diff)
		if balance.IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: %s needed, %s available in %s", ErrInsufficientAccountBalance, diff.Neg(), account.Balance, account.Name)
		}

		delta := aggregateDelta{totalBalance: diff}

		if transaction.CategoryID == nil {
			if l.unassignedFunds.Add(diff).IsNegative() {
				return aggregateDelta{}, fmt.Errorf("%w: %s needed, %s available", ErrInsufficientUnassignedFunds, diff.Neg(), l.unassignedFunds)
			}
			delta.unassigned = diff
		} else {
			var category models.Category
			if err := tx.First(&category, "id = ?", transaction.CategoryID).Error; err != nil {
				return aggregateDelta{}, err
			}
			err := tx.Model(&category).Update("value", category.Value.Add(diff)).Error
			if err != nil {
				return aggregateDelta{}, err
			}
		}

		if err := tx.Model(&account).Update("balance", balance).Error; err != nil {
			return aggregateDelta{}, err
		}
		if err := tx.Model(&transaction).Update("amount", amount).Error; err != nil {
			return aggregateDelta{}, err
		}

		return delta, nil
	})
}

// SetTransactionPayee updates the payee. No balance effect.
func (l *Ledger) SetTransactionPayee(uid uint64, payee string) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		if slices.Contains(reservedPayees, strings.TrimSpace(payee)) {
			return aggregateDelta{}, ErrPayeeReserved
		}

		var transaction models.Transaction
		if err := tx.First(&transaction, "uid = ?", uid).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{}, tx.Model(&transaction).Update("payee", strings.TrimSpace(payee)).Error
	})
}

// SetTransactionDate updates the date. No balance effect.
func (l *Ledger) SetTransactionDate(uid uint64, date time.Time) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var transaction models.Transaction
		if err := tx.First(&transaction, "uid = ?", uid).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{}, tx.Model(&transaction).Update("date", date.In(time.UTC)).Error
	})
}

// SetTransactionMemo updates the memo. No balance effect.
func (l *Ledger) SetTransactionMemo(uid uint64, memo string) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var transaction models.Transaction
		if err := tx.First(&transaction, "uid = ?", uid).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{}, tx.Model(&transaction).Update("memo", strings.TrimSpace(memo)).Error
	})
}

// DeleteTransaction reverses the transaction's full effect and removes the
// row.
//
// The reversal is blocked when it would drive the account negative (income
// that has since been spent) or the unassigned funds pool negative (income
// without a category whose money has since been assigned elsewhere).
func (l *Ledger) DeleteTransaction(uid uint64) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var transaction models.Transaction
		if err := tx.First(&transaction, "uid = ?", uid).Error; err != nil {
			return aggregateDelta{}, err
		}

		var account models.Account
		if err := tx.First(&account, "id = ?", transaction.AccountID).Error; err != nil {
			return aggregateDelta{}, err
		}

		balance := account.Balance.Sub(transaction.Amount)
		if balance.IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: %s only holds %s", ErrReversalUnderflowsAccount, account.Name, account.Balance)
		}

		delta := aggregateDelta{totalBalance: transaction.Amount.Neg()}

		if transaction.CategoryID == nil {
			if l.unassignedFunds.Sub(transaction.Amount).IsNegative() {
				return aggregateDelta{}, fmt.Errorf("%w: %s needed, %s available", ErrReversalUnderflowsUnassigned, transaction.Amount, l.unassignedFunds)
			}
			delta.unassigned = transaction.Amount.Neg()
		} else {
			var category models.Category
			if err := tx.First(&category, "id = ?", transaction.CategoryID).Error; err != nil {
				return aggregateDelta{}, err
			}
			err := tx.Model(&category).Update("value", category.Value.Sub(transaction.Amount)).Error
			if err != nil {
				return aggregateDelta{}, err
			}
		}

		if err := tx.Model(&account).Update("balance", balance).Error; err != nil {
			return aggregateDelta{}, err
		}
		if err := tx.Delete(&transaction).Error; err != nil {
			return aggregateDelta{}, err
		}

		return delta, nil
	})
}
