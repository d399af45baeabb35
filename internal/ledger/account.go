package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Accounts returns all accounts, ordered by name.
func (l *Ledger) Accounts() ([]models.Account, error) {
	var accounts []models.Account
	err := l.db.Order("name ASC").Find(&accounts).Error
	return accounts, err
}

// Account returns a single account.
func (l *Ledger) Account(id uuid.UUID) (models.Account, error) {
	var account models.Account
	err := l.db.First(&account, "id = ?", id).Error
	return account, err
}

// CreateAccount creates an account with a non-negative starting balance.
//
// The starting balance is recorded as a synthetic income transaction with the
// reserved payee, so replaying all transactions of an account always yields
// its balance. The balance flows into the unassigned funds pool.
func (l *Ledger) CreateAccount(name string, startingBalance decimal.Decimal) (models.Account, error) {
	var account models.Account

	err := l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		if strings.TrimSpace(name) == "" {
			return aggregateDelta{}, ErrNameEmpty
		}

		if startingBalance.IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: %s", ErrBalanceNegative, startingBalance)
		}

		account = models.Account{Name: name, Balance: startingBalance}
		if err := tx.Create(&account).Error; err != nil {
			return aggregateDelta{}, err
		}

		opening := models.Transaction{
			AccountID: account.ID,
			Amount:    startingBalance,
			Payee:     models.StartingBalancePayee,
			Date:      time.Now().In(time.UTC),
		}
		if err := insertTransaction(tx, &opening); err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{unassigned: startingBalance, totalBalance: startingBalance}, nil
	})

	return account, err
}

// RenameAccount renames an account. Transactions reference accounts by ID,
// so no further writes are needed and the rename is a single atomic update.
func (l *Ledger) RenameAccount(id uuid.UUID, newName string) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		if strings.TrimSpace(newName) == "" {
			return aggregateDelta{}, ErrNameEmpty
		}

		var account models.Account
		if err := tx.First(&account, "id = ?", id).Error; err != nil {
			return aggregateDelta{}, err
		}

		if account.Name == strings.TrimSpace(newName) {
			return aggregateDelta{}, nil
		}

		if err := tx.Model(&account).Update("name", strings.TrimSpace(newName)).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{}, nil
	})
}

// DeleteAccount removes an account and absorbs its balance back into the
// unassigned funds pool.
//
// It fails when any transaction still references the account, and when
// removing the balance would drive the pool negative. Since the opening
// transaction references its account, it has to be deleted first.
func (l *Ledger) DeleteAccount(id uuid.UUID) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var account models.Account
		if err := tx.First(&account, "id = ?", id).Error; err != nil {
			return aggregateDelta{}, err
		}

		var count int64
		err := tx.Model(&models.Transaction{}).Where("account_id = ?", id).Count(&count).Error
		if err != nil {
			return aggregateDelta{}, err
		}
		if count > 0 {
			return aggregateDelta{}, fmt.Errorf("%w: %d transactions reference this account", ErrReferencedByTransactions, count)
		}

		if l.unassignedFunds.Sub(account.Balance).IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: %s needed, %s available", ErrInsufficientUnassignedFunds, account.Balance, l.unassignedFunds)
		}

		if err := tx.Delete(&account).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{
			unassigned:   account.Balance.Neg(),
			totalBalance: account.Balance.Neg(),
		}, nil
	})
}
