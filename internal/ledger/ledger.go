package ledger

import (
	"fmt"
	"sync"

	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger wraps one open budget database and keeps the two derived aggregates
// in sync with it.
//
// Every operation preserves the balance equation
//
//	sum(account balances) == sum(category values) + unassigned funds
//
// with unassigned funds and every account balance never negative.
//
// The aggregates are explicit state on the Ledger, not package variables, so
// a process can open several budgets over its lifetime without them bleeding
// into each other.
type Ledger struct {
	mu sync.Mutex
	db *gorm.DB

	unassignedFunds     decimal.Decimal
	totalAccountBalance decimal.Decimal
}

// New builds a Ledger on top of an open budget database and computes the
// aggregates from scratch by reading all accounts and categories once.
func New(db *gorm.DB) (*Ledger, error) {
	l := &Ledger{db: db}

	total, err := sumColumn(db, "accounts", "balance")
	if err != nil {
		return nil, err
	}

	assigned, err := sumColumn(db, "categories", "value")
	if err != nil {
		return nil, err
	}

	l.totalAccountBalance = total
	l.unassignedFunds = total.Sub(assigned)
	return l, nil
}

func sumColumn(db *gorm.DB, table, column string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table(table).
		Select("SUM(" + column + ")").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s.%s failed: %w", table, column, err)
	}

	return sum.Decimal, nil
}

// UnassignedFunds returns the money held in accounts that is not assigned to
// any category.
func (l *Ledger) UnassignedFunds() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unassignedFunds
}

// TotalAccountBalance returns the sum of all account balances.
func (l *Ledger) TotalAccountBalance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalAccountBalance
}

// aggregateDelta is the change a mutation makes to the derived aggregates.
type aggregateDelta struct {
	unassigned   decimal.Decimal
	totalBalance decimal.Decimal
}

// mutate runs fn inside one storage transaction and applies the aggregate
// delta it returns only after the transaction has committed. When fn fails,
// no row write and no aggregate change is observable.
//
// The mutex serializes all operations so that the synchronous single-writer
// model holds even when callers run on concurrent goroutines, e.g. HTTP
// handlers.
func (l *Ledger) mutate(fn func(tx *gorm.DB) (aggregateDelta, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var delta aggregateDelta
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var err error
		delta, err = fn(tx)
		return err
	})
	if err != nil {
		// Errors from Begin and Commit bypass the statement callbacks, so
		// they are mapped here.
		if err.Error() == "sql: database is closed" {
			log.Error().Msgf("%T: %v", err, err.Error())
			return models.ErrGeneral
		}

		return err
	}

	l.unassignedFunds = l.unassignedFunds.Add(delta.unassigned)
	l.totalAccountBalance = l.totalAccountBalance.Add(delta.totalBalance)
	return nil
}
