package ledger

import "errors"

// Validation errors. The input was wrong, the caller can fix it and retry.
// The ledger is never touched.
var (
	ErrNameEmpty        = errors.New("the name must not be empty")
	ErrBalanceNegative  = errors.New("the starting balance must not be negative")
	ErrValueOutOfRange  = errors.New("the value is outside of the allowed range")
	ErrCategoryRequired = errors.New("an expense transaction must have a category")
	ErrNotConfirmed     = errors.New("the deletion was not confirmed")
	ErrPayeeReserved    = errors.New("this payee is reserved for account opening transactions")
)

// Invariant guards. They block one specific mutation and leave the ledger
// untouched, the message is reported to the user verbatim.
var (
	ErrInsufficientAccountBalance   = errors.New("the account balance cannot cover this transaction")
	ErrInsufficientUnassignedFunds  = errors.New("the unassigned funds cannot cover this amount")
	ErrReferencedByTransactions     = errors.New("this resource is still referenced by transactions")
	ErrReversalUnderflowsAccount    = errors.New("reversing this transaction would make the account balance negative")
	ErrReversalUnderflowsUnassigned = errors.New("reversing this transaction would make the unassigned funds negative")
)
