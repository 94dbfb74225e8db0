package stock

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for machine-distinguishable failure kinds. Handlers map
// these to HTTP statuses; callers use errors.Is / errors.As.
var (
	// ErrInvalidUnit means a display unit incompatible with the product's
	// tracked unit family (e.g. "sack" for a count-tracked product).
	ErrInvalidUnit = errors.New("display unit not valid for product")

	// ErrBatchOverdraw means the allocator asked a batch for more than it
	// holds. That is an internal invariant breach, not a user condition:
	// the whole transaction aborts with an internal classification.
	ErrBatchOverdraw = errors.New("batch overdraw: consume exceeds remaining quantity")

	// ErrLockTimeout means the per-product lock could not be acquired
	// within the wait budget. Retryable by the caller.
	ErrLockTimeout = errors.New("timed out waiting for product stock lock")
)

// ValidationError reports malformed or out-of-range input. It is raised
// before any persistence is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientStockError means the requested quantity exceeds total
// availability across all batches. Quantities are in the display unit the
// request was denominated in, so the shortfall can be shown as entered.
type InsufficientStockError struct {
	ProductID uint
	Unit      DisplayUnit
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %s %s, available %s %s (short %s)",
		e.ProductID, e.Requested, e.Unit, e.Available, e.Unit, e.Shortfall())
}

// Shortfall returns requested minus available, in display units.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// PersistenceError wraps a storage failure during the atomic commit. The
// transaction is guaranteed rolled back; retryable.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "stock transaction not persisted: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
