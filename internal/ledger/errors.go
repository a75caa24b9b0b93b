package ledger

import (
	"errors"
	"fmt"

	"github.com/nkyriakou/glassfab-oms/internal/validation"
)

// Referential lookup failures.
var (
	ErrUnknownOrder    = errors.New("unknown_order")
	ErrUnknownSupplier = errors.New("unknown_supplier")
	ErrUnknownDelivery = errors.New("unknown_delivery")
)

// Enumeration violations.
var (
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrUnknownProductType = errors.New("unknown_product_type")
	ErrInvalidStatus      = errors.New("invalid_status")
)

// ValidationError carries per-field violations for bad input shape/range.
// It is surfaced to the caller immediately and never partially applied.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation_failed: %v", map[string]string(e.Violations))
}

// AsValidation returns the violations when err is a ValidationError.
func AsValidation(err error) (validation.Violations, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations, true
	}
	return nil, false
}

// storageErr wraps underlying persistence failures so callers can tell a
// constraint/IO problem apart from domain errors. Never swallowed.
func storageErr(op string, err error) error {
	return fmt.Errorf("storage: %s: %w", op, err)
}
