package notification

import "github.com/shopspring/decimal"

// ResolveThreshold returns the effective high value threshold: override when
// it is set and strictly positive, configured otherwise. Non-positive
// overrides are ignored rather than rejected.
func ResolveThreshold(override decimal.NullDecimal, configured decimal.Decimal) decimal.Decimal {
	if override.Valid && override.Decimal.IsPositive() {
		return override.Decimal
	}
	return configured
}
