// Package core provides the expense record type and the input policies
// applied before a record reaches the store.
//
// This file contains amount parsing and formatting.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPolicy controls how strictly typed amounts are checked.
type AmountPolicy string

const (
	// AmountPolicyStrict accepts only positive numeric amounts.
	AmountPolicyStrict AmountPolicy = "strict"
	// AmountPolicyLenient accepts any numeric amount, including zero and negatives.
	AmountPolicyLenient AmountPolicy = "lenient"
)

// IsValid reports whether p is a known policy.
func (p AmountPolicy) IsValid() bool {
	switch p {
	case AmountPolicyStrict, AmountPolicyLenient:
		return true
	default:
		return false
	}
}

// ParseAmount converts user text to an amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Under the strict policy empty, non-numeric, zero and negative values
// return ErrInvalidAmount. The lenient policy still requires a number.
// Values that do not fit in a float64 are rejected under both policies.
//
// Examples:
//
//	ParseAmount("12.50", AmountPolicyStrict)  -> 12.5, nil
//	ParseAmount("12,50", AmountPolicyStrict)  -> 12.5, nil
//	ParseAmount("-3", AmountPolicyStrict)     -> 0, ErrInvalidAmount
//	ParseAmount("-3", AmountPolicyLenient)    -> -3, nil
func ParseAmount(s string, policy AmountPolicy) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	if policy != AmountPolicyLenient && !d.IsPositive() {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}

	f := d.InexactFloat64()
	if !IsFinite(f) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}

	return f, nil
}

// IsFinite reports whether amount is neither infinite nor NaN. The store
// accepts any float64, so readers must not assume stored amounts are finite.
func IsFinite(amount float64) bool {
	return !math.IsInf(amount, 0) && !math.IsNaN(amount)
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(amount float64) string {
	if !IsFinite(amount) {
		return strconv.FormatFloat(amount, 'f', 2, 64)
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}
