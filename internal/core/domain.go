package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the on-disk date format: ISO-8601 calendar date, no timezone.
const DateLayout = "2006-01-02"

type (
	// ExpenseRecord is a single stored expense. ID is assigned by the store.
	ExpenseRecord struct {
		ID          int64
		Date        string
		Category    string
		Amount      float64
		Description string
	}

	// ExpenseForm holds raw field values as the user typed them.
	ExpenseForm struct {
		Date        string
		Category    string
		Amount      string
		Description string
	}
)

var (
	// Store errors
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteFailed        = errors.New("write failed")

	// Caller-side errors
	ErrInvalidSelection = errors.New("no expense selected")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
)

// DefaultCategories is the closed set offered at entry time. The store itself
// accepts any category text.
var DefaultCategories = []string{
	"Food",
	"Transportation",
	"Rent",
	"Shopping",
	"Entertainment",
	"Bills",
	"Others",
}

// ParseDate validates s as YYYY-MM-DD. An empty string means today.
func ParseDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Format(DateLayout), nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

// ResolveCategory maps user input onto one of the allowed categories.
// Input may be a name (case-insensitive) or a 1-based index into the list.
// Empty input selects the first category.
func ResolveCategory(input string, allowed []string) (string, error) {
	if len(allowed) == 0 {
		return "", ErrInvalidCategory
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return allowed[0], nil
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(allowed) {
			return "", ErrInvalidCategory
		}
		return allowed[n-1], nil
	}
	for _, c := range allowed {
		if strings.EqualFold(c, input) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}
