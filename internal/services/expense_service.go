package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"expensetracker/internal/backend"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

// SortOrder is the order in which records are presented.
type SortOrder string

const (
	// NewestByID lists the most recently added record first.
	NewestByID SortOrder = "id"
	// NewestByDate lists the latest expense date first, ties broken by id.
	NewestByDate SortOrder = "date"
)

// Options configures input policy for new expenses.
type Options struct {
	AmountPolicy core.AmountPolicy
	Categories   []string
	// Now defaults to time.Now and is used when the date field is left empty.
	Now func() time.Time
}

// ExpenseService applies input policy and view ordering on top of a record store.
type ExpenseService struct {
	store  backend.Store
	policy core.AmountPolicy
	cats   []string
	now    func() time.Time
}

func NewExpenseService(store backend.Store, opts Options) *ExpenseService {
	if !opts.AmountPolicy.IsValid() {
		opts.AmountPolicy = core.AmountPolicyStrict
	}
	if len(opts.Categories) == 0 {
		opts.Categories = core.DefaultCategories
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ExpenseService{
		store:  store,
		policy: opts.AmountPolicy,
		cats:   append([]string(nil), opts.Categories...),
		now:    opts.Now,
	}
}

// Categories returns the categories offered at entry time.
func (s *ExpenseService) Categories() []string {
	return append([]string(nil), s.cats...)
}

// Prepare validates a form and returns the record it would store, without an id.
func (s *ExpenseService) Prepare(form core.ExpenseForm) (core.ExpenseRecord, error) {
	date, err := core.ParseDate(form.Date, s.now())
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	category, err := core.ResolveCategory(form.Category, s.cats)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("%w: %q", err, form.Category)
	}
	amount, err := core.ParseAmount(form.Amount, s.policy)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	return core.ExpenseRecord{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: form.Description,
	}, nil
}

// AddExpense validates the form and stores it, returning the new id.
func (s *ExpenseService) AddExpense(ctx context.Context, form core.ExpenseForm) (int64, error) {
	rec, err := s.Prepare(form)
	if err != nil {
		fields := applog.NewFields().
			WithComponent(applog.ComponentExpense).
			WithOperation(applog.OpValidate).
			WithError(err)
		fields[applog.FieldErrorType] = applog.ErrorTypeValidation
		slog.DebugContext(ctx, "Rejected expense form", fields.ToSlice()...)
		return 0, err
	}

	id, err := s.store.Insert(ctx, rec.Date, rec.Category, rec.Amount, rec.Description)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}
	return id, nil
}

// DeleteExpense removes a record. id must come from a displayed record;
// a non-positive id is rejected as ErrInvalidSelection before the store is called.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, core.ErrInvalidSelection
	}
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	return removed, nil
}

// ListExpenses returns every record sorted for display.
func (s *ExpenseService) ListExpenses(ctx context.Context, order SortOrder) ([]core.ExpenseRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	switch order {
	case NewestByDate:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Date != records[j].Date {
				return records[i].Date > records[j].Date
			}
			return records[i].ID > records[j].ID
		})
	default:
		sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	}

	return records, nil
}

// Close releases the underlying store.
func (s *ExpenseService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close expense service: %w", err)
	}
	return nil
}

// IsInputError reports whether err was caused by user input rather than storage.
func IsInputError(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidCategory) ||
		errors.Is(err, core.ErrInvalidSelection)
}
