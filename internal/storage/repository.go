package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the file-backed record store. Every method runs to
// completion on the calling goroutine; the process is expected to own the
// database file exclusively.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	path    string
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// makes sure the expenses table exists. Failures wrap core.ErrStorageUnavailable.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %w", core.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %w", core.ErrStorageUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %w", core.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
		path:    dbPath,
	}

	if err := repo.checkIntegrity(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) checkIntegrity(ctx context.Context) error {
	result, err := r.queries.QuickCheck(ctx)
	if err != nil {
		return fmt.Errorf("%w: integrity check: %w", core.ErrStorageUnavailable, err)
	}
	if result != "ok" {
		return fmt.Errorf("%w: integrity check failed: %s", core.ErrStorageUnavailable, result)
	}
	return nil
}

// Path returns the database file location.
func (r *SQLiteRepository) Path() string {
	return r.path
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert stores one record as given and returns its new id. No field is
// validated here; see core.ParseAmount and core.ParseDate for input policy.
func (r *SQLiteRepository) Insert(ctx context.Context, date, category string, amount float64, description string) (int64, error) {
	id, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: create expense: %w", core.ErrWriteFailed, err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite", applog.NewFields().
		WithComponent(applog.ComponentStorage).
		WithOperation(applog.OpCreate).
		WithExpense(id, date, category, amount).
		ToSlice()...)

	return id, nil
}

// ListAll returns every stored record. Order is unspecified.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses: %w", core.ErrStorageUnavailable, err)
	}

	records := make([]core.ExpenseRecord, len(rows))
	for i, e := range rows {
		records[i] = core.ExpenseRecord{
			ID:          e.ID,
			Date:        e.Date.String,
			Category:    e.Category.String,
			Amount:      e.Amount.Float64,
			Description: e.Description.String,
		}
	}

	slog.DebugContext(ctx, "Expenses loaded from SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpList,
		applog.FieldCount, len(records))

	return records, nil
}

// Delete removes the record with the given id and reports whether one was
// removed. An unknown id is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: delete expense: %w", core.ErrWriteFailed, err)
	}

	if n == 0 {
		slog.DebugContext(ctx, "Delete matched no expense",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldExpenseID, id)
		return false, nil
	}

	slog.InfoContext(ctx, "Expense deleted from SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	return true, nil
}
