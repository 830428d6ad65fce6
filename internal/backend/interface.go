package backend

import (
	"context"

	"expensetracker/internal/core"
)

// Store is the record store contract shared by every backend.
type Store interface {
	// Insert appends one record and returns its assigned id.
	Insert(ctx context.Context, date, category string, amount float64, description string) (int64, error)
	// ListAll returns every stored record in unspecified order.
	ListAll(ctx context.Context) ([]core.ExpenseRecord, error)
	// Delete removes the record with id and reports whether one existed.
	Delete(ctx context.Context, id int64) (bool, error)
	Close() error
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Store   Store
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
