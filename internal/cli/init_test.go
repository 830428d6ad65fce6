package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"expensetracker/internal/config"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

func discardLogger() *applog.Logger {
	var buf bytes.Buffer
	return applog.New(applog.Config{Output: &buf})
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("EXPENSE_TEST_FROM_DOTENV=loaded\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("EXPENSE_TEST_FROM_DOTENV", "")
	os.Unsetenv("EXPENSE_TEST_FROM_DOTENV")

	LoadEnvFile(path)
	if got := os.Getenv("EXPENSE_TEST_FROM_DOTENV"); got != "loaded" {
		t.Fatalf("expected value from .env, got %q", got)
	}

	// Missing files are ignored.
	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("AMOUNT_POLICY", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("expected memory backend, got %q", cfg.DataBackend)
	}

	t.Setenv("AMOUNT_POLICY", "whatever")
	if _, err := LoadAndValidateConfig(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestInitBackend(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "expense.db")

	res, err := InitBackend(ctx, discardLogger(), cfg)
	if err != nil {
		t.Fatalf("init backend: %v", err)
	}
	if err := res.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg.DBPath = filepath.Join(blocker, "expense.db")
	if _, err := InitBackend(ctx, discardLogger(), cfg); !errors.Is(err, core.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestSignalContextCancel(t *testing.T) {
	ctx, cancel := SignalContext(context.Background(), discardLogger())
	cancel()
	<-ctx.Done()
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", ctx.Err())
	}
}
