package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"expensetracker/internal/cli"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/shell"
)

func main() {
	os.Exit(run())
}

// run owns the record store for the life of the process; the deferred
// cleanup runs on quit, end of input and shutdown signals alike.
func run() int {
	// Load .env file for local development
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := cli.SetupLogger(cfg)
	logger.Info("Starting expense tracker",
		applog.FieldBackend, cfg.DataBackend,
		applog.FieldDBPath, cfg.DBPath,
		applog.FieldOperation, applog.OpStartup)

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	res, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: could not open database:", err)
		return 1
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Failed to close record store", applog.FieldError, err)
		}
	}()

	svc := services.NewExpenseService(res.Store, services.Options{
		AmountPolicy: core.AmountPolicy(cfg.AmountPolicy),
		Categories:   cfg.Categories,
	})

	sh := shell.New(svc, os.Stdin, os.Stdout, shell.Options{
		ConfirmDelete: cfg.ConfirmDelete,
		Logger:        logger,
	})

	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Shell stopped", applog.FieldError, err)
		if errors.Is(err, core.ErrStorageUnavailable) {
			fmt.Fprintln(os.Stderr, "Error: could not open database:", err)
		}
		return 1
	}

	logger.Info("Expense tracker stopped", applog.FieldOperation, applog.OpShutdown)
	return 0
}
