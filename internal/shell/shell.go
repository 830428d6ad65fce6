// Package shell is the terminal front end for the expense log: it collects
// form input, forwards add and delete actions to the expense service, and
// re-renders the table after every change.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
)

const prompt = "expenses> "

// Service is the subset of services.ExpenseService the shell needs.
type Service interface {
	Categories() []string
	AddExpense(ctx context.Context, form core.ExpenseForm) (int64, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
	ListExpenses(ctx context.Context, order services.SortOrder) ([]core.ExpenseRecord, error)
}

type Options struct {
	// ConfirmDelete asks for a y/N answer before removing a record.
	ConfirmDelete bool
	Logger        *applog.Logger
}

type Shell struct {
	svc     Service
	in      io.Reader
	out     io.Writer
	confirm bool
	logger  *applog.Logger

	lines <-chan string
	done  chan struct{}

	order services.SortOrder
	view  []core.ExpenseRecord
}

func New(svc Service, in io.Reader, out io.Writer, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.Config{Output: io.Discard})
	}
	return &Shell{
		svc:     svc,
		in:      in,
		out:     out,
		confirm: opts.ConfirmDelete,
		logger:  logger.WithComponent(applog.ComponentShell),
		order:   services.NewestByID,
	}
}

// Run renders the table and processes commands until quit, end of input or
// ctx is cancelled. A store that cannot be read at startup is returned as an
// error and nothing is rendered.
func (s *Shell) Run(ctx context.Context) error {
	records, err := s.svc.ListExpenses(ctx, s.order)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	s.view = records

	s.done = make(chan struct{})
	defer close(s.done)
	s.lines = s.readLines()

	s.printf("Expense Tracker. Type 'help' for commands.\n")
	s.render()

	for {
		s.printf("%s", prompt)
		line, ok := s.readLine(ctx)
		if !ok {
			s.printf("\n")
			return ctx.Err()
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]
		rest := strings.TrimSpace(line[len(fields[0]):])

		switch cmd {
		case "help", "?":
			s.help()
		case "list", "ls":
			s.refresh(ctx)
		case "add", "a":
			s.add(ctx, rest)
		case "delete", "del", "rm":
			s.delete(ctx, args)
		case "sort":
			s.sort(ctx, args)
		case "total", "totals":
			s.total()
		case "categories", "cats":
			s.categories()
		case "quit", "exit", "q":
			return nil
		default:
			s.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

// readLines feeds input lines to a channel so a blocked read never holds up
// shutdown. The channel is closed at end of input.
func (s *Shell) readLines() <-chan string {
	ch := make(chan string)
	done := s.done
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

func (s *Shell) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-s.lines:
		return strings.TrimSpace(line), ok
	}
}

func (s *Shell) ask(ctx context.Context, question string) (string, bool) {
	s.printf("%s", question)
	return s.readLine(ctx)
}

// add takes the text after the command word. The description is everything
// after the third field, kept as typed.
func (s *Shell) add(ctx context.Context, rest string) {
	var form core.ExpenseForm

	args, description := cutFields(rest, 3)
	switch {
	case len(args) == 3:
		form = core.ExpenseForm{
			Date:        args[0],
			Category:    args[1],
			Amount:      args[2],
			Description: description,
		}
	case len(args) == 0:
		var ok bool
		if form, ok = s.fillForm(ctx); !ok {
			s.printf("\nAdd cancelled.\n")
			return
		}
	default:
		s.printf("Usage: add [<date> <category> <amount> [description...]]\n")
		return
	}

	id, err := s.svc.AddExpense(ctx, form)
	if err != nil {
		s.reportError("Could not add expense", err)
		return
	}

	s.printf("Added expense %d.\n", id)
	s.refresh(ctx)
}

// fillForm prompts for each field; an empty answer keeps the default.
func (s *Shell) fillForm(ctx context.Context) (core.ExpenseForm, bool) {
	var form core.ExpenseForm
	var ok bool

	if form.Date, ok = s.ask(ctx, "Date (YYYY-MM-DD) [today]: "); !ok {
		return form, false
	}

	cats := s.svc.Categories()
	s.printCategories(cats)
	if form.Category, ok = s.ask(ctx, fmt.Sprintf("Category [%s]: ", cats[0])); !ok {
		return form, false
	}

	if form.Amount, ok = s.ask(ctx, "Amount: "); !ok {
		return form, false
	}

	if form.Description, ok = s.ask(ctx, "Description: "); !ok {
		return form, false
	}

	return form, true
}

func (s *Shell) delete(ctx context.Context, args []string) {
	id, err := s.selection(args)
	if err != nil {
		s.reportError("No Expense Chosen", err)
		return
	}

	if s.confirm {
		answer, ok := s.ask(ctx, fmt.Sprintf("Are you sure? Delete expense %d [y/N]: ", id))
		if !ok {
			s.printf("\n")
			return
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			s.printf("Delete cancelled.\n")
			return
		}
	}

	removed, err := s.svc.DeleteExpense(ctx, id)
	if err != nil {
		s.reportError("Could not delete expense", err)
		return
	}

	if removed {
		s.printf("Deleted expense %d.\n", id)
	} else {
		s.printf("Expense %d no longer exists.\n", id)
	}
	s.refresh(ctx)
}

// cutFields splits off up to n space-separated fields from s and returns them
// with the untouched remainder.
func cutFields(s string, n int) ([]string, string) {
	var fields []string
	for len(fields) < n {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			break
		}
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			end = len(s)
		}
		fields = append(fields, s[:end])
		s = s[end:]
	}
	return fields, strings.TrimSpace(s)
}

// selection resolves the delete target. Only ids shown in the current table
// can be selected.
func (s *Shell) selection(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, core.ErrInvalidSelection
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, core.ErrInvalidSelection
	}
	for _, r := range s.view {
		if r.ID == id {
			return id, nil
		}
	}
	s.logger.Debug("Selection not in table", applog.FieldExpenseID, id, applog.FieldErrorType, applog.ErrorTypeSelection)
	return 0, core.ErrInvalidSelection
}

func (s *Shell) sort(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.printf("Usage: sort id|date\n")
		return
	}
	switch order := services.SortOrder(strings.ToLower(args[0])); order {
	case services.NewestByID, services.NewestByDate:
		s.order = order
		s.refresh(ctx)
	default:
		s.printf("Usage: sort id|date\n")
	}
}

func (s *Shell) total() {
	sum := core.Summarize(s.view)
	s.renderSummary(sum)
}

func (s *Shell) categories() {
	s.printCategories(s.svc.Categories())
}

// refresh reloads the table. On failure the previous table is kept.
func (s *Shell) refresh(ctx context.Context) {
	records, err := s.svc.ListExpenses(ctx, s.order)
	if err != nil {
		s.reportError("Could not load expenses", err)
		return
	}
	s.view = records
	s.render()
}

func (s *Shell) reportError(title string, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidSelection):
		s.printf("%s: Please choose the expense to delete! Use 'delete <id>' with an id from the table.\n", title)
	case services.IsInputError(err):
		s.printf("%s: %v\n", title, err)
	case errors.Is(err, core.ErrWriteFailed), errors.Is(err, core.ErrStorageUnavailable):
		s.logger.Warn("Store operation failed", applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeDatabase)
		s.printf("%s: %v. The table was not changed.\n", title, err)
	default:
		s.logger.Error("Unexpected error", applog.FieldError, err)
		s.printf("%s: %v\n", title, err)
	}
}

func (s *Shell) help() {
	s.printf(`Commands:
  add                                   add an expense using a form
  add <date> <category> <amount> [text] add an expense in one line
  delete <id>                           delete the expense with that id
  list                                  reload the table
  sort id|date                          order the table, newest first
  total                                 totals per category
  categories                            list categories
  quit                                  leave
`)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
