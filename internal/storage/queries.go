package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Expense mirrors a row of the expenses table. Columns are nullable because
// data files written by older versions never declared NOT NULL.
type Expense struct {
	ID          int64
	Date        sql.NullString
	Category    sql.NullString
	Amount      sql.NullFloat64
	Description sql.NullString
}

const createExpense = `-- name: CreateExpense :one
INSERT INTO expenses (date, category, amount, description)
VALUES (?, ?, ?, ?)
RETURNING id
`

type CreateExpenseParams struct {
	Date        string
	Category    string
	Amount      float64
	Description string
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createExpense,
		arg.Date,
		arg.Category,
		arg.Amount,
		arg.Description,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

// Older versions bound the amount as typed text, so an empty or non-numeric
// amount is kept as TEXT in the REAL column. CAST reads those as 0.
const listExpenses = `-- name: ListExpenses :many
SELECT id, date, category, CAST(amount AS REAL) AS amount, description FROM expenses
`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.Category,
			&i.Amount,
			&i.Description,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteExpense = `-- name: DeleteExpense :execrows
DELETE FROM expenses WHERE id = ?
`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const quickCheck = `-- name: QuickCheck :one
PRAGMA quick_check
`

func (q *Queries) QuickCheck(ctx context.Context) (string, error) {
	row := q.db.QueryRowContext(ctx, quickCheck)
	var result string
	err := row.Scan(&result)
	return result, err
}
