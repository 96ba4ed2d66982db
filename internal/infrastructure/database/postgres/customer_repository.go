package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/monitoring"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const backendName = "postgres"

const (
	createTableQuery = `
	CREATE TABLE IF NOT EXISTS customers (
		position               INTEGER NOT NULL PRIMARY KEY,
		customer_id            TEXT    NOT NULL,
		name                   TEXT    NOT NULL,
		monthly_income         NUMERIC NOT NULL,
		monthly_expenses       NUMERIC NOT NULL,
		credit_score           INTEGER NOT NULL,
		outstanding_loans      NUMERIC NOT NULL,
		loan_repayment_history INTEGER[] NOT NULL,
		account_balance        NUMERIC NOT NULL,
		status                 TEXT    NOT NULL
	)`

	countQuery = `SELECT count(*) FROM customers`

	selectAllQuery = `
	SELECT customer_id, name, monthly_income::text, monthly_expenses::text, credit_score,
	       outstanding_loans::text, loan_repayment_history, account_balance::text, status
	FROM customers
	ORDER BY position`

	deleteAllQuery = `DELETE FROM customers`

	insertQuery = `
	INSERT INTO customers (position, customer_id, name, monthly_income, monthly_expenses, credit_score,
	                       outstanding_loans, loan_repayment_history, account_balance, status)
	VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7::numeric, $8, $9::numeric, $10)`
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

// CustomerRepository stores the collection as ordered rows. WriteAll replaces
// every row in one transaction, mirroring a whole-file overwrite.
type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

// Initialize ensures the table exists and seeds it when empty. Failures are
// logged and not returned.
func (r *CustomerRepository) Initialize(ctx context.Context) {
	if _, err := r.db.Exec(ctx, createTableQuery); err != nil {
		r.logger.ErrorContext(ctx, "Error creating customers table", slog.Any("error", err))
		return
	}

	var count int
	if err := r.db.QueryRow(ctx, countQuery).Scan(&count); err != nil {
		r.logger.ErrorContext(ctx, "Error counting customers", slog.Any("error", err))
		return
	}
	if count > 0 {
		r.logger.InfoContext(ctx, "Customers table already populated", slog.Int("count", count))
		return
	}

	if err := r.WriteAll(ctx, customer.SeedCustomers()); err != nil {
		r.logger.ErrorContext(ctx, "Error initializing data", slog.Any("error", err))
		return
	}
	r.logger.InfoContext(ctx, "Sample data initialized")
}

func (r *CustomerRepository) ReadAll(ctx context.Context) ([]*customer.Customer, error) {
	start := time.Now()
	customers, err := r.readAll(ctx)
	monitoring.RecordStoreOperation(backendName, "read_all", err, time.Since(start))
	if err != nil {
		r.logger.ErrorContext(ctx, "Error reading customers", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to read customer collection")
	}
	return customers, nil
}

func (r *CustomerRepository) readAll(ctx context.Context) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, selectAllQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*customer.Customer{}
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, cust)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	var income, expenses, outstanding, balance, status string
	var history []int
	err := row.Scan(
		&cust.CustomerID,
		&cust.Name,
		&income,
		&expenses,
		&cust.CreditScore,
		&outstanding,
		&history,
		&balance,
		&status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customer row: %w", err)
	}

	amounts := []struct {
		raw string
		dst *customer.Amount
	}{
		{income, &cust.MonthlyIncome},
		{expenses, &cust.MonthlyExpenses},
		{outstanding, &cust.OutstandingLoans},
		{balance, &cust.AccountBalance},
	}
	for _, a := range amounts {
		d, err := decimal.NewFromString(a.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for customer %s: %w", a.raw, cust.CustomerID, err)
		}
		a.dst.Decimal = d
	}

	cust.LoanRepaymentHistory = customer.RepaymentHistory(history)
	cust.Status = customer.Status(status)
	return &cust, nil
}

func (r *CustomerRepository) WriteAll(ctx context.Context, customers []*customer.Customer) error {
	start := time.Now()
	err := r.writeAll(ctx, customers)
	monitoring.RecordStoreOperation(backendName, "write_all", err, time.Since(start))
	if err != nil {
		r.logger.ErrorContext(ctx, "Error writing customers", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to write customer collection")
	}
	return nil
}

func (r *CustomerRepository) writeAll(ctx context.Context, customers []*customer.Customer) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
		}
	}()

	if _, err = tx.Exec(ctx, deleteAllQuery); err != nil {
		return fmt.Errorf("failed to clear customers: %w", err)
	}

	for i, c := range customers {
		if c == nil {
			continue
		}
		if _, err = tx.Exec(ctx, insertQuery, insertArgs(i, c)...); err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", c.CustomerID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertArgs(position int, c *customer.Customer) []any {
	history := []int(c.LoanRepaymentHistory)
	if history == nil {
		history = []int{}
	}
	return []any{
		position,
		c.CustomerID,
		c.Name,
		c.MonthlyIncome.String(),
		c.MonthlyExpenses.String(),
		c.CreditScore,
		c.OutstandingLoans.String(),
		history,
		c.AccountBalance.String(),
		string(c.Status),
	}
}
