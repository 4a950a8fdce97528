package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"greencart/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const selectColumns = `id::text, user_id::text, items, amount::text, address_id, payment_type, is_paid, provider_order_id, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if len(o.Items) == 0 {
		return nil, errors.New("no items in order")
	}
	const q = `
INSERT INTO orders (user_id, items, amount, address_id, payment_type, is_paid, provider_order_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + selectColumns
	created, err := scanOrder(r.pool.QueryRow(ctx, q,
		o.UserID,
		o.Items,
		o.Amount.String(),
		o.AddressID,
		string(o.PaymentType),
		o.IsPaid,
		o.ProviderOrderID,
	))
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, fmt.Errorf("insert order: %w", err)
	}
	r.logger.Printf("order repo: created id=%s user_id=%s amount=%s type=%s", created.ID, created.UserID, created.Amount, created.PaymentType)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `SELECT ` + selectColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) SetProviderOrderID(ctx context.Context, id, providerOrderID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET provider_order_id = $1, updated_at = now()
WHERE id = $2
`, providerOrderID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListPlaced(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `SELECT ` + selectColumns + ` FROM orders WHERE (payment_type = 'COD' OR is_paid)`
	var args []interface{}
	if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			return nil, nil
		}
		q += ` AND user_id = $1`
		args = append(args, userID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%q error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id, userID string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := lockUnpaid(ctx, tx, id); err != nil {
		return nil, err
	}

	updated, err := scanOrder(tx.QueryRow(ctx, `
UPDATE orders
SET is_paid = TRUE, updated_at = now()
WHERE id = $1 AND is_paid = FALSE
RETURNING `+selectColumns, id))
	if err != nil {
		return nil, fmt.Errorf("set paid: %w", err)
	}

	if _, err := uuid.Parse(userID); err == nil {
		if _, err := tx.Exec(ctx, `UPDATE users SET cart_items = '{}'::jsonb WHERE id = $1`, userID); err != nil {
			return nil, fmt.Errorf("clear cart: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: paid id=%s user_id=%s", id, userID)
	return updated, nil
}

func (r *postgresRepo) DeleteUnpaid(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockUnpaid(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND is_paid = FALSE`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: deleted unpaid id=%s", id)
	return nil
}

// lockUnpaid takes a row lock so that concurrent verifications of one order serialize.
func lockUnpaid(ctx context.Context, tx pgx.Tx, id string) error {
	var paid bool
	err := tx.QueryRow(ctx, `SELECT is_paid FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if paid {
		return domain.ErrAlreadyPaid
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o           domain.Order
		amount      string
		paymentType string
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Items,
		&amount,
		&o.AddressID,
		&paymentType,
		&o.IsPaid,
		&o.ProviderOrderID,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if o.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("order %s: amount: %w", o.ID, err)
	}
	if o.PaymentType, err = domain.ToPaymentType(paymentType); err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}
	return &o, nil
}
