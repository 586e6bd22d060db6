package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/saasbilling/pkg/pg"
)

// DB is satisfied by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore is the Postgres Store. Statements run individually without a
// surrounding transaction; a failure midway leaves earlier writes in place.
type PGStore struct {
	db DB
}

func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db}
}

const (
	findCustomerSQL = `
SELECT id, user_id, stripe_customer_id, COALESCE(email, ''), created_at
FROM stripe_customers
WHERE user_id = $1 AND stripe_customer_id = $2`

	createCustomerSQL = `
INSERT INTO stripe_customers (id, user_id, stripe_customer_id, email)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING created_at`

	insertSubscriptionSQL = `
INSERT INTO stripe_subscriptions (
	id, customer_id, price_id, status, current_period_start, current_period_end,
	cancel_at_period_end, canceled_at, trial_start, trial_end, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	upsertSubscriptionSQL = insertSubscriptionSQL + `
ON CONFLICT (id) DO UPDATE SET
	customer_id = EXCLUDED.customer_id,
	price_id = EXCLUDED.price_id,
	status = EXCLUDED.status,
	current_period_start = EXCLUDED.current_period_start,
	current_period_end = EXCLUDED.current_period_end,
	cancel_at_period_end = EXCLUDED.cancel_at_period_end,
	canceled_at = EXCLUDED.canceled_at,
	trial_start = EXCLUDED.trial_start,
	trial_end = EXCLUDED.trial_end,
	updated_at = EXCLUDED.updated_at`

	cancelSubscriptionSQL = `
UPDATE stripe_subscriptions
SET status = 'canceled', canceled_at = $2, updated_at = $3
WHERE id = $1`

	clearTrialSQL = `UPDATE profiles SET trial_ends_at = NULL WHERE id = $1`
)

func (s *PGStore) FindCustomer(ctx context.Context, userID uuid.UUID, stripeCustomerID string) (Customer, error) {
	var c Customer
	err := s.db.QueryRow(ctx, findCustomerSQL, userID, stripeCustomerID).
		Scan(&c.ID, &c.UserID, &c.StripeCustomerID, &c.Email, &c.CreatedAt)
	if pg.IsNotFoundError(err) {
		return Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return c, nil
}

func (s *PGStore) CreateCustomer(ctx context.Context, c Customer) (Customer, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := s.db.QueryRow(ctx, createCustomerSQL, c.ID, c.UserID, c.StripeCustomerID, c.Email).Scan(&c.CreatedAt); err != nil {
		return Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *PGStore) InsertSubscription(ctx context.Context, sub Subscription) error {
	_, err := s.db.Exec(ctx, insertSubscriptionSQL, subscriptionArgs(sub)...)
	switch {
	case pg.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s", ErrSubscriptionExists, sub.ID)
	case pg.IsForeignKeyViolationError(err):
		return ErrCustomerNotFound
	case err != nil:
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (s *PGStore) UpsertSubscription(ctx context.Context, sub Subscription) error {
	_, err := s.db.Exec(ctx, upsertSubscriptionSQL, subscriptionArgs(sub)...)
	if pg.IsForeignKeyViolationError(err) {
		return ErrCustomerNotFound
	}
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (s *PGStore) CancelSubscription(ctx context.Context, id string, canceledAt, updatedAt time.Time) error {
	if _, err := s.db.Exec(ctx, cancelSubscriptionSQL, id, canceledAt, updatedAt); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	return nil
}

func (s *PGStore) ClearTrial(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.db.Exec(ctx, clearTrialSQL, userID); err != nil {
		return fmt.Errorf("clear trial: %w", err)
	}
	return nil
}

func subscriptionArgs(s Subscription) []any {
	return []any{
		s.ID, s.CustomerID, s.PriceID, s.Status,
		s.CurrentPeriodStart, s.CurrentPeriodEnd,
		s.CancelAtPeriodEnd, s.CanceledAt,
		s.TrialStart, s.TrialEnd, s.UpdatedAt,
	}
}
