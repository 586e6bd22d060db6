package billing_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/saasbilling/internal/db/migrations"
	"github.com/dmitrymomot/saasbilling/pkg/pg"
	"github.com/dmitrymomot/saasbilling/svc/billing"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PG_CONN_URL")
	if url == "" {
		t.Skip("PG_CONN_URL is not set")
	}
	ctx := context.Background()
	cfg := pg.Config{ConnectionString: url, MaxOpenConns: 4, RetryAttempts: 1, MigrationsTable: "schema_migrations"}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, migrations.FS, cfg, slog.New(slog.DiscardHandler)))
	return pool
}

func TestPGStore(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := billing.NewPGStore(pool)

	userID := uuid.New()
	_, err := pool.Exec(ctx, `INSERT INTO profiles (id, trial_ends_at) VALUES ($1, now() + interval '7 days')`, userID)
	require.NoError(t, err)

	custID := "cus_" + uuid.NewString()
	subID := "sub_" + uuid.NewString()

	_, err = store.FindCustomer(ctx, userID, custID)
	require.ErrorIs(t, err, billing.ErrCustomerNotFound)

	orphan := billing.Subscription{ID: subID, CustomerID: uuid.New(), Status: billing.StatusActive, UpdatedAt: time.Now()}
	require.ErrorIs(t, store.UpsertSubscription(ctx, orphan), billing.ErrCustomerNotFound)

	cust, err := store.CreateCustomer(ctx, billing.Customer{UserID: userID, StripeCustomerID: custID, Email: "pg@example.com"})
	require.NoError(t, err)
	assert.False(t, cust.CreatedAt.IsZero())

	found, err := store.FindCustomer(ctx, userID, custID)
	require.NoError(t, err)
	assert.Equal(t, cust.ID, found.ID)
	assert.Equal(t, "pg@example.com", found.Email)

	sub := billing.Subscription{ID: subID, CustomerID: cust.ID, PriceID: "price_basic", Status: billing.StatusActive, UpdatedAt: time.Now()}
	require.NoError(t, store.InsertSubscription(ctx, sub))
	require.ErrorIs(t, store.InsertSubscription(ctx, sub), billing.ErrSubscriptionExists)

	sub.PriceID = "price_premium"
	require.NoError(t, store.UpsertSubscription(ctx, sub))

	canceledAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.CancelSubscription(ctx, subID, canceledAt, time.Now()))
	require.NoError(t, store.CancelSubscription(ctx, "sub_missing", canceledAt, time.Now()))

	var (
		status, priceID string
		gotCanceled     *time.Time
	)
	err = pool.QueryRow(ctx, `SELECT status, price_id, canceled_at FROM stripe_subscriptions WHERE id = $1`, subID).
		Scan(&status, &priceID, &gotCanceled)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusCanceled, status)
	assert.Equal(t, "price_premium", priceID)
	require.NotNil(t, gotCanceled)
	assert.True(t, canceledAt.Equal(*gotCanceled))

	require.NoError(t, store.ClearTrial(ctx, userID))
	var trial *time.Time
	require.NoError(t, pool.QueryRow(ctx, `SELECT trial_ends_at FROM profiles WHERE id = $1`, userID).Scan(&trial))
	assert.Nil(t, trial)
}

func TestPGStore_CustomerWithoutProfile(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := billing.NewPGStore(pool)

	userID := uuid.New()
	cust, err := store.CreateCustomer(ctx, billing.Customer{UserID: userID, StripeCustomerID: "cus_" + uuid.NewString()})
	require.NoError(t, err)

	sub := billing.Subscription{ID: "sub_" + uuid.NewString(), CustomerID: cust.ID, Status: billing.StatusActive, UpdatedAt: time.Now()}
	require.NoError(t, store.InsertSubscription(ctx, sub))
	require.NoError(t, store.ClearTrial(ctx, userID))
}
