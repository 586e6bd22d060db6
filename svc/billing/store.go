package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists customer and subscription records and the profile trial flag.
type Store interface {
	// FindCustomer returns ErrCustomerNotFound when no row matches.
	FindCustomer(ctx context.Context, userID uuid.UUID, stripeCustomerID string) (Customer, error)
	CreateCustomer(ctx context.Context, c Customer) (Customer, error)
	// InsertSubscription returns ErrSubscriptionExists when the id is taken.
	InsertSubscription(ctx context.Context, s Subscription) error
	// UpsertSubscription inserts or replaces by subscription id, keeping created_at.
	UpsertSubscription(ctx context.Context, s Subscription) error
	// CancelSubscription sets status canceled; zero matched rows is not an error.
	CancelSubscription(ctx context.Context, id string, canceledAt, updatedAt time.Time) error
	ClearTrial(ctx context.Context, userID uuid.UUID) error
}

// Gateway reads objects from the payment provider.
type Gateway interface {
	GetCustomer(ctx context.Context, id string) (CustomerInfo, error)
	GetSubscription(ctx context.Context, id string) (SubscriptionSnapshot, error)
}

// Verifier authenticates a raw webhook delivery.
type Verifier interface {
	Verify(payload []byte, signature string) (Event, error)
}

// EventLog remembers processed event ids.
type EventLog interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}
