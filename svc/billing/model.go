package billing

import (
	"time"

	"github.com/google/uuid"
)

// MetadataUserID is the metadata key linking payment-provider objects to a user.
const MetadataUserID = "user_id"

// StatusActive and StatusCanceled are the only subscription statuses with side effects.
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

// Customer is a row of stripe_customers.
type Customer struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	StripeCustomerID string
	Email            string
	CreatedAt        time.Time
}

// Subscription is a row of stripe_subscriptions.
type Subscription struct {
	ID                 string
	CustomerID         uuid.UUID
	PriceID            string
	Status             string
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  bool
	CanceledAt         *time.Time
	TrialStart         *time.Time
	TrialEnd           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CustomerInfo is the provider-side view of a customer.
type CustomerInfo struct {
	ID       string
	Email    string
	Metadata map[string]string
}

// SubscriptionSnapshot is the provider-side state of a subscription at event time.
type SubscriptionSnapshot struct {
	ID                 string
	CustomerID         string
	PriceID            string
	Status             string
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  bool
	CanceledAt         *time.Time
	EndedAt            *time.Time
	TrialStart         *time.Time
	TrialEnd           *time.Time
	Metadata           map[string]string
}

// record maps the snapshot onto a row owned by customerID.
func (s SubscriptionSnapshot) record(customerID uuid.UUID, now time.Time) Subscription {
	return Subscription{
		ID:                 s.ID,
		CustomerID:         customerID,
		PriceID:            s.PriceID,
		Status:             s.Status,
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		CanceledAt:         s.CanceledAt,
		TrialStart:         s.TrialStart,
		TrialEnd:           s.TrialEnd,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// unixTime converts a provider timestamp; zero means unset.
func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
