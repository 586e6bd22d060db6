package billing

import "time"

// Event types the reconciler acts on.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventSubscriptionCreated      = "customer.subscription.created"
	EventSubscriptionUpdated      = "customer.subscription.updated"
	EventSubscriptionDeleted      = "customer.subscription.deleted"
)

// EventMeta is the envelope every verified event carries.
type EventMeta struct {
	ID      string
	Type    string
	Created time.Time
}

// Event is a verified webhook event. The set of variants is closed:
// CheckoutCompleted, SubscriptionChanged, SubscriptionDeleted and Unhandled.
type Event interface {
	Meta() EventMeta
	sealed()
}

// CheckoutCompleted is checkout.session.completed.
type CheckoutCompleted struct {
	EventMeta
	SessionID      string
	CustomerID     string
	SubscriptionID string
	// SubscriptionMode is true for mode=subscription sessions.
	SubscriptionMode bool
	Email            string
	Metadata         map[string]string
}

// SubscriptionChanged is customer.subscription.created or .updated.
type SubscriptionChanged struct {
	EventMeta
	Subscription SubscriptionSnapshot
}

// SubscriptionDeleted is customer.subscription.deleted.
type SubscriptionDeleted struct {
	EventMeta
	SubscriptionID string
	// CanceledAt falls back to the subscription's end and then to the event time.
	CanceledAt time.Time
}

// Unhandled is any other event type; it is acknowledged without action.
type Unhandled struct {
	EventMeta
}

func (e CheckoutCompleted) Meta() EventMeta   { return e.EventMeta }
func (e SubscriptionChanged) Meta() EventMeta { return e.EventMeta }
func (e SubscriptionDeleted) Meta() EventMeta { return e.EventMeta }
func (e Unhandled) Meta() EventMeta           { return e.EventMeta }

func (CheckoutCompleted) sealed()   {}
func (SubscriptionChanged) sealed() {}
func (SubscriptionDeleted) sealed() {}
func (Unhandled) sealed()           {}

// deletionTime picks canceled_at, then ended_at, then the event creation time.
func deletionTime(sub SubscriptionSnapshot, created time.Time) time.Time {
	switch {
	case sub.CanceledAt != nil:
		return *sub.CanceledAt
	case sub.EndedAt != nil:
		return *sub.EndedAt
	default:
		return created.UTC()
	}
}
