package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeVerifier checks the Stripe-Signature header and decodes the event.
type StripeVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewStripeVerifier(cfg StripeConfig) *StripeVerifier {
	tolerance := cfg.WebhookTolerance
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &StripeVerifier{secret: cfg.WebhookSecret, tolerance: tolerance}
}

// Verify authenticates payload against signature and returns the typed event.
// Account API versions drift from the library's pinned version, so version
// mismatches are not treated as verification failures.
func (v *StripeVerifier) Verify(payload []byte, signature string) (Event, error) {
	if signature == "" {
		return nil, ErrMissingSignature
	}
	if v.secret == "" {
		return nil, fmt.Errorf("%w: STRIPE_WEBHOOK_SECRET is empty", ErrNotConfigured)
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return ParseEvent(evt)
}

// ParseEvent maps a Stripe event onto the closed Event variant.
func ParseEvent(evt stripe.Event) (Event, error) {
	meta := EventMeta{ID: evt.ID, Type: string(evt.Type), Created: time.Unix(evt.Created, 0).UTC()}

	switch evt.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := decodeObject(evt, &sess); err != nil {
			return nil, err
		}
		return checkoutCompleted(meta, &sess), nil

	case stripe.EventTypeCustomerSubscriptionCreated, stripe.EventTypeCustomerSubscriptionUpdated:
		var sub stripe.Subscription
		if err := decodeObject(evt, &sub); err != nil {
			return nil, err
		}
		return SubscriptionChanged{EventMeta: meta, Subscription: snapshot(&sub)}, nil

	case stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := decodeObject(evt, &sub); err != nil {
			return nil, err
		}
		snap := snapshot(&sub)
		return SubscriptionDeleted{
			EventMeta:      meta,
			SubscriptionID: snap.ID,
			CanceledAt:     deletionTime(snap, meta.Created),
		}, nil

	default:
		return Unhandled{EventMeta: meta}, nil
	}
}

func decodeObject(evt stripe.Event, v any) error {
	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return fmt.Errorf("%w: %s has no data object", ErrMalformedEvent, evt.ID)
	}
	if err := json.Unmarshal(evt.Data.Raw, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedEvent, evt.ID, err)
	}
	return nil
}

func checkoutCompleted(meta EventMeta, sess *stripe.CheckoutSession) CheckoutCompleted {
	out := CheckoutCompleted{
		EventMeta:        meta,
		SessionID:        sess.ID,
		SubscriptionMode: sess.Mode == stripe.CheckoutSessionModeSubscription,
		Email:            sess.CustomerEmail,
		Metadata:         sess.Metadata,
	}
	if sess.Customer != nil {
		out.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		out.SubscriptionID = sess.Subscription.ID
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		out.Email = sess.CustomerDetails.Email
	}
	return out
}

func snapshot(sub *stripe.Subscription) SubscriptionSnapshot {
	out := SubscriptionSnapshot{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CanceledAt:        unixTime(sub.CanceledAt),
		EndedAt:           unixTime(sub.EndedAt),
		TrialStart:        unixTime(sub.TrialStart),
		TrialEnd:          unixTime(sub.TrialEnd),
		Metadata:          sub.Metadata,
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	// Period bounds and price live on the items since API version 2025-03-31.
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		out.CurrentPeriodStart = unixTime(item.CurrentPeriodStart)
		out.CurrentPeriodEnd = unixTime(item.CurrentPeriodEnd)
		if item.Price != nil {
			out.PriceID = item.Price.ID
		}
	}
	return out
}

// StripeGateway retrieves customers and subscriptions from the Stripe API.
type StripeGateway struct {
	api *stripe.Client
}

// NewStripeGateway builds the gateway. opts are passed to stripe.NewClient,
// e.g. stripe.WithBackends to point it at another API host.
func NewStripeGateway(cfg StripeConfig, opts ...stripe.ClientOption) *StripeGateway {
	if cfg.SecretKey == "" {
		return &StripeGateway{}
	}
	return &StripeGateway{api: stripe.NewClient(cfg.SecretKey, opts...)}
}

func (g *StripeGateway) GetCustomer(ctx context.Context, id string) (CustomerInfo, error) {
	if g.api == nil {
		return CustomerInfo{}, fmt.Errorf("%w: STRIPE_SECRET_KEY is empty", ErrNotConfigured)
	}
	c, err := g.api.V1Customers.Retrieve(ctx, id, &stripe.CustomerRetrieveParams{})
	if err != nil {
		return CustomerInfo{}, fmt.Errorf("%w %s: %w", ErrRetrieveCustomer, id, stripeMessage(err))
	}
	return CustomerInfo{ID: c.ID, Email: c.Email, Metadata: c.Metadata}, nil
}

func (g *StripeGateway) GetSubscription(ctx context.Context, id string) (SubscriptionSnapshot, error) {
	if g.api == nil {
		return SubscriptionSnapshot{}, fmt.Errorf("%w: STRIPE_SECRET_KEY is empty", ErrNotConfigured)
	}
	sub, err := g.api.V1Subscriptions.Retrieve(ctx, id, &stripe.SubscriptionRetrieveParams{})
	if err != nil {
		return SubscriptionSnapshot{}, fmt.Errorf("%w %s: %w", ErrRetrieveSubscription, id, stripeMessage(err))
	}
	return snapshot(sub), nil
}

// stripeMessage unwraps *stripe.Error so the provider's message is what callers see.
func stripeMessage(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return errors.New(se.Msg)
	}
	return err
}
