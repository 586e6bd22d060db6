package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/saasbilling/pkg/logger"
)

// Service verifies webhook deliveries and reconciles subscription state.
type Service struct {
	verifier Verifier
	gateway  Gateway
	store    Store
	events   EventLog
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEventLog enables replay detection by event id.
func WithEventLog(l EventLog) Option {
	return func(s *Service) { s.events = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(verifier Verifier, gateway Gateway, store Store, opts ...Option) *Service {
	s := &Service{
		verifier: verifier,
		gateway:  gateway,
		store:    store,
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result describes what HandleWebhook did with a delivery.
type Result struct {
	EventID   string
	Type      string
	Handled   bool
	Duplicate bool
}

// HandleWebhook authenticates a raw delivery and applies it.
// Verification errors wrap ErrMissingSignature or ErrInvalidSignature.
// Processing stops at the first failing step; earlier writes stay.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (Result, error) {
	if signature == "" {
		return Result{}, ErrMissingSignature
	}
	evt, err := s.verifier.Verify(payload, signature)
	if err != nil {
		return Result{}, err
	}

	meta := evt.Meta()
	res := Result{EventID: meta.ID, Type: meta.Type}
	log := s.log.With(logger.EventID(meta.ID), logger.EventType(meta.Type))

	if _, ok := evt.(Unhandled); ok {
		log.DebugContext(ctx, "ignoring webhook event")
		return res, nil
	}

	if s.events != nil {
		seen, err := s.events.Seen(ctx, meta.ID)
		if err != nil {
			// The log is an optimization; reconciliation still runs.
			log.WarnContext(ctx, "event log lookup failed", logger.Error(err))
		} else if seen {
			log.InfoContext(ctx, "webhook event already processed")
			res.Duplicate = true
			return res, nil
		}
	}

	if err := s.Process(ctx, evt); err != nil {
		log.ErrorContext(ctx, "webhook processing failed", logger.Error(err))
		return res, err
	}
	res.Handled = true

	if s.events != nil {
		if err := s.events.Mark(ctx, meta.ID); err != nil {
			log.WarnContext(ctx, "failed to record processed event", logger.Error(err))
		}
	}
	log.InfoContext(ctx, "webhook event processed")
	return res, nil
}

// Process applies one verified event.
func (s *Service) Process(ctx context.Context, evt Event) error {
	switch e := evt.(type) {
	case CheckoutCompleted:
		return s.checkoutCompleted(ctx, e)
	case SubscriptionChanged:
		return s.subscriptionChanged(ctx, e)
	case SubscriptionDeleted:
		return s.subscriptionDeleted(ctx, e)
	case Unhandled:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, evt)
	}
}

func (s *Service) checkoutCompleted(ctx context.Context, e CheckoutCompleted) error {
	if e.CustomerID == "" {
		return ErrMissingCustomer
	}
	cust, err := s.gateway.GetCustomer(ctx, e.CustomerID)
	if err != nil {
		return err
	}
	userID, err := resolveUserID(cust.Metadata, e.Metadata)
	if err != nil {
		return err
	}

	record, err := s.store.FindCustomer(ctx, userID, e.CustomerID)
	if errors.Is(err, ErrCustomerNotFound) {
		email := cust.Email
		if email == "" {
			email = e.Email
		}
		record, err = s.store.CreateCustomer(ctx, Customer{
			ID:               uuid.New(),
			UserID:           userID,
			StripeCustomerID: e.CustomerID,
			Email:            email,
		})
		if err != nil {
			return err
		}
		s.log.InfoContext(ctx, "customer record created", logger.UserID(userID), logger.CustomerID(e.CustomerID))
	} else if err != nil {
		return err
	}

	if !e.SubscriptionMode || e.SubscriptionID == "" {
		return nil
	}

	sub, err := s.gateway.GetSubscription(ctx, e.SubscriptionID)
	if err != nil {
		return err
	}
	if err := s.store.InsertSubscription(ctx, sub.record(record.ID, s.now().UTC())); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "subscription recorded",
		logger.UserID(userID), logger.SubscriptionID(sub.ID), logger.PriceID(sub.PriceID))

	return s.store.ClearTrial(ctx, userID)
}

func (s *Service) subscriptionChanged(ctx context.Context, e SubscriptionChanged) error {
	sub := e.Subscription
	if sub.CustomerID == "" {
		return ErrMissingCustomer
	}
	cust, err := s.gateway.GetCustomer(ctx, sub.CustomerID)
	if err != nil {
		return err
	}
	userID, err := resolveUserID(cust.Metadata, sub.Metadata)
	if err != nil {
		return err
	}

	// Unlike checkout, this path never creates the customer record.
	record, err := s.store.FindCustomer(ctx, userID, sub.CustomerID)
	if err != nil {
		return err
	}

	if err := s.store.UpsertSubscription(ctx, sub.record(record.ID, s.now().UTC())); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "subscription synced",
		logger.UserID(userID), logger.SubscriptionID(sub.ID), slog.String("status", sub.Status))

	if sub.Status == StatusActive {
		return s.store.ClearTrial(ctx, userID)
	}
	return nil
}

func (s *Service) subscriptionDeleted(ctx context.Context, e SubscriptionDeleted) error {
	if err := s.store.CancelSubscription(ctx, e.SubscriptionID, e.CanceledAt, s.now().UTC()); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "subscription canceled", logger.SubscriptionID(e.SubscriptionID))
	return nil
}

// resolveUserID reads user_id from the first metadata map that has it.
func resolveUserID(sources ...map[string]string) (uuid.UUID, error) {
	for _, md := range sources {
		raw := md[MetadataUserID]
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidUserID, raw)
		}
		return id, nil
	}
	return uuid.Nil, ErrMissingUserID
}
