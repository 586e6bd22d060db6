package checkout

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/saasbilling/pkg/jwt"
	"github.com/dmitrymomot/saasbilling/pkg/logger"
)

// Request is a checkout attempt for one price.
type Request struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
	Hint       Hint
}

// Hint is caller identity read from an unverified token.
// It only prefills the redirect and is never trusted.
type Hint struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
}

// HintFromToken decodes the token payload without verifying it.
// Any decoding problem yields an empty hint.
func HintFromToken(token string) Hint {
	var h Hint
	if token == "" {
		return h
	}
	if err := jwt.DecodeUnverified(token, &h); err != nil {
		return Hint{}
	}
	return h
}

// Session is the mock checkout session handed back to the client.
type Session struct {
	ID      string
	URL     string
	Product string
	// Duration is the number of billing periods.
	Duration int
}

// Service builds mock checkout sessions. No payment is initiated.
type Service struct {
	cfg     Config
	catalog Catalog
	newID   func() string
	log     *slog.Logger
}

type Option func(*Service)

func WithCatalog(c Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSessionIDs overrides the session id generator.
func WithSessionIDs(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(cfg Config, opts ...Option) *Service {
	if cfg.RedirectPath == "" {
		cfg.RedirectPath = "/checkout/mock"
	}
	s := &Service{
		cfg:     cfg,
		catalog: DefaultCatalog(),
		newID:   func() string { return "cs_mock_" + uuid.NewString() },
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create classifies the price and returns the redirect for the mock checkout page.
func (s *Service) Create(ctx context.Context, req Request) (Session, error) {
	if strings.TrimSpace(req.PriceID) == "" {
		return Session{}, ErrMissingPriceID
	}

	origin, err := s.origin(req.SuccessURL)
	if err != nil {
		return Session{}, err
	}

	plan := s.catalog.Classify(req.PriceID)
	sess := Session{ID: s.newID(), Product: plan.Product, Duration: plan.Duration}

	q := url.Values{}
	q.Set("product", plan.Product)
	q.Set("duration", strconv.Itoa(plan.Duration))
	q.Set("price_id", req.PriceID)
	q.Set("session_id", sess.ID)
	if req.Hint.Email != "" {
		q.Set("email", req.Hint.Email)
	}
	if req.Hint.UserID != "" {
		q.Set("user_id", req.Hint.UserID)
	}
	sess.URL = origin + s.cfg.RedirectPath + "?" + q.Encode()

	s.log.InfoContext(ctx, "mock checkout session created",
		logger.PriceID(req.PriceID),
		logger.UserID(req.Hint.UserID),
		slog.String("session_id", sess.ID),
		slog.String("product", plan.Product),
	)
	return sess, nil
}

// origin returns scheme://host of successURL, or the configured default.
func (s *Service) origin(successURL string) (string, error) {
	if successURL == "" {
		return strings.TrimRight(s.cfg.DefaultOrigin, "/"), nil
	}
	u, err := url.Parse(successURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidSuccessURL
	}
	return u.Scheme + "://" + u.Host, nil
}
