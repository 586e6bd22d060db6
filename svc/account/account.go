package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/saasbilling/pkg/async"
	"github.com/dmitrymomot/saasbilling/pkg/logger"
)

type Config struct {
	ForceLogoutConcurrency int `env:"FORCE_LOGOUT_CONCURRENCY" envDefault:"8"`
}

// IdentityProvider is the subset of the identity admin API the account operations need.
type IdentityProvider interface {
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	SignOutUser(ctx context.Context, userID uuid.UUID) error
}

// ProfileLister enumerates every user profile id.
type ProfileLister interface {
	ListProfileIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Service implements the administrative account operations.
type Service struct {
	identity    IdentityProvider
	profiles    ProfileLister
	concurrency int
	log         *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConcurrency bounds parallel sign-out calls during ForceLogoutAll.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(identity IdentityProvider, profiles ProfileLister, opts ...Option) *Service {
	s := &Service{
		identity:    identity,
		profiles:    profiles,
		concurrency: 8,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DeleteUser deletes the account from the identity provider.
func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrMissingUserID
	}
	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user deleted", logger.UserID(userID))
	return nil
}

// LogoutResult is the outcome of signing out one user.
type LogoutResult struct {
	UserID uuid.UUID `json:"userId"`
	Error  string    `json:"error,omitempty"`
}

// LogoutReport summarizes a ForceLogoutAll run.
type LogoutReport struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []LogoutResult `json:"results"`
}

// Partial reports whether at least one sign-out failed.
func (r LogoutReport) Partial() bool { return r.Failed > 0 }

// ForceLogoutAll signs out every user that has a profile. A listing failure
// aborts before any sign-out. Individual sign-out failures are isolated and
// reported per user; nothing is retried.
func (s *Service) ForceLogoutAll(ctx context.Context) (LogoutReport, error) {
	ids, err := s.profiles.ListProfileIDs(ctx)
	if err != nil {
		return LogoutReport{}, errors.Join(ErrListProfiles, err)
	}

	outcomes := async.Settle(ctx, ids, s.concurrency, func(ctx context.Context, id uuid.UUID) (struct{}, error) {
		return struct{}{}, s.identity.SignOutUser(ctx, id)
	})

	report := LogoutReport{Total: len(ids), Results: make([]LogoutResult, 0, len(ids))}
	for _, o := range outcomes {
		res := LogoutResult{UserID: o.Input}
		if o.Err != nil {
			res.Error = o.Err.Error()
			report.Failed++
			s.log.WarnContext(ctx, "sign out failed", logger.UserID(o.Input), logger.Error(o.Err))
		} else {
			report.Succeeded++
		}
		report.Results = append(report.Results, res)
	}

	s.log.InfoContext(ctx, "force logout finished",
		slog.Int("total", report.Total),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

// Summary is a one-line description used as the error message on partial failure.
func (r LogoutReport) Summary() string {
	return fmt.Sprintf("signed out %d of %d users, %d failed", r.Succeeded, r.Total, r.Failed)
}
