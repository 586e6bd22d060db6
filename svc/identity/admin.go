package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	auth "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"

	"github.com/dmitrymomot/saasbilling/pkg/jwt"
)

// Admin performs privileged operations against Supabase Auth.
type Admin struct {
	client auth.Client
	signer *jwt.Service
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Admin)

// WithClock overrides time.Now for token timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Admin) { a.now = now }
}

// New builds an Admin from cfg. Missing credentials are not rejected here:
// like the rest of the provider configuration they surface on first use.
func New(cfg Config, opts ...Option) *Admin {
	a := &Admin{
		issuer: cfg.AuthURL(),
		ttl:    cfg.SessionTokenTTL,
		now:    time.Now,
	}
	if cfg.URL != "" && cfg.ServiceRoleKey != "" {
		// The project ref is only used to build the default URL, which is overridden.
		// Admin endpoints need the service role key as bearer as well as apikey.
		a.client = auth.New("", cfg.ServiceRoleKey).
			WithCustomAuthURL(cfg.AuthURL()).
			WithToken(cfg.ServiceRoleKey)
	}
	if cfg.JWTSecret != "" {
		a.signer, _ = jwt.NewFromString(cfg.JWTSecret)
	}
	if a.ttl <= 0 {
		a.ttl = time.Minute
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DeleteUser removes the user and everything GoTrue owns for it (identities, sessions).
func (a *Admin) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if a.client == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.client.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: userID}); err != nil {
		return fmt.Errorf("%w %s: %w", ErrDeleteUser, userID, err)
	}
	return nil
}

// SignOutUser revokes every refresh token of the user. GoTrue only exposes a
// global logout for the caller's own identity, so a short-lived access token
// is minted for the user and the logout is issued on its behalf.
func (a *Admin) SignOutUser(ctx context.Context, userID uuid.UUID) error {
	if a.client == nil {
		return ErrNotConfigured
	}
	if a.signer == nil {
		return ErrMissingJWTSecret
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	token, err := a.userToken(userID)
	if err != nil {
		return err
	}
	if err := a.client.WithToken(token).Logout(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSignOutUser, userID, err)
	}
	return nil
}

// sessionClaims mirror the access token GoTrue issues itself.
type sessionClaims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

func (a *Admin) userToken(userID uuid.UUID) (string, error) {
	now := a.now()
	token, err := a.signer.Generate(sessionClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID.String(),
			Audience:  "authenticated",
			Issuer:    a.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(a.ttl).Unix(),
		},
		Role: "authenticated",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMintSessionJWT, err)
	}
	return token, nil
}
