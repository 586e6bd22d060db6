package jwt_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/saasbilling/pkg/jwt"
)

type sessionClaims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := jwt.New(nil)
	require.ErrorIs(t, err, jwt.ErrMissingSigningKey)

	_, err = jwt.NewFromString("")
	require.ErrorIs(t, err, jwt.ErrMissingSigningKey)

	svc, err := jwt.NewFromString("secret")
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString("super-secret-jwt-token")
	require.NoError(t, err)

	now := time.Now()
	in := sessionClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "3f1c9a7e-0000-4000-8000-000000000001",
			Audience:  "authenticated",
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Minute).Unix(),
		},
		Email: "ana@example.com",
		Role:  "authenticated",
	}

	token, err := svc.Generate(in)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.NotContains(t, token, "=")

	var out sessionClaims
	require.NoError(t, svc.Parse(token, &out))
	assert.Equal(t, in, out)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString("secret")
	require.NoError(t, err)
	other, err := jwt.NewFromString("other")
	require.NoError(t, err)

	expired, err := svc.Generate(jwt.StandardClaims{Subject: "u", ExpiresAt: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)
	foreign, err := other.Generate(jwt.StandardClaims{Subject: "u"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "malformed", token: "abc", want: jwt.ErrInvalidToken},
		{name: "wrong key", token: foreign, want: jwt.ErrInvalidSignature},
		{name: "expired", token: expired, want: jwt.ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var claims jwt.StandardClaims
			assert.ErrorIs(t, svc.Parse(tt.token, &claims), tt.want)
		})
	}

	_, err = svc.Generate(nil)
	assert.ErrorIs(t, err, jwt.ErrMissingClaims)
}

func TestDecodeUnverified(t *testing.T) {
	t.Parallel()

	signer, err := jwt.NewFromString("whatever")
	require.NoError(t, err)
	token, err := signer.Generate(sessionClaims{
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(-time.Hour).Unix()},
		Email:          "ana@example.com",
	})
	require.NoError(t, err)

	t.Run("reads payload of expired token signed with unknown key", func(t *testing.T) {
		t.Parallel()
		var claims sessionClaims
		require.NoError(t, jwt.DecodeUnverified(token, &claims))
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, "ana@example.com", claims.Email)
	})

	t.Run("tolerates tampered signature", func(t *testing.T) {
		t.Parallel()
		var claims sessionClaims
		require.NoError(t, jwt.DecodeUnverified(token[:strings.LastIndex(token, ".")]+".xxx", &claims))
		assert.Equal(t, "user-1", claims.Subject)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		var claims sessionClaims
		assert.ErrorIs(t, jwt.DecodeUnverified("not-a-token", &claims), jwt.ErrInvalidToken)
		assert.ErrorIs(t, jwt.DecodeUnverified("a.!!!.c", &claims), jwt.ErrInvalidClaims)
	})
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "", ok: false},
		{header: "Basic abc", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("POST", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		token, ok := jwt.BearerToken(r)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
