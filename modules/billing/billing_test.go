package billing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/dmitrymomot/saasbilling/handler"
	"github.com/dmitrymomot/saasbilling/modules/billing"
	"github.com/dmitrymomot/saasbilling/pkg/jwt"
	billingsvc "github.com/dmitrymomot/saasbilling/svc/billing"
	"github.com/dmitrymomot/saasbilling/svc/checkout"
)

const webhookSecret = "whsec_module_test"

type stubGateway struct {
	userID uuid.UUID
}

func (g stubGateway) GetCustomer(_ context.Context, id string) (billingsvc.CustomerInfo, error) {
	return billingsvc.CustomerInfo{
		ID:       id,
		Email:    "buyer@example.com",
		Metadata: map[string]string{billingsvc.MetadataUserID: g.userID.String()},
	}, nil
}

func (g stubGateway) GetSubscription(_ context.Context, id string) (billingsvc.SubscriptionSnapshot, error) {
	return billingsvc.SubscriptionSnapshot{ID: id, CustomerID: "cus_1", PriceID: "price_premium", Status: billingsvc.StatusActive}, nil
}

type env struct {
	store  *billingsvc.MemoryStore
	userID uuid.UUID
	h      http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	userID := uuid.New()
	trial := time.Now().Add(time.Hour)
	store := billingsvc.NewMemoryStore()
	store.AddProfile(userID, &trial)

	webhooks := billingsvc.NewService(
		billingsvc.NewStripeVerifier(billingsvc.StripeConfig{WebhookSecret: webhookSecret}),
		stubGateway{userID: userID},
		store,
	)
	checkouts := checkout.NewService(checkout.Config{DefaultOrigin: "https://app.example.com"})
	return &env{store: store, userID: userID, h: billing.NewService(checkouts, webhooks, nil).Handle()}
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func checkoutPayload(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"id":      "evt_" + uuid.NewString(),
		"object":  "event",
		"type":    "checkout.session.completed",
		"created": time.Now().Unix(),
		"data": map[string]any{"object": map[string]any{
			"id":           "cs_1",
			"object":       "checkout.session",
			"mode":         "subscription",
			"customer":     "cus_1",
			"subscription": "sub_1",
		}},
	})
	require.NoError(t, err)
	return b
}

func webhookRequest(payload []byte, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/stripe-webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(billing.SignatureHeader, signature)
	}
	return req
}

func sign(payload []byte) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: webhookSecret}).Header
}

func TestStripeWebhook(t *testing.T) {
	t.Parallel()

	t.Run("processes signed event", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		payload := checkoutPayload(t)

		rec := e.do(webhookRequest(payload, sign(payload)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received":true}`, rec.Body.String())
		assert.Len(t, e.store.Subscriptions(), 1)
		trial, _ := e.store.TrialEndsAt(e.userID)
		assert.Nil(t, trial)
	})

	t.Run("missing signature", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		rec := e.do(webhookRequest(checkoutPayload(t), ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body handler.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Missing stripe-signature header", body.Error.Message)
		assert.Empty(t, e.store.Subscriptions())
	})

	t.Run("missing signature with garbage body", func(t *testing.T) {
		t.Parallel()
		rec := newEnv(t).do(webhookRequest([]byte("garbage"), ""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		rec := e.do(webhookRequest(checkoutPayload(t), "t=1,v1=abc"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, e.store.Customers())
	})

	t.Run("replay is rejected without a second row", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		payload := checkoutPayload(t)

		require.Equal(t, http.StatusOK, e.do(webhookRequest(payload, sign(payload))).Code)
		rec := e.do(webhookRequest(payload, sign(payload)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Len(t, e.store.Subscriptions(), 1)
	})

	t.Run("preflight", func(t *testing.T) {
		t.Parallel()
		rec := newEnv(t).do(httptest.NewRequest(http.MethodOptions, "/stripe-webhook", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		rec := newEnv(t).do(httptest.NewRequest(http.MethodGet, "/stripe-webhook", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	t.Parallel()

	post := func(body string, token string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		signer, err := jwt.NewFromString("unrelated-secret")
		require.NoError(t, err)
		token, err := signer.Generate(map[string]string{"sub": "u1", "email": "hint@example.com"})
		require.NoError(t, err)

		rec := newEnv(t).do(post(`{"priceId":"price_professional","successUrl":"https://shop.example.com/ok","cancelUrl":"https://shop.example.com/no"}`, token))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

		var body struct {
			Data billing.CheckoutResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Regexp(t, `^cs_mock_`, body.Data.SessionID)

		u, err := url.Parse(body.Data.URL)
		require.NoError(t, err)
		assert.Equal(t, "shop.example.com", u.Host)
		assert.Equal(t, "Profissional", u.Query().Get("product"))
		assert.Equal(t, "12", u.Query().Get("duration"))
		assert.Equal(t, body.Data.SessionID, u.Query().Get("session_id"))
		assert.Equal(t, "hint@example.com", u.Query().Get("email"))
	})

	t.Run("missing price id", func(t *testing.T) {
		t.Parallel()
		rec := newEnv(t).do(post(`{"successUrl":"https://shop.example.com/ok"}`, ""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body handler.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Price ID is required", body.Error.Message)
	})

	t.Run("invalid success url", func(t *testing.T) {
		t.Parallel()
		rec := newEnv(t).do(post(`{"priceId":"p","successUrl":"nope"}`, ""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("garbage token is ignored", func(t *testing.T) {
		t.Parallel()
		rec := newEnv(t).do(post(`{"priceId":"price_premium"}`, "garbage"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		rec := newEnv(t).do(httptest.NewRequest(http.MethodPut, "/create-checkout-session", bytes.NewBufferString("{")))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
