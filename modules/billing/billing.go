package billing

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/saasbilling/handler"
	"github.com/dmitrymomot/saasbilling/pkg/binder"
	"github.com/dmitrymomot/saasbilling/pkg/jwt"
	"github.com/dmitrymomot/saasbilling/svc/billing"
	"github.com/dmitrymomot/saasbilling/svc/checkout"
)

// SignatureHeader carries the payment provider's webhook signature.
const SignatureHeader = "Stripe-Signature"

type Checkout interface {
	Create(ctx context.Context, req checkout.Request) (checkout.Session, error)
}

type Webhooks interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (billing.Result, error)
}

type Service struct {
	checkout     Checkout
	webhooks     Webhooks
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewService(checkouts Checkout, webhooks Webhooks, log *slog.Logger) *Service {
	return &Service{
		checkout:     checkouts,
		webhooks:     webhooks,
		errorHandler: handler.NewErrorHandler(log, "billing"),
	}
}

// Handle returns the module as a standalone router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)
	s.Routes(r)
	return r
}

// Routes registers the functions on r, so several modules can share a prefix.
func (s *Service) Routes(r chi.Router) {
	cors := r.With(handler.CORS(handler.MethodsAll))

	cors.Options("/create-checkout-session", handler.Preflight)
	cors.Post("/create-checkout-session", handler.Wrap(s.createCheckoutSession,
		handler.WithBinder[handler.Context, CheckoutRequest](binder.JSON()),
		handler.WithValidation[handler.Context, CheckoutRequest](),
		handler.WithErrorHandler[handler.Context, CheckoutRequest](s.errorHandler),
	))

	cors.Options("/stripe-webhook", handler.Preflight)
	cors.Post("/stripe-webhook", handler.Wrap(s.stripeWebhook,
		handler.WithBinder[handler.Context, binder.RawBody](binder.Raw(SignatureHeader)),
		handler.WithErrorHandler[handler.Context, binder.RawBody](s.errorHandler),
	))
}

type CheckoutRequest struct {
	PriceID    string `json:"priceId" validate:"required"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (CheckoutRequest) ValidationMessages() map[string]string {
	return map[string]string{"priceId.required": checkout.ErrMissingPriceID.Error()}
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func (s *Service) createCheckoutSession(ctx handler.Context, req CheckoutRequest) handler.Response {
	var hint checkout.Hint
	if token, ok := jwt.BearerToken(ctx.Request()); ok {
		hint = checkout.HintFromToken(token)
	}

	sess, err := s.checkout.Create(ctx, checkout.Request{
		PriceID:    req.PriceID,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Hint:       hint,
	})
	if err != nil {
		return handler.Error(handler.BadRequest(err))
	}
	return handler.JSON(CheckoutResponse{SessionID: sess.ID, URL: sess.URL})
}

// stripeWebhook acknowledges with the bare {"received":true} body the sender expects.
// Every failure, including verification, is reported as 400.
func (s *Service) stripeWebhook(ctx handler.Context, req binder.RawBody) handler.Response {
	if _, err := s.webhooks.HandleWebhook(ctx, req.Payload, req.Signature); err != nil {
		return handler.Error(handler.BadRequest(err))
	}
	return handler.JSONRaw(map[string]bool{"received": true})
}
