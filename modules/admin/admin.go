package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/saasbilling/handler"
	"github.com/dmitrymomot/saasbilling/pkg/binder"
	"github.com/dmitrymomot/saasbilling/svc/account"
)

// Accounts is the account service surface the admin functions call.
type Accounts interface {
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ForceLogoutAll(ctx context.Context) (account.LogoutReport, error)
}

type Service struct {
	accounts     Accounts
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewService(accounts Accounts, log *slog.Logger) *Service {
	return &Service{
		accounts:     accounts,
		errorHandler: handler.NewErrorHandler(log, "admin"),
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
	r.Post("/admin-delete-user", handler.Wrap(s.deleteUser,
		handler.WithBinder[handler.Context, DeleteUserRequest](binder.JSON()),
		handler.WithValidation[handler.Context, DeleteUserRequest](),
		handler.WithErrorHandler[handler.Context, DeleteUserRequest](s.errorHandler),
	))

	cors := handler.CORS(handler.MethodsPostOnly)
	r.With(cors).Options("/force-logout", handler.Preflight)
	r.With(cors).Post("/force-logout", handler.Wrap(s.forceLogout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
}

type DeleteUserRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

func (DeleteUserRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"userId.required": account.ErrMissingUserID.Error(),
		"userId.uuid":     "User ID must be a valid UUID",
	}
}

func (s *Service) deleteUser(ctx handler.Context, req DeleteUserRequest) handler.Response {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return handler.Error(handler.BadRequest(err))
	}
	if err := s.accounts.DeleteUser(ctx, userID); err != nil {
		return handler.Error(handler.Internal(err))
	}
	return handler.JSON(map[string]bool{"success": true})
}

// forceLogout answers 200 when every sign-out succeeded and 207 otherwise.
// The per-user results are returned in both cases.
func (s *Service) forceLogout(ctx handler.Context, _ struct{}) handler.Response {
	report, err := s.accounts.ForceLogoutAll(ctx)
	if err != nil {
		return handler.Error(handler.Internal(err))
	}
	if report.Partial() {
		return handler.JSON(report,
			handler.WithJSONStatus(http.StatusMultiStatus),
			handler.WithJSONMeta(map[string]any{"message": report.Summary()}),
		)
	}
	return handler.JSON(report)
}
