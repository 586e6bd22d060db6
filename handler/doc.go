// Package handler provides the typed request handling used by every function endpoint.
//
// A handler is a plain function from a bound request value to a Response:
//
//	type deleteUserRequest struct {
//		UserID string `json:"userId" validate:"required,uuid"`
//	}
//
//	func (h *Handler) deleteUser(ctx handler.Context, req deleteUserRequest) handler.Response {
//		if err := h.accounts.DeleteUser(ctx, req.UserID); err != nil {
//			return handler.JSONError(handler.Internal(err))
//		}
//		return handler.JSON(map[string]bool{"success": true})
//	}
//
//	r.Post("/admin-delete-user", handler.Wrap(h.deleteUser,
//		handler.WithBinder[handler.Context, deleteUserRequest](binder.JSON()),
//		handler.WithValidation[handler.Context, deleteUserRequest](),
//		handler.WithErrorHandler[handler.Context, deleteUserRequest](errHandler),
//	))
//
// Errors carry their HTTP status through HTTPError; the JSON envelope always
// passes the underlying message through so operators see the provider's reason.
//
// Templ renders components, switching to a datastar SSE patch when the request
// comes from a datastar action. CORS answers preflight requests with a fixed
// header set and stamps the same headers on regular responses.
package handler
