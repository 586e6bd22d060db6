package handler

import (
	"net/http"
	"strings"
)

// Method sets for the function endpoints.
var (
	MethodsPostOnly = []string{http.MethodPost, http.MethodOptions}
	MethodsAll      = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
)

// AllowedHeaders is the header list browsers may send to the functions.
const AllowedHeaders = "authorization, x-client-info, apikey, content-type, stripe-signature"

// CORS stamps the wildcard-origin headers on every response and answers
// OPTIONS preflight with 204 and no body.
func CORS(methods []string) func(http.Handler) http.Handler {
	allowMethods := strings.Join(methods, ", ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", AllowedHeaders)
			h.Set("Access-Control-Allow-Methods", allowMethods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MethodNotAllowed renders the JSON 405 envelope. It never reads the body.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = JSONError(NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")).Render(w, r)
}

// NotFound renders the JSON 404 envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	_ = JSONError(NewHTTPError(http.StatusNotFound, "Not found")).Render(w, r)
}

// Preflight is the terminal handler for OPTIONS routes behind CORS.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
