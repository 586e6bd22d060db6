package ui

import (
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/saasbilling/handler"
	"github.com/dmitrymomot/saasbilling/ui"
)

// Service serves component previews. Toggle states live in memory and are
// only meant for exercising the components.
type Service struct {
	basePath     string
	errorHandler handler.ErrorHandler[handler.Context]

	mu      sync.Mutex
	toggles map[string]bool
}

// NewService builds the preview module. basePath is where the router is
// mounted and prefixes the datastar actions the components post to.
func NewService(basePath string, log *slog.Logger) *Service {
	return &Service{
		basePath:     basePath,
		errorHandler: handler.NewErrorHandler(log, "ui"),
		toggles:      make(map[string]bool),
	}
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)

	r.Get("/styles.css", s.styles)
	r.Get("/logo", handler.Wrap(s.logo,
		handler.WithBinder[handler.Context, LogoRequest](queryBinder),
		handler.WithErrorHandler[handler.Context, LogoRequest](s.errorHandler),
	))
	r.Get("/plan-limit", handler.Wrap(s.planLimit,
		handler.WithBinder[handler.Context, PlanLimitRequest](queryBinder),
		handler.WithErrorHandler[handler.Context, PlanLimitRequest](s.errorHandler),
	))
	r.Post("/plan-limit/dismiss", handler.Wrap(s.dismissPlanLimit,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/toggle/{id}", handler.Wrap(s.toggle,
		handler.WithBinder[handler.Context, ToggleRequest](toggleBinder),
		handler.WithErrorHandler[handler.Context, ToggleRequest](s.errorHandler),
	))
	r.Post("/toggle/{id}", handler.Wrap(s.flipToggle,
		handler.WithBinder[handler.Context, ToggleRequest](toggleBinder),
		handler.WithErrorHandler[handler.Context, ToggleRequest](s.errorHandler),
	))

	return r
}

type LogoRequest struct {
	Size string
}

type PlanLimitRequest struct {
	Message string
}

type ToggleRequest struct {
	ID string
}

// queryBinder fills the preview request types from the query string.
func queryBinder(r *http.Request, v any) error {
	q := r.URL.Query()
	switch dst := v.(type) {
	case *LogoRequest:
		dst.Size = q.Get("size")
	case *PlanLimitRequest:
		dst.Message = q.Get("message")
	}
	return nil
}

var toggleIDPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

func toggleBinder(r *http.Request, v any) error {
	if dst, ok := v.(*ToggleRequest); ok {
		id := chi.URLParam(r, "id")
		if !toggleIDPattern.MatchString(id) {
			return ErrInvalidToggleID
		}
		dst.ID = id
	}
	return nil
}

func (s *Service) styles(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(ui.DefaultTheme.Variables()))
}

func (s *Service) logo(_ handler.Context, req LogoRequest) handler.Response {
	return handler.Templ(ui.Logo(ui.LogoProps{Size: req.Size}))
}

func (s *Service) planLimit(_ handler.Context, req PlanLimitRequest) handler.Response {
	return handler.Templ(ui.PlanLimitModal(ui.PlanLimitModalProps{
		Open:          true,
		Message:       req.Message,
		DismissAction: s.basePath + "/plan-limit/dismiss",
	}))
}

// dismissPlanLimit removes the modal from the page.
func (s *Service) dismissPlanLimit(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(ui.PlanLimitModal(ui.PlanLimitModalProps{}),
		handler.WithTarget("#"+ui.PlanLimitModalID),
		handler.WithPatchMode(handler.PatchRemove),
	)
}

func (s *Service) toggle(_ handler.Context, req ToggleRequest) handler.Response {
	s.mu.Lock()
	checked := s.toggles[req.ID]
	s.mu.Unlock()
	return handler.Templ(s.toggleComponent(req.ID, checked))
}

func (s *Service) flipToggle(_ handler.Context, req ToggleRequest) handler.Response {
	s.mu.Lock()
	checked := !s.toggles[req.ID]
	s.toggles[req.ID] = checked
	s.mu.Unlock()
	return handler.Templ(s.toggleComponent(req.ID, checked))
}

func (s *Service) toggleComponent(id string, checked bool) handler.TemplComponent {
	return ui.ToggleSwitch(ui.ToggleProps{
		ID:      id,
		Label:   "Toggle " + id,
		Checked: checked,
		Action:  s.basePath + "/toggle/" + url.PathEscape(id),
	})
}
