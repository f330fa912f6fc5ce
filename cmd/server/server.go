package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/metrics"
)

const maxBodyBytes = 1 << 20

type server struct {
	store   *catalog.Store
	auth    *authService
	log     *zap.Logger
	metrics *metrics.Metrics
}

func newServer(store *catalog.Store, auth *authService, log *zap.Logger, m *metrics.Metrics) *server {
	if log == nil {
		log = zap.NewNop()
	}
	return &server{store: store, auth: auth, log: log, metrics: m}
}

func (s *server) routes(exposeMetrics bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	if exposeMetrics && s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Post("/auth/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/settings", s.handleSettingsGet)
		r.Put("/settings", s.handleSettingsUpdate)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleCategoriesList)
			r.Post("/", s.handleCategoriesCreate)
			r.Put("/{id}", s.handleCategoriesUpdate)
			r.Delete("/{id}", s.handleCategoriesDelete)
			r.Post("/{id}/hide", s.handleCategoriesVisibility(true))
			r.Post("/{id}/unhide", s.handleCategoriesVisibility(false))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.handleInventoryList)
			r.Post("/", s.handleInventoryCreate)
			r.Post("/import", s.handleInventoryImport)
			r.Put("/{id}", s.handleInventoryUpdate)
			r.Delete("/{id}", s.handleInventoryDelete)
		})

		r.Route("/dishes", func(r chi.Router) {
			r.Get("/", s.handleDishesList)
			r.Post("/", s.handleDishesCreate)
			r.Post("/preview", s.handleDishPreview)
			r.Get("/{id}", s.handleDishGet)
			r.Put("/{id}", s.handleDishesUpdate)
			r.Delete("/{id}", s.handleDishesDelete)
			r.Get("/{id}/breakdown", s.handleDishBreakdown)
		})

		r.Get("/menu/stats", s.handleMenuStats)
		r.Get("/menu/profitability", s.handleMenuProfitability)
		r.Get("/menu/export.xlsx", s.handleMenuExport)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		if s.metrics != nil {
			s.metrics.ObserveRequest(route, status, elapsed)
		}
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *server) countCosting(kind string) {
	if s.metrics != nil {
		s.metrics.CountCosting(kind)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return false
	}
	return true
}

// writeStoreError maps catalog errors to HTTP statuses. Unknown errors are
// logged and hidden behind a 500.
func (s *server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "no encontrado")
	case errors.Is(err, catalog.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas. Intenta de nuevo.")
	case errors.Is(err, catalog.ErrEmailTaken):
		writeError(w, http.StatusConflict, "el email ya está registrado")
	case errors.Is(err, catalog.ErrInUse):
		writeError(w, http.StatusConflict, "el ingrediente se usa en al menos un plato")
	default:
		s.log.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "error interno")
	}
}
