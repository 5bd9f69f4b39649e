package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"larder/internal/service"
)

type Server struct {
	items   *service.ItemService
	areas   *service.AreaService
	scans   *service.ScanService
	recipes *service.RecipeService
	router  chi.Router
	logger  *slog.Logger
}

func NewServer(items *service.ItemService, areas *service.AreaService, scans *service.ScanService, recipes *service.RecipeService, logger *slog.Logger) *Server {
	s := &Server{
		items:   items,
		areas:   areas,
		scans:   scans,
		recipes: recipes,
		router:  chi.NewRouter(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Route("/areas", func(r chi.Router) {
			r.Get("/", s.handleListAreas)
			r.Post("/", s.handleCreateArea)
			r.Put("/reorder", s.handleReorderAreas)
			r.Get("/{id}", s.handleGetArea)
			r.Patch("/{id}", s.handleUpdateArea)
			r.Delete("/{id}", s.handleDeleteArea)
			r.Get("/{id}/items", s.handleListAreaItems)
		})
		r.Route("/items", func(r chi.Router) {
			r.Get("/", s.handleListItems)
			r.Post("/", s.handleCreateItem)
			r.Patch("/{id}/quantity", s.handleAdjustQuantity)
			r.Post("/{id}/open", s.handleOpenItem)
			r.Delete("/{id}", s.handleDeleteItem)
		})
		r.Post("/scan", s.handleScan)
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", s.handleSearchRecipes)
			r.Get("/suggestions", s.handleSuggestRecipes)
			r.Get("/{id}", s.handleGetRecipe)
		})
		r.Route("/dislikes", func(r chi.Router) {
			r.Get("/", s.handleListDislikes)
			r.Post("/", s.handleAddDislike)
			r.Delete("/{name}", s.handleRemoveDislike)
		})
	})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.router)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}
