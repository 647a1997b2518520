// Package projects serves the open source projects page: repository metadata
// gathered from GitHub, a proxy to the GitHub API for browser clients, and
// search suggestion redirects.
package projects

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iburimskiy/particle-field/internal/repostats"
	"github.com/iburimskiy/particle-field/internal/search"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Source provides the data shown on the page.
type Source interface {
	Refresh(ctx context.Context) error
	Repositories() []repostats.Repository
	Stats() repostats.Stats
	Projects() []repostats.Project
	UpdatedAt() time.Time
}

// Suggester resolves a selected search suggestion to a URL.
type Suggester interface {
	ResolveSuggestion(ctx context.Context, field, value, scope string) (string, error)
}

type Server struct {
	listenAddr string
	owner      string
	refresh    time.Duration

	source      Source
	suggester   Suggester
	searchField string
	searchScope string

	tmpl   *template.Template
	router *chi.Mux
}

// NewServer builds the server from cfg. It uses the GitHub settings in cfg
// for its own aggregator and proxy unless src is provided.
func NewServer(cfg *Config, src Source, sug Suggester) (*Server, error) {
	target, err := url.Parse(cfg.GitHub.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github base url: %w", err)
	}

	if src == nil {
		src = repostats.New(cfg.GitHub.BaseURL, cfg.GitHub.Owner, repostats.WithToken(cfg.GitHub.Token))
	}
	if sug == nil && cfg.Search.RestURI != "" {
		sug = search.NewEndpoint(cfg.Search.RestURI, cfg.Search.Token)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		listenAddr:  fmt.Sprintf("%s:%d", cfg.ListenAddress, cfg.ListenPort),
		owner:       cfg.GitHub.Owner,
		refresh:     cfg.RefreshInterval,
		source:      src,
		suggester:   sug,
		searchField: cfg.Search.Field,
		searchScope: cfg.Search.Scope,
		tmpl:        tmpl,
		router:      chi.NewRouter(),
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.indexHandler)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/repositories", s.repositoriesHandler)
		r.Get("/stats", s.statsHandler)
	})
	s.router.Route("/github", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Handle("/*", http.StripPrefix("/github", newGitHubProxy(target, cfg.GitHub.Token)))
	})
	s.router.Get("/search/suggest", s.suggestHandler)

	return s, nil
}

// newGitHubProxy forwards requests to the GitHub API, adding the server's
// token so it never reaches the browser.
func newGitHubProxy(target *url.URL, token string) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Header.Del("Cookie")
			pr.Out.Header.Del("Authorization")
			if token != "" {
				pr.Out.Header.Set("Authorization", "Bearer "+token)
			}
		},
	}
}

type pageData struct {
	Owner        string
	Repositories []repostats.Repository
	Stats        repostats.Stats
	Languages    []repostats.LanguageShare
	Projects     []repostats.Project
	UpdatedAt    time.Time
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.source.Stats()
	data := pageData{
		Owner:        s.owner,
		Repositories: s.source.Repositories(),
		Stats:        stats,
		Languages:    stats.Languages(),
		Projects:     s.source.Projects(),
		UpdatedAt:    s.source.UpdatedAt(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "projects.html", data); err != nil {
		log.Printf("failed to render projects page: %v", err)
	}
}

func (s *Server) repositoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.source.Repositories())
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.source.Stats()
	writeJSON(w, http.StatusOK, struct {
		repostats.Stats
		Shares []repostats.LanguageShare `json:"shares"`
	}{stats, stats.Languages()})
}

func (s *Server) suggestHandler(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		http.Error(w, "search is not configured", http.StatusServiceUnavailable)
		return
	}

	value := r.URL.Query().Get("value")
	if value == "" {
		http.Error(w, "missing value", http.StatusBadRequest)
		return
	}

	uri, err := s.suggester.ResolveSuggestion(r.Context(), s.searchField, value, s.searchScope)
	switch {
	case errors.Is(err, search.ErrSuggestionNotFound):
		log.Printf("selected suggested result %q not found", value)
		http.Error(w, "suggestion not found", http.StatusNotFound)
		return
	case err != nil:
		log.Printf("failed to resolve suggestion %q: %v", value, err)
		http.Error(w, "search unavailable", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, uri, http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RefreshLoop refreshes the source now and then every refresh interval until
// ctx is done.
func (s *Server) RefreshLoop(ctx context.Context) {
	s.refreshOnce(ctx)
	if s.refresh <= 0 {
		return
	}

	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshOnce(ctx)
		}
	}
}

func (s *Server) refreshOnce(ctx context.Context) {
	if err := s.source.Refresh(ctx); err != nil {
		log.Printf("failed to refresh repositories: %v", err)
		return
	}
	log.Printf("refreshed %d repositories for %s", len(s.source.Repositories()), s.owner)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:    s.listenAddr,
		Handler: s.router,
	}

	go s.RefreshLoop(ctx)

	go func() {
		log.Printf("Starting projects server on %s", s.listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server gracefully stopped")
	return nil
}
