package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/dealerdash/dashboard-gateway/access"
	"github.com/dealerdash/dashboard-gateway/api"
	"github.com/dealerdash/dashboard-gateway/internal/config"
	"github.com/dealerdash/dashboard-gateway/session"
)

// Server is the local dashboard gateway. It guards the dashboard's route
// space, proxies the upstream dealer API, and applies the scope filter to
// every record list before it leaves the process.
type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	access   *access.Service
	registry *prometheus.Registry
	log      zerolog.Logger
}

func New(cfg config.Config, log zerolog.Logger) (*Server, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	kv, err := session.OpenFileKV(cfg.GetSessionFile())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to open session store: %w", err)
	}
	store, err := session.NewStore(kv)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session store: %w", err)
	}

	client, err := api.New(
		cfg.GetAPIBaseURL(),
		func() string { return store.Get().Token },
		api.WithLogger(log.With().Str("component", "api").Logger()),
		api.WithMetrics(api.NewMetrics(registry)),
	)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create API client: %w", err)
	}

	svc, err := access.NewService(store, client, access.WithLogger(log.With().Str("component", "access").Logger()))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create access service: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		access:   svc,
		registry: registry,
		log:      log,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

// NewWithService wires a Server around an existing access service. Used by
// tests and by callers that manage their own store/client.
func NewWithService(cfg config.Config, svc *access.Service, log zerolog.Logger) *Server {
	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		access:   svc,
		registry: prometheus.NewRegistry(),
		log:      log,
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.log.Debug().Str("route", route).Msg("registered")
	}
}
