// Package server exposes a loaded road graph over HTTP: single queries with
// either engine, side-by-side comparisons, nearest-node lookup, graph stats
// and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/roadpath/metrics"
	"github.com/katalvlaran/roadpath/reach"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// DefaultAddr is used when no address is configured.
const DefaultAddr = "127.0.0.1:8095"

// Server serves one immutable graph. Handlers may run concurrently; every
// query allocates its own search state.
type Server struct {
	graph    *roadgraph.Graph
	mapName  string
	comps    *reach.Components
	strong   *reach.Components
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Collector
	requests *prometheus.CounterVec
	router   *gin.Engine
	server   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMapName labels the graph in /v1/graph.
func WithMapName(name string) Option {
	return func(s *Server) { s.mapName = name }
}

// WithAddr sets the listen address for Start.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.server.Addr = addr
		}
	}
}

// New builds the router for g. It computes weak and strong components once and
// registers its collectors on a private registry served at /metrics.
func New(g *roadgraph.Graph, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		graph:    g,
		comps:    reach.Weak(g),
		strong:   reach.Strong(g),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry: reg,
		metrics:  metrics.New(reg),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadpath_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		server: &http.Server{
			Addr:         DefaultAddr,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	reg.MustRegister(s.requests)
	s.metrics.SetGraph(g.Stats())

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	v1 := r.Group("/v1")
	v1.GET("/graph", s.handleGraph)
	v1.GET("/route", s.handleRoute)
	v1.GET("/compare", s.handleCompare)
	v1.GET("/nearest", s.handleNearest)
	v1.GET("/reach", s.handleReach)

	s.router = r
	s.server.Handler = r

	return s
}

// Handler returns the router, for tests and for embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start runs the HTTP server until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.server.Addr, "map", s.mapName)
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("server stopping")
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		s.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", code,
			"elapsed", time.Since(start),
		)
	}
}
