// Package server exposes the calculators over a JSON HTTP API built on fasthttp.
package server

import (
	"context"
	"errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/logging"
	"github.com/rgehrsitz/ptregime/internal/metrics"
	"github.com/rgehrsitz/ptregime/internal/store"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

// Pinger is implemented by stores with a remote backend
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure a Server. Zero values get working defaults.
type Options struct {
	Rates       *config.RateRegistry
	DefaultYear int
	Store       store.Store
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	Now         func() time.Time

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server routes requests to the calculators
type Server struct {
	rates       *config.RateRegistry
	defaultYear int
	store       store.Store
	metrics     *metrics.Metrics
	logger      *zap.Logger
	validate    *validator.Validate
	now         func() time.Time

	metricsHandler fasthttp.RequestHandler
	httpServer     *fasthttp.Server
}

// New creates a server
func New(opts Options) *Server {
	if opts.Rates == nil {
		opts.Rates = config.NewRateRegistry()
	}
	if opts.DefaultYear == 0 {
		opts.DefaultYear = 2025
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New("", nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		rates:       opts.Rates,
		defaultYear: opts.DefaultYear,
		store:       opts.Store,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		validate:    newValidator(),
		now:         opts.Now,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{}),
		),
	}
	s.httpServer = &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "ptregime",
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// ListenAndServe blocks serving on addr until Shutdown
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr), zap.Ints("fiscal_years", s.rates.Years()))
	return s.httpServer.ListenAndServe(addr)
}

// Shutdown stops accepting connections and waits for open requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.ShutdownWithContext(ctx)
}

type route struct {
	method  string
	handler func(ctx *fasthttp.RequestCtx) (any, error)
}

// Handler returns the routing handler wrapped with logging, metrics and recovery
func (s *Server) Handler() fasthttp.RequestHandler {
	routes := map[string]route{
		"/v1/simulate":   {fasthttp.MethodPost, s.handleSimulate},
		"/v1/compare":    {fasthttp.MethodPost, s.handleCompare},
		"/v1/breakeven":  {fasthttp.MethodPost, s.handleBreakeven},
		"/v1/irs":        {fasthttp.MethodPost, s.handleLiquidation},
		"/v1/thresholds": {fasthttp.MethodGet, s.handleThresholds},
		"/v1/hardware":   {fasthttp.MethodGet, s.handleHardware},
		"/v1/calendar":   {fasthttp.MethodGet, s.handleCalendar},
		"/v1/dashboard":  {fasthttp.MethodGet, s.handleDashboard},
		"/healthz":       {fasthttp.MethodGet, s.handleHealth},
	}

	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())
		name := path

		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler", zap.String("path", path), zap.Any("panic", rec))
				s.writeError(ctx, newAPIError(fasthttp.StatusInternalServerError, ErrCodeInternal, "internal error"))
			}
			status := ctx.Response.StatusCode()
			s.metrics.ObserveRequest(name, string(ctx.Method()), status, time.Since(start))
			s.logger.Debug("request",
				zap.ByteString("method", ctx.Method()),
				zap.String("path", path),
				zap.Int("status", status),
				zap.Duration("elapsed", time.Since(start)))
		}()

		switch {
		case path == "/metrics":
			s.metricsHandler(ctx)
			return
		case path == "/v1/simulations":
			s.dispatch(ctx, map[string]func(*fasthttp.RequestCtx) (any, error){
				fasthttp.MethodPost: s.handleSaveSimulation,
				fasthttp.MethodGet:  s.handleListSimulations,
			})
			return
		case strings.HasPrefix(path, "/v1/simulations/"):
			name = "/v1/simulations/{id}"
			s.dispatch(ctx, map[string]func(*fasthttp.RequestCtx) (any, error){
				fasthttp.MethodGet: s.handleGetSimulation,
			})
			return
		}

		r, ok := routes[path]
		if !ok {
			name = "unmatched"
			s.writeError(ctx, newAPIError(fasthttp.StatusNotFound, ErrCodeNotFound, "no route for %s", path))
			return
		}
		s.dispatch(ctx, map[string]func(*fasthttp.RequestCtx) (any, error){r.method: r.handler})
	}
}

func (s *Server) dispatch(ctx *fasthttp.RequestCtx, byMethod map[string]func(*fasthttp.RequestCtx) (any, error)) {
	h, ok := byMethod[string(ctx.Method())]
	if !ok {
		s.writeError(ctx, newAPIError(fasthttp.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"method %s not allowed", ctx.Method()))
		return
	}
	body, err := h(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	status := ctx.Response.StatusCode()
	if status == 0 {
		status = fasthttp.StatusOK
	}
	s.writeJSON(ctx, status, body)
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("encode response", zap.Error(err))
		ctx.Error(`{"status":500,"code":"INTERNAL","message":"encode response"}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		s.logger.Error("request failed", zap.ByteString("path", ctx.Path()), zap.Error(err))
		apiErr = newAPIError(fasthttp.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
	s.writeJSON(ctx, apiErr.Status, apiErr)
}

// decode parses a JSON body into dst and validates it
func (s *Server) decode(ctx *fasthttp.RequestCtx, dst any) error {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		return badRequest(ErrCodeInvalidJSON, "invalid request body: %v", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// engine returns a calculation engine for a fiscal year (0 = default)
func (s *Server) engine(year int) (*calculation.CalculationEngine, error) {
	if year == 0 {
		year = s.defaultYear
	}
	rt, err := s.rates.Get(year)
	if err != nil {
		return nil, newAPIError(fasthttp.StatusUnprocessableEntity, ErrCodeUnknownYear, "%v", err)
	}
	e := calculation.NewCalculationEngine(rt)
	e.SetLogger(logging.Sugared(s.logger))
	return e, nil
}
