package server

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/ptregime/internal/breakeven"
	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/calendar"
	"github.com/rgehrsitz/ptregime/internal/compare"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/insights"
	"github.com/rgehrsitz/ptregime/internal/store"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

const storeTimeout = 3 * time.Second

// SimulateResponse lists one breakdown per requested regime
type SimulateResponse struct {
	FiscalYear int                   `json:"fiscal_year"`
	Results    []domain.TaxBreakdown `json:"results"`
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) (any, error) {
	var req SimulateRequest
	if err := s.decode(ctx, &req); err != nil {
		return nil, err
	}
	engine, err := s.engine(req.FiscalYear)
	if err != nil {
		return nil, err
	}

	in := req.Input.ToInput(engine.Rates)
	resp := SimulateResponse{FiscalYear: engine.Rates.Metadata.FiscalYear}
	if req.Regime != "" {
		r := domain.Regime(req.Regime)
		resp.Results = []domain.TaxBreakdown{engine.Calculate(r, in)}
	} else {
		resp.Results = engine.All(in).List()
	}
	for _, b := range resp.Results {
		s.metrics.CountCalculation(string(b.Regime), 1)
	}
	return resp, nil
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) (any, error) {
	var req CompareRequest
	if err := s.decode(ctx, &req); err != nil {
		return nil, err
	}
	engine, err := s.engine(req.FiscalYear)
	if err != nil {
		return nil, err
	}

	set, err := compare.NewCompareEngine(engine).Compare(ctx, req.Input.ToInput(engine.Rates),
		compare.CompareOptions{BaseRegime: domain.Regime(req.BaseRegime)})
	if err != nil {
		return nil, badRequest(ErrCodeInvalidParameter, "%v", err)
	}
	for _, r := range domain.AllRegimes {
		s.metrics.CountCalculation(string(r), 1)
	}
	return set, nil
}

func (s *Server) handleBreakeven(ctx *fasthttp.RequestCtx) (any, error) {
	var req BreakevenRequest
	if err := s.decode(ctx, &req); err != nil {
		return nil, err
	}
	engine, err := s.engine(req.FiscalYear)
	if err != nil {
		return nil, err
	}

	in := req.Input.ToInput(engine.Rates)
	gross := in.Normalize(engine.Rates).GrossAnnual()
	if req.GrossIncome != nil {
		gross = dec(*req.GrossIncome)
	}

	opts := breakeven.DefaultSolverOptions(engine.Rates)
	opts.KeepPoints = req.KeepPoints
	if req.Step != nil {
		opts.Step = dec(*req.Step)
	}
	if err := opts.Validate(); err != nil {
		return nil, badRequest(ErrCodeInvalidParameter, "%v", err)
	}

	samples := opts.Samples(gross)
	if samples > breakeven.MaxSweepSamples {
		apiErr := badRequest(ErrCodeValidation, "sweep of %d samples exceeds the limit of %d", samples, breakeven.MaxSweepSamples)
		apiErr.Fields = map[string]string{"step": "max_samples=" + strconv.Itoa(breakeven.MaxSweepSamples)}
		return nil, apiErr
	}

	res := breakeven.NewSolver(engine, opts).Find(gross, in)
	if samples > 0 {
		s.metrics.BreakevenSamples.Observe(float64(samples))
	}
	return res, nil
}

func (s *Server) handleLiquidation(ctx *fasthttp.RequestCtx) (any, error) {
	var req LiquidationRequest
	if err := s.decode(ctx, &req); err != nil {
		return nil, err
	}
	engine, err := s.engine(req.FiscalYear)
	if err != nil {
		return nil, err
	}
	in := req.ToInput()
	if err := in.Validate(); err != nil {
		return nil, badRequest(ErrCodeValidation, "%v", err)
	}
	return engine.Liquidate(in), nil
}

func (s *Server) handleThresholds(ctx *fasthttp.RequestCtx) (any, error) {
	income, err := decimalParam(ctx, "income")
	if err != nil {
		return nil, err
	}
	engine, err := s.yearParamEngine(ctx)
	if err != nil {
		return nil, err
	}
	return insights.CheckThresholds(income, engine.Rates), nil
}

func (s *Server) handleHardware(ctx *fasthttp.RequestCtx) (any, error) {
	price, err := decimalParam(ctx, "price")
	if err != nil {
		return nil, err
	}
	engine, err := s.yearParamEngine(ctx)
	if err != nil {
		return nil, err
	}
	return insights.CompareHardwarePurchase(price, engine.Rates), nil
}

// handleCalendar returns a full year with ?year=, one month with ?year=&month=,
// or the current month with statuses when neither is given
func (s *Server) handleCalendar(ctx *fasthttp.RequestCtx) (any, error) {
	args := ctx.QueryArgs()
	if !args.Has("year") {
		return calendar.Upcoming(s.now()), nil
	}
	year, err := intParam(ctx, "year", 2000, 2100)
	if err != nil {
		return nil, err
	}
	if args.Has("month") {
		month, err := intParam(ctx, "month", 1, 12)
		if err != nil {
			return nil, err
		}
		return calendar.Month(year, time.Month(month), time.UTC), nil
	}
	return calendar.Year(year, time.UTC), nil
}

func (s *Server) handleSaveSimulation(ctx *fasthttp.RequestCtx) (any, error) {
	var req SaveRequest
	if err := s.decode(ctx, &req); err != nil {
		return nil, err
	}
	engine, err := s.engine(req.FiscalYear)
	if err != nil {
		return nil, err
	}

	in := req.Input.ToInput(engine.Rates)
	sim := &domain.SavedSimulation{
		UserID: req.UserID,
		Title:  req.Title,
		Regime: domain.Regime(req.Regime),
		Input:  in,
	}
	if sim.Regime == "" {
		sim.Regime = domain.RegimeContractor
	}
	for _, b := range engine.All(in).List() {
		sim.Summary = append(sim.Summary, domain.Summarize(b))
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.store.Save(sctx, sim); err != nil {
		return nil, storeError(err)
	}
	s.metrics.SimulationsSaved.Inc()

	ctx.SetStatusCode(fasthttp.StatusCreated)
	return sim, nil
}

func (s *Server) handleListSimulations(ctx *fasthttp.RequestCtx) (any, error) {
	userID, err := requiredParam(ctx, "user_id")
	if err != nil {
		return nil, err
	}
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	list, err := s.store.List(sctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Server) handleGetSimulation(ctx *fasthttp.RequestCtx) (any, error) {
	id := strings.TrimPrefix(string(ctx.Path()), "/v1/simulations/")
	if id == "" || strings.Contains(id, "/") {
		return nil, newAPIError(fasthttp.StatusNotFound, ErrCodeNotFound, "simulation not found")
	}
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	sim, err := s.store.Get(sctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return sim, nil
}

func (s *Server) handleDashboard(ctx *fasthttp.RequestCtx) (any, error) {
	userID, err := requiredParam(ctx, "user_id")
	if err != nil {
		return nil, err
	}
	engine, err := s.yearParamEngine(ctx)
	if err != nil {
		return nil, err
	}
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	history, err := s.store.List(sctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return insights.BuildDashboard(history, engine.Rates, engine.Calculate), nil
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) (any, error) {
	status := map[string]any{"status": "ok", "fiscal_years": s.rates.Years()}
	if p, ok := s.store.(Pinger); ok {
		pctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := p.Ping(pctx); err != nil {
			return nil, newAPIError(fasthttp.StatusServiceUnavailable, ErrCodeUnavailable, "%v", err)
		}
	}
	return status, nil
}

func (s *Server) yearParamEngine(ctx *fasthttp.RequestCtx) (*calculation.CalculationEngine, error) {
	if !ctx.QueryArgs().Has("year") {
		return s.engine(0)
	}
	year, err := intParam(ctx, "year", 2000, 2100)
	if err != nil {
		return nil, err
	}
	return s.engine(year)
}

func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return newAPIError(fasthttp.StatusNotFound, ErrCodeNotFound, "simulation not found")
	case errors.Is(err, store.ErrInvalid):
		return badRequest(ErrCodeValidation, "%v", err)
	case errors.Is(err, context.DeadlineExceeded):
		return newAPIError(fasthttp.StatusServiceUnavailable, ErrCodeUnavailable, "store timed out")
	}
	return err
}

func requiredParam(ctx *fasthttp.RequestCtx, name string) (string, error) {
	v := string(ctx.QueryArgs().Peek(name))
	if v == "" {
		return "", badRequest(ErrCodeInvalidParameter, "query parameter %s is required", name)
	}
	return v, nil
}

func decimalParam(ctx *fasthttp.RequestCtx, name string) (decimal.Decimal, error) {
	raw, err := requiredParam(ctx, name)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		return decimal.Zero, badRequest(ErrCodeInvalidParameter, "%s must be a non-negative number", name)
	}
	return v, nil
}

func intParam(ctx *fasthttp.RequestCtx, name string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(string(ctx.QueryArgs().Peek(name)))
	if err != nil || v < lo || v > hi {
		return 0, badRequest(ErrCodeInvalidParameter, "%s must be an integer between %d and %d", name, lo, hi)
	}
	return v, nil
}
