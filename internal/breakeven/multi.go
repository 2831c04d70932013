package breakeven

import (
	"context"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// Curve runs the breakeven search for each daily rate, keeping the rest of
// base fixed. The gross income for each run is derived from the rate.
func (s *Solver) Curve(ctx context.Context, base domain.CalculatorInput, rates []decimal.Decimal) ([]CurvePoint, error) {
	if len(rates) == 0 {
		return nil, &BreakEvenError{
			Operation: "curve",
			Message:   "at least one daily rate is required",
		}
	}

	points := make([]CurvePoint, 0, len(rates))
	for _, rate := range rates {
		if err := ctx.Err(); err != nil {
			return nil, &BreakEvenError{
				Operation: "curve",
				Message:   "cancelled",
				Cause:     err,
			}
		}

		in := base
		in.DailyRate = rate
		gross := in.Normalize(s.CalcEngine.Rates).GrossAnnual()

		res := s.Find(gross, in)
		res.Points = nil
		points = append(points, CurvePoint{DailyRate: rate, Result: res})
	}
	return points, nil
}

// RateRange builds an inclusive list of rates from min to max in step increments
func RateRange(min, max, step decimal.Decimal) []decimal.Decimal {
	if !step.IsPositive() || max.LessThan(min) {
		return nil
	}
	var out []decimal.Decimal
	for r := min; r.LessThanOrEqual(max); r = r.Add(step) {
		out = append(out, r)
	}
	return out
}
