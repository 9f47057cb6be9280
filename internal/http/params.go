package http

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

func paramID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.IllegalArgument("invalid %s %q", name, raw)
	}
	return id, nil
}

func paramInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Params(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.IllegalArgument("invalid %s %q", name, raw)
	}
	return v, nil
}

func queryFloat(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, domain.IllegalArgument("query parameter %s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.IllegalArgument("invalid %s %q", name, raw)
	}
	return v, nil
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.IllegalArgument("malformed request body: %v", err)
	}
	return nil
}

// round2 is the only place measurements are rounded. Non-finite values have
// no decimal form and pass through unchanged.
func round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func recordView(r domain.MonthlyRecord) domain.MonthlyRecord {
	r.WattsGenerated = round2(r.WattsGenerated)
	r.WattsConsumed = round2(r.WattsConsumed)
	return r
}

func recordViews(items []domain.MonthlyRecord) []domain.MonthlyRecord {
	out := make([]domain.MonthlyRecord, len(items))
	for i, r := range items {
		out[i] = recordView(r)
	}
	return out
}

func estimateView(e domain.Estimate) domain.Estimate {
	e.EstimatedWatts = round2(e.EstimatedWatts)
	return e
}

func estimateViews(items []domain.Estimate) []domain.Estimate {
	out := make([]domain.Estimate, len(items))
	for i, e := range items {
		out[i] = estimateView(e)
	}
	return out
}

func summaryView(s report.Summary) report.Summary {
	s.TotalGenerated = round2(s.TotalGenerated)
	s.TotalConsumed = round2(s.TotalConsumed)
	s.AverageDelta = round2(s.AverageDelta)
	s.Ratio = round2(s.Ratio)
	s.AverageEstimate = round2(s.AverageEstimate)
	s.ProjectedAnnual = round2(s.ProjectedAnnual)
	s.InstalledCapacity = round2(s.InstalledCapacity)
	trend := make([]float64, len(s.EstimateTrend))
	for i, v := range s.EstimateTrend {
		trend[i] = round2(v)
	}
	s.EstimateTrend = trend
	return s
}
