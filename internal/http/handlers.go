package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/service"
)

// NewApp builds the fiber app with every route registered.
func NewApp(svcs *service.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestLogger)
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	Register(app, svcs)
	return app
}

func Register(app *fiber.App, svcs *service.Services) {
	h := &handlers{svcs: svcs}

	g := app.Group("/microgrids")
	g.Get("/", h.listMicrogrids)
	g.Get("/:id", h.getMicrogrid)
	g.Get("/:id/density", h.microgridDensity)
	g.Post("/", h.createMicrogrid)
	g.Put("/:id", h.updateMicrogrid)
	g.Delete("/:id", h.deleteMicrogrid)

	s := app.Group("/energy-sources")
	s.Get("/", h.listSources)
	s.Post("/validate", h.validateSource)
	s.Get("/microgrid/:mid", h.sourcesByMicrogrid)
	s.Get("/microgrid/:mid/capacity", h.sourceCapacity)
	s.Get("/microgrid/:mid/within-limit", h.sourcesWithinLimit)
	s.Get("/:id", h.getSource)
	s.Get("/:id/outlook", h.sourceOutlook)
	s.Post("/", h.createSource)
	s.Put("/:id", h.updateSource)
	s.Delete("/:id", h.deleteSource)

	r := app.Group("/monthly-records")
	r.Get("/", h.listRecords)
	r.Get("/microgrid/:mid", h.recordsByMicrogrid)
	r.Get("/microgrid/:mid/ratio", h.recordRatio)
	r.Get("/microgrid/:mid/average-delta", h.recordAverageDelta)
	r.Get("/microgrid/:mid/:year/:month", h.recordByPeriod)
	r.Get("/:id", h.getRecord)
	r.Post("/", h.createRecord)
	r.Put("/:id", h.updateRecord)
	r.Delete("/:id", h.deleteRecord)

	e := app.Group("/estimates")
	e.Get("/", h.listEstimates)
	e.Get("/microgrid/:mid", h.estimatesByMicrogrid)
	e.Get("/microgrid/:mid/average", h.estimateAverage)
	e.Get("/microgrid/:mid/exceeds", h.estimateExceeds)
	e.Get("/microgrid/:mid/annual", h.estimateAnnual)
	e.Get("/microgrid/:mid/year/:year", h.estimatesByYear)
	e.Get("/:id", h.getEstimate)
	e.Post("/", h.createEstimate)
	e.Delete("/:id", h.deleteEstimate)

	rp := app.Group("/reports")
	rp.Get("/:mid", h.getReport)
	rp.Post("/:mid/publish", h.publishReport)
}

type handlers struct {
	svcs *service.Services
}

func (h *handlers) listMicrogrids(c *fiber.Ctx) error {
	items, err := h.svcs.Microgrids.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *handlers) getMicrogrid(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.svcs.Microgrids.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

func (h *handlers) microgridDensity(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	limit, err := queryFloat(c, "limit")
	if err != nil {
		return err
	}
	d, ok, err := h.svcs.Microgrids.DensityWithin(c.UserContext(), id, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"density": round2(d), "limit": limit, "within_limit": ok})
}

func (h *handlers) createMicrogrid(c *fiber.Ctx) error {
	var m domain.Microgrid
	if err := bind(c, &m); err != nil {
		return err
	}
	saved, err := h.svcs.Microgrids.Create(c.UserContext(), m)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *handlers) updateMicrogrid(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var m domain.Microgrid
	if err := bind(c, &m); err != nil {
		return err
	}
	m.ID = id
	updated, err := h.svcs.Microgrids.Update(c.UserContext(), m)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *handlers) deleteMicrogrid(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svcs.Microgrids.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) listSources(c *fiber.Ctx) error {
	items, err := h.svcs.Sources.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *handlers) getSource(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	src, err := h.svcs.Sources.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(src)
}

func (h *handlers) sourceOutlook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svcs.Sources.Outlook(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) sourcesByMicrogrid(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	items, err := h.svcs.Sources.ByMicrogrid(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *handlers) sourceCapacity(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	total, err := h.svcs.Sources.TotalCapacity(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"microgrid_id": mid, "total_installed_capacity": round2(total)})
}

func (h *handlers) sourcesWithinLimit(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	limit, err := queryFloat(c, "limit")
	if err != nil {
		return err
	}
	ok, err := h.svcs.Sources.AllWithinLimit(c.UserContext(), mid, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"microgrid_id": mid, "limit": limit, "within_limit": ok})
}

func (h *handlers) validateSource(c *fiber.Ctx) error {
	var src domain.EnergySource
	if err := bind(c, &src); err != nil {
		return err
	}
	checked, err := h.svcs.Sources.Check(src)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"valid": true, "source": checked, "description": checked.Describe()})
}

func (h *handlers) createSource(c *fiber.Ctx) error {
	var src domain.EnergySource
	if err := bind(c, &src); err != nil {
		return err
	}
	saved, err := h.svcs.Sources.Create(c.UserContext(), src)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *handlers) updateSource(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var src domain.EnergySource
	if err := bind(c, &src); err != nil {
		return err
	}
	src.ID = id
	updated, err := h.svcs.Sources.Update(c.UserContext(), src)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *handlers) deleteSource(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svcs.Sources.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) listRecords(c *fiber.Ctx) error {
	items, err := h.svcs.Records.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(recordViews(items))
}

func (h *handlers) getRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	r, err := h.svcs.Records.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(recordView(*r))
}

func (h *handlers) recordsByMicrogrid(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	items, err := h.svcs.Records.ByMicrogrid(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(recordViews(items))
}

func (h *handlers) recordByPeriod(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	year, err := paramInt(c, "year")
	if err != nil {
		return err
	}
	month, err := paramInt(c, "month")
	if err != nil {
		return err
	}
	r, err := h.svcs.Records.ByPeriod(c.UserContext(), mid, domain.Period{Year: year, Month: month})
	if err != nil {
		return err
	}
	return c.JSON(recordView(*r))
}

func (h *handlers) recordRatio(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	ratio, err := h.svcs.Records.Ratio(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"microgrid_id": mid, "generation_consumption_ratio": round2(ratio)})
}

func (h *handlers) recordAverageDelta(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	delta, err := h.svcs.Records.AverageDelta(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"microgrid_id": mid, "average_delta": round2(delta)})
}

func (h *handlers) createRecord(c *fiber.Ctx) error {
	var r domain.MonthlyRecord
	if err := bind(c, &r); err != nil {
		return err
	}
	saved, err := h.svcs.Records.Create(c.UserContext(), r)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(recordView(*saved))
}

func (h *handlers) updateRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var r domain.MonthlyRecord
	if err := bind(c, &r); err != nil {
		return err
	}
	r.ID = id
	updated, err := h.svcs.Records.Update(c.UserContext(), r)
	if err != nil {
		return err
	}
	return c.JSON(recordView(*updated))
}

func (h *handlers) deleteRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svcs.Records.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) listEstimates(c *fiber.Ctx) error {
	items, err := h.svcs.Estimates.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(estimateViews(items))
}

func (h *handlers) getEstimate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	e, err := h.svcs.Estimates.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(estimateView(*e))
}

func (h *handlers) estimatesByMicrogrid(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	items, err := h.svcs.Estimates.ByMicrogrid(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(estimateViews(items))
}

func (h *handlers) estimateAverage(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	avg, err := h.svcs.Estimates.Average(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"microgrid_id": mid, "average": round2(avg)})
}

func (h *handlers) estimateExceeds(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	limit, err := queryFloat(c, "limit")
	if err != nil {
		return err
	}
	exceeds, err := h.svcs.Estimates.Exceeds(c.UserContext(), mid, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"microgrid_id": mid, "limit": limit, "exceeds": exceeds})
}

func (h *handlers) estimateAnnual(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	total, err := h.svcs.Estimates.AnnualProjection(c.UserContext(), mid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"microgrid_id": mid, "projected_annual": round2(total)})
}

func (h *handlers) estimatesByYear(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	year, err := paramInt(c, "year")
	if err != nil {
		return err
	}
	items, avg, err := h.svcs.Estimates.ByYear(c.UserContext(), mid, year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"year": year, "estimates": estimateViews(items), "average": round2(avg)})
}

func (h *handlers) createEstimate(c *fiber.Ctx) error {
	var e domain.Estimate
	if err := bind(c, &e); err != nil {
		return err
	}
	saved, err := h.svcs.Estimates.Create(c.UserContext(), e)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(estimateView(*saved))
}

func (h *handlers) deleteEstimate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svcs.Estimates.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// getReport renders a summary as json (default), text or pdf.
func (h *handlers) getReport(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	sum, err := h.svcs.Reports.Build(c.UserContext(), mid)
	if err != nil {
		return err
	}

	switch format := c.Query("format", "json"); format {
	case "json":
		return c.JSON(summaryView(*sum))
	case "text":
		var buf bytes.Buffer
		if err := report.RenderText(&buf, sum); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Send(buf.Bytes())
	case "pdf":
		var buf bytes.Buffer
		if err := report.WritePDF(&buf, sum); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Attachment(sum.ID + ".pdf")
		return c.Send(buf.Bytes())
	default:
		return domain.IllegalArgument("unknown report format %q", format)
	}
}

func (h *handlers) publishReport(c *fiber.Ctx) error {
	mid, err := paramID(c, "mid")
	if err != nil {
		return err
	}
	sum, err := h.svcs.Reports.Build(c.UserContext(), mid)
	if err != nil {
		return err
	}
	if err := h.svcs.Reports.Publish(c.UserContext(), sum); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"report_id": sum.ID})
}
