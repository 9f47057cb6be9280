package http

import (
	"encoding/json"
	"io"
	"math"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository/memory"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/service"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	return NewApp(service.New(memory.New(), service.Options{}))
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded, string(raw)
}

func TestHealth(t *testing.T) {
	status, _, body := do(t, newApp(t), nethttp.MethodGet, "/health", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestRecordLifecycle(t *testing.T) {
	app := newApp(t)

	status, out, _ := do(t, app, nethttp.MethodPost, "/microgrids", `{"name":"Vila Solar","total_residences":4,"total_inhabitants":10}`)
	require.Equal(t, nethttp.StatusCreated, status)
	mid := int(out["id"].(float64))
	require.Positive(t, mid)

	status, out, _ = do(t, app, nethttp.MethodPost, "/monthly-records",
		`{"microgrid_id":1,"year":2024,"month":12,"watts_generated":333.333,"watts_consumed":100}`)
	require.Equal(t, nethttp.StatusCreated, status)
	assert.InDelta(t, 333.33, out["watts_generated"], 1e-9, "rounded to two decimals")
	assert.Equal(t, "kWh", out["generation_unit"])

	status, _, body := do(t, app, nethttp.MethodGet, "/estimates/microgrid/1", "")
	require.Equal(t, nethttp.StatusOK, status)
	var estimates []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &estimates))
	require.Len(t, estimates, 1)
	assert.EqualValues(t, 2025, estimates[0]["year"])
	assert.EqualValues(t, 1, estimates[0]["month"])
	assert.InDelta(t, 366.67, estimates[0]["estimated_watts"], 1e-9)

	status, out, _ = do(t, app, nethttp.MethodGet, "/monthly-records/microgrid/1/ratio", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.InDelta(t, 3.33, out["generation_consumption_ratio"], 1e-9)

	status, out, _ = do(t, app, nethttp.MethodGet, "/monthly-records/microgrid/1/2024/12", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.EqualValues(t, 12, out["month"])

	status, out, _ = do(t, app, nethttp.MethodPost, "/monthly-records",
		`{"microgrid_id":1,"year":2024,"month":12,"watts_generated":5,"watts_consumed":5}`)
	assert.Equal(t, nethttp.StatusBadRequest, status, "one record per month")
	assert.Contains(t, out["error"], "already exists")

	status, out, _ = do(t, app, nethttp.MethodPut, "/monthly-records/1", `{"watts_generated":1000,"watts_consumed":100}`)
	require.Equal(t, nethttp.StatusOK, status, "measurements alone are enough to update")
	assert.EqualValues(t, 12, out["month"])
	status, out, _ = do(t, app, nethttp.MethodGet, "/estimates/microgrid/1/average", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.InDelta(t, 1100.0, out["average"], 1e-9)

	status, _, _ = do(t, app, nethttp.MethodDelete, "/monthly-records/1", "")
	assert.Equal(t, nethttp.StatusNoContent, status)
	status, out, _ = do(t, app, nethttp.MethodDelete, "/monthly-records/1", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Contains(t, out["error"], "not found")

	status, _, _ = do(t, app, nethttp.MethodGet, "/estimates/microgrid/1", "")
	assert.Equal(t, nethttp.StatusNotFound, status, "derived estimate removed with its record")
}

func TestErrorMapping(t *testing.T) {
	app := newApp(t)

	cases := []struct {
		name, method, path, body string
		status                   int
	}{
		{"invalid record", nethttp.MethodPost, "/monthly-records", `{"microgrid_id":1,"year":24,"month":5,"watts_generated":1,"watts_consumed":1}`, nethttp.StatusBadRequest},
		{"malformed body", nethttp.MethodPost, "/monthly-records", `{"year":`, nethttp.StatusBadRequest},
		{"generation too large to project", nethttp.MethodPost, "/monthly-records", `{"microgrid_id":1,"year":2024,"month":5,"watts_generated":1.7e308,"watts_consumed":1}`, nethttp.StatusBadRequest},
		{"bad id", nethttp.MethodGet, "/monthly-records/abc", "", nethttp.StatusBadRequest},
		{"zero id", nethttp.MethodGet, "/estimates/0", "", nethttp.StatusBadRequest},
		{"empty listing", nethttp.MethodGet, "/microgrids", "", nethttp.StatusNotFound},
		{"bad year filter", nethttp.MethodGet, "/estimates/microgrid/1/year/99", "", nethttp.StatusBadRequest},
		{"missing limit", nethttp.MethodGet, "/estimates/microgrid/1/exceeds", "", nethttp.StatusBadRequest},
		{"unknown route", nethttp.MethodGet, "/nope", "", nethttp.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, out, _ := do(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestPanicBecomesServerError(t *testing.T) {
	app := newApp(t)
	app.Get("/boom", func(*fiber.Ctx) error { panic("boom") })

	status, out, _ := do(t, app, nethttp.MethodGet, "/boom", "")
	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.NotEmpty(t, out["error"])

	status, _, _ = do(t, app, nethttp.MethodGet, "/health", "")
	assert.Equal(t, nethttp.StatusOK, status, "app keeps serving")
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 366.67, round2(366.6663), 1e-9)
	assert.NotPanics(t, func() {
		assert.True(t, math.IsInf(round2(math.Inf(1)), 1))
		assert.True(t, math.IsNaN(round2(math.NaN())))
	})
}

func TestSourceRoutes(t *testing.T) {
	app := newApp(t)

	status, out, _ := do(t, app, nethttp.MethodPost, "/energy-sources/validate", `{"microgrid_id":1,"type":"solar","installed_capacity":12}`)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, true, out["valid"])

	for _, body := range []string{
		`{"microgrid_id":1,"type":"solar","installed_capacity":10}`,
		`{"microgrid_id":1,"type":"wind","installed_capacity":25.5}`,
		`{"microgrid_id":1,"type":"battery","installed_capacity":4.5}`,
	} {
		status, _, _ := do(t, app, nethttp.MethodPost, "/energy-sources", body)
		require.Equal(t, nethttp.StatusCreated, status)
	}

	status, out, _ = do(t, app, nethttp.MethodGet, "/energy-sources/microgrid/1/capacity", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.InDelta(t, 40.0, out["total_installed_capacity"], 1e-9)

	status, out, _ = do(t, app, nethttp.MethodGet, "/energy-sources/microgrid/1/within-limit?limit=20", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, false, out["within_limit"])
}

func TestReportRoutes(t *testing.T) {
	app := newApp(t)
	do(t, app, nethttp.MethodPost, "/microgrids", `{"name":"Vila Verde"}`)

	status, _, _ := do(t, app, nethttp.MethodGet, "/reports/1", "")
	assert.Equal(t, nethttp.StatusNotFound, status, "no records yet")

	do(t, app, nethttp.MethodPost, "/monthly-records", `{"microgrid_id":1,"year":2024,"month":3,"watts_generated":90,"watts_consumed":100}`)

	status, out, _ := do(t, app, nethttp.MethodGet, "/reports/1", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Vila Verde", out["microgrid_name"])
	assert.InDelta(t, 0.9, out["generation_consumption_ratio"], 1e-9)

	status, _, body := do(t, app, nethttp.MethodGet, "/reports/1?format=text", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, body, "Vila Verde (#1)")

	status, _, body = do(t, app, nethttp.MethodGet, "/reports/1?format=pdf", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.True(t, strings.HasPrefix(body, "%PDF"))

	status, _, _ = do(t, app, nethttp.MethodGet, "/reports/1?format=xml", "")
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, out, _ = do(t, app, nethttp.MethodPost, "/reports/1/publish", "")
	assert.Equal(t, nethttp.StatusAccepted, status)
	assert.NotEmpty(t, out["report_id"])
}
