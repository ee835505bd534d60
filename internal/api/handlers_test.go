package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecostat/app"
	"ecostat/internal"
	"ecostat/internal/config"
	"ecostat/internal/resample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() *Handler {
	cfg := config.AnalysisConfig{
		BootstrapTrials: 100,
		Confidence:      0.95,
		Seed:            42,
		Workers:         1,
	}
	logger := internal.NewDefaultLogger()
	fish := app.NewFishSurveyService(cfg, logger)
	water := app.NewWaterQualityService(cfg, logger)
	return NewHandler(fish, water, nil, nil, cfg, logger)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	testHandler().Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestBootstrapEndpoint(t *testing.T) {
	seed := int64(42)
	body, _ := json.Marshal(bootstrapRequest{
		Sample: []float64{1, 2, 3, 4, 5},
		Trials: 500,
		Seed:   &seed,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bootstrap", bytes.NewReader(body))

	testHandler().Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result resample.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Replicates, 500)
	assert.Equal(t, int64(42), result.Seed)
	assert.InDelta(t, 3.0, result.Mean, 0.2)
	assert.LessOrEqual(t, result.CI.Lower, result.CI.Upper)
}

func TestBootstrapEndpoint_Deterministic(t *testing.T) {
	seed := int64(7)
	body, _ := json.Marshal(bootstrapRequest{
		Sample:    []float64{3.1, 4.1, 5.9, 2.6},
		Statistic: "median",
		Seed:      &seed,
	})

	handler := testHandler()
	run := func() string {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/bootstrap", bytes.NewReader(body))
		handler.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	assert.Equal(t, run(), run())
}

func TestBootstrapEndpoint_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty sample", `{"sample": []}`},
		{"unknown statistic", `{"sample": [1, 2], "statistic": "mode"}`},
		{"confidence out of range", `{"sample": [1, 2], "confidence": 1.5}`},
		{"malformed json", `{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/bootstrap", bytes.NewReader([]byte(tc.body)))

			testHandler().Router().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_INPUT", resp["code"])
		})
	}
}

func TestFishSurveyEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/fish-survey?seed=42", nil)

	testHandler().Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report app.FishSurveyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, int64(42), report.Seed)
	assert.Len(t, report.Habitats, 3)
	require.NotNil(t, report.Anova)
}

func TestWaterQualityEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/water-quality?seed=42", nil)

	testHandler().Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report app.WaterQualityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Analyses, 12)
	assert.Len(t, report.Levene, 4)
}

func TestListAnalyses_WithoutPersistence(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/analyses", nil)

	testHandler().Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "persistence is not configured")
}
