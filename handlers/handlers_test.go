package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"go-firewatch/advisory"
	"go-firewatch/types"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	generator := advisory.NewGenerator(nil, "")

	r.POST("/spread", func(c *gin.Context) { ComputeSpread(c, nil) })
	r.POST("/recommendations", func(c *gin.Context) { GenerateRecommendations(c, nil) })
	r.POST("/brief", func(c *gin.Context) { GenerateBrief(c, nil) })
	r.POST("/insights", func(c *gin.Context) { GenerateInsights(c, nil, generator) })
	r.GET("/risk", ComputeRisk)
	r.GET("/scenarios", GetScenarios)
	r.GET("/scenarios/:id", GetScenarioByID)

	return r
}

const validBody = `{
	"incident": {
		"id": "test_001",
		"name": "Ridgeline Fire",
		"lat": 37.42,
		"lon": -122.17,
		"startTimeISO": "2026-02-13T18:30:00Z",
		"perimeter": {"type": "Point", "radiusMeters": 120},
		"fuelProxy": "mixed"
	},
	"weather": {"windSpeedMps": 8.2, "windGustMps": 12.7, "windDirDeg": 245, "temperatureC": 29, "humidityPct": 18},
	"assets": [{"id": "a1", "type": "community", "name": "Hilltop Community", "lat": 37.421, "lon": -122.169, "priority": "high"}],
	"resources": {"enginesAvailable": 2, "dozersAvailable": 0, "airSupportAvailable": true, "etaMinutesEngine": 25, "etaMinutesAir": 60}
}`

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestComputeSpreadEndpoint(t *testing.T) {
	r := testRouter()
	w := doRequest(t, r, http.MethodPost, "/spread", validBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Envelopes []types.SpreadEnvelope `json:"envelopes"`
		Explain   types.SpreadExplain    `json:"explain"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Envelopes) != 3 {
		t.Errorf("got %d envelopes, want 3", len(resp.Envelopes))
	}
	if resp.Explain.Model != "wind-cone-v1" {
		t.Errorf("model = %q", resp.Explain.Model)
	}
}

func TestComputeSpreadRejectsMissingIncident(t *testing.T) {
	r := testRouter()
	w := doRequest(t, r, http.MethodPost, "/spread", `{"weather": {"windSpeedMps": 5}}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestComputeSpreadRejectsBadHorizon(t *testing.T) {
	r := testRouter()
	withHorizon := `{
		"incident": {"id": "x", "lat": 37.42, "lon": -122.17, "perimeter": {"type": "Point", "radiusMeters": 100}, "fuelProxy": "mixed"},
		"weather": {"windSpeedMps": 5, "humidityPct": 30},
		"horizonHours": 24
	}`
	w := doRequest(t, r, http.MethodPost, "/spread", withHorizon)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for horizon 24", w.Code)
	}
}

func TestGenerateRecommendationsEndpoint(t *testing.T) {
	r := testRouter()
	w := doRequest(t, r, http.MethodPost, "/recommendations", validBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Cards     []types.ActionCard `json:"cards"`
		RiskScore types.RiskScore    `json:"riskScore"`
		Brief     types.Brief        `json:"brief"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Cards) != 3 {
		t.Errorf("got %d cards, want 3", len(resp.Cards))
	}
	if resp.RiskScore.Total < 0 || resp.RiskScore.Total > 100 {
		t.Errorf("risk total = %d", resp.RiskScore.Total)
	}
	if resp.Brief.OneLiner == "" {
		t.Error("brief one-liner is empty")
	}
}

func TestGenerateRecommendationsRequiresResources(t *testing.T) {
	r := testRouter()
	body := `{
		"incident": {"id": "x", "lat": 37.42, "lon": -122.17, "perimeter": {"type": "Point", "radiusMeters": 100}, "fuelProxy": "mixed"},
		"weather": {"windSpeedMps": 5, "humidityPct": 30}
	}`
	w := doRequest(t, r, http.MethodPost, "/recommendations", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without resources", w.Code)
	}
}

func TestComputeRiskEndpoint(t *testing.T) {
	r := testRouter()
	w := doRequest(t, r, http.MethodGet, "/risk?windSpeedMps=10&humidityPct=15&timeToImpactMin=180", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var score types.RiskScore
	if err := json.Unmarshal(w.Body.Bytes(), &score); err != nil {
		t.Fatal(err)
	}
	if score.Breakdown.WindSeverity != 50 || score.Breakdown.HumiditySeverity != 75 {
		t.Errorf("breakdown = %+v", score.Breakdown)
	}
}

func TestComputeRiskValidation(t *testing.T) {
	r := testRouter()
	for _, path := range []string{
		"/risk",
		"/risk?windSpeedMps=abc&humidityPct=15",
		"/risk?windSpeedMps=10&humidityPct=150",
		"/risk?windSpeedMps=10&humidityPct=15&timeToImpactMin=-5",
	} {
		if w := doRequest(t, r, http.MethodGet, path, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestScenarioEndpoints(t *testing.T) {
	r := testRouter()

	w := doRequest(t, r, http.MethodGet, "/scenarios", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/scenarios/scn_ridgeline", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var s types.Scenario
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.ID != "scn_ridgeline" {
		t.Errorf("scenario id = %q", s.ID)
	}

	if w := doRequest(t, r, http.MethodGet, "/scenarios/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown scenario status = %d, want 404", w.Code)
	}
}

func TestGenerateBriefEndpoint(t *testing.T) {
	r := testRouter()
	w := doRequest(t, r, http.MethodPost, "/brief", validBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/markdown") {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "# Incident Brief: Ridgeline Fire") {
		t.Errorf("brief missing header:\n%s", body)
	}
	if !strings.Contains(body, "## Action Cards") {
		t.Errorf("brief missing cards section")
	}
}

func TestGenerateInsightsWithoutGenerator(t *testing.T) {
	r := testRouter()
	w := doRequest(t, r, http.MethodPost, "/insights", validBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Insights          []types.AIInsight `json:"insights"`
		HistoricalSummary []string          `json:"historicalSummary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Insights) != 0 {
		t.Errorf("insights = %v, want empty without a configured generator", resp.Insights)
	}
	if len(resp.HistoricalSummary) == 0 {
		t.Error("historical summary missing")
	}
}
