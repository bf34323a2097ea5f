package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-firewatch/recommend"
	"go-firewatch/spread"
	"go-firewatch/types"
	"go-firewatch/weather"
)

// RecommendationsRequest is the body for POST /recommendations and
// POST /brief.
type RecommendationsRequest struct {
	Incident     types.Incident   `json:"incident"`
	Weather      *types.Weather   `json:"weather,omitempty"`
	Assets       []types.Asset    `json:"assets"`
	Resources    *types.Resources `json:"resources"`
	HorizonHours int              `json:"horizonHours,omitempty"`
	WindShift    *types.WindShift `json:"windShift,omitempty"`
}

func (r *RecommendationsRequest) validate() string {
	if msg := validateIncident(r.Incident); msg != "" {
		return msg
	}
	if r.Resources == nil {
		return "resources record is required"
	}
	for _, a := range r.Assets {
		if a.Lat < -90 || a.Lat > 90 || a.Lon < -180 || a.Lon > 180 {
			return "asset " + a.ID + " coordinates out of range"
		}
	}
	return ""
}

// assess runs the full deterministic pipeline for a request.
func assess(c *gin.Context, weatherClient *weather.Client, req RecommendationsRequest) (types.Weather, types.SpreadResult, types.RecommendationsResult) {
	horizon := req.HorizonHours
	if horizon <= 0 {
		horizon = 3
	}

	w := resolveWeather(c, weatherClient, req.Weather, req.Incident)
	sr := spread.ComputeSpreadEnvelopes(req.Incident, w, horizon, req.WindShift)
	rc := spread.ComputeSpreadRate(w, req.Incident.FuelProxy)
	result := recommend.GenerateRecommendations(
		req.Incident, w, sr.Envelopes, req.Assets, *req.Resources, rc.Rate, req.WindShift)

	return w, sr, result
}

// GenerateRecommendations handles POST /recommendations.
func GenerateRecommendations(c *gin.Context, weatherClient *weather.Client) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	w, sr, result := assess(c, weatherClient, req)

	c.JSON(http.StatusOK, gin.H{
		"cards":     result.Cards,
		"brief":     result.Brief,
		"riskScore": result.RiskScore,
		"explain":   sr.Explain,
		"weather":   w,
	})
}

// GenerateBrief handles POST /brief, returning the markdown incident brief.
func GenerateBrief(c *gin.Context, weatherClient *weather.Client) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	_, sr, result := assess(c, weatherClient, req)

	name := req.Incident.Name
	if name == "" {
		name = req.Incident.ID
	}
	md := recommend.GenerateBriefMarkdown(name, result.Brief, result.Cards, result.RiskScore, sr.Explain, time.Now())

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}
