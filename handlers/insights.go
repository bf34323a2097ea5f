package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-firewatch/advisory"
	"go-firewatch/historical"
	"go-firewatch/weather"
)

// GenerateInsights handles POST /insights. The advisory layer is strictly
// supplementary: with no generator configured, or on any upstream failure,
// the response is an empty insights array with status 200.
func GenerateInsights(c *gin.Context, weatherClient *weather.Client, generator *advisory.Generator) {
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
	similar := historical.FindSimilarIncidents(req.Incident, w)

	insights := generator.GenerateInsights(c.Request.Context(), advisory.InsightRequest{
		Incident:          req.Incident,
		Weather:           w,
		RiskScore:         result.RiskScore,
		SpreadRateKmH:     sr.Explain.RateKmH,
		SpreadNotes:       sr.Explain.Notes,
		Cards:             result.Cards,
		HistoricalContext: similar,
	})

	c.JSON(http.StatusOK, gin.H{
		"insights":          insights,
		"similarIncidents":  similar,
		"historicalSummary": historical.Summary(similar),
	})
}
