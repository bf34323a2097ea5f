// Package handlers holds the gin HTTP handlers. Validation of the input
// contract happens here; the compute packages assume well-typed inputs and
// never fail for valid ones.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-firewatch/risk"
	"go-firewatch/spread"
	"go-firewatch/types"
	"go-firewatch/weather"
)

// SpreadRequest is the body for POST /spread.
type SpreadRequest struct {
	Incident     types.Incident   `json:"incident"`
	Weather      *types.Weather   `json:"weather,omitempty"`
	HorizonHours int              `json:"horizonHours,omitempty"`
	WindShift    *types.WindShift `json:"windShift,omitempty"`
}

func validateIncident(incident types.Incident) string {
	if incident.Lat == 0 && incident.Lon == 0 {
		return "incident requires lat and lon"
	}
	if incident.Lat < -90 || incident.Lat > 90 || incident.Lon < -180 || incident.Lon > 180 {
		return "incident coordinates out of range"
	}
	return ""
}

// ComputeSpread handles POST /spread. Weather is optional in the body; when
// absent it is fetched for the incident location (falling back to the static
// observation on upstream failure).
func ComputeSpread(c *gin.Context, weatherClient *weather.Client) {
	var req SpreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if msg := validateIncident(req.Incident); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	horizon := req.HorizonHours
	if horizon <= 0 {
		horizon = 3
	}
	if horizon > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "horizonHours must be at most 12"})
		return
	}

	w := resolveWeather(c, weatherClient, req.Weather, req.Incident)
	result := spread.ComputeSpreadEnvelopes(req.Incident, w, horizon, req.WindShift)

	c.JSON(http.StatusOK, gin.H{
		"envelopes": result.Envelopes,
		"explain":   result.Explain,
		"weather":   w,
	})
}

func resolveWeather(c *gin.Context, client *weather.Client, provided *types.Weather, incident types.Incident) types.Weather {
	if provided != nil {
		return *provided
	}
	if client != nil {
		return client.FetchWeather(c.Request.Context(), incident.Lat, incident.Lon)
	}
	return weather.Fallback
}

// ComputeRisk handles GET /risk with query parameters windSpeedMps,
// humidityPct, and optional timeToImpactMin.
func ComputeRisk(c *gin.Context) {
	windSpeed, err := strconv.ParseFloat(c.Query("windSpeedMps"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "windSpeedMps is required and must be a number"})
		return
	}
	humidity, err := strconv.ParseFloat(c.Query("humidityPct"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "humidityPct is required and must be a number"})
		return
	}
	if windSpeed < 0 || humidity < 0 || humidity > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weather values out of range"})
		return
	}

	var timeToImpact *float64
	if raw := c.Query("timeToImpactMin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "timeToImpactMin must be a non-negative number"})
			return
		}
		timeToImpact = &v
	}

	w := types.Weather{WindSpeedMps: windSpeed, HumidityPct: humidity}
	c.JSON(http.StatusOK, risk.ComputeRiskScore(w, timeToImpact))
}
