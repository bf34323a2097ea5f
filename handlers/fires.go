package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-firewatch/calfire"
	"go-firewatch/cluster"
	"go-firewatch/firms"
	"go-firewatch/weather"
)

// GetHotspots handles GET /hotspots: fetches satellite detections and
// returns them clustered into fire events. Optional query parameters: days
// (1-10), bbox, source (repeatable).
func GetHotspots(c *gin.Context, firmsClient *firms.Client) {
	if firmsClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "hotspot feed not configured"})
		return
	}

	days := 1
	if raw := c.Query("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer between 1 and 10"})
			return
		}
		days = v
	}

	opts := firms.FetchOptions{
		BBox:    c.Query("bbox"),
		Days:    days,
		Sources: c.QueryArray("source"),
	}

	hotspots, err := firmsClient.FetchHotspots(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "hotspot feed unavailable: " + err.Error()})
		return
	}

	clusters := cluster.ClusterHotspots(hotspots)

	incidents := make([]gin.H, 0, len(clusters))
	for i, cl := range clusters {
		incidents = append(incidents, gin.H{
			"incident":  cluster.ToIncident(cl, i),
			"resources": cluster.DefaultFirmsResources(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"clusters":     clusters,
		"incidents":    incidents,
		"hotspotCount": len(hotspots),
		"clusterCount": len(clusters),
	})
}

// GetLiveFires handles GET /fires/live: normalized incidents from the state
// registry, most recently updated first.
func GetLiveFires(c *gin.Context, calfireClient *calfire.Client) {
	opts := calfire.FetchOptions{}
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 2000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a valid year"})
			return
		}
		opts.Year = v
	}
	opts.Inactive = c.Query("inactive") == "true"

	if c.Query("format") == "geojson" {
		raw, err := calfireClient.FetchIncidents(c.Request.Context(), opts)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "fire registry unavailable: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, calfire.ToGeoJSON(raw))
		return
	}

	incidents, err := calfireClient.GetIncidents(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "fire registry unavailable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incidents": incidents, "count": len(incidents)})
}

// GetWeather handles GET /weather?lat=&lon=.
func GetWeather(c *gin.Context, weatherClient *weather.Client) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required and must be numbers"})
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	c.JSON(http.StatusOK, weatherClient.FetchWeather(c.Request.Context(), lat, lon))
}
