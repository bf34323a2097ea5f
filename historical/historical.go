// Package historical matches current conditions against an archive of past
// initial-attack incidents. The archive ships embedded so matching works with
// no network or database dependency.
package historical

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	_ "embed"

	"go-firewatch/types"
)

//go:embed data/incidents.json
var incidentsJSON []byte

// fuelCompatibility gives half credit for neighboring fuel types when there
// is no exact match.
var fuelCompatibility = map[types.FuelType][]types.FuelType{
	types.FuelGrass:     {types.FuelGrass, types.FuelMixed},
	types.FuelBrush:     {types.FuelBrush, types.FuelChaparral, types.FuelMixed},
	types.FuelMixed:     {types.FuelMixed, types.FuelGrass, types.FuelBrush},
	types.FuelChaparral: {types.FuelChaparral, types.FuelBrush},
}

const (
	minScoreThreshold = 40
	maxResults        = 5
)

var (
	loadOnce  sync.Once
	incidents []types.HistoricalIncident
)

func loadIncidents() []types.HistoricalIncident {
	loadOnce.Do(func() {
		var data struct {
			Incidents []types.HistoricalIncident `json:"incidents"`
		}
		if err := json.Unmarshal(incidentsJSON, &data); err != nil {
			log.Printf("[Historical] failed to parse embedded archive: %v", err)
			return
		}
		incidents = data.Incidents
	})
	return incidents
}

// SimilarityScore rates a historical incident against current conditions,
// 0 to 100. Fuel is worth 30, wind 25, humidity 25, region 20.
func SimilarityScore(current types.Incident, weather types.Weather, historical types.HistoricalIncident) int {
	score := 0

	if current.FuelProxy == historical.Fuel {
		score += 30
	} else if compatible(current.FuelProxy, historical.Fuel) {
		score += 15
	}

	windDiff := math.Abs(weather.WindSpeedMps - historical.Weather.WindSpeedMps)
	switch {
	case windDiff <= 2:
		score += 25
	case windDiff <= 5:
		score += 15
	case windDiff <= 10:
		score += 5
	}

	humidityDiff := math.Abs(weather.HumidityPct - historical.Weather.HumidityPct)
	switch {
	case humidityDiff <= 5:
		score += 25
	case humidityDiff <= 10:
		score += 15
	case humidityDiff <= 20:
		score += 5
	}

	// The archive is California-only today, so region match is a substring
	// check rather than a climate-zone comparison.
	if strings.Contains(historical.Location, "California") {
		score += 20
	}

	return score
}

func compatible(current, historical types.FuelType) bool {
	for _, f := range fuelCompatibility[current] {
		if f == historical {
			return true
		}
	}
	return false
}

// FindSimilarIncidents returns up to 5 archived incidents scoring at least
// 40, most similar first.
func FindSimilarIncidents(current types.Incident, weather types.Weather) []types.HistoricalIncident {
	archive := loadIncidents()
	if len(archive) == 0 {
		log.Printf("[Historical] no archived incidents available")
		return nil
	}

	type scored struct {
		incident types.HistoricalIncident
		score    int
	}

	var matches []scored
	for _, h := range archive {
		if s := SimilarityScore(current, weather, h); s >= minScoreThreshold {
			matches = append(matches, scored{h, s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	result := make([]types.HistoricalIncident, len(matches))
	for i, m := range matches {
		result[i] = m.incident
	}
	return result
}

// Statistics summarizes outcomes across a set of similar incidents.
type Statistics struct {
	EscapedPercentage         float64 `json:"escapedPercentage"`
	ContainedPercentage       float64 `json:"containedPercentage"`
	AvgContainmentTime        float64 `json:"avgContainmentTime"`
	AirSupportUsagePercentage float64 `json:"airSupportUsagePercentage"`
}

// CalculateStatistics aggregates outcomes. Average containment time counts
// contained incidents only.
func CalculateStatistics(similar []types.HistoricalIncident) Statistics {
	if len(similar) == 0 {
		return Statistics{}
	}

	var escaped, contained, withAir int
	var containmentSum float64
	for _, i := range similar {
		switch i.Outcome {
		case "escaped":
			escaped++
		case "contained":
			contained++
			containmentSum += i.ContainmentTimeHours
		}
		if i.Resources.AirSupport {
			withAir++
		}
	}

	stats := Statistics{
		EscapedPercentage:         float64(escaped) / float64(len(similar)) * 100,
		ContainedPercentage:       float64(contained) / float64(len(similar)) * 100,
		AirSupportUsagePercentage: float64(withAir) / float64(len(similar)) * 100,
	}
	if contained > 0 {
		stats.AvgContainmentTime = containmentSum / float64(contained)
	}
	return stats
}

// Summary formats the matched incidents as human-readable bullet lines.
func Summary(similar []types.HistoricalIncident) []string {
	if len(similar) == 0 {
		return []string{"No similar historical incidents found for comparison"}
	}

	stats := CalculateStatistics(similar)
	plural := ""
	if len(similar) > 1 {
		plural = "s"
	}

	summary := []string{
		fmt.Sprintf("Found %d similar incident%s for comparison", len(similar), plural),
	}

	if stats.EscapedPercentage > 0 {
		summary = append(summary, fmt.Sprintf("%.0f%% of similar fires escaped initial attack", stats.EscapedPercentage))
	}
	if stats.ContainedPercentage > 0 {
		summary = append(summary, fmt.Sprintf("%.0f%% contained (avg %.1f hours)", stats.ContainedPercentage, stats.AvgContainmentTime))
	}
	if stats.AirSupportUsagePercentage > 50 {
		summary = append(summary, fmt.Sprintf("%.0f%% required air support", stats.AirSupportUsagePercentage))
	}

	return summary
}
