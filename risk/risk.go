// Package risk scores escalation risk from weather and time-to-impact.
package risk

import (
	"math"

	"go-firewatch/types"
)

// Component weights. Wind and humidity dominate; time-to-impact rounds it out.
const (
	windWeight     = 0.35
	humidityWeight = 0.35
	impactWeight   = 0.30
)

// ComputeRiskScore derives a bounded 0-100 score with a labeled breakdown.
// timeToImpactMinutes is nil when no asset is threatened. Pure and
// deterministic; components are rounded for display but the total is computed
// from the unrounded values and rounded once.
func ComputeRiskScore(weather types.Weather, timeToImpactMinutes *float64) types.RiskScore {
	// 0 at 0 m/s, 100 at 20+ m/s
	windSeverity := math.Min(100, weather.WindSpeedMps/20*100)

	// 100 at 0%, 0 at 60%+
	humiditySeverity := math.Max(0, math.Min(100, (60-weather.HumidityPct)/60*100))

	// 100 under 30 min, tapering to the 10-point baseline at 180 min. The
	// baseline is deliberate: background risk never reads as zero.
	var timeToImpactSeverity float64
	switch {
	case timeToImpactMinutes == nil || *timeToImpactMinutes > 180:
		timeToImpactSeverity = 10
	case *timeToImpactMinutes <= 30:
		timeToImpactSeverity = 100
	default:
		timeToImpactSeverity = 100 - (*timeToImpactMinutes-30)/150*90
	}

	total := int(math.Round(windWeight*windSeverity +
		humidityWeight*humiditySeverity +
		impactWeight*timeToImpactSeverity))

	var label types.RiskLabel
	switch {
	case total >= 75:
		label = types.RiskExtreme
	case total >= 50:
		label = types.RiskHigh
	case total >= 30:
		label = types.RiskModerate
	default:
		label = types.RiskLow
	}

	return types.RiskScore{
		Total: total,
		Breakdown: types.RiskBreakdown{
			WindSeverity:         int(math.Round(windSeverity)),
			HumiditySeverity:     int(math.Round(humiditySeverity)),
			TimeToImpactSeverity: int(math.Round(timeToImpactSeverity)),
		},
		Label: label,
	}
}
