// Package spread projects time-horizon fire-perimeter envelopes from an
// incident and current weather. The rate model is a bounded multiplicative
// heuristic chosen for explainability, not a physical fire-behavior model.
package spread

import (
	"fmt"
	"math"

	"go-firewatch/geo"
	"go-firewatch/types"
)

const (
	modelName   = "wind-cone-v1"
	baseRateKmH = 0.6
)

// RateComponents breaks the spread rate into its dimensionless factors.
type RateComponents struct {
	Rate           float64
	WindFactor     float64
	HumidityFactor float64
	FuelFactor     float64
}

// ComputeSpreadRate returns the spread rate in km/h along with its factors.
//
//	rate = baseRate * windFactor * humidityFactor * fuelFactor
func ComputeSpreadRate(weather types.Weather, fuelProxy types.FuelType) RateComponents {
	windFactor := 1 + weather.WindSpeedMps/10

	var humidityFactor float64
	switch {
	case weather.HumidityPct < 20:
		humidityFactor = 1.4
	case weather.HumidityPct < 30:
		humidityFactor = 1.2
	default:
		humidityFactor = 1.0
	}

	var fuelFactor float64
	switch fuelProxy {
	case types.FuelGrass:
		fuelFactor = 1.3 // fast-moving
	case types.FuelChaparral:
		fuelFactor = 1.2 // intense
	case types.FuelBrush:
		fuelFactor = 1.1
	default:
		fuelFactor = 1.0
	}

	return RateComponents{
		Rate:           baseRateKmH * windFactor * humidityFactor * fuelFactor,
		WindFactor:     windFactor,
		HumidityFactor: humidityFactor,
		FuelFactor:     fuelFactor,
	}
}

// ComputeSpreadEnvelopes builds one cone envelope per whole-hour horizon
// 1..horizonHours around the incident origin.
//
// When a wind shift is enabled, every horizon whose end time falls after the
// shift uses the post-shift direction wholesale. No sub-horizon blending;
// that is the documented policy, not an oversight.
func ComputeSpreadEnvelopes(incident types.Incident, weather types.Weather, horizonHours int, windShift *types.WindShift) types.SpreadResult {
	rc := ComputeSpreadRate(weather, incident.FuelProxy)

	envelopes := make([]types.SpreadEnvelope, 0, horizonHours)
	var notes []string

	notes = append(notes, "Base rate: 0.6 km/h")
	notes = append(notes, fmt.Sprintf("Wind factor: %.2f (%g m/s)", rc.WindFactor, weather.WindSpeedMps))
	notes = append(notes, fmt.Sprintf("Humidity factor: %.1f (%g%%)", rc.HumidityFactor, weather.HumidityPct))
	if rc.FuelFactor != 1.0 {
		notes = append(notes, fmt.Sprintf("Fuel factor: %.1f (%s)", rc.FuelFactor, incident.FuelProxy))
	}
	notes = append(notes, fmt.Sprintf("Effective spread rate: %.2f km/h", rc.Rate))

	for t := 1; t <= horizonHours; t++ {
		windDir := weather.WindDirDeg

		if windShift != nil && windShift.Enabled && windShift.AtMinutes < t*60 {
			windDir = windShift.NewDirDeg

			if t == int(math.Ceil(float64(windShift.AtMinutes)/60)) {
				notes = append(notes, fmt.Sprintf("Wind shift at +%dm: %g deg -> %g deg",
					windShift.AtMinutes, weather.WindDirDeg, windShift.NewDirDeg))
			}
		}

		length := rc.Rate * float64(t) // km downwind
		width := 0.5 * length          // km cross-wind

		polygon := geo.BuildConePolygon(incident.Lat, incident.Lon, windDir, length, width)

		envelopes = append(envelopes, types.SpreadEnvelope{
			THours: t,
			Polygon: types.Polygon{
				Type:        "Polygon",
				Coordinates: polygon,
			},
		})
	}

	if windShift != nil && windShift.Enabled {
		notes = append(notes, fmt.Sprintf("Direction follows wind, shifts at +%dm", windShift.AtMinutes))
	}
	notes = append(notes, "Rate increases with low humidity")

	return types.SpreadResult{
		Envelopes: envelopes,
		Explain: types.SpreadExplain{
			Model:          modelName,
			RateKmH:        rc.Rate,
			WindFactor:     rc.WindFactor,
			HumidityFactor: rc.HumidityFactor,
			Notes:          notes,
		},
	}
}
