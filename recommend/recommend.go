// Package recommend derives the three action cards and the commander's brief
// from an incident, weather, spread envelopes, assets, and resources. The
// output is deterministic: identical inputs always produce identical cards,
// so the advisory layer can fail without touching the decision path.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go-firewatch/geo"
	"go-firewatch/risk"
	"go-firewatch/types"
)

// assetBufferKm flags near-miss threats even when the asset sits just outside
// a spread polygon.
const assetBufferKm = 1.0

// AssetAtRisk pairs an asset with the first envelope hour that reaches it.
type AssetAtRisk struct {
	Asset              types.Asset
	WithinEnvelopeHour int
	DistKm             float64
}

// FindAssetsAtRisk tests every asset against the envelopes in ascending hour
// order. An asset is attributed to the soonest matching hour only, then
// skipped for later hours. Results are sorted closest first.
func FindAssetsAtRisk(assets []types.Asset, envelopes []types.SpreadEnvelope) []AssetAtRisk {
	var results []AssetAtRisk

	for _, asset := range assets {
		for _, env := range envelopes {
			inPolygon := geo.PointInPolygon(asset.Lat, asset.Lon, env.Polygon.Coordinates)
			dist := geo.MinDistToPolygon(asset.Lat, asset.Lon, env.Polygon.Coordinates)

			if inPolygon || dist < assetBufferKm {
				results = append(results, AssetAtRisk{
					Asset:              asset,
					WithinEnvelopeHour: env.THours,
					DistKm:             dist,
				})
				break
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistKm < results[j].DistKm
	})

	return results
}

// estimateTimeToImpact returns whole minutes until the fire front reaches
// the asset at the current spread rate.
func estimateTimeToImpact(incident types.Incident, asset types.Asset, spreadRateKmH float64) int {
	dist := geo.DistanceKm(incident.Lat, incident.Lon, asset.Lat, asset.Lon)
	return int(math.Round(dist / spreadRateKmH * 60))
}

func generateEvacuationCard(incident types.Incident, weather types.Weather, assetsAtRisk []AssetAtRisk, spreadRateKmH float64, windShift *types.WindShift) types.ActionCard {
	confidence := types.ConfidenceMedium
	title := "Monitor Communities — No Immediate Evacuation Needed"
	timing := "Re-evaluate in 30 minutes"
	var why, actions []string

	if len(assetsAtRisk) > 0 {
		nearest := assetsAtRisk[0]
		assetName := nearest.Asset.Name
		timeToImpact := estimateTimeToImpact(incident, nearest.Asset, spreadRateKmH)

		if nearest.WithinEnvelopeHour <= 2 {
			confidence = types.ConfidenceHigh
			title = fmt.Sprintf("Issue Evacuation Warning for %s", assetName)
			timing = fmt.Sprintf("Likely impact in ~%d minutes", timeToImpact)
		} else {
			confidence = types.ConfidenceMedium
			title = fmt.Sprintf("Prepare Evacuation Advisory for %s", assetName)
			timing = fmt.Sprintf("Potential impact in ~%d minutes", timeToImpact)
		}

		relation := "approaches"
		if nearest.DistKm < assetBufferKm {
			relation = "intersects"
		}
		why = append(why, fmt.Sprintf("%dh envelope %s %s", nearest.WithinEnvelopeHour, relation, assetName))

		if windShift != nil && windShift.Enabled {
			why = append(why, fmt.Sprintf("Wind shift at +%dm points spread toward %s", windShift.AtMinutes, assetName))
		}

		if weather.HumidityPct < 20 {
			why = append(why, "Humidity < 20% increases spread risk")
		} else if weather.HumidityPct < 30 {
			why = append(why, "Humidity < 30% moderately increases spread")
		}

		actions = append(actions, "Open evacuation warning template")
		actions = append(actions, "Notify law enforcement liaison")
		if len(assetsAtRisk) > 1 {
			names := make([]string, 0, len(assetsAtRisk)-1)
			for _, a := range assetsAtRisk[1:] {
				names = append(names, a.Asset.Name)
			}
			actions = append(actions, fmt.Sprintf("Also monitor: %s", strings.Join(names, ", ")))
		}
	} else {
		why = append(why, "No communities currently within 3h spread envelope + 1km buffer")
		why = append(why, "Conditions may change with wind or humidity shifts")
		why = append(why, "Continue monitoring asset proximity")
		actions = append(actions, "Set trigger alerts for asset intersection")
		actions = append(actions, "Pre-stage evacuation messaging")
	}

	return types.ActionCard{Type: types.CardEvacuation, Title: title, Timing: timing, Confidence: confidence, Why: why, Actions: actions}
}

func generateResourcesCard(weather types.Weather, resources types.Resources, riskTotal int, spreadRateKmH float64) types.ActionCard {
	var why, actions []string
	confidence := types.ConfidenceMedium
	title := "Current Resources Sufficient — Monitor Conditions"
	timing := "Re-evaluate in 30 minutes"

	// Flank-length heuristic: half the 1h spread length versus a rough 300m
	// of line per engine.
	flankLength1h := spreadRateKmH * 0.5
	engineCoverage := float64(resources.EnginesAvailable) * 0.3

	needsAirSupport := resources.AirSupportAvailable &&
		(riskTotal > 50 || flankLength1h > engineCoverage)

	if riskTotal > 60 {
		confidence = types.ConfidenceHigh
		title = "Request Additional Resources Immediately"
		timing = "Within next 30 minutes"
		why = append(why, fmt.Sprintf("Escape risk score %d/100 — high due to wind + low humidity", riskTotal))
	} else if riskTotal > 40 {
		confidence = types.ConfidenceHigh
		title = "Request Air Support Within 1 Hour"
		timing = fmt.Sprintf("Air ETA ~%d minutes", resources.EtaMinutesAir)
		why = append(why, fmt.Sprintf("Risk score %d/100 warrants additional support", riskTotal))
	}

	if flankLength1h > engineCoverage {
		why = append(why, fmt.Sprintf("1h flank length (~%.1fkm) exceeds engine coverage (~%.1fkm)",
			flankLength1h, engineCoverage))
	}

	if needsAirSupport {
		why = append(why, "Air attack historically reduces escape in similar conditions")
		actions = append(actions, "Request tanker/helicopter")
		actions = append(actions, fmt.Sprintf("Stage at nearest waypoint (ETA ~%dm)", resources.EtaMinutesAir))
	}

	if resources.EnginesAvailable > 0 {
		actions = append(actions, fmt.Sprintf("Deploy %d engines (ETA ~%dm)",
			resources.EnginesAvailable, resources.EtaMinutesEngine))
	}

	if resources.DozersAvailable > 0 {
		actions = append(actions, fmt.Sprintf("Assign %d dozer(s) to line construction", resources.DozersAvailable))
	}

	// Completeness invariant: the card always carries at least 3 why bullets.
	if len(why) < 3 {
		why = append(why, fmt.Sprintf("Engines ETA %dm — verify staging positions", resources.EtaMinutesEngine))
	}
	for len(why) < 3 {
		why = append(why, "Conditions stable — reassess resource needs each cycle")
	}

	return types.ActionCard{Type: types.CardResources, Title: title, Timing: timing, Confidence: confidence, Why: why, Actions: actions}
}

func generateTacticsCard(weather types.Weather, resources types.Resources, windShift *types.WindShift) types.ActionCard {
	spreadDir := math.Mod(weather.WindDirDeg+180, 360)
	rightFlankDir := math.Mod(spreadDir+90, 360)

	var why, actions []string

	flank := "Left"
	if rightFlankDir < 180 {
		flank = "Right"
	}
	title := fmt.Sprintf("Anchor and Hold %s Flank", flank)
	timing := "Execute in next 30 minutes"
	// Tactical guidance is inherently situational; never claim high confidence.
	confidence := types.ConfidenceMedium

	why = append(why, fmt.Sprintf("Wind from %g° pushes head toward %g°; flank is containable",
		weather.WindDirDeg, spreadDir))

	if resources.DozersAvailable > 0 {
		why = append(why, "Dozer available — use for line reinforcement on anchor")
		actions = append(actions, "Assign dozer to anchor segment")
	} else {
		why = append(why, "No dozers — rely on engine crews for hand line")
		actions = append(actions, "Deploy engine crews for hand line construction")
	}

	if windShift != nil && windShift.Enabled {
		why = append(why, fmt.Sprintf("Set trigger points: wind direction change > 30° at +%dm", windShift.AtMinutes))
		actions = append(actions, "Set trigger points for wind shift")
	} else {
		why = append(why, "Monitor for unexpected wind changes — set safety zones")
		actions = append(actions, "Establish lookout and safety zones")
	}

	actions = append(actions, "Maintain escape routes for all personnel")

	return types.ActionCard{Type: types.CardTactics, Title: title, Timing: timing, Confidence: confidence, Why: why, Actions: actions}
}

// GenerateRecommendations produces the three action cards, the brief, and
// the risk score for one assessment cycle.
func GenerateRecommendations(incident types.Incident, weather types.Weather, envelopes []types.SpreadEnvelope, assets []types.Asset, resources types.Resources, spreadRateKmH float64, windShift *types.WindShift) types.RecommendationsResult {
	assetsAtRisk := FindAssetsAtRisk(assets, envelopes)

	var timeToImpactMin *float64
	if len(assetsAtRisk) > 0 {
		m := float64(estimateTimeToImpact(incident, assetsAtRisk[0].Asset, spreadRateKmH))
		timeToImpactMin = &m
	}

	riskScore := risk.ComputeRiskScore(weather, timeToImpactMin)

	cards := []types.ActionCard{
		generateEvacuationCard(incident, weather, assetsAtRisk, spreadRateKmH, windShift),
		generateResourcesCard(weather, resources, riskScore.Total, spreadRateKmH),
		generateTacticsCard(weather, resources, windShift),
	}

	var keyTriggers []string
	if windShift != nil && windShift.Enabled {
		keyTriggers = append(keyTriggers, fmt.Sprintf("Wind direction change > 30° at +%dm", windShift.AtMinutes))
	}
	if weather.HumidityPct < 20 {
		keyTriggers = append(keyTriggers, "Humidity < 20%")
	}
	if len(assetsAtRisk) > 0 {
		keyTriggers = append(keyTriggers, "Envelope intersects asset buffer")
	}
	keyTriggers = append(keyTriggers, "Spread rate exceeds 1.0 km/h")

	var oneLiner string
	if len(assetsAtRisk) > 0 {
		names := make([]string, 0, len(assetsAtRisk))
		for _, a := range assetsAtRisk {
			names = append(names, a.Asset.Name)
		}
		wind := "Wind"
		if weather.WindSpeedMps > 8 {
			wind = "Strong wind"
		}
		humidity := "low"
		if weather.HumidityPct < 20 {
			humidity = "very low"
		}
		oneLiner = fmt.Sprintf("%s + %s humidity raises escape risk; protect %s within 0–3h window.",
			wind, humidity, strings.Join(names, ", "))
	} else {
		oneLiner = fmt.Sprintf("Active fire with %.1f m/s wind. Monitor spread and maintain containment posture.",
			weather.WindSpeedMps)
	}

	return types.RecommendationsResult{
		Cards:     cards,
		Brief:     types.Brief{OneLiner: oneLiner, KeyTriggers: keyTriggers},
		RiskScore: riskScore,
	}
}
