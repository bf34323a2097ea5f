package calfire

import (
	"math"
	"strings"

	"go-firewatch/types"
)

var southernCounties = []string{
	"los angeles", "ventura", "santa barbara", "san diego",
	"orange", "riverside", "san bernardino",
}

var valleyCounties = []string{
	"sacramento", "san joaquin", "stanislaus", "merced",
	"fresno", "kern", "tulare", "kings", "madera",
}

// inferFuelProxy guesses dominant fuel from the county. A simplification;
// real fuel models use LANDFIRE data.
func inferFuelProxy(county string) types.FuelType {
	low := strings.ToLower(county)

	for _, c := range southernCounties {
		if strings.Contains(low, c) {
			return types.FuelChaparral
		}
	}
	for _, c := range valleyCounties {
		if strings.Contains(low, c) {
			return types.FuelGrass
		}
	}
	return types.FuelMixed
}

// acresToRadiusMeters estimates a perimeter radius assuming a roughly
// circular fire. 1 acre = 4046.86 square meters.
func acresToRadiusMeters(acres float64) int {
	if acres <= 0 {
		return 100
	}
	areaM2 := acres * 4046.86
	return int(math.Round(math.Sqrt(areaM2 / math.Pi)))
}

func joinNotes(notes []string) string {
	return strings.Join(notes, " • ")
}

// GeoJSONFeature is a Point feature for map rendering.
type GeoJSONFeature struct {
	Type       string         `json:"type"`
	Geometry   GeoJSONPoint   `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// GeoJSONPoint holds [lon, lat] coordinates.
type GeoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoJSONCollection is a FeatureCollection of incident points.
type GeoJSONCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// ToGeoJSON converts raw incidents into a FeatureCollection, skipping
// records without coordinates.
func ToGeoJSON(incidents []types.CalFireRawIncident) GeoJSONCollection {
	features := make([]GeoJSONFeature, 0, len(incidents))
	for _, inc := range incidents {
		if inc.Latitude == 0 || inc.Longitude == 0 {
			continue
		}
		features = append(features, GeoJSONFeature{
			Type: "Feature",
			Geometry: GeoJSONPoint{
				Type:        "Point",
				Coordinates: []float64{inc.Longitude, inc.Latitude},
			},
			Properties: map[string]any{
				"id":          inc.UniqueId,
				"name":        inc.Name,
				"acres":       inc.AcresBurned,
				"containment": inc.PercentContained,
				"county":      inc.County,
				"isActive":    inc.IsActive,
				"updated":     inc.Updated,
				"url":         inc.Url,
			},
		})
	}
	return GeoJSONCollection{Type: "FeatureCollection", Features: features}
}
