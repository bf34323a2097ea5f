package types

// Polygon is a GeoJSON polygon. Coordinates hold rings of [lon, lat] pairs;
// only the outer ring is used.
type Polygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// SpreadEnvelope is the projected fire extent at a whole-hour horizon.
type SpreadEnvelope struct {
	THours  int     `json:"tHours"`
	Polygon Polygon `json:"polygon"`
}

// SpreadExplain carries the model tag, the numeric rate, and the
// human-readable notes. Note wording is part of the contract: downstream
// consumers match substrings like "wind shift".
type SpreadExplain struct {
	Model          string   `json:"model"`
	RateKmH        float64  `json:"rateKmH"`
	WindFactor     float64  `json:"windFactor"`
	HumidityFactor float64  `json:"humidityFactor"`
	Notes          []string `json:"notes"`
}

// SpreadResult is the full output of the spread model.
type SpreadResult struct {
	Envelopes []SpreadEnvelope `json:"envelopes"`
	Explain   SpreadExplain    `json:"explain"`
}
