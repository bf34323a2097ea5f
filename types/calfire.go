package types

// CalFireRawIncident mirrors the incident registry's wire shape.
type CalFireRawIncident struct {
	UniqueId         string   `json:"UniqueId"`
	Name             string   `json:"Name"`
	Latitude         float64  `json:"Latitude"`
	Longitude        float64  `json:"Longitude"`
	Started          string   `json:"Started"`
	Updated          string   `json:"Updated"`
	AcresBurned      float64  `json:"AcresBurned"`
	PercentContained *float64 `json:"PercentContained"`
	County           string   `json:"County"`
	Location         string   `json:"Location"`
	IsActive         bool     `json:"IsActive"`
	Url              string   `json:"Url"`
}

// AIInsight is one advisory-layer message. Purely supplementary: the
// deterministic pipeline never depends on these.
type AIInsight struct {
	Type       string     `json:"type"` // warning | recommendation | context
	Message    string     `json:"message"`
	Confidence Confidence `json:"confidence"`
	Reasoning  []string   `json:"reasoning"`
	Sources    []string   `json:"sources,omitempty"`
}
