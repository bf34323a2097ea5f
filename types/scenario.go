package types

// Scenario is a training/what-if fixture bundling an incident with its
// protected assets and available resources.
type Scenario struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Incident         Incident   `json:"incident"`
	Resources        Resources  `json:"resources"`
	Assets           []Asset    `json:"assets"`
	DefaultWindShift *WindShift `json:"defaultWindShift,omitempty"`
}

// ScenariosData is the root of the embedded scenarios file.
type ScenariosData struct {
	Scenarios []Scenario `json:"scenarios"`
}
