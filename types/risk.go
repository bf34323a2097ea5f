package types

type RiskLabel string

const (
	RiskLow      RiskLabel = "low"
	RiskModerate RiskLabel = "moderate"
	RiskHigh     RiskLabel = "high"
	RiskExtreme  RiskLabel = "extreme"
)

// RiskBreakdown holds the three component severities, rounded for display.
type RiskBreakdown struct {
	WindSeverity         int `json:"windSeverity"`
	HumiditySeverity     int `json:"humiditySeverity"`
	TimeToImpactSeverity int `json:"timeToImpactSeverity"`
}

// RiskScore is the bounded 0-100 escalation score. Derived fresh each cycle,
// never persisted as source of truth.
type RiskScore struct {
	Total     int           `json:"total"`
	Breakdown RiskBreakdown `json:"breakdown"`
	Label     RiskLabel     `json:"label"`
}
