package types

type CardType string

const (
	CardEvacuation CardType = "evacuation"
	CardResources  CardType = "resources"
	CardTactics    CardType = "tactics"
)

// ActionCard is one prioritized recommendation for the commander.
// Generated fresh each cycle; never mutated after construction.
type ActionCard struct {
	Type       CardType   `json:"type"`
	Title      string     `json:"title"`
	Timing     string     `json:"timing"`
	Confidence Confidence `json:"confidence"`
	Why        []string   `json:"why"`
	Actions    []string   `json:"actions"`
}

// Brief is the one-line situation summary plus its trigger conditions.
type Brief struct {
	OneLiner    string   `json:"oneLiner"`
	KeyTriggers []string `json:"keyTriggers"`
}

// RecommendationsResult bundles the three cards, the brief, and the risk
// score computed for the same cycle.
type RecommendationsResult struct {
	Cards     []ActionCard `json:"cards"`
	Brief     Brief        `json:"brief"`
	RiskScore RiskScore    `json:"riskScore"`
}
