// Package advisory generates natural-language insights for the incident
// commander on top of the deterministic decision pipeline. Everything here
// is supplementary: any failure degrades to zero insights, never to an error
// on the decision path.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"go-firewatch/cache"
	"go-firewatch/types"
)

const (
	cacheTTL       = 5 * time.Minute
	requestTimeout = 30 * time.Second
	maxInsights    = 3
)

// InsightRequest carries the full decision context the model reasons over.
type InsightRequest struct {
	Incident          types.Incident             `json:"incident"`
	Weather           types.Weather              `json:"weather"`
	RiskScore         types.RiskScore            `json:"riskScore"`
	SpreadRateKmH     float64                    `json:"spreadRate"`
	SpreadNotes       []string                   `json:"spreadNotes"`
	Cards             []types.ActionCard         `json:"cards"`
	HistoricalContext []types.HistoricalIncident `json:"historicalContext"`
}

// Generator produces advisory insights via the OpenAI chat API.
type Generator struct {
	client *openai.Client
	model  string
	cache  *cache.Cache[[]types.AIInsight]
}

// NewGenerator builds a generator. client may be nil when no API key is
// configured; GenerateInsights then always returns an empty slice.
func NewGenerator(client *openai.Client, model string) *Generator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Generator{
		client: client,
		model:  model,
		cache:  cache.New[[]types.AIInsight](cacheTTL, nil),
	}
}

func cacheKey(req InsightRequest) string {
	return fmt.Sprintf("%s-%d-%g-%g",
		req.Incident.ID, req.RiskScore.Total, req.Weather.WindSpeedMps, req.Weather.HumidityPct)
}

// GenerateInsights returns up to 3 insights for the current situation. Any
// upstream or parse failure is logged and yields an empty slice.
func (g *Generator) GenerateInsights(ctx context.Context, req InsightRequest) []types.AIInsight {
	if g.client == nil {
		return []types.AIInsight{}
	}

	insights, err := g.cache.Do(cacheKey(req), func() ([]types.AIInsight, error) {
		return g.generate(ctx, req)
	})
	if err != nil {
		log.Printf("[Advisory] insight generation failed: %v", err)
		return []types.AIInsight{}
	}
	return insights
}

func (g *Generator) generate(ctx context.Context, req InsightRequest) ([]types.AIInsight, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a wildfire behavior analyst assisting an incident commander during initial attack. You translate technical data into actionable, time-sensitive insights and respond with valid JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req),
			},
		},
		MaxTokens:   1500,
		N:           1,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai returned empty response or choices")
	}

	insights, err := ParseInsights(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing model output: %w", err)
	}

	insights = Ground(insights, req.SpreadNotes)
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights, nil
}

func buildPrompt(req InsightRequest) string {
	assetsAtRisk := "No immediate asset threats"
	for _, card := range req.Cards {
		if card.Type != types.CardEvacuation {
			continue
		}
		var mentions []string
		for _, w := range card.Why {
			if strings.Contains(w, "envelope") {
				mentions = append(mentions, w)
			}
		}
		if len(mentions) > 0 {
			assetsAtRisk = strings.Join(mentions, "; ")
		}
	}

	historicalSummary := "No similar historical incidents found"
	if len(req.HistoricalContext) > 0 {
		var lines []string
		for _, h := range req.HistoricalContext {
			lines = append(lines, fmt.Sprintf(
				"- %s (%s): %s fire, wind %g m/s, humidity %g%%, %s in %gh, %g acres. Lesson: %s",
				h.Name, h.Date, h.Fuel, h.Weather.WindSpeedMps, h.Weather.HumidityPct,
				h.Outcome, h.ContainmentTimeHours, h.FinalAcres, h.KeyLesson))
		}
		historicalSummary = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`CURRENT SITUATION:
- Incident: %s
- Location: %.2f, %.2f
- Fuel Type: %s
- Weather: Wind %g m/s from %g deg, Humidity %g%%, Temp %g C
- Risk Score: %d/100 (Wind severity: %d, Humidity severity: %d, Time-to-impact: %d)
- Spread Rate: %.1f km/h
- Assets at Risk: %s

HISTORICAL CONTEXT (%d similar incidents):
%s

TASK: Generate 2-3 natural language insights for the incident commander:
1. Time-critical threats (use specific timing)
2. Historical patterns (use statistics from the historical data)
3. Resource recommendations backed by historical outcomes

REQUIREMENTS:
- Each insight message: 15-25 words, direct, actionable
- Confidence: high only with 5+ consistent similar incidents, medium with 3-4, low otherwise
- Provide 2-4 reasoning bullets per insight explaining WHY
- Reference specific incident IDs in the sources array when applicable
- Use firefighter-friendly language, focused on the 0-3 hour window

FORMAT: Return valid JSON only (no markdown, no explanations):
{
  "insights": [
    {
      "type": "warning" | "recommendation" | "context",
      "message": "15-25 word actionable insight",
      "confidence": "high" | "medium" | "low",
      "reasoning": ["Bullet 1", "Bullet 2"],
      "sources": ["incident_id_1"]
    }
  ]
}`,
		req.Incident.Name, req.Incident.Lat, req.Incident.Lon, req.Incident.FuelProxy,
		req.Weather.WindSpeedMps, req.Weather.WindDirDeg, req.Weather.HumidityPct, req.Weather.TemperatureC,
		req.RiskScore.Total, req.RiskScore.Breakdown.WindSeverity,
		req.RiskScore.Breakdown.HumiditySeverity, req.RiskScore.Breakdown.TimeToImpactSeverity,
		req.SpreadRateKmH, assetsAtRisk,
		len(req.HistoricalContext), historicalSummary)
}

// ParseInsights decodes the model's JSON output, tolerating markdown code
// fences around it. Insights with an unknown confidence level are dropped.
func ParseInsights(raw string) ([]types.AIInsight, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var parsed struct {
		Insights []types.AIInsight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("invalid insights JSON: %w", err)
	}
	if parsed.Insights == nil {
		return nil, fmt.Errorf("missing insights array")
	}

	valid := parsed.Insights[:0]
	for _, ins := range parsed.Insights {
		switch ins.Confidence {
		case types.ConfidenceHigh, types.ConfidenceMedium, types.ConfidenceLow:
			valid = append(valid, ins)
		default:
			log.Printf("[Advisory] dropping insight with confidence %q", ins.Confidence)
		}
	}
	return valid, nil
}

// Ground drops insights that claim a wind shift when the spread model's own
// notes never mention one. The model may only restate shifts the pipeline
// actually projected.
func Ground(insights []types.AIInsight, spreadNotes []string) []types.AIInsight {
	shiftProjected := false
	for _, n := range spreadNotes {
		if strings.Contains(strings.ToLower(n), "shift") {
			shiftProjected = true
			break
		}
	}
	if shiftProjected {
		return insights
	}

	grounded := insights[:0]
	for _, ins := range insights {
		if strings.Contains(strings.ToLower(ins.Message), "wind shift") {
			log.Printf("[Advisory] dropping ungrounded wind shift claim: %q", ins.Message)
			continue
		}
		grounded = append(grounded, ins)
	}
	return grounded
}
