package advisory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-firewatch/types"
)

const validInsightsJSON = `{
  "insights": [
    {"type": "warning", "message": "Fire reaches Hilltop Community in about 45 minutes at current spread rate.", "confidence": "high", "reasoning": ["Envelope intersects buffer", "Wind aligned with slope"], "sources": ["hist_001"]},
    {"type": "context", "message": "Two of three similar fires escaped initial attack under these humidity levels.", "confidence": "medium", "reasoning": ["Humidity under 20%"]}
  ]
}`

func TestParseInsights(t *testing.T) {
	insights, err := ParseInsights(validInsightsJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2", len(insights))
	}
	if insights[0].Type != "warning" || insights[0].Confidence != types.ConfidenceHigh {
		t.Errorf("first insight: %+v", insights[0])
	}
	if insights[0].Sources[0] != "hist_001" {
		t.Errorf("sources = %v", insights[0].Sources)
	}
}

func TestParseInsightsStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validInsightsJSON + "\n```"
	insights, err := ParseInsights(fenced)
	if err != nil {
		t.Fatal(err)
	}
	if len(insights) != 2 {
		t.Errorf("got %d insights from fenced JSON", len(insights))
	}
}

func TestParseInsightsDropsUnknownConfidence(t *testing.T) {
	raw := `{"insights": [
		{"type": "warning", "message": "ok", "confidence": "high", "reasoning": []},
		{"type": "warning", "message": "bad", "confidence": "certain", "reasoning": []}
	]}`
	insights, err := ParseInsights(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(insights) != 1 {
		t.Fatalf("got %d insights, want 1 after confidence filtering", len(insights))
	}
}

func TestParseInsightsRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"other": []}`} {
		if _, err := ParseInsights(raw); err == nil {
			t.Errorf("ParseInsights(%q) should fail", raw)
		}
	}
}

func TestGroundDropsInventedWindShift(t *testing.T) {
	insights := []types.AIInsight{
		{Message: "Wind shift at 90 minutes will turn the head toward the school.", Confidence: types.ConfidenceHigh},
		{Message: "Humidity stays below 20% through the afternoon.", Confidence: types.ConfidenceMedium},
	}

	// No shift in the spread notes: the claim is invented and must go.
	grounded := Ground(insights, []string{"Base rate: 0.6 km/h", "Rate increases with low humidity"})
	if len(grounded) != 1 {
		t.Fatalf("got %d insights, want 1 after grounding", len(grounded))
	}
	if strings.Contains(strings.ToLower(grounded[0].Message), "wind shift") {
		t.Errorf("ungrounded wind shift survived: %q", grounded[0].Message)
	}
}

func TestGroundKeepsProjectedWindShift(t *testing.T) {
	insights := []types.AIInsight{
		{Message: "Wind shift at 90 minutes will turn the head toward the school.", Confidence: types.ConfidenceHigh},
	}
	notes := []string{"Wind shift at +90m: 245 deg -> 290 deg"}

	if grounded := Ground(insights, notes); len(grounded) != 1 {
		t.Fatalf("projected wind shift was dropped")
	}
}

func TestGenerateInsightsNilClient(t *testing.T) {
	g := NewGenerator(nil, "")
	insights := g.GenerateInsights(context.Background(), InsightRequest{})
	if insights == nil || len(insights) != 0 {
		t.Errorf("nil client should yield an empty non-nil slice, got %v", insights)
	}
}

func TestParseStructuredObjectEvidence(t *testing.T) {
	raw := `{
		"decision": "Hold the right flank",
		"evidence": [
			{"label": "Current weather", "cite": "[tool:get_weather]", "details": "8.2 m/s from 245"},
			{"label": "Analog outcome", "cite": "[H123]"}
		],
		"actions_0_3h": ["Anchor at the road"],
		"uncertainties": ["Gust timing"]
	}`

	s, err := ParseStructured(raw)
	if err != nil {
		t.Fatal(err)
	}
	if s.Decision != "Hold the right flank" {
		t.Errorf("decision = %q", s.Decision)
	}
	if len(s.Evidence) != 2 || s.Evidence[0].Cite != "[tool:get_weather]" {
		t.Errorf("evidence = %+v", s.Evidence)
	}
	if len(s.Actions0to3h) != 1 || len(s.Uncertainties) != 1 {
		t.Errorf("actions/uncertainties: %+v", s)
	}
}

func TestParseStructuredStringEvidence(t *testing.T) {
	raw := `{"decision": "Monitor", "evidence": ["Weather from Open-Meteo", {"label": "Spread model", "cite": "wind-cone-v1"}]}`

	s, err := ParseStructured(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Evidence) != 2 {
		t.Fatalf("evidence = %+v", s.Evidence)
	}
	if s.Evidence[0].Label != "Weather from Open-Meteo" || s.Evidence[0].Cite != "" {
		t.Errorf("string variant = %+v", s.Evidence[0])
	}
	if s.Evidence[1].Label != "Spread model" {
		t.Errorf("object variant = %+v", s.Evidence[1])
	}
}

func TestParseStructuredErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "nope"},
		{"missing decision", `{"evidence": []}`},
		{"numeric evidence entry", `{"decision": "x", "evidence": [42]}`},
		{"empty string entry", `{"decision": "x", "evidence": [""]}`},
		{"object without label", `{"decision": "x", "evidence": [{"cite": "[H1]"}]}`},
	}

	for _, c := range cases {
		_, err := ParseStructured(c.raw)
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: error is %T, want *ParseError", c.name, err)
		}
	}
}
