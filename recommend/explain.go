package recommend

import (
	"fmt"
	"strings"
	"time"

	"go-firewatch/types"
)

// ExplainDecision renders the inputs behind a single card as plain text lines,
// suitable for logs or a terminal.
func ExplainDecision(card types.ActionCard, riskScore types.RiskScore, spreadExplain types.SpreadExplain) []string {
	var lines []string

	lines = append(lines, fmt.Sprintf("--- %s: %s ---", strings.ToUpper(string(card.Type)), card.Title))
	lines = append(lines, fmt.Sprintf("Confidence: %s", card.Confidence))
	lines = append(lines, fmt.Sprintf("Timing: %s", card.Timing))
	lines = append(lines, "")
	lines = append(lines, "Why:")
	for i, w := range card.Why {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, w))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Risk Score: %d/100 (%s)", riskScore.Total, riskScore.Label))
	lines = append(lines, fmt.Sprintf("  Wind: %d/100 | Humidity: %d/100 | Time-to-Impact: %d/100",
		riskScore.Breakdown.WindSeverity,
		riskScore.Breakdown.HumiditySeverity,
		riskScore.Breakdown.TimeToImpactSeverity))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Model: %s", spreadExplain.Model))
	lines = append(lines, fmt.Sprintf("Spread Rate: %.2f km/h", spreadExplain.RateKmH))
	for _, n := range spreadExplain.Notes {
		lines = append(lines, fmt.Sprintf("  • %s", n))
	}

	return lines
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// GenerateBriefMarkdown assembles the full incident brief as markdown.
// now is injected so handlers can stamp the brief deterministically in tests.
func GenerateBriefMarkdown(incidentName string, brief types.Brief, cards []types.ActionCard, riskScore types.RiskScore, spreadExplain types.SpreadExplain, now time.Time) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# Incident Brief: %s\n\n", incidentName)
	fmt.Fprintf(&md, "**Generated:** %s\n\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&md, "## Summary\n\n%s\n\n", brief.OneLiner)

	fmt.Fprintf(&md, "## Risk Score: %d/100 (%s)\n\n", riskScore.Total, strings.ToUpper(string(riskScore.Label)))
	md.WriteString("| Factor | Score |\n|---|---|\n")
	fmt.Fprintf(&md, "| Wind Severity | %d/100 |\n", riskScore.Breakdown.WindSeverity)
	fmt.Fprintf(&md, "| Humidity Severity | %d/100 |\n", riskScore.Breakdown.HumiditySeverity)
	fmt.Fprintf(&md, "| Time-to-Impact | %d/100 |\n\n", riskScore.Breakdown.TimeToImpactSeverity)

	md.WriteString("## Key Triggers\n\n")
	for _, t := range brief.KeyTriggers {
		fmt.Fprintf(&md, "- %s\n", t)
	}
	md.WriteString("\n")

	md.WriteString("## Action Cards\n\n")
	for _, card := range cards {
		fmt.Fprintf(&md, "### %s: %s\n\n", titleCase(string(card.Type)), card.Title)
		fmt.Fprintf(&md, "**Timing:** %s | **Confidence:** %s\n\n", card.Timing, card.Confidence)
		md.WriteString("**Why:**\n")
		for _, w := range card.Why {
			fmt.Fprintf(&md, "- %s\n", w)
		}
		md.WriteString("\n**Actions:**\n")
		for _, a := range card.Actions {
			fmt.Fprintf(&md, "- %s\n", a)
		}
		md.WriteString("\n")
	}

	md.WriteString("## Model Details\n\n")
	fmt.Fprintf(&md, "- Model: %s\n", spreadExplain.Model)
	fmt.Fprintf(&md, "- Spread Rate: %.2f km/h\n", spreadExplain.RateKmH)
	for _, n := range spreadExplain.Notes {
		fmt.Fprintf(&md, "- %s\n", n)
	}

	return md.String()
}
