package advisory

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EvidenceItem is one structured citation in an assistant answer.
// Cite looks like "[tool:get_weather]", "KB:doc#chunk", or "[H123]".
type EvidenceItem struct {
	Label   string `json:"label"`
	Cite    string `json:"cite"`
	Details string `json:"details,omitempty"`
}

// Structured is the machine-readable portion of an assistant answer.
type Structured struct {
	Decision      string         `json:"decision"`
	Evidence      []EvidenceItem `json:"evidence"`
	Actions0to3h  []string       `json:"actions_0_3h"`
	Uncertainties []string       `json:"uncertainties"`
}

// ParseError reports which part of a structured answer failed to decode.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("structured answer field %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseStructured decodes a structured assistant answer. Evidence entries
// arrive in two variants depending on model mood: a bare string, or an
// object with label/cite/details. Both decode to EvidenceItem; anything else
// is a ParseError rather than a silently dropped entry.
func ParseStructured(raw string) (Structured, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var wire struct {
		Decision      string            `json:"decision"`
		Evidence      []json.RawMessage `json:"evidence"`
		Actions0to3h  []string          `json:"actions_0_3h"`
		Uncertainties []string          `json:"uncertainties"`
	}
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return Structured{}, &ParseError{Field: "root", Err: err}
	}
	if wire.Decision == "" {
		return Structured{}, &ParseError{Field: "decision", Err: fmt.Errorf("missing or empty")}
	}

	evidence := make([]EvidenceItem, 0, len(wire.Evidence))
	for i, entry := range wire.Evidence {
		item, err := parseEvidenceEntry(entry)
		if err != nil {
			return Structured{}, &ParseError{Field: fmt.Sprintf("evidence[%d]", i), Err: err}
		}
		evidence = append(evidence, item)
	}

	return Structured{
		Decision:      wire.Decision,
		Evidence:      evidence,
		Actions0to3h:  wire.Actions0to3h,
		Uncertainties: wire.Uncertainties,
	}, nil
}

// parseEvidenceEntry handles the two accepted variants explicitly.
func parseEvidenceEntry(entry json.RawMessage) (EvidenceItem, error) {
	// Variant 1: bare string. Becomes the label with an empty cite.
	var s string
	if err := json.Unmarshal(entry, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return EvidenceItem{}, fmt.Errorf("empty string entry")
		}
		return EvidenceItem{Label: s}, nil
	}

	// Variant 2: structured object.
	var item EvidenceItem
	if err := json.Unmarshal(entry, &item); err != nil {
		return EvidenceItem{}, fmt.Errorf("neither string nor object: %w", err)
	}
	if item.Label == "" {
		return EvidenceItem{}, fmt.Errorf("object entry missing label")
	}
	return item, nil
}
