// Package scenarios serves the embedded training scenarios. Each scenario
// bundles an incident with its protected assets and available resources so
// the decision pipeline can run without live feeds.
package scenarios

import (
	"encoding/json"
	"log"
	"sync"

	_ "embed"

	"go-firewatch/types"
)

//go:embed scenarios.json
var scenariosJSON []byte

var (
	loadOnce sync.Once
	loaded   []types.Scenario
)

// GetAll returns every embedded scenario.
func GetAll() []types.Scenario {
	loadOnce.Do(func() {
		var data types.ScenariosData
		if err := json.Unmarshal(scenariosJSON, &data); err != nil {
			log.Printf("[Scenarios] failed to parse embedded scenarios: %v", err)
			return
		}
		loaded = data.Scenarios
	})
	return loaded
}

// GetByID returns the scenario with the given id, or false when none matches.
func GetByID(id string) (types.Scenario, bool) {
	for _, s := range GetAll() {
		if s.ID == id {
			return s, true
		}
	}
	return types.Scenario{}, false
}
