package catalog

import (
	"embed"
	"fmt"
	"os"

	"fanclub/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/default.yaml
var fixturesFS embed.FS

// LoadFixtures parses a YAML snapshot from path, or the embedded default
// fixtures when path is empty.
func LoadFixtures(path string) (*Snapshot, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = fixturesFS.ReadFile("fixtures/default.yaml")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

func ParseFixtures(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if snap.RevenueHistory == nil {
		snap.RevenueHistory = map[string][]models.RevenuePoint{}
	}
	return &snap, nil
}
