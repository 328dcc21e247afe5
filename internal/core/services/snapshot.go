package services

import (
	"fmt"
	"os"

	"github.com/promptops/model-engine/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// SaveSnapshot writes the current configuration to a YAML file. The file is
// the same shape ImportConfiguration accepts, so operators can hand-edit it.
func (m *Manager) SaveSnapshot(path string) error {
	snapshot := m.ExportConfiguration()

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot merges a YAML snapshot file into the registry.
func (m *Manager) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot from %s: %w", path, err)
	}

	var snapshot domain.ConfigSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return m.ImportConfiguration(snapshot)
}
