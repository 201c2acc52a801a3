package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/antonrybalko/mergington-activities/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed activities.yaml
var defaultActivitiesYAML []byte

// LoadActivityConfig loads the seed dataset from the YAML file named in
// the Config struct, or the embedded default when no path is set
func LoadActivityConfig(cfg *Config) (*domain.ActivityConfig, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.ActivitiesConfigPath == "" {
		return ParseActivityConfig(defaultActivitiesYAML)
	}

	data, err := os.ReadFile(cfg.ActivitiesConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("activities config file not found at %s", cfg.ActivitiesConfigPath)
		}
		return nil, fmt.Errorf("failed to read activities config file: %w", err)
	}

	return ParseActivityConfig(data)
}

// DefaultActivityConfig returns the embedded seed dataset
func DefaultActivityConfig() (*domain.ActivityConfig, error) {
	return ParseActivityConfig(defaultActivitiesYAML)
}

// ParseActivityConfig decodes and validates a YAML seed dataset
func ParseActivityConfig(data []byte) (*domain.ActivityConfig, error) {
	var activityConfig domain.ActivityConfig
	if err := yaml.Unmarshal(data, &activityConfig); err != nil {
		return nil, fmt.Errorf("failed to parse activities config YAML: %w", err)
	}

	if err := validateActivityConfig(&activityConfig); err != nil {
		return nil, fmt.Errorf("invalid activities config: %w", err)
	}

	return &activityConfig, nil
}

// validateActivityConfig checks the invariants the registry relies on
func validateActivityConfig(cfg *domain.ActivityConfig) error {
	if len(cfg.Activities) == 0 {
		return errors.New("no activities defined")
	}

	names := make(map[string]bool, len(cfg.Activities))
	for i, a := range cfg.Activities {
		if a.Name == "" {
			return fmt.Errorf("activity at index %d has no name", i)
		}
		if names[a.Name] {
			return fmt.Errorf("duplicate activity name '%s'", a.Name)
		}
		names[a.Name] = true

		if a.Description == "" {
			return fmt.Errorf("activity '%s' has no description", a.Name)
		}
		if a.MaxParticipants < 0 {
			return fmt.Errorf("activity '%s' has invalid max_participants: %d", a.Name, a.MaxParticipants)
		}

		seen := make(map[string]bool, len(a.Participants))
		for _, email := range a.Participants {
			if email == "" {
				return fmt.Errorf("activity '%s' has an empty participant", a.Name)
			}
			if seen[email] {
				return fmt.Errorf("activity '%s' lists participant '%s' more than once", a.Name, email)
			}
			seen[email] = true
		}
	}

	return nil
}
