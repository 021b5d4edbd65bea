package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/usecase/summarize"
)

// tiersFile is the YAML shape for tier overrides:
//
//	tiers:
//	  short:
//	    min_tokens: 30
//	    max_tokens: 90
//	  medium:
//	    min_tokens: 60
//	    max_tokens: 180
//	  long:
//	    min_tokens: 120
//	    max_tokens: 360
type tiersFile struct {
	Tiers map[string]tierBounds `yaml:"tiers"`
}

type tierBounds struct {
	MinTokens int `yaml:"min_tokens"`
	MaxTokens int `yaml:"max_tokens"`
}

// LoadTiers reads tier definitions from a YAML file. An empty path
// returns the built-in defaults. The loaded table must define all
// three tiers and pass the same monotonicity checks as the defaults.
func LoadTiers(path string) (summarize.Tiers, error) {
	if path == "" {
		return summarize.DefaultTiers(), nil
	}

	// #nosec G304 -- path comes from configuration, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiers file: %w", err)
	}

	var file tiersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tiers file: %w", err)
	}

	tiers := make(summarize.Tiers, len(file.Tiers))
	for name, bounds := range file.Tiers {
		tier, err := entity.ParseLengthTier(name)
		if err != nil {
			return nil, fmt.Errorf("tiers file: %w", err)
		}
		tiers[tier] = entity.GenerationBounds{
			MinTokens: bounds.MinTokens,
			MaxTokens: bounds.MaxTokens,
		}
	}

	if err := tiers.Validate(); err != nil {
		return nil, fmt.Errorf("tiers file validation failed: %w", err)
	}

	return tiers, nil
}
