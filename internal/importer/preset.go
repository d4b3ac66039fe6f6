package importer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/project"
)

// ReadPresetFile loads a preset from a TOML parameter file. Generation
// parameters start from the production defaults, so a file only has to name
// the fields it changes. The shape table is optional; when present its type
// must be valid.
func ReadPresetFile(path string) (project.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return project.Preset{}, err
	}

	preset := project.Preset{
		Generation: model.DefaultGenerationParams(),
	}
	if err := toml.Unmarshal(data, &preset); err != nil {
		return project.Preset{}, fmt.Errorf("failed to parse preset file: %w", err)
	}

	if err := preset.Generation.Validate(); err != nil {
		return project.Preset{}, err
	}
	if preset.Shape.Type != "" {
		if err := preset.Shape.Validate(); err != nil {
			return project.Preset{}, err
		}
	}
	return preset, nil
}

// WritePresetFile saves a preset as a TOML parameter file.
func WritePresetFile(path string, preset project.Preset) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(preset); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
