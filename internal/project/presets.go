package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/shapes"
)

// Preset is a reusable, named bundle of shape and generation parameters. It
// captures how to build and fill a frame but not the generated result. The
// toml tags let a preset double as a standalone parameter file; store
// bookkeeping fields stay out of that form.
type Preset struct {
	ID          string `json:"id" toml:"-"`
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description,omitempty"`
	CreatedAt   string `json:"created_at" toml:"-"`
	UpdatedAt   string `json:"updated_at" toml:"-"`

	Shape      shapes.Params          `json:"shape" toml:"shape"`
	Generation model.GenerationParams `json:"generation" toml:"generation"`
}

// NewPreset creates a preset with a fresh ID and timestamps.
func NewPreset(name, description string, shape shapes.Params, gen model.GenerationParams) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Shape:       shape,
		Generation:  gen,
	}
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []Preset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p Preset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names, in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}

// DefaultPresetsPath returns the default file path for the preset store.
// This is located at ~/.railgen/presets.json.
func DefaultPresetsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".railgen")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets.json"), nil
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store PresetStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads a preset store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadPresets(path string) (PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewPresetStore(), nil
		}
		return PresetStore{}, err
	}
	var store PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return PresetStore{}, err
	}
	if store.Presets == nil {
		store.Presets = []Preset{}
	}
	return store, nil
}

// LoadDefaultPresets loads presets from the default path.
func LoadDefaultPresets() (PresetStore, error) {
	path, err := DefaultPresetsPath()
	if err != nil {
		return NewPresetStore(), err
	}
	return LoadPresets(path)
}

// SaveDefaultPresets saves presets to the default path.
func SaveDefaultPresets(store PresetStore) error {
	path, err := DefaultPresetsPath()
	if err != nil {
		return err
	}
	return SavePresets(path, store)
}
