// Package project persists railgen data as JSON: saved projects, the
// application config, named presets and full-data backups. Shared app state
// lives under ~/.railgen; projects are saved wherever the caller points.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/railgen/internal/model"
)

// Project ties a frame, its generation parameters and the generated infill
// together for save/load.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Seed      int64  `json:"seed"`

	Frame      *model.Frame                `json:"frame"`
	Params     model.GenerationParams      `json:"params"`
	Infill     *model.Infill               `json:"infill,omitempty"`
	Statistics *model.GenerationStatistics `json:"statistics,omitempty"`
}

// New creates a project around a frame, without a result yet.
func New(name string, frame *model.Frame, params model.GenerationParams) Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Frame:     frame,
		Params:    params,
	}
}

// SetResult attaches a generation result and bumps the update timestamp.
func (p *Project) SetResult(infill model.Infill, stats model.GenerationStatistics) {
	p.Infill = &infill
	p.Statistics = &stats
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// Save writes a project to the given path as indented JSON.
// It creates any missing parent directories automatically.
func Save(path string, p Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path. Unlike the config loaders a
// missing project file is an error. The frame boundary is re-validated so a
// hand-edited file cannot smuggle in an open or self-crossing frame.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Frame == nil {
		return Project{}, fmt.Errorf("invalid project file: missing frame")
	}
	if _, err := p.Frame.Boundary(); err != nil {
		return Project{}, err
	}
	if p.Infill != nil {
		if p.Infill.Rods == nil {
			p.Infill.Rods = []model.Rod{}
		}
		if p.Infill.AnchorPoints == nil {
			p.Infill.AnchorPoints = []model.AnchorPoint{}
		}
	}
	return p, nil
}
