package model

// maxRecentProjects caps the recent-projects list in the app config.
const maxRecentProjects = 10

// AppConfig holds application-wide preferences and the default settings
// applied to new generation runs.
type AppConfig struct {
	// Defaults applied when a run does not specify its own parameters.
	DefaultParams    GenerationParams `json:"default_params"`
	DefaultShapeType string           `json:"default_shape_type"`
	DefaultSeed      int64            `json:"default_seed"` // 0 = derive from clock

	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the production
// defaults from DefaultGenerationParams.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultParams:    DefaultGenerationParams(),
		DefaultShapeType: "rectangular",
		DefaultSeed:      0,
		RecentProjects:   []string{},
	}
}

// AddRecentProject records a project path at the front of the recent list,
// removing any earlier occurrence and trimming the list to its cap.
func (c *AppConfig) AddRecentProject(path string) {
	recent := make([]string, 0, len(c.RecentProjects)+1)
	recent = append(recent, path)
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
