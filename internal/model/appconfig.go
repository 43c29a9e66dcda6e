package model

// AppConfig holds application-wide preferences and default job settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultStockLength   float64 `json:"default_stock_length"`
	DefaultSpacing       float64 `json:"default_spacing"`
	DefaultJoistWidth    float64 `json:"default_joist_width"`
	DefaultJoistHeight   float64 `json:"default_joist_height"`
	DefaultTatamiHeight  float64 `json:"default_tatami_height"`
	DefaultFlooring      float64 `json:"default_flooring"`
	DefaultPlywoodWidth  float64 `json:"default_plywood_width"`
	DefaultPlywoodLength float64 `json:"default_plywood_length"`
	DefaultBoardWidth    float64 `json:"default_board_width"`
	DefaultBoardLength   float64 `json:"default_board_length"`
	EcoMode              bool    `json:"eco_mode"`

	// Application preferences
	ExportDir  string   `json:"export_dir"` // Where exports go when no path is given
	RecentJobs []string `json:"recent_jobs"`
	Color      string   `json:"color"` // "auto", "always", "never"
}

// DefaultAppConfig returns an AppConfig populated with the usual tatami frame sizes.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultStockLength:   1820,
		DefaultSpacing:       303,
		DefaultJoistWidth:    30,
		DefaultJoistHeight:   40,
		DefaultTatamiHeight:  55,
		DefaultFlooring:      12,
		DefaultPlywoodWidth:  910,
		DefaultPlywoodLength: 1820,
		DefaultBoardWidth:    DefaultBoardSize.Width,
		DefaultBoardLength:   DefaultBoardSize.Length,
		EcoMode:              false,
		ExportDir:            ".",
		RecentJobs:           []string{},
		Color:                "auto",
	}
}

// ApplyToJob copies the default values from AppConfig into a job.
// This is used when creating a new job so it inherits the user's saved defaults.
func (c AppConfig) ApplyToJob(j *Job) {
	j.Joist.StockLength = c.DefaultStockLength
	j.Joist.Spacing = c.DefaultSpacing
	j.Joist.Width = c.DefaultJoistWidth
	j.Joist.Height = c.DefaultJoistHeight
	j.Joist.EcoMode = c.EcoMode
	j.Height.Tatami = c.DefaultTatamiHeight
	j.Height.Flooring = c.DefaultFlooring
	j.Plywood = SheetSpec{Width: c.DefaultPlywoodWidth, Length: c.DefaultPlywoodLength}
	j.Insulation = SheetSpec{Width: c.DefaultBoardWidth, Length: c.DefaultBoardLength}
}

// AddRecentJob moves path to the front of the recent job list, keeping at most max entries.
func (c *AppConfig) AddRecentJob(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentJobs = recent
}
