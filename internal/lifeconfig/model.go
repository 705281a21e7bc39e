// Package lifeconfig defines the life calendar configuration, the single unit
// of persistence, export, import and sharing, together with the structural
// validator every external input goes through.
package lifeconfig

import "github.com/tartampluch/go-lifeweeks/internal/config"

// CurrentVersion is written into every stored envelope.
const CurrentVersion = config.ConfigVersion

// LifePeriod is a labeled phase of life. Start and End are inclusive ISO dates.
// An empty Color means the period gets an automatically assigned palette token.
type LifePeriod struct {
	Label string `json:"label" yaml:"label"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// DateMarker annotates a single day of the grid.
type DateMarker struct {
	Date  string `json:"date" yaml:"date"`
	Title string `json:"title" yaml:"title"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// LifeConfig drives the whole calendar. Periods and Dates keep insertion order.
type LifeConfig struct {
	Birthdate  string       `json:"birthdate" yaml:"birthdate"`
	TotalYears int          `json:"totalYears" yaml:"totalYears"`
	Periods    []LifePeriod `json:"periods" yaml:"periods"`
	Dates      []DateMarker `json:"dates" yaml:"dates"`

	// ShowToday is nil when the source did not carry the flag.
	ShowToday *bool `json:"showToday,omitempty" yaml:"showToday,omitempty"`
}

// StoredConfig is the versioned envelope used for local storage and file export.
type StoredConfig struct {
	Version    int `json:"version" yaml:"version"`
	LifeConfig `yaml:",inline"`
}

// Stored wraps cfg in the current envelope.
func Stored(cfg LifeConfig) StoredConfig {
	return StoredConfig{Version: CurrentVersion, LifeConfig: cfg.Canonical()}
}

// Canonical returns a copy whose sequences are never nil, so that encoders
// always emit arrays instead of null.
func (c LifeConfig) Canonical() LifeConfig {
	out := c
	out.Periods = make([]LifePeriod, len(c.Periods))
	copy(out.Periods, c.Periods)
	out.Dates = make([]DateMarker, len(c.Dates))
	copy(out.Dates, c.Dates)
	if c.ShowToday != nil {
		v := *c.ShowToday
		out.ShowToday = &v
	}
	return out
}

// BirthDate parses the configured birthdate.
func (c LifeConfig) BirthDate() (Date, error) {
	return ParseDate(c.Birthdate)
}

// TodayVisible reports whether the synthetic today marker should be drawn.
func (c LifeConfig) TodayVisible() bool {
	return c.ShowToday != nil && *c.ShowToday
}

// Bool returns a pointer to v, for building configs with ShowToday set.
func Bool(v bool) *bool {
	return &v
}
