package config

import (
	"github.com/mkravec/cennik/internal/section"
)

// Config holds cennik configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Providers map[string]ProviderCfg `mapstructure:"providers" yaml:"providers" json:"providers"`
	Server    ServerCfg              `mapstructure:"server" yaml:"server" json:"server"`
	Storage   StorageCfg             `mapstructure:"storage" yaml:"storage" json:"storage"`
}

// ProviderCfg describes one telecom provider's price-list document: the
// ordered sections to extract and the document quirks to work around.
type ProviderCfg struct {
	// Sections is the ordered list of (key, title) pairs to extract.
	Sections []section.Spec `mapstructure:"sections" yaml:"sections" json:"sections"`

	// Overrides pins duplicated header titles to a specific occurrence.
	Overrides []OccurrenceOverride `mapstructure:"overrides" yaml:"overrides,omitempty" json:"overrides,omitempty"`

	// Layout forces the page layout instead of detecting it:
	// "auto" (default), "single_sided" or "double_sided".
	Layout string `mapstructure:"layout" yaml:"layout,omitempty" json:"layout,omitempty"`
}

// OccurrenceOverride says which header occurrence of a duplicated title marks
// the real section start. Occurrence is 1-based. This is configuration data,
// not logic: some documents repeat a title once before the section begins.
type OccurrenceOverride struct {
	Title      string `mapstructure:"title" yaml:"title" json:"title"`
	Occurrence int    `mapstructure:"occurrence" yaml:"occurrence" json:"occurrence"`
}

// ServerCfg configures the HTTP API.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host" json:"host"`
	Port string `mapstructure:"port" yaml:"port" json:"port"`
}

// StorageCfg configures the extraction store.
type StorageCfg struct {
	// Path is the SQLite database file. Empty means {home}/data/cennik.db.
	Path string `mapstructure:"path" yaml:"path,omitempty" json:"path,omitempty"`
}

// OverrideTable converts the override list into the lookup table the section
// extractor consumes.
func (p ProviderCfg) OverrideTable() map[string]int {
	if len(p.Overrides) == 0 {
		return nil
	}
	table := make(map[string]int, len(p.Overrides))
	for _, o := range p.Overrides {
		table[o.Title] = o.Occurrence
	}
	return table
}

// GetProvider returns a provider config by name.
func (c *Config) GetProvider(name string) (ProviderCfg, bool) {
	cfg, ok := c.Providers[name]
	return cfg, ok
}

// ProviderNames returns the configured provider names.
func (c *Config) ProviderNames() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	return names
}
