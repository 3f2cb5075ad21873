package models

import "time"

// Config is the on-disk application configuration.
type Config struct {
	Connections []Connection    `yaml:"connections"`
	Analysis    AnalysisConfig  `yaml:"analysis"`
	Report      ReportConfig    `yaml:"report"`
}

// Connection describes one database connection. Connections are tried
// in declaration order when no connection is named explicitly.
type Connection struct {
	Name     string `yaml:"name"`
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Database string `yaml:"database"`
	Schema   string `yaml:"schema,omitempty"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`

	// Snowflake-specific
	Account   string `yaml:"account,omitempty"`
	Warehouse string `yaml:"warehouse,omitempty"`
	Role      string `yaml:"role,omitempty"`

	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// AnalysisConfig carries analysis defaults.
type AnalysisConfig struct {
	SampleLimit                 int     `yaml:"sample_limit,omitempty"`
	Strict                      bool    `yaml:"strict,omitempty"`
	NullThresholdPercent        float64 `yaml:"null_threshold_percent,omitempty"`
	ZeroThresholdPercent        float64 `yaml:"zero_threshold_percent,omitempty"`
	LowVarianceThresholdPercent float64 `yaml:"low_variance_threshold_percent,omitempty"`
}

// ReportConfig carries report output defaults.
type ReportConfig struct {
	Format    string `yaml:"format,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
}

// FindConnection returns the named connection, or nil.
func (c *Config) FindConnection(name string) *Connection {
	for i := range c.Connections {
		if c.Connections[i].Name == name {
			return &c.Connections[i]
		}
	}
	return nil
}
