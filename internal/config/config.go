package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"colsweep/pkg/models"
)

// GetConfigPath returns the configuration directory.
func GetConfigPath() string {
	if configPath := os.Getenv("COLSWEEP_CONFIG"); configPath != "" {
		return filepath.Dir(configPath)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".colsweep")
}

// GetConfigFile returns the configuration file path, honoring the
// COLSWEEP_CONFIG environment variable.
func GetConfigFile() string {
	if configFile := os.Getenv("COLSWEEP_CONFIG"); configFile != "" {
		return configFile
	}
	return filepath.Join(GetConfigPath(), "config.yaml")
}

// Load reads the configuration file. A missing file yields an empty
// configuration, not an error; environment overrides apply afterwards.
func Load() (*models.Config, error) {
	configFile := GetConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		cfg := &models.Config{}
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config models.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&config)
	return &config, nil
}

// Save writes the configuration file with restrictive permissions.
func Save(config *models.Config) error {
	configPath := GetConfigPath()
	if err := os.MkdirAll(configPath, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigFile(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists reports whether a configuration file is present.
func Exists() bool {
	_, err := os.Stat(GetConfigFile())
	return err == nil
}

// applyEnvOverrides fills connection credentials from DB_* environment
// variables. A connection named "env" is appended when the variables
// describe a database that is not already configured.
func applyEnvOverrides(config *models.Config) {
	host := os.Getenv("DB_HOST")
	database := os.Getenv("DB_DATABASE")
	if host == "" || database == "" {
		return
	}
	if config.FindConnection("env") != nil {
		return
	}

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlserver"
	}

	config.Connections = append(config.Connections, models.Connection{
		Name:     "env",
		Driver:   driver,
		Host:     host,
		Database: database,
		Schema:   os.Getenv("DB_SCHEMA"),
		Username: os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
	})
}
