// Package config loads the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Zero values in the YAML file
// fall back to the defaults.
type Config struct {
	// EmailsPath is the root directory of .eml message files.
	EmailsPath string `yaml:"emails_path"`

	// OutputPath is where export artifacts are written.
	OutputPath string `yaml:"output_path"`

	// DBPath is the sqlite database holding pipeline runs.
	DBPath string `yaml:"db_path"`

	// Listen is the address of the result API server.
	Listen string `yaml:"listen"`

	// Workers bounds the classification/extraction worker pool.
	Workers int `yaml:"workers"`

	// TargetCategories are the categories contact extraction runs on.
	TargetCategories []string `yaml:"target_categories"`

	// SenderExclusions are substrings of our own outbound sender
	// addresses/domains; recipient extraction rejects addresses
	// matching any of them.
	SenderExclusions []string `yaml:"sender_exclusions"`

	// Lead quality thresholds.
	HighScoreThreshold   int `yaml:"high_score_threshold"`
	MediumScoreThreshold int `yaml:"medium_score_threshold"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	dataDir := filepath.Join(homeDir, ".replysift")

	return &Config{
		EmailsPath: "./emails",
		OutputPath: "./out",
		DBPath:     filepath.Join(dataDir, "replysift.db"),
		Listen:     "localhost:8080",
		Workers:    runtime.NumCPU() * 2,
		TargetCategories: []string{
			"replies",
			"out_of_office",
			"automatic_replies",
			"contact_info",
		},
		SenderExclusions: []string{
			"beeleads",
			"danny@",
			"claire@",
			"emma@",
			"brian@",
			"maddie@",
		},
		HighScoreThreshold:   70,
		MediumScoreThreshold: 50,
	}
}

// Load reads a YAML config file and merges it over the defaults. An empty
// path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if file.EmailsPath != "" {
		cfg.EmailsPath = file.EmailsPath
	}
	if file.OutputPath != "" {
		cfg.OutputPath = file.OutputPath
	}
	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.Listen != "" {
		cfg.Listen = file.Listen
	}
	if file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	if len(file.TargetCategories) > 0 {
		cfg.TargetCategories = file.TargetCategories
	}
	if len(file.SenderExclusions) > 0 {
		cfg.SenderExclusions = file.SenderExclusions
	}
	if file.HighScoreThreshold > 0 {
		cfg.HighScoreThreshold = file.HighScoreThreshold
	}
	if file.MediumScoreThreshold > 0 {
		cfg.MediumScoreThreshold = file.MediumScoreThreshold
	}

	return cfg, nil
}
