package mealbook

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML shape. It is mapped onto [Config] rather than
// unmarshalled into it directly so the file can use plain integer timeouts and
// omit whole sections.
type fileConfig struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		UserAgent      string `yaml:"user_agent"`
	} `yaml:"api"`
	Session struct {
		RedisPrefix string `yaml:"redis_prefix"`
		FilePath    string `yaml:"file_path"`
	} `yaml:"session"`
	Booking struct {
		Holidays       []string `yaml:"holidays"`
		HolidayFile    string   `yaml:"holiday_file"`
		MaxAdvanceDays int      `yaml:"max_advance_days"`
	} `yaml:"booking"`
	Audit struct {
		Enabled    bool  `yaml:"enabled"`
		BufferSize int   `yaml:"buffer_size"`
		DropIfFull *bool `yaml:"drop_if_full"`
	} `yaml:"audit"`
	Metrics struct {
		Enabled           bool `yaml:"enabled"`
		LatencyHistograms bool `yaml:"latency_histograms"`
	} `yaml:"metrics"`
}

// LoadConfig reads a YAML config file on top of [DefaultConfig]. A .env file in
// the working directory is loaded first when present, and ${VAR} references in
// the YAML are expanded from the environment before parsing.
func LoadConfig(configPath string) (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	var fc fileConfig
	if err := yaml.Unmarshal(expanded, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := defaultConfig()
	if fc.API.BaseURL != "" {
		cfg.API.BaseURL = fc.API.BaseURL
	}
	if fc.API.TimeoutSeconds > 0 {
		cfg.API.Timeout = time.Duration(fc.API.TimeoutSeconds) * time.Second
	}
	if fc.API.UserAgent != "" {
		cfg.API.UserAgent = fc.API.UserAgent
	}
	if fc.Session.RedisPrefix != "" {
		cfg.Session.RedisPrefix = fc.Session.RedisPrefix
	}
	cfg.Session.FilePath = fc.Session.FilePath
	cfg.Booking.Holidays = fc.Booking.Holidays
	cfg.Booking.HolidayFile = fc.Booking.HolidayFile
	cfg.Booking.MaxAdvanceDays = fc.Booking.MaxAdvanceDays
	cfg.Audit.Enabled = fc.Audit.Enabled
	if fc.Audit.BufferSize > 0 {
		cfg.Audit.BufferSize = fc.Audit.BufferSize
	}
	if fc.Audit.DropIfFull != nil {
		cfg.Audit.DropIfFull = *fc.Audit.DropIfFull
	}
	cfg.Metrics.Enabled = fc.Metrics.Enabled
	cfg.Metrics.EnableLatencyHistograms = fc.Metrics.LatencyHistograms

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
