package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable pointing at an optional YAML file.
const FileEnv = "PAPERSCRAPE_CONFIG"

var enrichers = map[string]bool{
	"none":        true,
	"readability": true,
	"trafilatura": true,
}

type Config struct {
	AppPort          int           `yaml:"app_port"`
	ProxyURL         string        `yaml:"proxy_url"`
	UserAgent        string        `yaml:"user_agent"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	DBPath           string        `yaml:"db_path"`
	RenderJS         bool          `yaml:"render_js"`
	RenderTimeout    time.Duration `yaml:"render_timeout"`
	RendersPerSecond float64       `yaml:"renders_per_second"`
	Enricher         string        `yaml:"enricher"`
	LogDevelopment   bool          `yaml:"log_development"`
}

func Default() *Config {
	return &Config{
		AppPort:          8080,
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		RequestTimeout:   30 * time.Second,
		DBPath:           "data/paperscrape.db",
		RenderTimeout:    60 * time.Second,
		RendersPerSecond: 0.5,
		Enricher:         "none",
	}
}

// Load reads .env (if present), then the YAML file named by PAPERSCRAPE_CONFIG,
// then environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error
	if v := getEnv("APP_PORT"); v != "" {
		if c.AppPort, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("APP_PORT: %w", err)
		}
	}
	if v := getEnv("PROXY_URL"); v != "" {
		c.ProxyURL = v
	}
	if v := getEnv("USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := getEnv("REQUEST_TIMEOUT"); v != "" {
		if c.RequestTimeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
	}
	if v := getEnv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := getEnv("RENDER_JS"); v != "" {
		if c.RenderJS, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("RENDER_JS: %w", err)
		}
	}
	if v := getEnv("RENDER_TIMEOUT"); v != "" {
		if c.RenderTimeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("RENDER_TIMEOUT: %w", err)
		}
	}
	if v := getEnv("RENDERS_PER_SECOND"); v != "" {
		if c.RendersPerSecond, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("RENDERS_PER_SECOND: %w", err)
		}
	}
	if v := getEnv("ENRICHER"); v != "" {
		c.Enricher = v
	}
	if v := getEnv("LOG_DEVELOPMENT"); v != "" {
		if c.LogDevelopment, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("LOG_DEVELOPMENT: %w", err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.AppPort <= 0 || c.AppPort > 65535 {
		errs = append(errs, fmt.Errorf("app port %d out of range", c.AppPort))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.RenderTimeout <= 0 {
		errs = append(errs, errors.New("render timeout must be positive"))
	}
	if c.RendersPerSecond <= 0 {
		errs = append(errs, errors.New("renders per second must be positive"))
	}
	if !enrichers[c.Enricher] {
		errs = append(errs, fmt.Errorf("unknown enricher %q", c.Enricher))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	return errors.Join(errs...)
}

func getEnv(key string) string {
	return os.Getenv(key)
}
