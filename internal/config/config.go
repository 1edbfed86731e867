package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port       string        `yaml:"port"`
	DBPath     string        `yaml:"db_path"`
	DataFile   string        `yaml:"data_file"` // imported into the database at startup when set
	JWTSecret  string        `yaml:"jwt_secret"`
	RateLimit  int           `yaml:"rate_limit"` // requests per window and client, 0 disables
	RateWindow time.Duration `yaml:"rate_window"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:       ":8080",
		DBPath:     "./data/trajectories.db",
		RateLimit:  120,
		RateWindow: time.Minute,
	}
}

// Load 加载配置: defaults, then the YAML file named by CONFIG_FILE, then
// environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		c.DBPath = dbPath
	}
	if dataFile := os.Getenv("DATA_FILE"); dataFile != "" {
		c.DataFile = dataFile
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		c.RateLimit = n
	}
	if v := os.Getenv("RATE_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_WINDOW %q: %w", v, err)
		}
		c.RateWindow = d
	}
	return nil
}
