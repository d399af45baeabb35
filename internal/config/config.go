// Package config collects the process configuration from defaults, an
// optional YAML file and the environment, in that order.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// ListenAddress is the address the HTTP server binds to.
	ListenAddress string `yaml:"listenAddress"`

	// DataDir is the directory holding the budget database files.
	DataDir string `yaml:"dataDir"`

	// BudgetName is the budget the server opens. It is created on first run.
	BudgetName string `yaml:"budgetName"`

	// GinMode is the gin framework mode, "release" or "debug".
	GinMode string `yaml:"ginMode"`

	// LogFormat selects "human" readable logs instead of JSON.
	LogFormat string `yaml:"logFormat"`

	// CORSAllowOrigins is a space-separated list of allowed CORS origins.
	CORSAllowOrigins string `yaml:"corsAllowOrigins"`

	// EnablePprof mounts the pprof endpoints under /debug/pprof.
	EnablePprof bool `yaml:"enablePprof"`
}

// Load reads the configuration. A .env file in the working directory is
// loaded into the environment first, when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddress: ":8080",
		DataDir:       "data",
		BudgetName:    "budget",
		GinMode:       "release",
	}

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("could not read config file: %w", err)
		}

		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("could not parse config file: %w", err)
		}
	}

	setString(&cfg.ListenAddress, "LISTEN_ADDRESS")
	setString(&cfg.DataDir, "DATA_DIR")
	setString(&cfg.BudgetName, "BUDGET_NAME")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.CORSAllowOrigins, "CORS_ALLOW_ORIGINS")

	if v, ok := os.LookupEnv("ENABLE_PPROF"); ok {
		cfg.EnablePprof = v == "true" || v == "1"
	}

	return cfg, nil
}

func setString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*target = v
	}
}
