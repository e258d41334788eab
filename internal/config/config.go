// Package config resolves where the store file and backup directory live.
//
// Precedence, lowest to highest: built-in defaults, an optional
// orderdesk.yaml file, ORDERDESK_* environment variables. Command-line flags
// override all three and are applied by the CLI layer.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file probed in the working directory when no
// explicit path is given.
const DefaultFile = "orderdesk.yaml"

type Config struct {
	// DBPath is the SQLite store file.
	DBPath string `yaml:"db_path" env:"ORDERDESK_DB"`
	// BackupDir is where timestamped backups are written.
	BackupDir string `yaml:"backup_dir" env:"ORDERDESK_BACKUP_DIR"`
}

func defaults() *Config {
	return &Config{
		DBPath:    "orders.db",
		BackupDir: "backups",
	}
}

// Load builds the configuration. path may be empty, in which case
// DefaultFile is used when present; a missing default file is not an error,
// a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; run on defaults.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}
