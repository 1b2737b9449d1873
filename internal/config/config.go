// Package config loads optional run defaults from a .lastgood.yaml file
// in the repository directory and from LASTGOOD_* environment variables.
// Precedence, lowest to highest: file, environment, command-line flags
// (applied by the caller).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the repository directory.
const FileName = ".lastgood.yaml"

// Config holds run defaults. Pointer fields distinguish "unset" from an
// explicit false.
type Config struct {
	Command   string `yaml:"command"`    // default verification command template
	Restore   *bool  `yaml:"restore"`    // restore the original checkout at run end
	Verbose   bool   `yaml:"verbose"`    // debug-level logging
	ReportDir string `yaml:"report_dir"` // where run reports are stored
}

// Load reads the config file from dir, if present, then applies
// environment overrides from environ (format "KEY=VALUE"). A missing
// file is not an error; an unparsable one is.
func Load(dir string, environ []string) (Config, error) {
	var cfg Config

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg, parseEnviron(environ))
	return cfg, nil
}

func applyEnv(cfg *Config, env map[string]string) {
	if v, ok := env["LASTGOOD_CMD"]; ok {
		cfg.Command = v
	}
	if v, ok := env["LASTGOOD_RESTORE"]; ok {
		b := isTruthy(v)
		cfg.Restore = &b
	}
	if v, ok := env["LASTGOOD_VERBOSE"]; ok {
		cfg.Verbose = isTruthy(v)
	}
	if v, ok := env["LASTGOOD_REPORT_DIR"]; ok {
		cfg.ReportDir = v
	}
}

// parseEnviron converts an environ slice (["KEY=VALUE", ...]) into a map.
// Values may themselves contain "=".
func parseEnviron(environ []string) map[string]string {
	result := make(map[string]string)
	for _, entry := range environ {
		idx := strings.Index(entry, "=")
		if idx == -1 {
			continue
		}
		result[entry[:idx]] = entry[idx+1:]
	}
	return result
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}
