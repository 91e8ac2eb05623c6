// Package server loads the atacd configuration file.
package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Port to listen on. default = "8080".
	Port string `yaml:"port"`

	// Model is the COBRA JSON export to load on startup. Empty means
	// "load nothing until POST /api/model/load", which then also
	// searches the default locations.
	Model string `yaml:"model"`

	// DataDir holds the thermo cache files. default = "data".
	DataDir string `yaml:"dataDir"`

	// DBURI is the postgres connection string for constraint storage.
	// Empty keeps constraints in process memory.
	DBURI string `yaml:"dbURI"`

	Solver Solver `yaml:"solver"`

	// ShareSecret signs constraint share tokens. Empty disables
	// export/import.
	ShareSecret string `yaml:"shareSecret"`

	RateLimit RateLimit `yaml:"rateLimit"`
}

type Solver struct {
	// Command is the GLPK executable. default = "glpsol".
	Command string `yaml:"command"`

	// Timeout per solver run. default = 60s. Zero disables.
	Timeout Duration `yaml:"timeout"`
}

type RateLimit struct {
	// RPS per client address. Zero disables rate limiting.
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Duration accepts time.ParseDuration syntax in YAML ("60s", "1m30s").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("can not parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load reads the config file and fills defaults.
func Load(file string) (Config, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return Config{}, err
	}
	return Unmarshal(content)
}

func Unmarshal(content []byte) (Config, error) {
	conf := Config{
		Port:    "8080",
		DataDir: "data",
		Solver: Solver{
			Command: "glpsol",
			Timeout: Duration(60 * time.Second),
		},
	}
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return Config{}, err
	}

	if conf.Port == "" {
		conf.Port = "8080"
	}
	if conf.Solver.Command == "" {
		conf.Solver.Command = "glpsol"
	}
	if conf.RateLimit.RPS > 0 && conf.RateLimit.Burst <= 0 {
		conf.RateLimit.Burst = int(conf.RateLimit.RPS)
	}
	return conf, nil
}
