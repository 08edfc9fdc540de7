// Package config loads the launcher configuration for tradectl.
//
// The interpreter path, script locations, environment name, Python
// version, and requirements manifest are fixed constants of the toolkit;
// they ship as built-in defaults and can be overridden through an optional
// config file in the working directory.
//
// Both YAML (gopkg.in/yaml.v3) and JSONC (github.com/tidwall/jsonc, comments
// stripped before parsing with encoding/json) are accepted; the format is
// chosen by file extension.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/tradectl/internal/model"
)

// Default configuration values, applied whenever no config file
// overrides them.
const (
	// DefaultInterpreter is the Python interpreter used by the
	// argument-forwarding launchers.
	DefaultInterpreter = "python"

	// DefaultScriptsDir is the directory holding the external collaborator
	// scripts (add_holding.py, add_cash.py, ...) relative to the working
	// directory.
	DefaultScriptsDir = "cli"

	// DefaultMainScript is the main application entry point launched by
	// the start command inside the managed environment.
	DefaultMainScript = "auto_trade/main.py"

	// DefaultEnvName is the conda environment the application runs in.
	DefaultEnvName = "auto_trade"

	// DefaultPythonVersion is the pinned interpreter version used only
	// during first-time environment creation.
	DefaultPythonVersion = "3.10"

	// DefaultRequirements is the manifest installed into a newly created
	// environment.
	DefaultRequirements = "requirements.txt"
)

// fileNames lists the config files probed in the working directory,
// in precedence order.
var fileNames = []string{
	"tradectl.yaml",
	"tradectl.yml",
	"tradectl.jsonc",
	"tradectl.json",
}

// EnvConfig describes the managed Python environment used by the start
// command.
type EnvConfig struct {
	// Name is the conda environment name.
	Name string `yaml:"name" json:"name"`

	// PythonVersion is the pinned version passed to conda create.
	// It is consulted only when the environment does not exist yet.
	PythonVersion string `yaml:"pythonVersion" json:"pythonVersion"`

	// Requirements is the pip requirements manifest installed exactly once,
	// right after environment creation.
	Requirements string `yaml:"requirements" json:"requirements"`
}

// Config holds all launcher settings. Zero-value fields are filled with
// the package defaults after loading, so a config file only needs to name
// the fields it overrides.
type Config struct {
	// Interpreter is the Python interpreter invoked by the
	// argument-forwarding launchers (add-holding, add-cash, ...).
	Interpreter string `yaml:"interpreter" json:"interpreter"`

	// ScriptsDir is the directory containing the collaborator scripts.
	ScriptsDir string `yaml:"scriptsDir" json:"scriptsDir"`

	// MainScript is the path to the main application entry point.
	MainScript string `yaml:"mainScript" json:"mainScript"`

	// Env describes the managed environment for the start command.
	Env EnvConfig `yaml:"env" json:"env"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Interpreter: DefaultInterpreter,
		ScriptsDir:  DefaultScriptsDir,
		MainScript:  DefaultMainScript,
		Env: EnvConfig{
			Name:          DefaultEnvName,
			PythonVersion: DefaultPythonVersion,
			Requirements:  DefaultRequirements,
		},
	}
}

// applyDefaults fills any field left empty by the config file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Interpreter == "" {
		c.Interpreter = d.Interpreter
	}
	if c.ScriptsDir == "" {
		c.ScriptsDir = d.ScriptsDir
	}
	if c.MainScript == "" {
		c.MainScript = d.MainScript
	}
	if c.Env.Name == "" {
		c.Env.Name = d.Env.Name
	}
	if c.Env.PythonVersion == "" {
		c.Env.PythonVersion = d.Env.PythonVersion
	}
	if c.Env.Requirements == "" {
		c.Env.Requirements = d.Env.Requirements
	}
}

// ScriptPath returns the path of a collaborator script inside ScriptsDir.
func (c *Config) ScriptPath(name string) string {
	return filepath.Join(c.ScriptsDir, name)
}

// Load reads and parses the config file at the given path.
//
// The format is selected by extension: .yaml/.yml are parsed with yaml.v3,
// .json/.jsonc have comments stripped via jsonc and are then parsed with
// the standard encoding/json. Any other extension is rejected.
//
// Fields missing from the file keep their built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read config file %q", path), err)
	}

	cfg := &Config{}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse config file %q", path), err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse config file %q", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unsupported config file extension %q (expected .yaml, .yml, .json or .jsonc)", ext))
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Discover loads the configuration for the given directory.
//
// It probes the well-known file names in precedence order and loads the
// first one that exists. When no config file is present, the built-in
// defaults are returned — a config file is optional.
func Discover(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
