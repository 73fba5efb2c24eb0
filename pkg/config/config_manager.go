// Package config resolves convobudget settings from the environment, an
// optional .env file, and an optional ~/.convobudget.yaml defaults file.
// Environment variables win over file values, which win over the
// package defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/convobudget/convobudget/pkg/budget"
)

// FileName is the per-user defaults file looked up in the home directory.
const FileName = ".convobudget.yaml"

// Manager provides configuration management functionality
type Manager interface {
	GetString(key string) (string, error)
	GetStringWithDefault(key, defaultValue string) string
	RequireString(key string) string
	GetInt(key string) (int, error)
	GetIntWithDefault(key string, defaultValue int) int
	GetFloatWithDefault(key string, defaultValue float64) float64
	GetBoolWithDefault(key string, defaultValue bool) bool
	GetBudgetConfig() budget.Config
	GetKeepLastNSystem() int
	GetRollupKeepLastN() int
	GetModel() string
}

// fileConfig mirrors the optional YAML defaults file. Pointer fields
// distinguish "unset" from a deliberate zero.
type fileConfig struct {
	CharLimit      *int     `yaml:"char_limit"`
	SafetyRatio    *float64 `yaml:"safety_ratio"`
	ExtraOverhead  *int     `yaml:"extra_overhead"`
	TruncateLast   *bool    `yaml:"truncate_last"`
	KeepSystem     *int     `yaml:"keep_system"`
	RollupKeepLast *int     `yaml:"rollup_keep_last"`
	Model          string   `yaml:"model"`
}

// DefaultManager implements the Manager interface
type DefaultManager struct {
	file fileConfig
}

var loadDotenv sync.Once

// NewConfigManager creates a config manager. A .env file in the working
// directory and a defaults file in the home directory are both loaded
// best effort; their absence is not an error.
func NewConfigManager() Manager {
	loadDotenv.Do(func() {
		_ = godotenv.Load()
	})

	m := &DefaultManager{}
	if home, err := homedir.Dir(); err == nil {
		m.loadFile(filepath.Join(home, FileName))
	}
	return m
}

// NewConfigManagerFromFile creates a manager backed by an explicit
// defaults file (useful for tests).
func NewConfigManagerFromFile(path string) Manager {
	m := &DefaultManager{}
	m.loadFile(path)
	return m
}

func (m *DefaultManager) loadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// A malformed defaults file is ignored rather than fatal; env and
	// built-in defaults still apply.
	_ = yaml.Unmarshal(data, &m.file)
}

// GetString gets a configuration value by key, returns error if not found
func (m *DefaultManager) GetString(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("configuration key %s not found", key)
	}
	return value, nil
}

// GetStringWithDefault gets a configuration value by key, returns default if not found
func (m *DefaultManager) GetStringWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// RequireString gets a configuration value by key, panics if not found
func (m *DefaultManager) RequireString(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required configuration key %s not found", key))
	}
	return value
}

// GetInt gets an integer configuration value by key, returns error if not found or invalid
func (m *DefaultManager) GetInt(key string) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, fmt.Errorf("configuration key %s not found", key)
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("configuration key %s has invalid integer value: %s", key, value)
	}
	return intValue, nil
}

// GetIntWithDefault gets an integer configuration value by key, returns default if not found or invalid
func (m *DefaultManager) GetIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// GetFloatWithDefault gets a float configuration value by key, returns default if not found or invalid
func (m *DefaultManager) GetFloatWithDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

// GetBoolWithDefault gets a boolean configuration value by key, returns default if not found or invalid
func (m *DefaultManager) GetBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// GetBudgetConfig resolves the character budget policy from environment
// variables and the defaults file over budget.DefaultConfig().
func (m *DefaultManager) GetBudgetConfig() budget.Config {
	cfg := budget.DefaultConfig()

	if m.file.CharLimit != nil {
		cfg.CharLimit = *m.file.CharLimit
	}
	if m.file.SafetyRatio != nil {
		cfg.SafetyRatio = *m.file.SafetyRatio
	}
	if m.file.ExtraOverhead != nil {
		cfg.ExtraOverhead = *m.file.ExtraOverhead
	}
	if m.file.TruncateLast != nil {
		cfg.TruncateLastIfNeeded = *m.file.TruncateLast
	}

	cfg.CharLimit = m.GetIntWithDefault("CONVOBUDGET_CHAR_LIMIT", cfg.CharLimit)
	cfg.SafetyRatio = m.GetFloatWithDefault("CONVOBUDGET_SAFETY_RATIO", cfg.SafetyRatio)
	cfg.ExtraOverhead = m.GetIntWithDefault("CONVOBUDGET_EXTRA_OVERHEAD", cfg.ExtraOverhead)
	cfg.TruncateLastIfNeeded = m.GetBoolWithDefault("CONVOBUDGET_TRUNCATE_LAST", cfg.TruncateLastIfNeeded)
	return cfg
}

// GetKeepLastNSystem resolves how many system messages to pin (default 1).
func (m *DefaultManager) GetKeepLastNSystem() int {
	n := 1
	if m.file.KeepSystem != nil {
		n = *m.file.KeepSystem
	}
	return m.GetIntWithDefault("CONVOBUDGET_KEEP_SYSTEM", n)
}

// GetRollupKeepLastN resolves how many recent messages a rollup keeps (default 6).
func (m *DefaultManager) GetRollupKeepLastN() int {
	n := 6
	if m.file.RollupKeepLast != nil {
		n = *m.file.RollupKeepLast
	}
	return m.GetIntWithDefault("CONVOBUDGET_ROLLUP_KEEP_LAST", n)
}

// GetModel resolves the model name used for token counting and
// LLM-backed summarization.
func (m *DefaultManager) GetModel() string {
	model := m.file.Model
	return m.GetStringWithDefault("CONVOBUDGET_MODEL", model)
}
