// Package config handles configuration loading and parsing for claude-hooks.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/michael-freling/claude-code-hooks/internal/logger"
)

//go:embed config.toml
var defaultConfig []byte

// File permissions
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

const (
	// EnvConfigFile overrides the config file path.
	EnvConfigFile = "CLAUDE_HOOKS_CONFIG"
	// EnvConfigDir overrides the user config directory.
	EnvConfigDir = "CLAUDE_HOOKS_CONFIG_DIR"

	AppName        = "claude-hooks"
	ConfigFileName = "config.toml"
	// ProjectConfigFile is the per-project config path relative to the project root.
	ProjectConfigFile = ".claude/hooks.toml"
)

// ErrNotFound is returned when no config file exists at a resolved path.
var ErrNotFound = errors.New("config file not found")

// Config holds the settings and compiled patterns used by the hooks.
type Config struct {
	MaxContentBytes int64       `toml:"max_content_bytes"`
	Audit           AuditConfig `toml:"audit"`
	Rules           RulesConfig `toml:"rules"`
	Fix             FixConfig   `toml:"fix"`
	Block           BlockConfig `toml:"block"`

	// Path is the file the config was loaded from, empty for embedded defaults.
	Path string `toml:"-"`
	// BlockPaths are the compiled [[block.path]] entries.
	BlockPaths []Pattern `toml:"-"`
	// BlockContents are the compiled [[block.content]] entries.
	BlockContents []Pattern `toml:"-"`
}

// AuditConfig configures the append-only audit log.
type AuditConfig struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	MaxBytes   int64  `toml:"max_bytes"`
	MaxBackups int    `toml:"max_backups"`
}

// RulesConfig toggles and tunes the built-in blocking rules.
type RulesConfig struct {
	DuplicateVersion Toggle            `toml:"duplicate_version"`
	RootClutter      RootClutterConfig `toml:"root_clutter"`
	Shell            Toggle            `toml:"shell"`
}

// Toggle enables or disables a rule without further settings.
type Toggle struct {
	Enabled bool `toml:"enabled"`
}

// RootClutterConfig configures which files may live at the repository root.
type RootClutterConfig struct {
	Enabled        bool     `toml:"enabled"`
	Allowlist      []string `toml:"allowlist"`
	ExtraAllowlist []string `toml:"extra_allowlist"`
}

// FixConfig configures the PostToolUse fixers.
type FixConfig struct {
	Console ConsoleFixConfig `toml:"console"`
}

// ConsoleFixConfig configures the console.* to logger.* rewrite.
type ConsoleFixConfig struct {
	Enabled    bool     `toml:"enabled"`
	Logger     string   `toml:"logger"`
	Extensions []string `toml:"extensions"`
}

// BlockConfig holds user-defined blocking patterns.
type BlockConfig struct {
	Path    []PatternEntry `toml:"path"`
	Content []PatternEntry `toml:"content"`
}

// PatternEntry is a raw [[block.*]] entry from TOML.
type PatternEntry struct {
	Name       string   `toml:"name"`
	Pattern    string   `toml:"pattern"`
	Message    string   `toml:"message"`
	Extensions []string `toml:"extensions"`
}

// Pattern holds a compiled regex with its rule metadata.
type Pattern struct {
	Name       string
	Regex      *regexp.Regexp
	Message    string
	Extensions []string
}

// RootAllowlist returns the merged root allowlist.
func (c *Config) RootAllowlist() []string {
	merged := make([]string, 0, len(c.Rules.RootClutter.Allowlist)+len(c.Rules.RootClutter.ExtraAllowlist))
	merged = append(merged, c.Rules.RootClutter.Allowlist...)
	merged = append(merged, c.Rules.RootClutter.ExtraAllowlist...)
	return merged
}

// Parse decodes TOML data on top of the embedded defaults and compiles patterns.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(string(defaultConfig), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "key", key.String())
	}

	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) compile() error {
	if c.MaxContentBytes <= 0 {
		return fmt.Errorf("max_content_bytes must be positive, got %d", c.MaxContentBytes)
	}
	if strings.TrimSpace(c.Fix.Console.Logger) == "" {
		c.Fix.Console.Logger = "logger"
	}

	paths, err := compileEntries("block.path", c.Block.Path)
	if err != nil {
		return err
	}
	contents, err := compileEntries("block.content", c.Block.Content)
	if err != nil {
		return err
	}
	c.BlockPaths = paths
	c.BlockContents = contents
	return nil
}

func compileEntries(section string, entries []PatternEntry) ([]Pattern, error) {
	result := make([]Pattern, 0, len(entries))
	for i, entry := range entries {
		if entry.Pattern == "" {
			return nil, fmt.Errorf("%s[%d]: pattern is required", section, i)
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("%s[%d]: name is required", section, i)
		}
		re, err := regexp.Compile(entry.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s %q: invalid pattern %q: %w", section, entry.Name, entry.Pattern, err)
		}
		message := entry.Message
		if message == "" {
			message = fmt.Sprintf("Matches blocked pattern %q", entry.Pattern)
		}
		result = append(result, Pattern{
			Name:       entry.Name,
			Regex:      re,
			Message:    message,
			Extensions: entry.Extensions,
		})
	}
	return result, nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		// The embedded file is covered by tests.
		panic(fmt.Sprintf("invalid embedded config: %v", err))
	}
	return cfg
}

// GetDefaultConfig returns the raw embedded default configuration.
func GetDefaultConfig() []byte {
	return defaultConfig
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadOrDefault resolves and loads the config, falling back to embedded
// defaults. The returned error reports why the fallback was used; the
// returned config is never nil.
func LoadOrDefault(explicitPath, projectDir string) (*Config, error) {
	path, err := FindConfigPath(explicitPath, projectDir)
	if err != nil {
		logger.Debug("no config file, using embedded defaults", "error", err)
		return Default(), nil
	}

	cfg, err := Load(path)
	if err != nil {
		logger.Error("failed to load config, using embedded defaults", "path", path, "error", err)
		return Default(), err
	}

	logger.Debug("config loaded", "path", path,
		"blockPaths", len(cfg.BlockPaths),
		"blockContents", len(cfg.BlockContents))
	return cfg, nil
}

// FindConfigPath resolves the config file to use. Order: explicit path,
// CLAUDE_HOOKS_CONFIG, <projectDir>/.claude/hooks.toml, then the user config
// file. Returns ErrNotFound when none exists.
func FindConfigPath(explicitPath, projectDir string) (string, error) {
	if explicitPath != "" {
		return explicitPath, nil
	}
	if env := os.Getenv(EnvConfigFile); env != "" {
		return env, nil
	}

	candidates := make([]string, 0, 2)
	if projectDir != "" {
		candidates = append(candidates, filepath.Join(projectDir, ProjectConfigFile))
	}
	if dir, err := GetConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ConfigFileName))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// GetConfigDir returns the user config directory.
// Uses CLAUDE_HOOKS_CONFIG_DIR if set, otherwise ~/.config/claude-hooks
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// WriteDefault writes the embedded default config to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, defaultConfig, FileMode); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
