// Package settings reads the host's hook settings files.
//
// Only a read-only lookup is provided: whether a hook command is registered
// for a lifecycle stage and tool, and with which timeout.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Settings is the subset of a settings.json file describing hooks.
type Settings struct {
	Hooks map[string][]MatcherGroup `json:"hooks"`
}

// MatcherGroup binds hook commands to tool names matching Matcher.
type MatcherGroup struct {
	Matcher string        `json:"matcher"`
	Hooks   []HookCommand `json:"hooks"`
}

// HookCommand is a single hook entry.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	// Timeout is in milliseconds.
	Timeout int `json:"timeout,omitempty"`
}

// Registration describes a matching hook entry.
type Registration struct {
	Stage   string
	Matcher string
	Command string
	Timeout time.Duration
}

// DefaultPaths returns the settings files consulted for a project, lowest
// precedence first.
func DefaultPaths(projectDir string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".claude", "settings.json"))
	}
	if projectDir != "" {
		paths = append(paths,
			filepath.Join(projectDir, ".claude", "settings.json"),
			filepath.Join(projectDir, ".claude", "settings.local.json"),
		)
	}
	return paths
}

// Load reads and merges the given settings files. Missing files are skipped.
func Load(paths ...string) (*Settings, error) {
	merged := &Settings{Hooks: make(map[string][]MatcherGroup)}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var s Settings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for stage, groups := range s.Hooks {
			merged.Hooks[stage] = append(merged.Hooks[stage], groups...)
		}
	}

	return merged, nil
}

// Lookup returns the first hook registered for stage and toolName whose
// command contains binary.
func (s *Settings) Lookup(stage, toolName, binary string) (Registration, bool) {
	if s == nil {
		return Registration{}, false
	}

	for _, group := range s.Hooks[stage] {
		if !matchesTool(group.Matcher, toolName) {
			continue
		}
		for _, hook := range group.Hooks {
			if hook.Type != "" && hook.Type != "command" {
				continue
			}
			if !strings.Contains(hook.Command, binary) {
				continue
			}
			return Registration{
				Stage:   stage,
				Matcher: group.Matcher,
				Command: hook.Command,
				Timeout: time.Duration(hook.Timeout) * time.Millisecond,
			}, true
		}
	}
	return Registration{}, false
}

// matchesTool applies the host's matcher semantics: empty or "*" matches
// everything, otherwise the matcher is a regex over the whole tool name.
func matchesTool(matcher, toolName string) bool {
	if matcher == "" || matcher == "*" {
		return true
	}

	re, err := regexp.Compile(`^(?:` + matcher + `)$`)
	if err != nil {
		return matcher == toolName
	}
	return re.MatchString(toolName)
}
