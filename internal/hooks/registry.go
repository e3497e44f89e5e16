package hooks

import (
	"github.com/michael-freling/claude-code-hooks/internal/config"
)

// NewPreToolUseRules returns the blocking rules enabled by cfg, in priority order.
func NewPreToolUseRules(cfg *config.Config) []Rule {
	var rules []Rule
	if cfg.Rules.DuplicateVersion.Enabled {
		rules = append(rules, NewDuplicateVersionRule())
	}
	if cfg.Rules.RootClutter.Enabled {
		rules = append(rules, NewRootClutterRule(cfg.RootAllowlist()))
	}
	for _, p := range cfg.BlockPaths {
		rules = append(rules, NewPathPatternRule(p))
	}
	for _, p := range cfg.BlockContents {
		rules = append(rules, NewContentPatternRule(p, cfg.MaxContentBytes))
	}
	if cfg.Rules.Shell.Enabled {
		rules = append(rules, NewShellDuplicateVersionRule())
	}
	return rules
}

// NewPostToolUseFixers returns the fixers enabled by cfg, in application order.
func NewPostToolUseFixers(cfg *config.Config) []Fixer {
	var fixers []Fixer
	if cfg.Fix.Console.Enabled {
		fixers = append(fixers, NewConsoleFixer(cfg.Fix.Console.Logger, cfg.Fix.Console.Extensions))
	}
	return fixers
}

// NewProcessorFromConfig builds a processor with the registered rules and fixers.
func NewProcessorFromConfig(cfg *config.Config, fs FileSystem) *Processor {
	return NewProcessor(NewPreToolUseRules(cfg), NewPostToolUseFixers(cfg), fs, cfg.MaxContentBytes)
}
