// Package config loads the optional .witness.json file that turns rules
// on and tunes their options. Every read is fresh — there is no caching or
// file watch here, and nothing in Witness watches this file — matching the
// per-invocation process lifetime the rest of Witness runs under.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Action is a rule's configured response when it fires.
type Action string

const (
	ActionOff   Action = "off"
	ActionWarn  Action = "warn"
	ActionBlock Action = "block"
)

// RuleConfig is one rule's action and option bag. Options is nil unless the
// config file supplied the two-element tuple form.
type RuleConfig struct {
	Action  Action
	Options map[string]any
}

// UnmarshalJSON accepts either a bare action string ("warn") or a
// [action, options] tuple (["warn", {"threshold": 5}]), matching the two
// forms the configuration file's shape allows.
func (r *RuleConfig) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		r.Action = Action(asString)
		r.Options = nil
		return nil
	}

	var asTuple []json.RawMessage
	if err := json.Unmarshal(data, &asTuple); err != nil {
		return err
	}
	if len(asTuple) == 0 {
		return nil
	}
	var action string
	if err := json.Unmarshal(asTuple[0], &action); err != nil {
		return err
	}
	r.Action = Action(action)
	if len(asTuple) > 1 {
		var opts map[string]any
		if err := json.Unmarshal(asTuple[1], &opts); err == nil {
			r.Options = opts
		}
	}
	return nil
}

// Config is the fully-resolved rule configuration.
type Config struct {
	Rules map[string]RuleConfig `json:"rules"`
}

type fileShape struct {
	Rules map[string]RuleConfig `json:"rules"`
}

// Defaults returns the configuration every rule starts from: action off,
// no options. Per-rule threshold defaults (test_after_edits, no_thrashing
// → 3) are resolved by Threshold, not baked in here, since they only
// matter once a rule is actually enabled.
func Defaults() Config {
	return Config{Rules: map[string]RuleConfig{}}
}

// Load reads "<dir>/.witness.json". A missing file, unreadable file, or
// malformed JSON all silently fall back to Defaults() — configuration
// never blocks the pipeline or surfaces an error to the caller.
func Load(dir string) Config {
	path := filepath.Join(dir, ".witness.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults()
	}

	var shape fileShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return Defaults()
	}
	if shape.Rules == nil {
		shape.Rules = map[string]RuleConfig{}
	}
	return Config{Rules: shape.Rules}
}

// For returns the configuration for a named rule, defaulting to off with
// no options if the rule was never mentioned in the config file.
func (c Config) For(ruleName string) RuleConfig {
	if rc, ok := c.Rules[ruleName]; ok {
		return rc
	}
	return RuleConfig{Action: ActionOff}
}

// Threshold reads an integer "threshold" option for ruleName, falling back
// to fallback if absent, non-numeric, or the rule has no options at all.
func (rc RuleConfig) Threshold(fallback int) int {
	if rc.Options == nil {
		return fallback
	}
	v, ok := rc.Options["threshold"]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}
