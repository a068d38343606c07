package sat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// legacyEngineTypes lists every engine selector string the original family
// of solvers recognized. Per spec §9 they are retained for backward
// compatibility only: every one of them resolves to this package's single
// CDCL engine, with `Controller`/`Analyzer` carrying the meaningful
// variation.
var legacyEngineTypes = map[string]bool{
	"ymsat":       true,
	"ymsat1":      true,
	"ymsat1_old":  true,
	"ymsat2old":   true,
	"minisat":     true,
	"minisat2":    true,
	"glueminisat": true,
	"lingeling":   true,
}

// DefaultEngineType is the canonical `type` value for this package's engine.
const DefaultEngineType = "ymsat"

// Selector mirrors spec §6's `selector` field: either a bare fallback-phase
// policy string, or an object with {type, var_freq, phase_cache}.
type Selector struct {
	Type       string  `json:"type"`
	VarFreq    float64 `json:"var_freq"`
	PhaseCache bool    `json:"phase_cache"`
}

// UnmarshalJSON accepts both shapes spec §6 allows for `selector`: a bare
// string ("posi") or an object ({"type": "posi", ...}).
func (sel *Selector) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		sel.Type = str
		return nil
	}
	var obj struct {
		Type       string  `json:"type"`
		VarFreq    float64 `json:"var_freq"`
		PhaseCache bool    `json:"phase_cache"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	sel.Type, sel.VarFreq, sel.PhaseCache = obj.Type, obj.VarFreq, obj.PhaseCache
	return nil
}

// Config is the JSON-equivalent initialization parameter object from spec
// §6: `{type, controller, analyzer, selector, verbose}`.
type Config struct {
	Type       string   `json:"type,omitempty"`
	Controller string   `json:"controller,omitempty"`
	Analyzer   string   `json:"analyzer,omitempty"`
	Selector   Selector `json:"selector,omitempty"`
	Verbose    bool     `json:"verbose,omitempty"`
}

// DefaultConfig returns the hard-coded default configuration used when no
// configuration source is found.
func DefaultConfig() Config {
	return Config{
		Type:       DefaultEngineType,
		Controller: "minisat1",
		Analyzer:   "uip1",
		Selector:   Selector{Type: "posi", PhaseCache: true},
	}
}

// DiscoverConfig implements the discovery order from spec §6: the YMSAT_CONF
// environment variable (a path), then $YMSAT_CONFDIR/ymsat.json, then
// ./ymsat.json, falling back to DefaultConfig(). Unlike FromJSONFile, read
// or parse failures during discovery are silently skipped rather than
// returned, matching the spec's "read failures are silently skipped" rule.
func DiscoverConfig() Config {
	if p := os.Getenv("YMSAT_CONF"); p != "" {
		if cfg, err := FromJSONFile(p); err == nil {
			return cfg
		}
	}
	if dir := os.Getenv("YMSAT_CONFDIR"); dir != "" {
		if cfg, err := FromJSONFile(filepath.Join(dir, "ymsat.json")); err == nil {
			return cfg
		}
	}
	if cfg, err := FromJSONFile("ymsat.json"); err == nil {
		return cfg
	}
	return DefaultConfig()
}

// FromJSONFile reads and parses the configuration at path. Unlike
// DiscoverConfig, it fails loudly: spec §6 requires an explicit
// "from_json(path)" call to surface read/parse errors instead of silently
// skipping them.
func FromJSONFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sat: reading config %q: %w", path, err)
	}
	return FromJSON(b)
}

// FromJSON parses cfg from a JSON document, starting from DefaultConfig so
// that partially-specified documents still produce a usable configuration.
func FromJSON(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigurationError{Msg: fmt.Sprintf("invalid configuration JSON: %s", err)}
	}
	return cfg, nil
}

var validControllers = map[string]bool{"minisat1": true, "minisat2": true}
var validAnalyzers = map[string]bool{"uip1": true, "uip2": true}
var validSelectors = map[string]bool{"posi": true, "nega": true, "wlposi": true, "wlnega": true, "random": true}

// Options resolves a Config (plus decay knobs not exposed through the JSON
// surface) into the concrete values NewSolver consumes.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64
	Controller    string
	Analyzer      string
	Selector      Selector
	Verbose       bool
}

// DefaultOptions mirrors the teacher's MiniSat-standard decay constants.
var DefaultOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.95,
	Controller:    "minisat1",
	Analyzer:      "uip1",
	Selector:      Selector{Type: "posi", PhaseCache: true},
}

// OptionsFromConfig validates cfg and merges it onto DefaultOptions,
// returning a *ConfigurationError for any unrecognized option value.
func OptionsFromConfig(cfg Config) (Options, error) {
	opts := DefaultOptions

	if cfg.Type != "" && !legacyEngineTypes[cfg.Type] {
		return Options{}, &ConfigurationError{Field: "type", Value: cfg.Type, Msg: "unknown engine type"}
	}
	if cfg.Controller != "" {
		if !validControllers[cfg.Controller] {
			return Options{}, &ConfigurationError{Field: "controller", Value: cfg.Controller, Msg: "must be \"minisat1\" or \"minisat2\""}
		}
		opts.Controller = cfg.Controller
	}
	if cfg.Analyzer != "" {
		if !validAnalyzers[cfg.Analyzer] {
			return Options{}, &ConfigurationError{Field: "analyzer", Value: cfg.Analyzer, Msg: "must be \"uip1\" or \"uip2\""}
		}
		opts.Analyzer = cfg.Analyzer
	}
	if cfg.Selector.Type != "" {
		if !validSelectors[cfg.Selector.Type] {
			return Options{}, &ConfigurationError{Field: "selector.type", Value: cfg.Selector.Type, Msg: "must be one of posi, nega, wlposi, wlnega, random"}
		}
		opts.Selector = cfg.Selector
	}
	opts.Verbose = cfg.Verbose

	return opts, nil
}
