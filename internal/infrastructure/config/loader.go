package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Rules *RulesConfig
	Match *MatchConfig
	Stage *StageConfig
}

// Loader loads game configuration from JSON and YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadRules loads rules.json on top of the default rule set
func (l *Loader) LoadRules() (*RulesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "rules.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read rules.json: %w", err)
	}

	cfg := DefaultRules()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rules.json: %w", err)
	}

	return cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	p := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// ListStages returns the stage names available to LoadStage
func (l *Loader) ListStages() ([]string, error) {
	matches, err := fs.Glob(l.fsys, "stages/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadMatch loads and validates a match YAML file
func (l *Loader) LoadMatch(name string) (*MatchConfig, error) {
	p := "matches/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read match %s: %w", name, err)
	}

	var cfg MatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse match %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid match %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads the rules, the named match and the stage it refers to.
// A non-empty stageOverride replaces the match's stage.
func (l *Loader) LoadAll(matchName, stageOverride string) (*GameConfig, error) {
	rules, err := l.LoadRules()
	if err != nil {
		return nil, err
	}

	match, err := l.LoadMatch(matchName)
	if err != nil {
		return nil, err
	}
	if stageOverride != "" {
		match.Stage = stageOverride
	}

	stage, err := l.LoadStage(match.Stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Rules: rules,
		Match: match,
		Stage: stage,
	}, nil
}
