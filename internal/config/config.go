// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML-based configuration; project values override global ones

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither settings file sets a value.
const (
	DefaultServerAddr      = "127.0.0.1:9389"
	DefaultWorktreeTimeout = Duration(5 * time.Minute)
	DefaultStatusDebounce  = Duration(2500 * time.Millisecond)
	DefaultHistoryLimit    = 100
	DefaultPlaceholder     = "Describe a task, @ to mention files"
)

// Duration unmarshals from YAML strings like "90s" or bare integers
// interpreted as seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parsing duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Settings holds the merged configuration.
type Settings struct {
	ServerAddr      string            `yaml:"server_addr,omitempty"`
	Model           string            `yaml:"model,omitempty"`
	Agent           string            `yaml:"agent,omitempty"`
	WorktreeTimeout Duration          `yaml:"worktree_timeout,omitempty"`
	StatusDebounce  Duration          `yaml:"status_debounce,omitempty"`
	HistoryLimit    int               `yaml:"history_limit,omitempty"`
	Placeholder     string            `yaml:"placeholder,omitempty"`
	Theme           string            `yaml:"theme,omitempty"`
	Commands        []string          `yaml:"commands,omitempty"`
	Env             map[string]string `yaml:"env,omitempty"`
}

// Load reads and merges global and project-local settings, then fills
// in defaults. Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalSettingsFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global settings: %w", err)
	}

	project, err := loadFile(ProjectSettingsFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project settings: %w", err)
	}

	merged := merge(global, project)
	merged.applyDefaults()
	return merged, nil
}

// loadFile reads a Settings from a YAML file. Returns zero Settings if
// the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings. Non-zero
// project values win.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.ServerAddr != "" {
		result.ServerAddr = project.ServerAddr
	}
	if project.Model != "" {
		result.Model = project.Model
	}
	if project.Agent != "" {
		result.Agent = project.Agent
	}
	if project.WorktreeTimeout != 0 {
		result.WorktreeTimeout = project.WorktreeTimeout
	}
	if project.StatusDebounce != 0 {
		result.StatusDebounce = project.StatusDebounce
	}
	if project.HistoryLimit != 0 {
		result.HistoryLimit = project.HistoryLimit
	}
	if project.Placeholder != "" {
		result.Placeholder = project.Placeholder
	}
	if project.Theme != "" {
		result.Theme = project.Theme
	}
	if len(project.Commands) > 0 {
		result.Commands = project.Commands
	}

	if len(project.Env) > 0 {
		if result.Env == nil {
			result.Env = make(map[string]string)
		}
		for k, v := range project.Env {
			result.Env[k] = v
		}
	}

	return &result
}

func (s *Settings) applyDefaults() {
	if s.ServerAddr == "" {
		s.ServerAddr = DefaultServerAddr
	}
	if s.WorktreeTimeout == 0 {
		s.WorktreeTimeout = DefaultWorktreeTimeout
	}
	if s.StatusDebounce == 0 {
		s.StatusDebounce = DefaultStatusDebounce
	}
	if s.HistoryLimit == 0 {
		s.HistoryLimit = DefaultHistoryLimit
	}
	if s.Placeholder == "" {
		s.Placeholder = DefaultPlaceholder
	}
}
