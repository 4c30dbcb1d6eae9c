// ABOUTME: Tests for settings loading, merging, and defaults

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMergeProjectOverridesGlobal(t *testing.T) {
	global := &Settings{
		ServerAddr: "127.0.0.1:9000",
		Model:      "model-a",
		Agent:      "coder",
	}
	project := &Settings{
		Model: "model-b",
	}

	got := merge(global, project)
	if got.Model != "model-b" {
		t.Errorf("Model = %q, want project override model-b", got.Model)
	}
	if got.ServerAddr != "127.0.0.1:9000" {
		t.Errorf("ServerAddr = %q, want global value preserved", got.ServerAddr)
	}
	if got.Agent != "coder" {
		t.Errorf("Agent = %q, want global value preserved", got.Agent)
	}
}

func TestMergeCommandLists(t *testing.T) {
	global := &Settings{Commands: []string{"deploy"}}
	project := &Settings{Commands: []string{"lint", "bench"}}

	got := merge(global, project)
	if len(got.Commands) != 2 || got.Commands[0] != "lint" {
		t.Errorf("Commands = %v, want the project list", got.Commands)
	}
	if got := merge(global, &Settings{}); len(got.Commands) != 1 || got.Commands[0] != "deploy" {
		t.Errorf("Commands = %v, want global list kept", got.Commands)
	}
}

func TestMergeEnvMaps(t *testing.T) {
	global := &Settings{Env: map[string]string{"A": "1", "B": "2"}}
	project := &Settings{Env: map[string]string{"B": "3", "C": "4"}}

	got := merge(global, project)
	want := map[string]string{"A": "1", "B": "3", "C": "4"}
	for k, v := range want {
		if got.Env[k] != v {
			t.Errorf("Env[%q] = %q, want %q", k, got.Env[k], v)
		}
	}
}

func TestMergeNilInputs(t *testing.T) {
	if got := merge(nil, nil); got == nil {
		t.Fatal("merge(nil, nil) = nil, want zero settings")
	}
	project := &Settings{Model: "m"}
	if got := merge(nil, project); got.Model != "m" {
		t.Errorf("merge(nil, project).Model = %q, want m", got.Model)
	}
}

func TestApplyDefaults(t *testing.T) {
	s := &Settings{}
	s.applyDefaults()

	if s.ServerAddr != DefaultServerAddr {
		t.Errorf("ServerAddr = %q, want %q", s.ServerAddr, DefaultServerAddr)
	}
	if s.WorktreeTimeout != DefaultWorktreeTimeout {
		t.Errorf("WorktreeTimeout = %v, want %v", s.WorktreeTimeout, DefaultWorktreeTimeout)
	}
	if s.StatusDebounce != DefaultStatusDebounce {
		t.Errorf("StatusDebounce = %v, want %v", s.StatusDebounce, DefaultStatusDebounce)
	}
	if s.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", s.HistoryLimit, DefaultHistoryLimit)
	}
	if s.Placeholder == "" {
		t.Error("Placeholder is empty after defaults")
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	s := &Settings{WorktreeTimeout: Duration(30 * time.Second)}
	s.applyDefaults()
	if s.WorktreeTimeout.Std() != 30*time.Second {
		t.Errorf("WorktreeTimeout = %v, want explicit 30s kept", s.WorktreeTimeout)
	}
}

func TestLoadFromProjectFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, projectDirName)
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "model: test-model\nworktree_timeout: 90s\n"
	if err := os.WriteFile(filepath.Join(sub, "settings.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Model != "test-model" {
		t.Errorf("Model = %q, want test-model", s.Model)
	}
	if s.WorktreeTimeout.Std() != 90*time.Second {
		t.Errorf("WorktreeTimeout = %v, want 90s", s.WorktreeTimeout)
	}
	if s.ServerAddr != DefaultServerAddr {
		t.Errorf("ServerAddr = %q, want default applied", s.ServerAddr)
	}
}

func TestLoadMissingFilesYieldsDefaults(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ServerAddr != DefaultServerAddr || s.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("defaults not applied: %+v", s)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, projectDirName)
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "settings.yaml"), []byte("model: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() = nil error for malformed YAML")
	}
}
