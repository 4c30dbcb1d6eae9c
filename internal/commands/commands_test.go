// ABOUTME: Tests for the slash command registry: builtins, extras, shape check

package commands

import "testing"

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"clear", "help", "model", "status"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("builtin %q missing", name)
		}
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("unknown command found")
	}
}

func TestRegistryExtras(t *testing.T) {
	r := NewRegistry("deploy: Deploy the current branch", "/lint", "  ", ":orphan")
	cmd, ok := r.Get("deploy")
	if !ok || cmd.Description != "Deploy the current branch" {
		t.Errorf("deploy = (%+v, %v)", cmd, ok)
	}
	if _, ok := r.Get("lint"); !ok {
		t.Error("slash-prefixed extra not registered")
	}
	if _, ok := r.Get(""); ok {
		t.Error("blank extra registered")
	}
}

func TestRegistryExtraOverridesBuiltin(t *testing.T) {
	r := NewRegistry("status: Project status dashboard")
	cmd, _ := r.Get("status")
	if cmd.Description != "Project status dashboard" {
		t.Errorf("Description = %q, want the override", cmd.Description)
	}
}

func TestNamesSorted(t *testing.T) {
	names := NewRegistry("zz", "aa").Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	if names[0] != "aa" || names[len(names)-1] != "zz" {
		t.Errorf("names = %v, extras missing", names)
	}
}

func TestListMatchesNames(t *testing.T) {
	r := NewRegistry()
	list := r.List()
	names := r.Names()
	if len(list) != len(names) {
		t.Fatalf("List len %d, Names len %d", len(list), len(names))
	}
	for i := range list {
		if list[i].Name != names[i] {
			t.Errorf("List[%d] = %q, Names[%d] = %q", i, list[i].Name, i, names[i])
		}
	}
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"/clear", true},
		{"  /clear args", true},
		{"/", false},
		{"//not-a-command", false},
		{"plain text", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCommand(tt.in); got != tt.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
