package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"ตลาดน้ำอัมพวา", "-limit", "5"},
			expected: []string{"-limit", "5", "ตลาดน้ำอัมพวา"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-limit", "5", "ตลาดน้ำอัมพวา"},
			expected: []string{"-limit", "5", "ตลาดน้ำอัมพวา"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"อัมพวา"},
			expected: []string{"อัมพวา"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"one", "two", "-output", "json"},
			expected: []string{"-output", "json", "one", "two"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"อัมพวา"}, "อัมพวา"},
		{"multiple words", []string{"ร้านกาแฟ", "อัมพวา"}, "ร้านกาแฟ อัมพวา"},
		{"single quoted phrase", []string{"ร้านกาแฟ อัมพวา"}, "ร้านกาแฟ อัมพวา"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQuery(tt.args)
			if got != tt.expected {
				t.Errorf("buildQuery(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_CwdFallback(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: 7171
gazetteer:
  path: "./gazetteer.yaml"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7171 {
		t.Errorf("Port = %d, want 7171 from cwd config", cfg.Server.Port)
	}
	if filepath.Base(resolved) != "config.yaml" || resolved == defaultConfigPath {
		t.Errorf("resolved path = %q, want the cwd config", resolved)
	}
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}
