package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "muddery_config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `{
  "server": {"address": ":9090"},
  "default_timeout_seconds": 120,
  "skill_list": [
    {"key": "slash", "name": "Slash", "effect": {"damage": 4}},
    {"key": "mend", "name": "Mend", "effect": {"heal": 3, "target_self": true}},
    {"key": "flee", "name": "Flee", "effect": {"escape": true}}
  ],
  "character_list": [
    {"name": "Warrior", "max_hp": 30, "icon": "warrior", "skills": ["slash", "flee"]},
    {"name": "Cleric", "max_hp": 20, "skills": ["mend"]}
  ]
}`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("unexpected address %q", cfg.ServerAddress)
	}
	if cfg.DefaultTimeoutSeconds != 120 {
		t.Fatalf("unexpected default timeout %d", cfg.DefaultTimeoutSeconds)
	}
	if len(cfg.Skills) != 3 || len(cfg.Characters) != 2 {
		t.Fatalf("unexpected seed sizes: %d skills, %d characters", len(cfg.Skills), len(cfg.Characters))
	}
	warrior := cfg.Characters[0]
	if warrior.Name != "Warrior" || len(warrior.Skills) != 2 || warrior.Skills[1].Effect.Escape != true {
		t.Fatalf("unexpected warrior template: %+v", warrior)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
  "skill_list": [{"key": "slash", "name": "Slash", "effect": {"damage": 1}}],
  "character_list": [{"name": "Rat", "max_hp": 5}]
}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %q", cfg.ServerAddress)
	}
	if cfg.DefaultTimeoutSeconds != 0 {
		t.Fatalf("expected unlimited default timeout, got %d", cfg.DefaultTimeoutSeconds)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing file", "", "failed to read"},
		{"empty skills", `{"skill_list": [], "character_list": [{"name": "Rat", "max_hp": 5}]}`, "skill_list is empty"},
		{"empty characters", `{"skill_list": [{"key": "s", "name": "S"}], "character_list": []}`, "character_list is empty"},
		{"duplicate skill key", `{"skill_list": [{"key": "s", "name": "A"}, {"key": "s", "name": "B"}], "character_list": [{"name": "Rat", "max_hp": 5}]}`, "duplicate skill key"},
		{"duplicate character", `{"skill_list": [{"key": "s", "name": "S"}], "character_list": [{"name": "Rat", "max_hp": 5}, {"name": "rat", "max_hp": 5}]}`, "duplicate character name"},
		{"undefined skill", `{"skill_list": [{"key": "s", "name": "S"}], "character_list": [{"name": "Rat", "max_hp": 5, "skills": ["bite"]}]}`, "undefined skill"},
		{"bad hp", `{"skill_list": [{"key": "s", "name": "S"}], "character_list": [{"name": "Rat", "max_hp": 0}]}`, "positive 'max_hp'"},
		{"negative timeout", `{"default_timeout_seconds": -1, "skill_list": [{"key": "s", "name": "S"}], "character_list": [{"name": "Rat", "max_hp": 5}]}`, "must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.json")
			if tc.content != "" {
				path = writeConfig(t, tc.content)
			}
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
