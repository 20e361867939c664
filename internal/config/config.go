package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dearbird/muddery/internal/game"
)

type skillEntry struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Effect      game.SkillEffect `json:"effect"`
}

type characterEntry struct {
	Name      string   `json:"name"`
	MaxHealth int      `json:"max_hp"`
	Icon      string   `json:"icon"`
	Skills    []string `json:"skills"`
}

type rawConfig struct {
	SkillList     []skillEntry     `json:"skill_list"`
	CharacterList []characterEntry `json:"character_list"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Default wall-clock limit for encounters created without an explicit
	// timeout. Zero means unlimited.
	DefaultTimeoutSeconds int `json:"default_timeout_seconds"`
}

// LoadedConfig contains the seed data and server settings read from the
// config file.
type LoadedConfig struct {
	Skills                []game.Skill
	Characters            []game.CharacterTemplate
	ServerAddress         string
	DefaultTimeoutSeconds int
}

// LoadConfig reads the configuration file at path. It requires non-empty
// `skill_list` and `character_list` arrays and validates cross-entry
// consistency: unique skill keys, unique character names (case-insensitive)
// and every character skill referring to a defined skill.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.SkillList) == 0 {
		return nil, fmt.Errorf("config file %s: skill_list is empty (provide 'skill_list' array)", path)
	}
	if len(rc.CharacterList) == 0 {
		return nil, fmt.Errorf("config file %s: character_list is empty (provide 'character_list' array)", path)
	}
	if rc.DefaultTimeoutSeconds < 0 {
		return nil, fmt.Errorf("config file %s: default_timeout_seconds must not be negative", path)
	}

	skills := make([]game.Skill, 0, len(rc.SkillList))
	skillByKey := make(map[string]game.Skill, len(rc.SkillList))
	for _, e := range rc.SkillList {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			return nil, fmt.Errorf("config file %s: skill entry missing 'key'", path)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: skill '%s' missing 'name'", path, key)
		}
		if _, exists := skillByKey[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate skill key '%s'", path, key)
		}
		sk := game.Skill{
			Key:         key,
			Name:        e.Name,
			Description: e.Description,
			Effect:      e.Effect,
		}
		skillByKey[key] = sk
		skills = append(skills, sk)
	}

	characters := make([]game.CharacterTemplate, 0, len(rc.CharacterList))
	nameSet := make(map[string]struct{}, len(rc.CharacterList))
	for _, e := range rc.CharacterList {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: character entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate character name '%s'", path, e.Name)
		}
		nameSet[ln] = struct{}{}
		if e.MaxHealth <= 0 {
			return nil, fmt.Errorf("config file %s: character '%s' needs a positive 'max_hp'", path, e.Name)
		}
		tplSkills := make([]game.Skill, 0, len(e.Skills))
		for _, key := range e.Skills {
			sk, ok := skillByKey[strings.TrimSpace(key)]
			if !ok {
				return nil, fmt.Errorf("config file %s: character '%s' references undefined skill '%s'", path, e.Name, key)
			}
			tplSkills = append(tplSkills, sk)
		}
		characters = append(characters, game.CharacterTemplate{
			Name:      e.Name,
			MaxHealth: e.MaxHealth,
			Icon:      e.Icon,
			Skills:    tplSkills,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Skills:                skills,
		Characters:            characters,
		ServerAddress:         addr,
		DefaultTimeoutSeconds: rc.DefaultTimeoutSeconds,
	}, nil
}
