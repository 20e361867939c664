package storage

import (
	"strings"

	"gorm.io/gorm"

	"github.com/dearbird/muddery/internal/dedupe"
	"github.com/dearbird/muddery/internal/game"
	"github.com/dearbird/muddery/internal/keys"
)

// SQLiteRepository implements Repository on a GORM-managed SQLite database.
type SQLiteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository creates a repository backed by the given DB handle.
func NewSQLiteRepository(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListCharacterTemplates() ([]game.CharacterTemplate, error) {
	var out []game.CharacterTemplate
	if err := r.db.Preload("Skills").Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) GetCharacterTemplateByName(name string) (*game.CharacterTemplate, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	v, err, _ := dedupe.CharacterGroup.Do(keys.NormalizeName(name), func() (interface{}, error) {
		var tpl game.CharacterTemplate
		if err := r.db.Preload("Skills").Where("LOWER(name) = ?", lowered).First(&tpl).Error; err != nil {
			return nil, err
		}
		return &tpl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.CharacterTemplate), nil
}

func (r *SQLiteRepository) ListSkills() ([]game.Skill, error) {
	var out []game.Skill
	if err := r.db.Order("key").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) GetSkillByKey(key string) (*game.Skill, error) {
	v, err, _ := dedupe.SkillGroup.Do(key, func() (interface{}, error) {
		var sk game.Skill
		if err := r.db.Where("key = ?", key).First(&sk).Error; err != nil {
			return nil, err
		}
		return &sk, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Skill), nil
}
