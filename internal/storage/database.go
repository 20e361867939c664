package storage

import (
	"github.com/dearbird/muddery/internal/game"
	"github.com/dearbird/muddery/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database, keeps the schema updated via
// AutoMigrate and seeds the skill and character tables from the loaded
// config when they are empty. The config file stays the source of truth;
// delete the DB file to re-seed after editing it.
func OpenAndMigrate(dataSourceName string, skills []game.Skill, characters []game.CharacterTemplate) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.Skill{}, &game.CharacterTemplate{}); err != nil {
		return nil, err
	}

	seedDefaults(db, skills, characters)
	return db, nil
}

func seedDefaults(db *gorm.DB, skills []game.Skill, characters []game.CharacterTemplate) {
	var count int64
	db.Model(&game.Skill{}).Count(&count)
	if count == 0 && len(skills) > 0 {
		if err := db.Create(&skills).Error; err != nil {
			logging.Error("failed to seed skills", err, nil)
			return
		}
		logging.Info("seeded skills", logging.Fields{"count": len(skills)})
	}

	db.Model(&game.CharacterTemplate{}).Count(&count)
	if count > 0 {
		return
	}
	// Re-resolve skill associations against the persisted rows so the join
	// table references real IDs.
	for i := range characters {
		resolved := make([]game.Skill, 0, len(characters[i].Skills))
		for _, sk := range characters[i].Skills {
			var row game.Skill
			if err := db.Where("key = ?", sk.Key).First(&row).Error; err != nil {
				logging.Error("skill missing during character seeding", err, logging.Fields{"key": sk.Key})
				continue
			}
			resolved = append(resolved, row)
		}
		characters[i].Skills = resolved
	}
	if len(characters) > 0 {
		if err := db.Create(&characters).Error; err != nil {
			logging.Error("failed to seed character templates", err, nil)
			return
		}
		logging.Info("seeded character templates", logging.Fields{"count": len(characters)})
	}
}
