package database

import (
	"Postwise/internal/model"
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate 创建或更新受众分析相关表结构
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.SocialAccount{},
		&model.Post{},
		&model.PostPerformance{},
		&model.AudienceInsight{},
		&model.OptimalTime{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
