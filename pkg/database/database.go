package database

import (
	"fmt"
	"log"

	"family_hub_backend/internal/config"
	"family_hub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.Family{},
		&model.User{},
		&model.Invite{},
		&model.Chore{},
		&model.ChoreCompletion{},
		&model.PointEntry{},
		&model.Reward{},
		&model.Redemption{},
		&model.Badge{},
		&model.AchievementBadge{},
		&model.BadgeTemplate{},
		&model.Milestone{},
		&model.Dish{},
		&model.MealPlan{},
		&model.MealPlanOption{},
		&model.MealVote{},
		&model.MealLog{},
		&model.MathProgress{},
		&model.MathAttempt{},
		&model.MathSettings{},
		&model.SightWord{},
		&model.SightWordProgress{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
