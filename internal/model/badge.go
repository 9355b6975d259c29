package model

import "time"

// Badge 家务徽章：按（孩子，家务）累计完成次数并升级
// swagger:model Badge
type Badge struct {
	BaseModel
	FamilyID uint `gorm:"index;not null" json:"familyId"`
	KidID    uint `gorm:"uniqueIndex:idx_badge_kid_chore;not null" json:"kidId"`
	ChoreID  uint `gorm:"uniqueIndex:idx_badge_kid_chore;not null" json:"choreId"`
	Count    int  `gorm:"default:0" json:"count"`
	Level    int  `gorm:"default:0" json:"level"`
}

func (Badge) TableName() string {
	return "badges"
}

// AchievementBadge 内置成就徽章的获得记录，BadgeID 对应代码中的定义
// swagger:model AchievementBadge
type AchievementBadge struct {
	BaseModel
	FamilyID uint      `gorm:"index;not null" json:"familyId"`
	KidID    uint      `gorm:"uniqueIndex:idx_achievement_kid_badge;not null" json:"kidId"`
	BadgeID  string    `gorm:"size:50;uniqueIndex:idx_achievement_kid_badge;not null" json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
}

func (AchievementBadge) TableName() string {
	return "achievement_badges"
}
