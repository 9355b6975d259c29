package model

import "time"

// swagger:model Milestone
type Milestone struct {
	BaseModel
	FamilyID    uint      `gorm:"index;not null" json:"familyId"`
	KidID       uint      `gorm:"index;not null" json:"kidId"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	PhotoURL    string    `gorm:"size:255" json:"photoUrl"`
	AchievedAt  time.Time `json:"achievedAt"`
	CreatedByID uint      `gorm:"not null" json:"createdById"`
}

func (Milestone) TableName() string {
	return "milestones"
}
