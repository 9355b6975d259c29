package model

import "time"

// swagger:model Family
type Family struct {
	BaseModel
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Family) TableName() string {
	return "families"
}

// Invite 家庭邀请码，家长生成后供新成员注册时加入家庭
// swagger:model Invite
type Invite struct {
	BaseModel
	FamilyID    uint      `gorm:"index;not null" json:"familyId"`
	Code        string    `gorm:"size:36;uniqueIndex;not null" json:"code"`
	CreatedByID uint      `gorm:"not null" json:"createdById"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UsedByID    *uint     `json:"usedById,omitempty"`
}

func (Invite) TableName() string {
	return "invites"
}
