package model

// swagger:model Reward
type Reward struct {
	BaseModel
	FamilyID uint   `gorm:"index;not null" json:"familyId"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Icon     string `gorm:"size:50" json:"icon"`
	Cost     int    `gorm:"not null" json:"cost"`
	Active   bool   `gorm:"default:true" json:"active"`
}

func (Reward) TableName() string {
	return "rewards"
}

// swagger:model Redemption
type Redemption struct {
	BaseModel
	FamilyID uint `gorm:"index;not null" json:"familyId"`
	RewardID uint `gorm:"index;not null" json:"rewardId"`
	KidID    uint `gorm:"index;not null" json:"kidId"`
	Cost     int  `gorm:"not null" json:"cost"` // 兑换时的价格快照
}

func (Redemption) TableName() string {
	return "redemptions"
}
