package model

// PointEntry 积分流水，只追加不修改
// swagger:model PointEntry
type PointEntry struct {
	BaseModel
	FamilyID    uint   `gorm:"index;not null" json:"familyId"`
	KidID       uint   `gorm:"index;not null" json:"kidId"`
	Points      int    `gorm:"not null" json:"points"` // 正为奖励，负为兑换扣减
	Note        string `gorm:"size:255" json:"note"`
	CreatedByID uint   `gorm:"not null" json:"createdById"`
}

func (PointEntry) TableName() string {
	return "point_entries"
}
