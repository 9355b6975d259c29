package model

// swagger:model Chore
type Chore struct {
	BaseModel
	FamilyID     uint   `gorm:"index;not null" json:"familyId"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Icon         string `gorm:"size:50" json:"icon"`
	Points       int    `gorm:"default:1" json:"points"`
	AssignedToID *uint  `gorm:"index" json:"assignedToId,omitempty"`
	Active       bool   `gorm:"default:true" json:"active"`
}

func (Chore) TableName() string {
	return "chores"
}

// ChoreCompletion 每个孩子每项家务每天最多一条
// swagger:model ChoreCompletion
type ChoreCompletion struct {
	BaseModel
	FamilyID uint   `gorm:"index;not null" json:"familyId"`
	ChoreID  uint   `gorm:"uniqueIndex:idx_chore_kid_date;not null" json:"choreId"`
	KidID    uint   `gorm:"uniqueIndex:idx_chore_kid_date;not null" json:"kidId"`
	Date     string `gorm:"size:10;uniqueIndex:idx_chore_kid_date;not null" json:"date"` // YYYY-MM-DD（提交方时区）
}

func (ChoreCompletion) TableName() string {
	return "chore_completions"
}
