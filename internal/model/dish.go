package model

// swagger:model Dish
type Dish struct {
	BaseModel
	FamilyID    uint   `gorm:"index;not null" json:"familyId"`
	Name        string `gorm:"size:200;not null" json:"name"`
	PhotoURL    string `gorm:"size:255" json:"photoUrl"`
	Ingredients string `gorm:"type:text" json:"ingredients"` // JSON编码的字符串数组
	CreatedByID uint   `gorm:"not null" json:"createdById"`
}

func (Dish) TableName() string {
	return "dishes"
}
