package model

import "time"

type MealType string

const (
	Breakfast MealType = "BREAKFAST"
	Lunch     MealType = "LUNCH"
	Dinner    MealType = "DINNER"
)

type MealPlanStatus string

const (
	MealPlanOpen   MealPlanStatus = "open"
	MealPlanClosed MealPlanStatus = "closed"
)

// MealPlan 一周的候选菜投票
// swagger:model MealPlan
type MealPlan struct {
	BaseModel
	FamilyID    uint           `gorm:"index;not null" json:"familyId"`
	WeekOf      string         `gorm:"size:10;not null" json:"weekOf"` // 周一的 YYYY-MM-DD
	Status      MealPlanStatus `gorm:"type:enum('open','closed');default:'open'" json:"status"`
	CreatedByID uint           `gorm:"not null" json:"createdById"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

// swagger:model MealPlanOption
type MealPlanOption struct {
	BaseModel
	MealPlanID uint `gorm:"uniqueIndex:idx_plan_dish;not null" json:"mealPlanId"`
	DishID     uint `gorm:"uniqueIndex:idx_plan_dish;not null" json:"dishId"`
}

func (MealPlanOption) TableName() string {
	return "meal_plan_options"
}

// MealVote 每位成员对每个候选菜最多一票，可撤销
// swagger:model MealVote
type MealVote struct {
	BaseModel
	MealPlanID uint `gorm:"index;not null" json:"mealPlanId"`
	OptionID   uint `gorm:"uniqueIndex:idx_option_voter;not null" json:"optionId"`
	VoterID    uint `gorm:"uniqueIndex:idx_option_voter;not null" json:"voterId"`
}

func (MealVote) TableName() string {
	return "meal_votes"
}

// MealLog 实际做过的一餐
// swagger:model MealLog
type MealLog struct {
	BaseModel
	FamilyID   uint      `gorm:"index;not null" json:"familyId"`
	DishID     uint      `gorm:"index;not null" json:"dishId"`
	Date       time.Time `gorm:"index;not null" json:"date"`
	MealType   MealType  `gorm:"type:enum('BREAKFAST','LUNCH','DINNER');not null" json:"mealType"`
	LoggedByID uint      `gorm:"not null" json:"loggedById"`
	CookedByID *uint     `json:"cookedById,omitempty"`
}

func (MealLog) TableName() string {
	return "meal_logs"
}
