package model

type BadgeTemplateType string

const (
	TemplateAchievement BadgeTemplateType = "achievement"
	TemplateChoreLevel  BadgeTemplateType = "chore_level"
)

// BadgeTemplate 家长自定义的徽章外观，覆盖内置定义
// swagger:model BadgeTemplate
type BadgeTemplate struct {
	BaseModel
	FamilyID       uint              `gorm:"index;not null" json:"familyId"`
	Type           BadgeTemplateType `gorm:"type:enum('achievement','chore_level');not null" json:"type"`
	BuiltInBadgeID *string           `gorm:"size:50" json:"builtInBadgeId,omitempty"`
	ChoreID        *uint             `json:"choreId,omitempty"`
	Name           string            `gorm:"size:100" json:"name"`
	NameZh         string            `gorm:"size:100" json:"nameZh"`
	Description    string            `gorm:"size:255" json:"description"`
	DescriptionZh  string            `gorm:"size:255" json:"descriptionZh"`
	Icon           string            `gorm:"size:50" json:"icon"`
	ImageURL       string            `gorm:"size:255" json:"imageUrl"`
	IsActive       bool              `gorm:"default:true" json:"isActive"`
}

func (BadgeTemplate) TableName() string {
	return "badge_templates"
}
