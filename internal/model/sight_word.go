package model

import "time"

// swagger:model SightWord
type SightWord struct {
	BaseModel
	FamilyID  uint   `gorm:"index;not null" json:"familyId"`
	Word      string `gorm:"size:100;not null" json:"word"`
	ImageURL  string `gorm:"size:255" json:"imageUrl"`
	SortOrder int    `gorm:"default:0;index" json:"sortOrder"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`
}

func (SightWord) TableName() string {
	return "sight_words"
}

// SightWordProgress 每个孩子每个词一行。
// PointAwarded 表示当前轮次是否已为该词发过积分，复习轮会被清零后重新挣取。
// swagger:model SightWordProgress
type SightWordProgress struct {
	BaseModel
	KidID        uint       `gorm:"uniqueIndex:idx_swp_kid_word;not null" json:"kidId"`
	SightWordID  uint       `gorm:"uniqueIndex:idx_swp_kid_word;not null" json:"sightWordId"`
	ViewedAt     *time.Time `json:"viewedAt,omitempty"`
	QuizPassedAt *time.Time `json:"quizPassedAt,omitempty"`
	PointAwarded bool       `gorm:"default:false" json:"pointAwarded"`
}

func (SightWordProgress) TableName() string {
	return "sight_word_progress"
}
