package model

import "time"

// MathProgress 每个孩子每天一行，记录当天口算的完成情况与奖励发放标记。
// PointAwarded 是幂等护栏：同一天两题都完成只发一次积分。
// swagger:model MathProgress
type MathProgress struct {
	BaseModel
	KidID               uint       `gorm:"uniqueIndex:idx_math_kid_date;not null" json:"kidId"`
	Date                string     `gorm:"size:10;uniqueIndex:idx_math_kid_date;not null" json:"date"` // YYYY-MM-DD（孩子时区）
	AdditionPassedAt    *time.Time `json:"additionPassedAt,omitempty"`
	SubtractionPassedAt *time.Time `json:"subtractionPassedAt,omitempty"`
	PointAwarded        bool       `gorm:"default:false" json:"pointAwarded"`
}

func (MathProgress) TableName() string {
	return "math_progress"
}

// MathAttempt 每次提交都记录，包括答错的，供家长分析
// swagger:model MathAttempt
type MathAttempt struct {
	BaseModel
	KidID          uint   `gorm:"index;not null" json:"kidId"`
	QuestionType   string `gorm:"size:20;not null" json:"questionType"`
	Question       string `gorm:"size:50" json:"question"`
	CorrectAnswer  int    `json:"correctAnswer"`
	GivenAnswer    int    `json:"givenAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	ResponseTimeMs *int   `json:"responseTimeMs,omitempty"`
	Source         string `gorm:"size:20;default:'daily'" json:"source"`
}

func (MathAttempt) TableName() string {
	return "math_attempts"
}

// MathSettings 每个家庭一行。乘除法开关仅保存配置，
// 题目生成目前只支持加减法，提交乘除题会被明确拒绝。
// swagger:model MathSettings
type MathSettings struct {
	BaseModel
	FamilyID              uint `gorm:"uniqueIndex;not null" json:"familyId"`
	DailyQuestionCount    int  `gorm:"default:2" json:"dailyQuestionCount"`
	AdditionEnabled       bool `gorm:"default:true" json:"additionEnabled"`
	SubtractionEnabled    bool `gorm:"default:true" json:"subtractionEnabled"`
	MultiplicationEnabled bool `gorm:"default:false" json:"multiplicationEnabled"`
	DivisionEnabled       bool `gorm:"default:false" json:"divisionEnabled"`
	AdditionMinA          int  `gorm:"default:1" json:"additionMinA"`
	AdditionMaxA          int  `gorm:"default:9" json:"additionMaxA"`
	AdditionMinB          int  `gorm:"default:10" json:"additionMinB"`
	AdditionMaxB          int  `gorm:"default:99" json:"additionMaxB"`
	AllowCarrying         bool `gorm:"default:true" json:"allowCarrying"`
	SubtractionMinA       int  `gorm:"default:10" json:"subtractionMinA"`
	SubtractionMaxA       int  `gorm:"default:99" json:"subtractionMaxA"`
	SubtractionMinB       int  `gorm:"default:1" json:"subtractionMinB"`
	SubtractionMaxB       int  `gorm:"default:9" json:"subtractionMaxB"`
	AllowBorrowing        bool `gorm:"default:true" json:"allowBorrowing"`
	AdaptiveDifficulty    bool `gorm:"default:false" json:"adaptiveDifficulty"`
}

func (MathSettings) TableName() string {
	return "math_settings"
}
