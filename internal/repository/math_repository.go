package repository

import (
	"time"

	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type MathRepository struct {
	DB *gorm.DB
}

func NewMathRepository(db *gorm.DB) *MathRepository {
	return &MathRepository{DB: db}
}

func (r *MathRepository) FindProgress(kidID uint, date string) (*model.MathProgress, error) {
	var progress model.MathProgress
	err := r.DB.Where("kid_id = ? AND date = ?", kidID, date).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// CountAwardedDays 发过积分的天数，用于成就判定
func (r *MathRepository) CountAwardedDays(kidID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.MathProgress{}).
		Where("kid_id = ? AND point_awarded = ?", kidID, true).
		Count(&count).Error
	return count, err
}

func (r *MathRepository) CreateAttempt(attempt *model.MathAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *MathRepository) FindAttemptsSince(kidID uint, since time.Time) ([]model.MathAttempt, error) {
	var attempts []model.MathAttempt
	err := r.DB.Where("kid_id = ? AND created_at >= ?", kidID, since).
		Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *MathRepository) FindSettings(familyID uint) (*model.MathSettings, error) {
	var settings model.MathSettings
	err := r.DB.Where("family_id = ?", familyID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *MathRepository) SaveSettings(settings *model.MathSettings) error {
	return r.DB.Save(settings).Error
}
