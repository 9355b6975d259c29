package repository

import (
	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindChoreBadges(familyID uint, kidID uint) ([]model.Badge, error) {
	var badges []model.Badge
	query := r.DB.Where("family_id = ?", familyID)
	if kidID != 0 {
		query = query.Where("kid_id = ?", kidID)
	}
	err := query.Order("level DESC, count DESC").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindAchievementBadges(familyID uint, kidID uint) ([]model.AchievementBadge, error) {
	var badges []model.AchievementBadge
	query := r.DB.Where("family_id = ?", familyID)
	if kidID != 0 {
		query = query.Where("kid_id = ?", kidID)
	}
	err := query.Order("earned_at DESC").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) HasAchievement(kidID uint, badgeID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.AchievementBadge{}).
		Where("kid_id = ? AND badge_id = ?", kidID, badgeID).
		Count(&count).Error
	return count > 0, err
}

func (r *BadgeRepository) CreateAchievement(badge *model.AchievementBadge) error {
	return r.DB.Create(badge).Error
}

func (r *BadgeRepository) FindTemplates(familyID uint, activeOnly bool) ([]model.BadgeTemplate, error) {
	var templates []model.BadgeTemplate
	query := r.DB.Where("family_id = ?", familyID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *BadgeRepository) FindTemplateByIDAndFamily(id, familyID uint) (*model.BadgeTemplate, error) {
	var template model.BadgeTemplate
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *BadgeRepository) CreateTemplate(template *model.BadgeTemplate) error {
	return r.DB.Create(template).Error
}

func (r *BadgeRepository) UpdateTemplate(template *model.BadgeTemplate) error {
	return r.DB.Save(template).Error
}

func (r *BadgeRepository) DeleteTemplate(template *model.BadgeTemplate) error {
	return r.DB.Delete(template).Error
}
