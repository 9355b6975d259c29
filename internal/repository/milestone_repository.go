package repository

import (
	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type MilestoneRepository struct {
	DB *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{DB: db}
}

func (r *MilestoneRepository) Create(milestone *model.Milestone) error {
	return r.DB.Create(milestone).Error
}

func (r *MilestoneRepository) FindByIDAndFamily(id, familyID uint) (*model.Milestone, error) {
	var milestone model.Milestone
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&milestone).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *MilestoneRepository) FindByFamily(familyID uint, kidID uint) ([]model.Milestone, error) {
	var milestones []model.Milestone
	query := r.DB.Where("family_id = ?", familyID)
	if kidID != 0 {
		query = query.Where("kid_id = ?", kidID)
	}
	err := query.Order("achieved_at DESC").Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepository) Update(milestone *model.Milestone) error {
	return r.DB.Save(milestone).Error
}

func (r *MilestoneRepository) Delete(milestone *model.Milestone) error {
	return r.DB.Delete(milestone).Error
}
