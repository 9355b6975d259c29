package repository

import (
	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ChoreRepository struct {
	DB *gorm.DB
}

func NewChoreRepository(db *gorm.DB) *ChoreRepository {
	return &ChoreRepository{DB: db}
}

func (r *ChoreRepository) Create(chore *model.Chore) error {
	return r.DB.Create(chore).Error
}

func (r *ChoreRepository) FindByIDAndFamily(id, familyID uint) (*model.Chore, error) {
	var chore model.Chore
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&chore).Error
	if err != nil {
		return nil, err
	}
	return &chore, nil
}

func (r *ChoreRepository) FindByFamily(familyID uint) ([]model.Chore, error) {
	var chores []model.Chore
	err := r.DB.Where("family_id = ?", familyID).Order("created_at ASC").Find(&chores).Error
	return chores, err
}

// FindForKid 孩子可见的家务：指派给自己的和不指派人的
func (r *ChoreRepository) FindForKid(familyID, kidID uint) ([]model.Chore, error) {
	var chores []model.Chore
	err := r.DB.Where("family_id = ? AND active = ? AND (assigned_to_id IS NULL OR assigned_to_id = ?)", familyID, true, kidID).
		Order("created_at ASC").Find(&chores).Error
	return chores, err
}

func (r *ChoreRepository) Update(chore *model.Chore) error {
	return r.DB.Save(chore).Error
}

func (r *ChoreRepository) Delete(chore *model.Chore) error {
	return r.DB.Delete(chore).Error
}

func (r *ChoreRepository) FindCompletion(choreID, kidID uint, date string) (*model.ChoreCompletion, error) {
	var completion model.ChoreCompletion
	err := r.DB.Where("chore_id = ? AND kid_id = ? AND date = ?", choreID, kidID, date).First(&completion).Error
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

// DistinctCompletionDates 孩子有完成记录的所有日期，倒序，用于连续打卡统计
func (r *ChoreRepository) DistinctCompletionDates(kidID uint, limit int) ([]string, error) {
	var dates []string
	err := r.DB.Model(&model.ChoreCompletion{}).
		Where("kid_id = ?", kidID).
		Distinct("date").
		Order("date DESC").
		Limit(limit).
		Pluck("date", &dates).Error
	return dates, err
}

func (r *ChoreRepository) CountCompletions(kidID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ChoreCompletion{}).Where("kid_id = ?", kidID).Count(&count).Error
	return count, err
}
