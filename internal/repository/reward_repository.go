package repository

import (
	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type RewardRepository struct {
	DB *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{DB: db}
}

func (r *RewardRepository) Create(reward *model.Reward) error {
	return r.DB.Create(reward).Error
}

func (r *RewardRepository) FindByIDAndFamily(id, familyID uint) (*model.Reward, error) {
	var reward model.Reward
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&reward).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *RewardRepository) FindByFamily(familyID uint, activeOnly bool) ([]model.Reward, error) {
	var rewards []model.Reward
	query := r.DB.Where("family_id = ?", familyID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("cost ASC").Find(&rewards).Error
	return rewards, err
}

func (r *RewardRepository) Update(reward *model.Reward) error {
	return r.DB.Save(reward).Error
}

func (r *RewardRepository) Delete(reward *model.Reward) error {
	return r.DB.Delete(reward).Error
}

func (r *RewardRepository) ListRedemptions(familyID uint, kidID uint) ([]model.Redemption, error) {
	var redemptions []model.Redemption
	query := r.DB.Where("family_id = ?", familyID)
	if kidID != 0 {
		query = query.Where("kid_id = ?", kidID)
	}
	err := query.Order("created_at DESC").Find(&redemptions).Error
	return redemptions, err
}
