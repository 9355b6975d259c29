package repository

import (
	"time"

	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type FamilyRepository struct {
	DB *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

func (r *FamilyRepository) Create(family *model.Family) error {
	return r.DB.Create(family).Error
}

func (r *FamilyRepository) FindByID(id uint) (*model.Family, error) {
	var family model.Family
	err := r.DB.First(&family, id).Error
	if err != nil {
		return nil, err
	}
	return &family, nil
}

func (r *FamilyRepository) CreateInvite(invite *model.Invite) error {
	return r.DB.Create(invite).Error
}

// FindValidInvite 查找未使用且未过期的邀请码
func (r *FamilyRepository) FindValidInvite(code string) (*model.Invite, error) {
	var invite model.Invite
	err := r.DB.Where("code = ? AND used_by_id IS NULL AND expires_at > ?", code, time.Now()).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *FamilyRepository) MarkInviteUsed(inviteID, userID uint) error {
	return r.DB.Model(&model.Invite{}).Where("id = ?", inviteID).Update("used_by_id", userID).Error
}

func (r *FamilyRepository) ListInvites(familyID uint) ([]model.Invite, error) {
	var invites []model.Invite
	err := r.DB.Where("family_id = ?", familyID).Order("created_at DESC").Find(&invites).Error
	return invites, err
}
