package repository

import (
	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type SightWordRepository struct {
	DB *gorm.DB
}

func NewSightWordRepository(db *gorm.DB) *SightWordRepository {
	return &SightWordRepository{DB: db}
}

func (r *SightWordRepository) Create(word *model.SightWord) error {
	return r.DB.Create(word).Error
}

func (r *SightWordRepository) FindByIDAndFamily(id, familyID uint) (*model.SightWord, error) {
	var word model.SightWord
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&word).Error
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// FindActiveByFamily 词表按 sort_order 升序，轮转选词依赖这个顺序
func (r *SightWordRepository) FindActiveByFamily(familyID uint) ([]model.SightWord, error) {
	var words []model.SightWord
	err := r.DB.Where("family_id = ? AND is_active = ?", familyID, true).
		Order("sort_order ASC, id ASC").Find(&words).Error
	return words, err
}

func (r *SightWordRepository) FindAllByFamily(familyID uint) ([]model.SightWord, error) {
	var words []model.SightWord
	err := r.DB.Where("family_id = ?", familyID).
		Order("sort_order ASC, id ASC").Find(&words).Error
	return words, err
}

func (r *SightWordRepository) Update(word *model.SightWord) error {
	return r.DB.Save(word).Error
}

func (r *SightWordRepository) Delete(word *model.SightWord) error {
	return r.DB.Delete(word).Error
}

func (r *SightWordRepository) MaxSortOrder(familyID uint) (int, error) {
	var max int64
	err := r.DB.Model(&model.SightWord{}).
		Where("family_id = ?", familyID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return int(max), err
}

func (r *SightWordRepository) FindProgressByKid(kidID uint) ([]model.SightWordProgress, error) {
	var progress []model.SightWordProgress
	err := r.DB.Where("kid_id = ?", kidID).Find(&progress).Error
	return progress, err
}

func (r *SightWordRepository) FindProgress(kidID, wordID uint) (*model.SightWordProgress, error) {
	var progress model.SightWordProgress
	err := r.DB.Where("kid_id = ? AND sight_word_id = ?", kidID, wordID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
