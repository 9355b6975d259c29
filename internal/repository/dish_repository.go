package repository

import (
	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type DishRepository struct {
	DB *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

func (r *DishRepository) Create(dish *model.Dish) error {
	return r.DB.Create(dish).Error
}

func (r *DishRepository) FindByIDAndFamily(id, familyID uint) (*model.Dish, error) {
	var dish model.Dish
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&dish).Error
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *DishRepository) FindByFamily(familyID uint) ([]model.Dish, error) {
	var dishes []model.Dish
	err := r.DB.Where("family_id = ?", familyID).Order("created_at DESC").Find(&dishes).Error
	return dishes, err
}

func (r *DishRepository) FindByIDs(ids []uint, familyID uint) ([]model.Dish, error) {
	var dishes []model.Dish
	err := r.DB.Where("id IN ? AND family_id = ?", ids, familyID).Find(&dishes).Error
	return dishes, err
}

func (r *DishRepository) Update(dish *model.Dish) error {
	return r.DB.Save(dish).Error
}

func (r *DishRepository) Delete(dish *model.Dish) error {
	return r.DB.Delete(dish).Error
}
