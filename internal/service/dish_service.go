package service

import (
	"encoding/json"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"
)

type DishService struct {
	DishRepo *repository.DishRepository
}

func NewDishService(dishRepo *repository.DishRepository) *DishService {
	return &DishService{DishRepo: dishRepo}
}

type DishRequest struct {
	Name        string   `json:"name" binding:"required"`
	PhotoURL    string   `json:"photoUrl"`
	Ingredients []string `json:"ingredients"`
}

// DishView 配料在数据库里是 JSON 字符串，对外展开成数组
type DishView struct {
	model.Dish
	IngredientList []string `json:"ingredientList"`
}

func encodeIngredients(ingredients []string) (string, error) {
	if len(ingredients) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(ingredients)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeIngredients(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

func toDishView(dish model.Dish) DishView {
	return DishView{Dish: dish, IngredientList: decodeIngredients(dish.Ingredients)}
}

func (s *DishService) Create(familyID, createdByID uint, req *DishRequest) (*DishView, error) {
	encoded, err := encodeIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}
	dish := &model.Dish{
		FamilyID:    familyID,
		Name:        req.Name,
		PhotoURL:    req.PhotoURL,
		Ingredients: encoded,
		CreatedByID: createdByID,
	}
	if err := s.DishRepo.Create(dish); err != nil {
		return nil, err
	}
	view := toDishView(*dish)
	return &view, nil
}

func (s *DishService) List(familyID uint) ([]DishView, error) {
	dishes, err := s.DishRepo.FindByFamily(familyID)
	if err != nil {
		return nil, err
	}
	views := make([]DishView, 0, len(dishes))
	for _, d := range dishes {
		views = append(views, toDishView(d))
	}
	return views, nil
}

func (s *DishService) Get(familyID, dishID uint) (*DishView, error) {
	dish, err := s.DishRepo.FindByIDAndFamily(dishID, familyID)
	if err != nil {
		return nil, util.ErrDishNotFound
	}
	view := toDishView(*dish)
	return &view, nil
}

func (s *DishService) Update(familyID, dishID uint, req *DishRequest) (*DishView, error) {
	dish, err := s.DishRepo.FindByIDAndFamily(dishID, familyID)
	if err != nil {
		return nil, util.ErrDishNotFound
	}
	encoded, err := encodeIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}
	dish.Name = req.Name
	if req.PhotoURL != "" {
		dish.PhotoURL = req.PhotoURL
	}
	dish.Ingredients = encoded
	if err := s.DishRepo.Update(dish); err != nil {
		return nil, err
	}
	view := toDishView(*dish)
	return &view, nil
}

func (s *DishService) Delete(familyID, dishID uint) error {
	dish, err := s.DishRepo.FindByIDAndFamily(dishID, familyID)
	if err != nil {
		return util.ErrDishNotFound
	}
	return s.DishRepo.Delete(dish)
}
