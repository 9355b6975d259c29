package repository

import (
	"time"

	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type MealRepository struct {
	DB *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{DB: db}
}

func (r *MealRepository) CreatePlan(plan *model.MealPlan) error {
	return r.DB.Create(plan).Error
}

func (r *MealRepository) FindPlanByIDAndFamily(id, familyID uint) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *MealRepository) FindPlansByFamily(familyID uint) ([]model.MealPlan, error) {
	var plans []model.MealPlan
	err := r.DB.Where("family_id = ?", familyID).Order("week_of DESC").Find(&plans).Error
	return plans, err
}

// FindOpenPlansBefore 周已结束但仍开放的计划，由后台任务关闭
func (r *MealRepository) FindOpenPlansBefore(weekOf string) ([]model.MealPlan, error) {
	var plans []model.MealPlan
	err := r.DB.Where("status = ? AND week_of < ?", model.MealPlanOpen, weekOf).Find(&plans).Error
	return plans, err
}

func (r *MealRepository) UpdatePlan(plan *model.MealPlan) error {
	return r.DB.Save(plan).Error
}

func (r *MealRepository) CreateOption(option *model.MealPlanOption) error {
	return r.DB.Create(option).Error
}

func (r *MealRepository) FindOptions(planID uint) ([]model.MealPlanOption, error) {
	var options []model.MealPlanOption
	err := r.DB.Where("meal_plan_id = ?", planID).Order("created_at ASC").Find(&options).Error
	return options, err
}

func (r *MealRepository) FindOption(optionID, planID uint) (*model.MealPlanOption, error) {
	var option model.MealPlanOption
	err := r.DB.Where("id = ? AND meal_plan_id = ?", optionID, planID).First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *MealRepository) FindVote(optionID, voterID uint) (*model.MealVote, error) {
	var vote model.MealVote
	err := r.DB.Where("option_id = ? AND voter_id = ?", optionID, voterID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *MealRepository) CreateVote(vote *model.MealVote) error {
	return r.DB.Create(vote).Error
}

func (r *MealRepository) DeleteVote(vote *model.MealVote) error {
	return r.DB.Unscoped().Delete(vote).Error
}

// CountVotesByOption 每个候选菜的得票数
func (r *MealRepository) CountVotesByOption(planID uint) (map[uint]int64, error) {
	type row struct {
		OptionID uint
		Total    int64
	}
	var rows []row
	err := r.DB.Model(&model.MealVote{}).
		Select("option_id, COUNT(*) AS total").
		Where("meal_plan_id = ?", planID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, v := range rows {
		counts[v.OptionID] = v.Total
	}
	return counts, nil
}

func (r *MealRepository) CreateLog(mealLog *model.MealLog) error {
	return r.DB.Create(mealLog).Error
}

func (r *MealRepository) FindLogByIDAndFamily(id, familyID uint) (*model.MealLog, error) {
	var mealLog model.MealLog
	err := r.DB.Where("id = ? AND family_id = ?", id, familyID).First(&mealLog).Error
	if err != nil {
		return nil, err
	}
	return &mealLog, nil
}

func (r *MealRepository) FindLogsBetween(familyID uint, start, end time.Time) ([]model.MealLog, error) {
	var logs []model.MealLog
	err := r.DB.Where("family_id = ? AND date >= ? AND date <= ?", familyID, start, end).
		Order("date ASC").Find(&logs).Error
	return logs, err
}

func (r *MealRepository) UpdateLog(mealLog *model.MealLog) error {
	return r.DB.Save(mealLog).Error
}

func (r *MealRepository) DeleteLog(mealLog *model.MealLog) error {
	return r.DB.Delete(mealLog).Error
}
