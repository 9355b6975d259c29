package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const voteCacheTTL = time.Minute

type MealService struct {
	MealRepo *repository.MealRepository
	DishRepo *repository.DishRepository
	Redis    *redis.Client
	Logger   *zap.Logger
}

func NewMealService(
	mealRepo *repository.MealRepository,
	dishRepo *repository.DishRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) *MealService {
	return &MealService{
		MealRepo: mealRepo,
		DishRepo: dishRepo,
		Redis:    rdb,
		Logger:   logger,
	}
}

func voteCacheKey(planID uint) string {
	return fmt.Sprintf("meal:votes:%d", planID)
}

type MealPlanRequest struct {
	WeekOf  string `json:"weekOf" binding:"required"` // 周一的 YYYY-MM-DD
	DishIDs []uint `json:"dishIds" binding:"required,min=2"`
}

// CreatePlan 发起一周的候选菜投票，候选菜必须都是本家庭的
func (s *MealService) CreatePlan(familyID, createdByID uint, req *MealPlanRequest) (*model.MealPlan, error) {
	weekOf, err := time.Parse(util.DateFormat, req.WeekOf)
	if err != nil {
		return nil, fmt.Errorf("weekOf must be YYYY-MM-DD")
	}
	if weekOf.Weekday() != time.Monday {
		// 允许任意起始日但归一化到所在周的周一
		offset := (int(weekOf.Weekday()) + 6) % 7
		weekOf = weekOf.AddDate(0, 0, -offset)
	}

	dishes, err := s.DishRepo.FindByIDs(req.DishIDs, familyID)
	if err != nil {
		return nil, err
	}
	if len(dishes) != len(req.DishIDs) {
		return nil, util.ErrDishNotFound
	}

	plan := &model.MealPlan{
		FamilyID:    familyID,
		WeekOf:      weekOf.Format(util.DateFormat),
		Status:      model.MealPlanOpen,
		CreatedByID: createdByID,
	}
	err = s.MealRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		for _, dish := range dishes {
			option := &model.MealPlanOption{MealPlanID: plan.ID, DishID: dish.ID}
			if err := tx.Create(option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *MealService) ListPlans(familyID uint) ([]model.MealPlan, error) {
	return s.MealRepo.FindPlansByFamily(familyID)
}

type MealPlanOptionView struct {
	OptionID uint     `json:"optionId"`
	Dish     DishView `json:"dish"`
	Votes    int64    `json:"votes"`
	MyVote   bool     `json:"myVote"`
}

type MealPlanView struct {
	Plan    *model.MealPlan      `json:"plan"`
	Options []MealPlanOptionView `json:"options"`
}

// GetPlan 计划详情，得票数走一分钟的短缓存
func (s *MealService) GetPlan(familyID, planID, viewerID uint) (*MealPlanView, error) {
	plan, err := s.MealRepo.FindPlanByIDAndFamily(planID, familyID)
	if err != nil {
		return nil, util.ErrMealPlanNotFound
	}

	options, err := s.MealRepo.FindOptions(plan.ID)
	if err != nil {
		return nil, err
	}

	counts, err := s.voteCounts(plan.ID)
	if err != nil {
		return nil, err
	}

	views := make([]MealPlanOptionView, 0, len(options))
	for _, opt := range options {
		dish, err := s.DishRepo.FindByIDAndFamily(opt.DishID, familyID)
		if err != nil {
			continue
		}
		myVote := false
		if _, err := s.MealRepo.FindVote(opt.ID, viewerID); err == nil {
			myVote = true
		}
		views = append(views, MealPlanOptionView{
			OptionID: opt.ID,
			Dish:     toDishView(*dish),
			Votes:    counts[opt.ID],
			MyVote:   myVote,
		})
	}
	return &MealPlanView{Plan: plan, Options: views}, nil
}

func (s *MealService) voteCounts(planID uint) (map[uint]int64, error) {
	if s.Redis != nil {
		ctx := context.Background()
		if raw, err := s.Redis.Get(ctx, voteCacheKey(planID)).Result(); err == nil {
			var counts map[uint]int64
			if json.Unmarshal([]byte(raw), &counts) == nil {
				return counts, nil
			}
		}
	}

	counts, err := s.MealRepo.CountVotesByOption(planID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(counts); err == nil {
			s.Redis.Set(context.Background(), voteCacheKey(planID), data, voteCacheTTL)
		}
	}
	return counts, nil
}

func (s *MealService) invalidateVotes(planID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), voteCacheKey(planID))
}

type VoteResponse struct {
	Voted bool `json:"voted"` // true 投了票，false 撤了票
}

// ToggleVote 投票开关：已投则撤，未投则投。关闭的计划拒绝改票。
func (s *MealService) ToggleVote(familyID, voterID, planID, optionID uint) (*VoteResponse, error) {
	plan, err := s.MealRepo.FindPlanByIDAndFamily(planID, familyID)
	if err != nil {
		return nil, util.ErrMealPlanNotFound
	}
	if plan.Status != model.MealPlanOpen {
		return nil, util.ErrMealPlanClosed
	}

	option, err := s.MealRepo.FindOption(optionID, plan.ID)
	if err != nil {
		return nil, util.ErrMealPlanNotFound
	}

	resp := &VoteResponse{}
	if vote, err := s.MealRepo.FindVote(option.ID, voterID); err == nil {
		if err := s.MealRepo.DeleteVote(vote); err != nil {
			return nil, err
		}
	} else {
		vote := &model.MealVote{
			MealPlanID: plan.ID,
			OptionID:   option.ID,
			VoterID:    voterID,
		}
		// 唯一索引兜底并发双投
		if err := s.MealRepo.CreateVote(vote); err != nil {
			return nil, err
		}
		resp.Voted = true
	}

	s.invalidateVotes(plan.ID)
	return resp, nil
}

// ClosePlan 家长手动截止投票
func (s *MealService) ClosePlan(familyID, planID uint) (*model.MealPlan, error) {
	plan, err := s.MealRepo.FindPlanByIDAndFamily(planID, familyID)
	if err != nil {
		return nil, util.ErrMealPlanNotFound
	}
	if plan.Status == model.MealPlanClosed {
		return plan, nil
	}
	plan.Status = model.MealPlanClosed
	if err := s.MealRepo.UpdatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ClosePlansDue 后台定时任务：一周已经过去的开放计划自动截止
func (s *MealService) ClosePlansDue() {
	now := time.Now()
	offset := (int(now.Weekday()) + 6) % 7
	currentMonday := now.AddDate(0, 0, -offset).Format(util.DateFormat)

	plans, err := s.MealRepo.FindOpenPlansBefore(currentMonday)
	if err != nil {
		s.Logger.Warn("查询到期投票计划失败", zap.Error(err))
		return
	}
	for i := range plans {
		plans[i].Status = model.MealPlanClosed
		if err := s.MealRepo.UpdatePlan(&plans[i]); err != nil {
			s.Logger.Warn("关闭投票计划失败", zap.Uint("planId", plans[i].ID), zap.Error(err))
			continue
		}
		s.invalidateVotes(plans[i].ID)
		s.Logger.Info("投票计划到期关闭", zap.Uint("planId", plans[i].ID), zap.String("weekOf", plans[i].WeekOf))
	}
}

type MealLogRequest struct {
	DishID     uint   `json:"dishId" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	MealType   string `json:"mealType" binding:"required"`
	CookedByID *uint  `json:"cookedById"`
}

func parseMealType(raw string) (model.MealType, error) {
	switch model.MealType(raw) {
	case model.Breakfast, model.Lunch, model.Dinner:
		return model.MealType(raw), nil
	default:
		return "", fmt.Errorf("mealType must be BREAKFAST, LUNCH or DINNER")
	}
}

// LogMeal 记一餐吃了什么
func (s *MealService) LogMeal(familyID, loggedByID uint, req *MealLogRequest) (*model.MealLog, error) {
	mealType, err := parseMealType(req.MealType)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(util.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}
	if _, err := s.DishRepo.FindByIDAndFamily(req.DishID, familyID); err != nil {
		return nil, util.ErrDishNotFound
	}

	mealLog := &model.MealLog{
		FamilyID:   familyID,
		DishID:     req.DishID,
		Date:       date,
		MealType:   mealType,
		LoggedByID: loggedByID,
		CookedByID: req.CookedByID,
	}
	if err := s.MealRepo.CreateLog(mealLog); err != nil {
		return nil, err
	}
	return mealLog, nil
}

type MealLogUpdateRequest struct {
	DishID     *uint   `json:"dishId"`
	Date       *string `json:"date"` // YYYY-MM-DD
	MealType   *string `json:"mealType"`
	CookedByID *uint   `json:"cookedById"`
}

// applyMealLogUpdate 把部分更新落到已有记录上，没带的字段保持原值
func applyMealLogUpdate(mealLog *model.MealLog, req *MealLogUpdateRequest) error {
	if req.MealType != nil {
		mealType, err := parseMealType(*req.MealType)
		if err != nil {
			return err
		}
		mealLog.MealType = mealType
	}
	if req.Date != nil {
		date, err := time.Parse(util.DateFormat, *req.Date)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD")
		}
		mealLog.Date = date
	}
	if req.DishID != nil {
		mealLog.DishID = *req.DishID
	}
	if req.CookedByID != nil {
		mealLog.CookedByID = req.CookedByID
	}
	return nil
}

// UpdateMealLog 改一条用餐记录，换菜时同样要求菜在本家庭
func (s *MealService) UpdateMealLog(familyID, logID uint, req *MealLogUpdateRequest) (*model.MealLog, error) {
	mealLog, err := s.MealRepo.FindLogByIDAndFamily(logID, familyID)
	if err != nil {
		return nil, err
	}
	if req.DishID != nil {
		if _, err := s.DishRepo.FindByIDAndFamily(*req.DishID, familyID); err != nil {
			return nil, util.ErrDishNotFound
		}
	}
	if err := applyMealLogUpdate(mealLog, req); err != nil {
		return nil, err
	}
	if err := s.MealRepo.UpdateLog(mealLog); err != nil {
		return nil, err
	}
	return mealLog, nil
}

type MealLogView struct {
	model.MealLog
	Dish DishView `json:"dish"`
}

// ListMeals 日期区间内的用餐记录，带菜品详情
func (s *MealService) ListMeals(familyID uint, start, end string) ([]MealLogView, error) {
	startDate, err := time.Parse(util.DateFormat, start)
	if err != nil {
		return nil, fmt.Errorf("start must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(util.DateFormat, end)
	if err != nil {
		return nil, fmt.Errorf("end must be YYYY-MM-DD")
	}

	logs, err := s.MealRepo.FindLogsBetween(familyID, startDate, endDate.Add(24*time.Hour-time.Second))
	if err != nil {
		return nil, err
	}

	views := make([]MealLogView, 0, len(logs))
	for _, l := range logs {
		dish, err := s.DishRepo.FindByIDAndFamily(l.DishID, familyID)
		if err != nil {
			continue
		}
		views = append(views, MealLogView{MealLog: l, Dish: toDishView(*dish)})
	}
	return views, nil
}

func (s *MealService) DeleteMealLog(familyID, logID uint) error {
	mealLog, err := s.MealRepo.FindLogByIDAndFamily(logID, familyID)
	if err != nil {
		return err
	}
	return s.MealRepo.DeleteLog(mealLog)
}
