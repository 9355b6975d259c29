package service

import (
	"errors"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 家务徽章升级门槛，对应 1~5 级
var choreLevelThresholds = []int{5, 15, 30, 60, 100}

// choreLevelNames 各级称号，下标 0 是未到 1 级时的占位
var choreLevelNames = [][2]string{
	{"", ""},
	{"Helper", "小帮手"},
	{"Doer", "实干家"},
	{"Expert", "小能手"},
	{"Master", "大师"},
	{"Legend", "传奇"},
}

// AchievementDef 内置成就徽章
type AchievementDef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameZh        string `json:"nameZh"`
	Description   string `json:"description"`
	DescriptionZh string `json:"descriptionZh"`
	Icon          string `json:"icon"`
}

const (
	AchFirstChore     = "first_chore"
	AchChoreStreak7   = "chore_streak_7"
	AchPoints100      = "points_100"
	AchMath10Days     = "math_10_days"
	AchSightWordCycle = "sight_word_cycle"
)

var builtInAchievements = []AchievementDef{
	{AchFirstChore, "First Step", "第一步", "Complete your first chore", "完成第一项家务", "🌱"},
	{AchChoreStreak7, "Week Warrior", "七日之星", "Complete chores 7 days in a row", "连续 7 天完成家务", "🔥"},
	{AchPoints100, "Point Collector", "积分达人", "Earn 100 points in total", "累计获得 100 积分", "💯"},
	{AchMath10Days, "Math Whiz", "口算小天才", "Finish daily math on 10 different days", "完成 10 天每日口算", "🧮"},
	{AchSightWordCycle, "Word Explorer", "识字小达人", "Pass every sight word in the list", "学完整轮常见词", "📚"},
}

type BadgeService struct {
	BadgeRepo *repository.BadgeRepository
	ChoreRepo *repository.ChoreRepository
	PointRepo *repository.PointRepository
	MathRepo  *repository.MathRepository
	Logger    *zap.Logger
}

func NewBadgeService(
	badgeRepo *repository.BadgeRepository,
	choreRepo *repository.ChoreRepository,
	pointRepo *repository.PointRepository,
	mathRepo *repository.MathRepository,
	logger *zap.Logger,
) *BadgeService {
	return &BadgeService{
		BadgeRepo: badgeRepo,
		ChoreRepo: choreRepo,
		PointRepo: pointRepo,
		MathRepo:  mathRepo,
		Logger:    logger,
	}
}

// ChoreLevel 根据累计次数算等级
func ChoreLevel(count int) int {
	level := 0
	for _, threshold := range choreLevelThresholds {
		if count >= threshold {
			level++
		}
	}
	return level
}

// ChoreLevelName 等级称号（英文，中文）
func ChoreLevelName(level int) (string, string) {
	if level < 0 || level >= len(choreLevelNames) {
		return "", ""
	}
	return choreLevelNames[level][0], choreLevelNames[level][1]
}

// BumpChoreBadgeTx 在家务完成事务里累加徽章计数，返回是否升级。
// 行锁防止同一徽章并发丢计数。
func (s *BadgeService) BumpChoreBadgeTx(tx *gorm.DB, familyID, kidID, choreID uint) (*model.Badge, bool, error) {
	var badge model.Badge
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("kid_id = ? AND chore_id = ?", kidID, choreID).
		First(&badge).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		badge = model.Badge{FamilyID: familyID, KidID: kidID, ChoreID: choreID}
	}

	badge.Count++
	oldLevel := badge.Level
	badge.Level = ChoreLevel(badge.Count)

	if err := tx.Save(&badge).Error; err != nil {
		return nil, false, err
	}
	return &badge, badge.Level > oldLevel, nil
}

// awardAchievement 发成就徽章，重复发放静默跳过
func (s *BadgeService) awardAchievement(kidID, familyID uint, badgeID string) {
	has, err := s.BadgeRepo.HasAchievement(kidID, badgeID)
	if err != nil || has {
		return
	}
	err = s.BadgeRepo.CreateAchievement(&model.AchievementBadge{
		FamilyID: familyID,
		KidID:    kidID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	})
	if err != nil {
		s.Logger.Warn("发放成就徽章失败",
			zap.Uint("kidId", kidID),
			zap.String("badgeId", badgeID),
			zap.Error(err))
		return
	}
	s.Logger.Info("获得成就徽章", zap.Uint("kidId", kidID), zap.String("badgeId", badgeID))
}

// CheckChoreAchievements 家务完成后触发的成就判定
func (s *BadgeService) CheckChoreAchievements(kidID, familyID uint) {
	count, err := s.ChoreRepo.CountCompletions(kidID)
	if err != nil {
		return
	}
	if count >= 1 {
		s.awardAchievement(kidID, familyID, AchFirstChore)
	}

	if streak, err := s.choreStreak(kidID); err == nil && streak >= 7 {
		s.awardAchievement(kidID, familyID, AchChoreStreak7)
	}

	if earned, err := s.PointRepo.LifetimeEarnedByKid(kidID); err == nil && earned >= 100 {
		s.awardAchievement(kidID, familyID, AchPoints100)
	}
}

// CheckMathAchievements 每日口算发分后触发
func (s *BadgeService) CheckMathAchievements(kidID, familyID uint) {
	if days, err := s.MathRepo.CountAwardedDays(kidID); err == nil && days >= 10 {
		s.awardAchievement(kidID, familyID, AchMath10Days)
	}
	if earned, err := s.PointRepo.LifetimeEarnedByKid(kidID); err == nil && earned >= 100 {
		s.awardAchievement(kidID, familyID, AchPoints100)
	}
}

// AwardSightWordCycle 整轮常见词学完时发放
func (s *BadgeService) AwardSightWordCycle(kidID, familyID uint) {
	s.awardAchievement(kidID, familyID, AchSightWordCycle)
	if earned, err := s.PointRepo.LifetimeEarnedByKid(kidID); err == nil && earned >= 100 {
		s.awardAchievement(kidID, familyID, AchPoints100)
	}
}

// choreStreak 从最近一天往回数连续有完成记录的天数
func (s *BadgeService) choreStreak(kidID uint) (int, error) {
	dates, err := s.ChoreRepo.DistinctCompletionDates(kidID, 60)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	streak := 1
	prev, err := time.Parse(util.DateFormat, dates[0])
	if err != nil {
		return 0, err
	}
	for _, d := range dates[1:] {
		day, err := time.Parse(util.DateFormat, d)
		if err != nil {
			return 0, err
		}
		if prev.Sub(day) != 24*time.Hour {
			break
		}
		streak++
		prev = day
	}
	return streak, nil
}

type ChoreBadgeView struct {
	model.Badge
	ChoreTitle string `json:"choreTitle"`
	LevelName  string `json:"levelName"`
	NameZh     string `json:"levelNameZh"`
	NextAt     int    `json:"nextAt,omitempty"` // 下一级所需次数，满级为 0
}

type AchievementBadgeView struct {
	AchievementDef
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
}

type BadgeListResponse struct {
	ChoreBadges  []ChoreBadgeView       `json:"choreBadges"`
	Achievements []AchievementBadgeView `json:"achievements"`
}

// ListBadges 孩子的全部徽章。成就列表含未获得的，前端显示为灰色
func (s *BadgeService) ListBadges(familyID, kidID uint) (*BadgeListResponse, error) {
	badges, err := s.BadgeRepo.FindChoreBadges(familyID, kidID)
	if err != nil {
		return nil, err
	}

	chores, err := s.ChoreRepo.FindByFamily(familyID)
	if err != nil {
		return nil, err
	}
	choreTitles := make(map[uint]string, len(chores))
	for _, c := range chores {
		choreTitles[c.ID] = c.Title
	}

	templates, err := s.BadgeRepo.FindTemplates(familyID, true)
	if err != nil {
		return nil, err
	}

	choreViews := make([]ChoreBadgeView, 0, len(badges))
	for _, b := range badges {
		name, nameZh := ChoreLevelName(b.Level)
		for _, t := range templates {
			if t.Type == model.TemplateChoreLevel && t.ChoreID != nil && *t.ChoreID == b.ChoreID {
				if t.Name != "" {
					name = t.Name
				}
				if t.NameZh != "" {
					nameZh = t.NameZh
				}
			}
		}
		nextAt := 0
		if b.Level < len(choreLevelThresholds) {
			nextAt = choreLevelThresholds[b.Level]
		}
		choreViews = append(choreViews, ChoreBadgeView{
			Badge:      b,
			ChoreTitle: choreTitles[b.ChoreID],
			LevelName:  name,
			NameZh:     nameZh,
			NextAt:     nextAt,
		})
	}

	earned, err := s.BadgeRepo.FindAchievementBadges(familyID, kidID)
	if err != nil {
		return nil, err
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, a := range earned {
		earnedAt[a.BadgeID] = a.EarnedAt
	}

	achievements := make([]AchievementBadgeView, 0, len(builtInAchievements))
	for _, def := range builtInAchievements {
		view := AchievementBadgeView{AchievementDef: def}
		for _, t := range templates {
			if t.Type == model.TemplateAchievement && t.BuiltInBadgeID != nil && *t.BuiltInBadgeID == def.ID {
				if t.Name != "" {
					view.Name = t.Name
				}
				if t.NameZh != "" {
					view.NameZh = t.NameZh
				}
				if t.Description != "" {
					view.Description = t.Description
				}
				if t.DescriptionZh != "" {
					view.DescriptionZh = t.DescriptionZh
				}
				if t.Icon != "" {
					view.Icon = t.Icon
				}
			}
		}
		if at, ok := earnedAt[def.ID]; ok {
			view.Earned = true
			t := at
			view.EarnedAt = &t
		}
		achievements = append(achievements, view)
	}

	return &BadgeListResponse{ChoreBadges: choreViews, Achievements: achievements}, nil
}

type BadgeTemplateRequest struct {
	Type           model.BadgeTemplateType `json:"type" binding:"required"`
	BuiltInBadgeID *string                 `json:"builtInBadgeId"`
	ChoreID        *uint                   `json:"choreId"`
	Name           string                  `json:"name"`
	NameZh         string                  `json:"nameZh"`
	Description    string                  `json:"description"`
	DescriptionZh  string                  `json:"descriptionZh"`
	Icon           string                  `json:"icon"`
	ImageURL       string                  `json:"imageUrl"`
}

func (s *BadgeService) CreateTemplate(familyID uint, req *BadgeTemplateRequest) (*model.BadgeTemplate, error) {
	if req.Type != model.TemplateAchievement && req.Type != model.TemplateChoreLevel {
		return nil, errors.New("invalid template type")
	}
	template := &model.BadgeTemplate{
		FamilyID:       familyID,
		Type:           req.Type,
		BuiltInBadgeID: req.BuiltInBadgeID,
		ChoreID:        req.ChoreID,
		Name:           req.Name,
		NameZh:         req.NameZh,
		Description:    req.Description,
		DescriptionZh:  req.DescriptionZh,
		Icon:           req.Icon,
		ImageURL:       req.ImageURL,
		IsActive:       true,
	}
	if err := s.BadgeRepo.CreateTemplate(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *BadgeService) ListTemplates(familyID uint) ([]model.BadgeTemplate, error) {
	return s.BadgeRepo.FindTemplates(familyID, false)
}

func (s *BadgeService) UpdateTemplate(familyID, templateID uint, req *BadgeTemplateRequest) (*model.BadgeTemplate, error) {
	template, err := s.BadgeRepo.FindTemplateByIDAndFamily(templateID, familyID)
	if err != nil {
		return nil, err
	}
	template.Name = req.Name
	template.NameZh = req.NameZh
	template.Description = req.Description
	template.DescriptionZh = req.DescriptionZh
	template.Icon = req.Icon
	template.ImageURL = req.ImageURL
	if err := s.BadgeRepo.UpdateTemplate(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *BadgeService) DeleteTemplate(familyID, templateID uint) error {
	template, err := s.BadgeRepo.FindTemplateByIDAndFamily(templateID, familyID)
	if err != nil {
		return err
	}
	return s.BadgeRepo.DeleteTemplate(template)
}
