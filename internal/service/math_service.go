package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MathService struct {
	MathRepo     *repository.MathRepository
	PointService *PointService
	BadgeService *BadgeService
}

func NewMathService(
	mathRepo *repository.MathRepository,
	pointService *PointService,
	badgeService *BadgeService,
) *MathService {
	return &MathService{
		MathRepo:     mathRepo,
		PointService: pointService,
		BadgeService: badgeService,
	}
}

type MathTodayResponse struct {
	Date                string        `json:"date"`
	Problems            DailyProblems `json:"problems"`
	AdditionComplete    bool          `json:"additionComplete"`
	SubtractionComplete bool          `json:"subtractionComplete"`
	RewardGranted       bool          `json:"rewardGranted"`
}

type MathSubmitRequest struct {
	QuestionType   string `json:"questionType" binding:"required"`
	Answer         int    `json:"answer"`
	ResponseTimeMs *int   `json:"responseTimeMs"`
}

type MathSubmitResponse struct {
	Correct          bool `json:"correct"`
	RewardAwarded    bool `json:"rewardAwarded"`
	AlreadyCompleted bool `json:"alreadyCompleted,omitempty"`
}

// kidKey 题目种子里的孩子标识，用十进制 ID 字符串，换表示法会换题
func kidKey(kidID uint) string {
	return strconv.FormatUint(uint64(kidID), 10)
}

// Today 返回当天题目和完成状态，未提交过时没有进度行，按全未完成处理
func (s *MathService) Today(kidID uint, timezone string) (*MathTodayResponse, error) {
	date, err := util.LocalDateString(time.Now(), timezone)
	if err != nil {
		return nil, err
	}

	resp := &MathTodayResponse{
		Date:     date,
		Problems: GenerateDailyProblems(date, kidKey(kidID)),
	}

	progress, err := s.MathRepo.FindProgress(kidID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, err
	}
	resp.AdditionComplete = progress.AdditionPassedAt != nil
	resp.SubtractionComplete = progress.SubtractionPassedAt != nil
	resp.RewardGranted = progress.PointAwarded
	return resp, nil
}

// Submit 判题并落进度。每次提交都记流水；两题都过且当天未发过积分时，
// 在同一事务里置标记并加一分，行锁保证并发重复提交只发一次。
func (s *MathService) Submit(kidID uint, familyID uint, timezone string, req *MathSubmitRequest) (*MathSubmitResponse, error) {
	switch req.QuestionType {
	case "addition", "subtraction":
	case "multiplication", "division":
		return nil, util.ErrQuestionTypeNotSupported
	default:
		return nil, util.ErrInvalidQuestionType
	}

	date, err := util.LocalDateString(time.Now(), timezone)
	if err != nil {
		return nil, err
	}

	problems := GenerateDailyProblems(date, kidKey(kidID))
	expected, err := ExpectedAnswer(problems, req.QuestionType)
	if err != nil {
		return nil, err
	}

	var question string
	if req.QuestionType == "addition" {
		question = problems.Addition.Question
	} else {
		question = problems.Subtraction.Question
	}

	correct := req.Answer == expected
	attempt := &model.MathAttempt{
		KidID:          kidID,
		QuestionType:   req.QuestionType,
		Question:       question,
		CorrectAnswer:  expected,
		GivenAnswer:    req.Answer,
		IsCorrect:      correct,
		ResponseTimeMs: req.ResponseTimeMs,
	}
	if err := s.MathRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	if !correct {
		return &MathSubmitResponse{Correct: false}, nil
	}

	resp := &MathSubmitResponse{Correct: true}
	awarded := false
	err = s.MathRepo.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockMathProgress(tx, kidID, date)
		if err != nil {
			return err
		}

		now := time.Now()
		if req.QuestionType == "addition" {
			if progress.AdditionPassedAt != nil {
				resp.AlreadyCompleted = true
				return nil
			}
			progress.AdditionPassedAt = &now
		} else {
			if progress.SubtractionPassedAt != nil {
				resp.AlreadyCompleted = true
				return nil
			}
			progress.SubtractionPassedAt = &now
		}

		if progress.AdditionPassedAt != nil && progress.SubtractionPassedAt != nil && !progress.PointAwarded {
			progress.PointAwarded = true
			entry := &model.PointEntry{
				FamilyID:    familyID,
				KidID:       kidID,
				Points:      1,
				Note:        "Math: daily practice",
				CreatedByID: kidID,
			}
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
			awarded = true
		}
		return tx.Save(progress).Error
	})
	if err != nil {
		return nil, err
	}

	resp.RewardAwarded = awarded
	if awarded {
		s.PointService.InvalidateBalance(kidID)
		if s.BadgeService != nil {
			s.BadgeService.CheckMathAchievements(kidID, familyID)
		}
	}
	return resp, nil
}

// lockMathProgress 带行锁取进度，缺行则建行。并发首建撞唯一索引时重读一次。
func lockMathProgress(tx *gorm.DB, kidID uint, date string) (*model.MathProgress, error) {
	var progress model.MathProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("kid_id = ? AND date = ?", kidID, date).
		First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = model.MathProgress{KidID: kidID, Date: date}
	if err := tx.Create(&progress).Error; err != nil {
		var retry model.MathProgress
		retryErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("kid_id = ? AND date = ?", kidID, date).
			First(&retry).Error
		if retryErr != nil {
			return nil, fmt.Errorf("create math progress: %w", err)
		}
		return &retry, nil
	}
	return &progress, nil
}

type MathAttemptsResponse struct {
	Attempts []model.MathAttempt `json:"attempts"`
}

// Attempts 最近若干天的做题记录，家长端用
func (s *MathService) Attempts(kidID uint, days int) (*MathAttemptsResponse, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	attempts, err := s.MathRepo.FindAttemptsSince(kidID, since)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []model.MathAttempt{}
	}
	return &MathAttemptsResponse{Attempts: attempts}, nil
}

// DefaultMathSettings 一二年级的口算默认难度
func DefaultMathSettings(familyID uint) *model.MathSettings {
	return &model.MathSettings{
		FamilyID:           familyID,
		DailyQuestionCount: 2,
		AdditionEnabled:    true,
		SubtractionEnabled: true,
		AdditionMinA:       1,
		AdditionMaxA:       9,
		AdditionMinB:       10,
		AdditionMaxB:       99,
		AllowCarrying:      true,
		SubtractionMinA:    10,
		SubtractionMaxA:    99,
		SubtractionMinB:    1,
		SubtractionMaxB:    9,
		AllowBorrowing:     true,
	}
}

func (s *MathService) GetSettings(familyID uint) (*model.MathSettings, error) {
	settings, err := s.MathRepo.FindSettings(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultMathSettings(familyID), nil
		}
		return nil, err
	}
	return settings, nil
}

type MathSettingsRequest struct {
	DailyQuestionCount    *int  `json:"dailyQuestionCount"`
	AdditionEnabled       *bool `json:"additionEnabled"`
	SubtractionEnabled    *bool `json:"subtractionEnabled"`
	MultiplicationEnabled *bool `json:"multiplicationEnabled"`
	DivisionEnabled       *bool `json:"divisionEnabled"`
	AllowCarrying         *bool `json:"allowCarrying"`
	AllowBorrowing        *bool `json:"allowBorrowing"`
	AdaptiveDifficulty    *bool `json:"adaptiveDifficulty"`
}

// UpdateSettings 部分更新，首次写入时先落默认值
func (s *MathService) UpdateSettings(familyID uint, req *MathSettingsRequest) (*model.MathSettings, error) {
	if req.DailyQuestionCount != nil && (*req.DailyQuestionCount < 1 || *req.DailyQuestionCount > 20) {
		return nil, errors.New("dailyQuestionCount must be between 1 and 20")
	}

	settings, err := s.MathRepo.FindSettings(familyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		settings = DefaultMathSettings(familyID)
	}

	if req.DailyQuestionCount != nil {
		settings.DailyQuestionCount = *req.DailyQuestionCount
	}
	if req.AdditionEnabled != nil {
		settings.AdditionEnabled = *req.AdditionEnabled
	}
	if req.SubtractionEnabled != nil {
		settings.SubtractionEnabled = *req.SubtractionEnabled
	}
	if req.MultiplicationEnabled != nil {
		settings.MultiplicationEnabled = *req.MultiplicationEnabled
	}
	if req.DivisionEnabled != nil {
		settings.DivisionEnabled = *req.DivisionEnabled
	}
	if req.AllowCarrying != nil {
		settings.AllowCarrying = *req.AllowCarrying
	}
	if req.AllowBorrowing != nil {
		settings.AllowBorrowing = *req.AllowBorrowing
	}
	if req.AdaptiveDifficulty != nil {
		settings.AdaptiveDifficulty = *req.AdaptiveDifficulty
	}

	if err := s.MathRepo.SaveSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
