package service

import (
	"errors"
	"strings"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SightWordService struct {
	SightWordRepo *repository.SightWordRepository
	UserRepo      *repository.UserRepository
	PointService  *PointService
	BadgeService  *BadgeService
}

func NewSightWordService(
	sightWordRepo *repository.SightWordRepository,
	userRepo *repository.UserRepository,
	pointService *PointService,
	badgeService *BadgeService,
) *SightWordService {
	return &SightWordService{
		SightWordRepo: sightWordRepo,
		UserRepo:      userRepo,
		PointService:  pointService,
		BadgeService:  badgeService,
	}
}

// wordState 轮转决策需要的最小进度视图，按词表顺序排列
type wordState struct {
	HasPassed    bool // 历史上过过测验
	PassedToday  bool // 今天（孩子时区）过过测验
	PointAwarded bool // 本轮是否已发过积分
}

type rotationOutcome int

const (
	wordNew             rotationOutcome = iota // 首次学这个词
	wordAlreadyDoneToday                       // 今天已完成，重展示
	cycleDoneToday                             // 整轮学完且今天已做过，今天没有新词
	recycleReward                              // 复习轮：清掉该词的发分标记后重学
	recycleReset                               // 全部标记清零，从头再来一轮
)

// pickTodaysWord 轮转状态机本体。顺着词表找今天的词：
// 今天过过的词优先重展示；否则取第一个从没过过的词；全都过过时进入
// 复习轮，按两段式回收——先找还带着发分标记的词，都没有就整表重置。
// 纯函数，数据库副作用由调用方按返回值执行。
func pickTodaysWord(states []wordState) (rotationOutcome, int) {
	idx := -1
	outcome := wordNew
	for i, st := range states {
		if st.PassedToday {
			if idx == -1 {
				idx = i
				outcome = wordAlreadyDoneToday
			}
		} else if !st.HasPassed {
			if idx == -1 {
				idx = i
				outcome = wordNew
			}
		}
	}
	if idx != -1 {
		return outcome, idx
	}

	for _, st := range states {
		if st.PassedToday {
			return cycleDoneToday, -1
		}
	}
	for i, st := range states {
		if st.PointAwarded {
			return recycleReward, i
		}
	}
	return recycleReset, 0
}

type SightWordView struct {
	ID       uint   `json:"id"`
	Word     string `json:"word"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type SightWordProgressView struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type SightWordTodayResponse struct {
	SightWord             *SightWordView        `json:"sightWord"`
	Message               string                `json:"message,omitempty"`
	AlreadyCompletedToday bool                  `json:"alreadyCompletedToday"`
	IsReview              bool                  `json:"isReview"`
	Progress              SightWordProgressView `json:"progress"`
}

// Today 取孩子今天要学的词。复习轮的回收写操作在事务里执行。
func (s *SightWordService) Today(kidID, familyID uint, timezone string) (*SightWordTodayResponse, error) {
	today, err := util.LocalDateString(time.Now(), timezone)
	if err != nil {
		return nil, err
	}

	words, err := s.SightWordRepo.FindActiveByFamily(familyID)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return &SightWordTodayResponse{Message: "noWords"}, nil
	}

	progressList, err := s.SightWordRepo.FindProgressByKid(kidID)
	if err != nil {
		return nil, err
	}
	progressMap := make(map[uint]model.SightWordProgress, len(progressList))
	for _, p := range progressList {
		progressMap[p.SightWordID] = p
	}

	states := make([]wordState, len(words))
	completedCount := 0
	for i, w := range words {
		p, ok := progressMap[w.ID]
		if !ok || p.QuizPassedAt == nil {
			states[i] = wordState{PointAwarded: ok && p.PointAwarded}
			continue
		}
		passedDate, err := util.LocalDateString(*p.QuizPassedAt, timezone)
		if err != nil {
			return nil, err
		}
		states[i] = wordState{
			HasPassed:    true,
			PassedToday:  passedDate == today,
			PointAwarded: p.PointAwarded,
		}
		completedCount++
	}

	outcome, idx := pickTodaysWord(states)
	total := len(words)

	switch outcome {
	case wordNew, wordAlreadyDoneToday:
		w := words[idx]
		return &SightWordTodayResponse{
			SightWord:             &SightWordView{ID: w.ID, Word: w.Word, ImageURL: w.ImageURL},
			AlreadyCompletedToday: outcome == wordAlreadyDoneToday,
			Progress:              SightWordProgressView{Current: completedCount, Total: total},
		}, nil

	case cycleDoneToday:
		return &SightWordTodayResponse{
			Message:               "alreadyCompletedToday",
			AlreadyCompletedToday: true,
			IsReview:              true,
			Progress:              SightWordProgressView{Current: total, Total: total},
		}, nil

	case recycleReward:
		w := words[idx]
		err := s.SightWordRepo.DB.Model(&model.SightWordProgress{}).
			Where("kid_id = ? AND sight_word_id = ?", kidID, w.ID).
			Update("point_awarded", false).Error
		if err != nil {
			return nil, err
		}
		return &SightWordTodayResponse{
			SightWord: &SightWordView{ID: w.ID, Word: w.Word, ImageURL: w.ImageURL},
			IsReview:  true,
			Progress:  SightWordProgressView{Current: total, Total: total},
		}, nil

	default: // recycleReset
		first := words[0]
		wordIDs := make([]uint, len(words))
		for i, w := range words {
			wordIDs[i] = w.ID
		}
		err := s.SightWordRepo.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.SightWordProgress{}).
				Where("kid_id = ? AND sight_word_id IN ?", kidID, wordIDs).
				Update("point_awarded", true).Error; err != nil {
				return err
			}
			return tx.Model(&model.SightWordProgress{}).
				Where("kid_id = ? AND sight_word_id = ?", kidID, first.ID).
				Update("point_awarded", false).Error
		})
		if err != nil {
			return nil, err
		}
		return &SightWordTodayResponse{
			SightWord: &SightWordView{ID: first.ID, Word: first.Word, ImageURL: first.ImageURL},
			IsReview:  true,
			Progress:  SightWordProgressView{Current: total, Total: total},
		}, nil
	}
}

type SightWordQuizRequest struct {
	SightWordID uint   `json:"sightWordId" binding:"required"`
	Answer      string `json:"answer" binding:"required"`
}

type SightWordQuizResponse struct {
	Correct      bool   `json:"correct"`
	PointAwarded bool   `json:"pointAwarded"`
	Message      string `json:"message"`
}

// Quiz 判卷。拼写忽略大小写和首尾空白；同一个词一天只发一分，
// 进度更新和积分流水在同一事务里，行锁挡并发重复提交。
func (s *SightWordService) Quiz(kidID, familyID, submitterID uint, timezone string, req *SightWordQuizRequest) (*SightWordQuizResponse, error) {
	word, err := s.SightWordRepo.FindByIDAndFamily(req.SightWordID, familyID)
	if err != nil {
		return nil, util.ErrSightWordNotFound
	}

	if !strings.EqualFold(strings.TrimSpace(req.Answer), word.Word) {
		return &SightWordQuizResponse{Correct: false, Message: "incorrect"}, nil
	}

	today, err := util.LocalDateString(time.Now(), timezone)
	if err != nil {
		return nil, err
	}

	resp := &SightWordQuizResponse{Correct: true, Message: "success"}
	cycleComplete := false
	err = s.SightWordRepo.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.SightWordProgress
		now := time.Now()
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("kid_id = ? AND sight_word_id = ?", kidID, word.ID).
			First(&progress).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			progress = model.SightWordProgress{
				KidID:       kidID,
				SightWordID: word.ID,
				ViewedAt:    &now,
			}
		}

		if progress.QuizPassedAt != nil {
			passedDate, err := util.LocalDateString(*progress.QuizPassedAt, timezone)
			if err != nil {
				return err
			}
			if passedDate == today {
				resp.Message = "alreadyCompleted"
				return nil
			}
		}

		progress.QuizPassedAt = &now
		progress.PointAwarded = true
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		entry := &model.PointEntry{
			FamilyID:    familyID,
			KidID:       kidID,
			Points:      1,
			Note:        "Sight word: " + word.Word,
			CreatedByID: submitterID,
		}
		if err := s.PointService.AwardTx(tx, entry); err != nil {
			return err
		}
		resp.PointAwarded = true

		// 本轮是否学完：所有在用词都有过测验通过记录
		var remaining int64
		err = tx.Model(&model.SightWord{}).
			Where("family_id = ? AND is_active = ?", familyID, true).
			Where("id NOT IN (?)", tx.Model(&model.SightWordProgress{}).
				Select("sight_word_id").
				Where("kid_id = ? AND quiz_passed_at IS NOT NULL", kidID)).
			Count(&remaining).Error
		if err != nil {
			return err
		}
		cycleComplete = remaining == 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.PointAwarded {
		s.PointService.InvalidateBalance(kidID)
		if cycleComplete && s.BadgeService != nil {
			s.BadgeService.AwardSightWordCycle(kidID, familyID)
		}
	}
	return resp, nil
}

type SightWordRequest struct {
	Word     string `json:"word" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// Create 新词追加到词表末尾
func (s *SightWordService) Create(familyID uint, req *SightWordRequest) (*model.SightWord, error) {
	trimmed := strings.TrimSpace(req.Word)
	if trimmed == "" {
		return nil, errors.New("word is required")
	}
	maxOrder, err := s.SightWordRepo.MaxSortOrder(familyID)
	if err != nil {
		return nil, err
	}
	word := &model.SightWord{
		FamilyID:  familyID,
		Word:      trimmed,
		ImageURL:  req.ImageURL,
		SortOrder: maxOrder + 1,
		IsActive:  true,
	}
	if err := s.SightWordRepo.Create(word); err != nil {
		return nil, err
	}
	return word, nil
}

func (s *SightWordService) List(familyID uint) ([]model.SightWord, error) {
	return s.SightWordRepo.FindAllByFamily(familyID)
}

type SightWordUpdateRequest struct {
	Word     *string `json:"word"`
	ImageURL *string `json:"imageUrl"`
	IsActive *bool   `json:"isActive"`
}

func (s *SightWordService) Update(familyID, wordID uint, req *SightWordUpdateRequest) (*model.SightWord, error) {
	word, err := s.SightWordRepo.FindByIDAndFamily(wordID, familyID)
	if err != nil {
		return nil, util.ErrSightWordNotFound
	}
	if req.Word != nil {
		trimmed := strings.TrimSpace(*req.Word)
		if trimmed == "" {
			return nil, errors.New("word is required")
		}
		word.Word = trimmed
	}
	if req.ImageURL != nil {
		word.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		word.IsActive = *req.IsActive
	}
	if err := s.SightWordRepo.Update(word); err != nil {
		return nil, err
	}
	return word, nil
}

func (s *SightWordService) Delete(familyID, wordID uint) error {
	word, err := s.SightWordRepo.FindByIDAndFamily(wordID, familyID)
	if err != nil {
		return util.ErrSightWordNotFound
	}
	return s.SightWordRepo.Delete(word)
}

// Reorder 按传入顺序重写 sortOrder，必须覆盖家庭里的全部指定词
func (s *SightWordService) Reorder(familyID uint, wordIDs []uint) error {
	if len(wordIDs) == 0 {
		return errors.New("wordIds array is required")
	}

	var count int64
	err := s.SightWordRepo.DB.Model(&model.SightWord{}).
		Where("id IN ? AND family_id = ?", wordIDs, familyID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(wordIDs)) {
		return util.ErrSightWordNotFound
	}

	return s.SightWordRepo.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range wordIDs {
			if err := tx.Model(&model.SightWord{}).
				Where("id = ? AND family_id = ?", id, familyID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
