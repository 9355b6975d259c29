package service

import (
	"errors"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"gorm.io/gorm"
)

type ChoreService struct {
	ChoreRepo    *repository.ChoreRepository
	UserRepo     *repository.UserRepository
	PointService *PointService
	BadgeService *BadgeService
}

func NewChoreService(
	choreRepo *repository.ChoreRepository,
	userRepo *repository.UserRepository,
	pointService *PointService,
	badgeService *BadgeService,
) *ChoreService {
	return &ChoreService{
		ChoreRepo:    choreRepo,
		UserRepo:     userRepo,
		PointService: pointService,
		BadgeService: badgeService,
	}
}

type ChoreRequest struct {
	Title        string `json:"title" binding:"required"`
	Icon         string `json:"icon"`
	Points       int    `json:"points"`
	AssignedToID *uint  `json:"assignedToId"`
}

func (s *ChoreService) Create(familyID uint, req *ChoreRequest) (*model.Chore, error) {
	if req.Points <= 0 {
		req.Points = 1
	}
	if req.AssignedToID != nil {
		if _, err := s.UserRepo.FindKidInFamily(*req.AssignedToID, familyID); err != nil {
			return nil, util.ErrKidNotFound
		}
	}
	chore := &model.Chore{
		FamilyID:     familyID,
		Title:        req.Title,
		Icon:         req.Icon,
		Points:       req.Points,
		AssignedToID: req.AssignedToID,
		Active:       true,
	}
	if err := s.ChoreRepo.Create(chore); err != nil {
		return nil, err
	}
	return chore, nil
}

func (s *ChoreService) Update(familyID, choreID uint, req *ChoreRequest) (*model.Chore, error) {
	chore, err := s.ChoreRepo.FindByIDAndFamily(choreID, familyID)
	if err != nil {
		return nil, util.ErrChoreNotFound
	}
	if req.AssignedToID != nil {
		if _, err := s.UserRepo.FindKidInFamily(*req.AssignedToID, familyID); err != nil {
			return nil, util.ErrKidNotFound
		}
	}
	chore.Title = req.Title
	chore.Icon = req.Icon
	if req.Points > 0 {
		chore.Points = req.Points
	}
	chore.AssignedToID = req.AssignedToID
	if err := s.ChoreRepo.Update(chore); err != nil {
		return nil, err
	}
	return chore, nil
}

func (s *ChoreService) Delete(familyID, choreID uint) error {
	chore, err := s.ChoreRepo.FindByIDAndFamily(choreID, familyID)
	if err != nil {
		return util.ErrChoreNotFound
	}
	// 软删除，历史完成记录和徽章保留
	return s.ChoreRepo.Delete(chore)
}

func (s *ChoreService) List(familyID uint) ([]model.Chore, error) {
	return s.ChoreRepo.FindByFamily(familyID)
}

type KidChoreView struct {
	model.Chore
	DoneToday bool `json:"doneToday"`
}

// ListForKid 孩子视角的家务清单，带当天是否已完成
func (s *ChoreService) ListForKid(familyID, kidID uint, timezone string) ([]KidChoreView, error) {
	date, err := util.LocalDateString(time.Now(), timezone)
	if err != nil {
		return nil, err
	}

	chores, err := s.ChoreRepo.FindForKid(familyID, kidID)
	if err != nil {
		return nil, err
	}

	views := make([]KidChoreView, 0, len(chores))
	for _, c := range chores {
		done := false
		if _, err := s.ChoreRepo.FindCompletion(c.ID, kidID, date); err == nil {
			done = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		views = append(views, KidChoreView{Chore: c, DoneToday: done})
	}
	return views, nil
}

type ChoreCompleteResponse struct {
	PointsEarned int  `json:"pointsEarned"`
	BadgeLevel   int  `json:"badgeLevel"`
	LeveledUp    bool `json:"leveledUp"`
}

// Complete 家务打卡。同一家务同一天只能打一次，完成记录、积分流水和
// 徽章计数在同一事务里落库。
func (s *ChoreService) Complete(familyID, kidID uint, choreID uint, timezone string) (*ChoreCompleteResponse, error) {
	chore, err := s.ChoreRepo.FindByIDAndFamily(choreID, familyID)
	if err != nil {
		return nil, util.ErrChoreNotFound
	}
	if !chore.Active {
		return nil, util.ErrChoreNotFound
	}
	if chore.AssignedToID != nil && *chore.AssignedToID != kidID {
		return nil, util.ErrPermissionDenied
	}

	date, err := util.LocalDateString(time.Now(), timezone)
	if err != nil {
		return nil, err
	}

	resp := &ChoreCompleteResponse{PointsEarned: chore.Points}
	err = s.ChoreRepo.DB.Transaction(func(tx *gorm.DB) error {
		completion := &model.ChoreCompletion{
			FamilyID: familyID,
			ChoreID:  chore.ID,
			KidID:    kidID,
			Date:     date,
		}
		// 唯一索引兜底并发重复打卡
		if err := tx.Create(completion).Error; err != nil {
			var existing model.ChoreCompletion
			if findErr := tx.Where("chore_id = ? AND kid_id = ? AND date = ?", chore.ID, kidID, date).
				First(&existing).Error; findErr == nil {
				return util.ErrChoreAlreadyDone
			}
			return err
		}

		entry := &model.PointEntry{
			FamilyID:    familyID,
			KidID:       kidID,
			Points:      chore.Points,
			Note:        "Chore: " + chore.Title,
			CreatedByID: kidID,
		}
		if err := s.PointService.AwardTx(tx, entry); err != nil {
			return err
		}

		badge, leveledUp, err := s.BadgeService.BumpChoreBadgeTx(tx, familyID, kidID, chore.ID)
		if err != nil {
			return err
		}
		resp.BadgeLevel = badge.Level
		resp.LeveledUp = leveledUp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.PointService.InvalidateBalance(kidID)
	s.BadgeService.CheckChoreAchievements(kidID, familyID)
	return resp, nil
}
