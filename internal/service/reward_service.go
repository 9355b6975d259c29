package service

import (
	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RewardService struct {
	RewardRepo   *repository.RewardRepository
	UserRepo     *repository.UserRepository
	PointService *PointService
}

func NewRewardService(
	rewardRepo *repository.RewardRepository,
	userRepo *repository.UserRepository,
	pointService *PointService,
) *RewardService {
	return &RewardService{
		RewardRepo:   rewardRepo,
		UserRepo:     userRepo,
		PointService: pointService,
	}
}

type RewardRequest struct {
	Title string `json:"title" binding:"required"`
	Icon  string `json:"icon"`
	Cost  int    `json:"cost" binding:"required,min=1"`
}

func (s *RewardService) Create(familyID uint, req *RewardRequest) (*model.Reward, error) {
	reward := &model.Reward{
		FamilyID: familyID,
		Title:    req.Title,
		Icon:     req.Icon,
		Cost:     req.Cost,
		Active:   true,
	}
	if err := s.RewardRepo.Create(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *RewardService) Update(familyID, rewardID uint, req *RewardRequest) (*model.Reward, error) {
	reward, err := s.RewardRepo.FindByIDAndFamily(rewardID, familyID)
	if err != nil {
		return nil, util.ErrRewardNotFound
	}
	reward.Title = req.Title
	reward.Icon = req.Icon
	reward.Cost = req.Cost
	if err := s.RewardRepo.Update(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *RewardService) Delete(familyID, rewardID uint) error {
	reward, err := s.RewardRepo.FindByIDAndFamily(rewardID, familyID)
	if err != nil {
		return util.ErrRewardNotFound
	}
	return s.RewardRepo.Delete(reward)
}

func (s *RewardService) List(familyID uint, activeOnly bool) ([]model.Reward, error) {
	return s.RewardRepo.FindByFamily(familyID, activeOnly)
}

type RedeemResponse struct {
	Redemption *model.Redemption `json:"redemption"`
	Balance    int               `json:"balance"`
}

// Redeem 兑换奖励。先锁孩子的用户行再在事务里求余额，
// 并发兑换只能有一个通过余额检查。扣分记负数流水，奖励价格留快照。
func (s *RewardService) Redeem(familyID, kidID, rewardID uint) (*RedeemResponse, error) {
	reward, err := s.RewardRepo.FindByIDAndFamily(rewardID, familyID)
	if err != nil || !reward.Active {
		return nil, util.ErrRewardNotFound
	}

	resp := &RedeemResponse{}
	err = s.RewardRepo.DB.Transaction(func(tx *gorm.DB) error {
		var kid model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND family_id = ? AND role = ?", kidID, familyID, model.Kid).
			First(&kid).Error; err != nil {
			return util.ErrKidNotFound
		}

		var balance int64
		if err := tx.Model(&model.PointEntry{}).
			Where("kid_id = ?", kidID).
			Select("COALESCE(SUM(points), 0)").
			Scan(&balance).Error; err != nil {
			return err
		}
		if balance < int64(reward.Cost) {
			return util.ErrInsufficientPoints
		}

		redemption := &model.Redemption{
			FamilyID: familyID,
			RewardID: reward.ID,
			KidID:    kidID,
			Cost:     reward.Cost,
		}
		if err := tx.Create(redemption).Error; err != nil {
			return err
		}

		entry := &model.PointEntry{
			FamilyID:    familyID,
			KidID:       kidID,
			Points:      -reward.Cost,
			Note:        "Reward: " + reward.Title,
			CreatedByID: kidID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		resp.Redemption = redemption
		resp.Balance = int(balance) - reward.Cost
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.PointService.InvalidateBalance(kidID)
	return resp, nil
}

func (s *RewardService) ListRedemptions(familyID uint, kidID uint) ([]model.Redemption, error) {
	return s.RewardRepo.ListRedemptions(familyID, kidID)
}
