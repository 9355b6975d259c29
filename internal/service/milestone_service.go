package service

import (
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"
)

type MilestoneService struct {
	MilestoneRepo *repository.MilestoneRepository
	UserRepo      *repository.UserRepository
}

func NewMilestoneService(milestoneRepo *repository.MilestoneRepository, userRepo *repository.UserRepository) *MilestoneService {
	return &MilestoneService{
		MilestoneRepo: milestoneRepo,
		UserRepo:      userRepo,
	}
}

type MilestoneRequest struct {
	KidID       uint       `json:"kidId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photoUrl"`
	AchievedAt  *time.Time `json:"achievedAt"`
}

func (s *MilestoneService) Create(familyID, createdByID uint, req *MilestoneRequest) (*model.Milestone, error) {
	if _, err := s.UserRepo.FindKidInFamily(req.KidID, familyID); err != nil {
		return nil, util.ErrKidNotFound
	}

	achievedAt := time.Now()
	if req.AchievedAt != nil {
		achievedAt = *req.AchievedAt
	}

	milestone := &model.Milestone{
		FamilyID:    familyID,
		KidID:       req.KidID,
		Title:       req.Title,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		AchievedAt:  achievedAt,
		CreatedByID: createdByID,
	}
	if err := s.MilestoneRepo.Create(milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *MilestoneService) List(familyID, kidID uint) ([]model.Milestone, error) {
	return s.MilestoneRepo.FindByFamily(familyID, kidID)
}

func (s *MilestoneService) Update(familyID, milestoneID uint, req *MilestoneRequest) (*model.Milestone, error) {
	milestone, err := s.MilestoneRepo.FindByIDAndFamily(milestoneID, familyID)
	if err != nil {
		return nil, err
	}
	milestone.Title = req.Title
	milestone.Description = req.Description
	if req.PhotoURL != "" {
		milestone.PhotoURL = req.PhotoURL
	}
	if req.AchievedAt != nil {
		milestone.AchievedAt = *req.AchievedAt
	}
	if err := s.MilestoneRepo.Update(milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *MilestoneService) Delete(familyID, milestoneID uint) error {
	milestone, err := s.MilestoneRepo.FindByIDAndFamily(milestoneID, familyID)
	if err != nil {
		return err
	}
	return s.MilestoneRepo.Delete(milestone)
}
