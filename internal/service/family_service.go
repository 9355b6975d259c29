package service

import (
	"errors"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 邀请码有效期
const inviteTTL = 7 * 24 * time.Hour

type FamilyService struct {
	FamilyRepo *repository.FamilyRepository
	UserRepo   *repository.UserRepository
}

func NewFamilyService(familyRepo *repository.FamilyRepository, userRepo *repository.UserRepository) *FamilyService {
	return &FamilyService{
		FamilyRepo: familyRepo,
		UserRepo:   userRepo,
	}
}

type FamilyOverview struct {
	Family  *model.Family `json:"family"`
	Members []model.User  `json:"members"`
}

func (s *FamilyService) Overview(familyID uint) (*FamilyOverview, error) {
	family, err := s.FamilyRepo.FindByID(familyID)
	if err != nil {
		return nil, err
	}
	members, err := s.UserRepo.FindByFamily(familyID)
	if err != nil {
		return nil, err
	}
	return &FamilyOverview{Family: family, Members: members}, nil
}

type CreateKidRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Language string `json:"language"`
	Avatar   string `json:"avatar"`
}

// CreateKid 家长给孩子建账号
func (s *FamilyService) CreateKid(familyID uint, req *CreateKidRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	kid := &model.User{
		FamilyID: familyID,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.Kid,
		Language: language,
		Avatar:   req.Avatar,
	}
	if err := s.UserRepo.Create(kid); err != nil {
		return nil, err
	}
	return kid, nil
}

// CreateInvite 生成邀请码，注册时凭码加入家庭
func (s *FamilyService) CreateInvite(familyID, createdByID uint) (*model.Invite, error) {
	invite := &model.Invite{
		FamilyID:    familyID,
		Code:        uuid.New().String(),
		CreatedByID: createdByID,
		ExpiresAt:   time.Now().Add(inviteTTL),
	}
	if err := s.FamilyRepo.CreateInvite(invite); err != nil {
		return nil, err
	}
	return invite, nil
}

func (s *FamilyService) ListInvites(familyID uint) ([]model.Invite, error) {
	return s.FamilyRepo.ListInvites(familyID)
}
