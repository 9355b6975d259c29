package service

import (
	"errors"
	"time"

	"family_hub_backend/internal/config"
	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// starterSightWords 新家庭的起步词表，来自一年级高频常见词
var starterSightWords = []string{
	"the", "and", "you", "was", "for",
	"are", "they", "his", "have", "this",
}

type AuthService struct {
	UserRepo      *repository.UserRepository
	FamilyRepo    *repository.FamilyRepository
	SightWordRepo *repository.SightWordRepository
	Cfg           *config.Config
	Logger        *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	familyRepo *repository.FamilyRepository,
	sightWordRepo *repository.SightWordRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		UserRepo:      userRepo,
		FamilyRepo:    familyRepo,
		SightWordRepo: sightWordRepo,
		Cfg:           cfg,
		Logger:        logger,
	}
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FamilyName string `json:"familyName"`
	InviteCode string `json:"inviteCode"`
	Language   string `json:"language"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register 注册。带邀请码的加入既有家庭，否则必须给家庭名，
// 新家庭的创建者是家长并预置起步词表。
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
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

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Language: language,
		Role:     model.Parent,
	}

	if req.InviteCode != "" {
		invite, err := s.FamilyRepo.FindValidInvite(req.InviteCode)
		if err != nil {
			return nil, util.ErrInvalidInviteCode
		}
		user.FamilyID = invite.FamilyID

		err = s.UserRepo.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			return tx.Model(&model.Invite{}).
				Where("id = ?", invite.ID).
				Update("used_by_id", user.ID).Error
		})
		if err != nil {
			return nil, err
		}
	} else {
		if req.FamilyName == "" {
			return nil, errors.New("familyName or inviteCode is required")
		}

		err = s.UserRepo.DB.Transaction(func(tx *gorm.DB) error {
			family := &model.Family{Name: req.FamilyName}
			if err := tx.Create(family).Error; err != nil {
				return err
			}
			user.FamilyID = family.ID
			if err := tx.Create(user).Error; err != nil {
				return err
			}

			words := make([]model.SightWord, len(starterSightWords))
			for i, w := range starterSightWords {
				words[i] = model.SightWord{
					FamilyID:  family.ID,
					Word:      w,
					SortOrder: i,
					IsActive:  true,
				}
			}
			return tx.Create(&words).Error
		})
		if err != nil {
			return nil, err
		}
		s.Logger.Info("新家庭注册", zap.Uint("familyId", user.FamilyID), zap.String("email", user.Email))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		s.Logger.Warn("更新登录时间失败", zap.Uint("userId", user.ID), zap.Error(err))
	}
	user.LastLogin = time.Now()

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) GetCurrentUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}
