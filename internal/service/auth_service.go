package service

import (
	"edugame_backend/internal/config"
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"edugame_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	Cfg          *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		Cfg:          cfg,
	}
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name           string         `json:"name" binding:"required"`
	Email          string         `json:"email" binding:"required,email"`
	Password       string         `json:"password" binding:"required,min=6"`
	UserType       model.UserType `json:"userType"`
	Location       string         `json:"location"`
	NativeLanguage string         `json:"nativeLanguage"`
	TargetLanguage string         `json:"targetLanguage"`
}

// Register creates the account and its progress row, then signs a token so
// new users land in the app already authenticated.
func (s *AuthService) Register(req *RegisterRequest) (*model.User, string, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	userType := req.UserType
	if userType == "" {
		userType = model.UserTypeAdult
	}
	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       string(hashedPassword),
		Role:           model.RoleUser,
		UserType:       userType,
		Location:       req.Location,
		NativeLanguage: req.NativeLanguage,
		TargetLanguage: req.TargetLanguage,
		LastLogin:      time.Now(),
		LastSeen:       time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	// Progress is created lazily elsewhere too; doing it here just saves the
	// first request a round-trip.
	if _, err := s.ProgressRepo.FindOrCreate(user.ID); err != nil {
		logger.Log.Warn("initial progress creation failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("last login update failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
