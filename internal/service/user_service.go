package service

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// ProfileUpdateRequest carries the self-service profile fields. Email, role
// and password stay out of this path.
type ProfileUpdateRequest struct {
	Name           string         `json:"name"`
	UserType       model.UserType `json:"userType"`
	Location       string         `json:"location"`
	NativeLanguage string         `json:"nativeLanguage"`
	TargetLanguage string         `json:"targetLanguage"`
	Avatar         string         `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, req *ProfileUpdateRequest) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.UserType != "" {
		user.UserType = req.UserType
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.NativeLanguage != "" {
		user.NativeLanguage = req.NativeLanguage
	}
	if req.TargetLanguage != "" {
		user.TargetLanguage = req.TargetLanguage
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
