package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrGameNotFound    = errors.New("game not found")
	ErrSessionNotFound = errors.New("game session not found")

	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrChallengeNotActive    = errors.New("challenge is not in progress")
	ErrChallengeNotFulfilled = errors.New("challenge target not reached")

	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardNotAvailable = errors.New("reward is not available")
	ErrRewardExpired      = errors.New("reward has expired")
	ErrInsufficientXP     = errors.New("insufficient XP")
	ErrUserRewardNotFound = errors.New("redeemed reward not found")
	ErrRewardNotActive    = errors.New("redeemed reward is not active")

	ErrResourceNotFound = errors.New("resource not found")
)
