package util

import "errors"

var (
	ErrUserNotFound             = errors.New("用户不存在")
	ErrEmailRegistered          = errors.New("该邮箱已被注册")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrPermissionDenied         = errors.New("permission denied")
	ErrKidNotFound              = errors.New("kid not found or not in your family")
	ErrInvalidInviteCode        = errors.New("invite code invalid or expired")
	ErrInvalidTimezone          = errors.New("unknown timezone name")
	ErrInvalidQuestionType      = errors.New("invalid question type")
	ErrQuestionTypeNotSupported = errors.New("question type not yet supported")
	ErrChoreNotFound            = errors.New("chore not found")
	ErrChoreAlreadyDone         = errors.New("chore already completed today")
	ErrRewardNotFound           = errors.New("reward not found")
	ErrInsufficientPoints       = errors.New("not enough points")
	ErrSightWordNotFound        = errors.New("sight word not found")
	ErrMealPlanNotFound         = errors.New("meal plan not found")
	ErrMealPlanClosed           = errors.New("meal plan is closed")
	ErrDishNotFound             = errors.New("dish not found")
	ErrAIUnconfigured           = errors.New("AI feedback is not configured")
)
