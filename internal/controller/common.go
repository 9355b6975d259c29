package controller

import (
	"errors"
	"net/http"
	"strconv"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// resolveKidID 统一处理"哪个孩子"：孩子账号就是自己，
// 家长必须显式传 kidId 并且孩子要在自己家庭里。
func resolveKidID(ctx *gin.Context, userRepo *repository.UserRepository) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}

	if claims.Role == model.Kid {
		return claims.UserID, true
	}

	kidIDStr := ctx.Query("kidId")
	if kidIDStr == "" {
		kidIDStr = ctx.PostForm("kidId")
	}
	if kidIDStr == "" {
		util.BadRequest(ctx, "kidId parameter required for parents")
		return 0, false
	}
	kidID, err := strconv.ParseUint(kidIDStr, 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid kidId")
		return 0, false
	}

	if _, err := userRepo.FindKidInFamily(uint(kidID), claims.FamilyID); err != nil {
		util.Error(ctx, http.StatusNotFound, util.ErrKidNotFound.Error())
		return 0, false
	}
	return uint(kidID), true
}

// queryTimezone 读取客户端时区参数，缺省用美西——和前端的默认值保持一致
func queryTimezone(ctx *gin.Context) string {
	tz := ctx.Query("timezone")
	if tz == "" {
		tz = "America/Los_Angeles"
	}
	return tz
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// respondError 领域错误到 HTTP 状态码的统一映射
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidTimezone),
		errors.Is(err, util.ErrInvalidQuestionType),
		errors.Is(err, util.ErrQuestionTypeNotSupported),
		errors.Is(err, util.ErrInvalidInviteCode):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrKidNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrChoreNotFound),
		errors.Is(err, util.ErrRewardNotFound),
		errors.Is(err, util.ErrSightWordNotFound),
		errors.Is(err, util.ErrMealPlanNotFound),
		errors.Is(err, util.ErrDishNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrChoreAlreadyDone),
		errors.Is(err, util.ErrMealPlanClosed):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrInsufficientPoints):
		util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, util.ErrAIUnconfigured):
		util.ServiceUnavailable(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
