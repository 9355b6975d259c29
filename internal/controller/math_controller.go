package controller

import (
	"strconv"

	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MathController struct {
	MathService *service.MathService
	UserRepo    *repository.UserRepository
}

func NewMathController(mathService *service.MathService, userRepo *repository.UserRepository) *MathController {
	return &MathController{MathService: mathService, UserRepo: userRepo}
}

// @Summary 今日口算题
// @Description 当天的加减法题目和完成状态，同一孩子同一天题目固定
// @Tags 每日口算
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param timezone query string false "时区名" default(America/Los_Angeles)
// @Success 200 {object} util.Response
// @Router /api/math/today [get]
func (c *MathController) Today(ctx *gin.Context) {
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	resp, err := c.MathService.Today(kidID, queryTimezone(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 提交口算答案
// @Description 服务端重算标准答案判卷，两题都对当天发一分
// @Tags 每日口算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param timezone query string false "时区名" default(America/Los_Angeles)
// @Param body body service.MathSubmitRequest true "答案"
// @Success 200 {object} util.Response
// @Router /api/math/submit [post]
func (c *MathController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	var req service.MathSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.MathService.Submit(kidID, claims.FamilyID, queryTimezone(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 做题记录
// @Description 最近若干天的全部提交，含答错的
// @Tags 每日口算
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param days query int false "天数" default(30)
// @Success 200 {object} util.Response
// @Router /api/math/attempts [get]
func (c *MathController) Attempts(ctx *gin.Context) {
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	resp, err := c.MathService.Attempts(kidID, days)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 口算设置
// @Tags 每日口算
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/math/settings [get]
func (c *MathController) GetSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	settings, err := c.MathService.GetSettings(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// @Summary 更新口算设置
// @Tags 每日口算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MathSettingsRequest true "设置"
// @Success 200 {object} util.Response
// @Router /api/math/settings [put]
func (c *MathController) UpdateSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MathSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	settings, err := c.MathService.UpdateSettings(claims.FamilyID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}
