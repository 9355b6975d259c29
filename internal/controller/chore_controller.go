package controller

import (
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChoreController struct {
	ChoreService *service.ChoreService
	UserRepo     *repository.UserRepository
}

func NewChoreController(choreService *service.ChoreService, userRepo *repository.UserRepository) *ChoreController {
	return &ChoreController{ChoreService: choreService, UserRepo: userRepo}
}

// @Summary 家务列表
// @Tags 家务
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/chores [get]
func (c *ChoreController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	chores, err := c.ChoreService.List(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, chores)
}

// @Summary 孩子的今日家务
// @Description 孩子可见的家务及当天完成状态
// @Tags 家务
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param timezone query string false "时区名" default(America/Los_Angeles)
// @Success 200 {object} util.Response
// @Router /api/chores/today [get]
func (c *ChoreController) Today(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	chores, err := c.ChoreService.ListForKid(claims.FamilyID, kidID, queryTimezone(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, chores)
}

// @Summary 创建家务
// @Tags 家务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChoreRequest true "家务信息"
// @Success 201 {object} util.Response
// @Router /api/chores [post]
func (c *ChoreController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ChoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chore, err := c.ChoreService.Create(claims.FamilyID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, chore)
}

// @Summary 更新家务
// @Tags 家务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家务ID"
// @Param body body service.ChoreRequest true "家务信息"
// @Success 200 {object} util.Response
// @Router /api/chores/{id} [put]
func (c *ChoreController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	choreID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ChoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chore, err := c.ChoreService.Update(claims.FamilyID, choreID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, chore)
}

// @Summary 删除家务
// @Tags 家务
// @Produce json
// @Security BearerAuth
// @Param id path int true "家务ID"
// @Success 200 {object} util.Response
// @Router /api/chores/{id} [delete]
func (c *ChoreController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	choreID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ChoreService.Delete(claims.FamilyID, choreID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 家务打卡
// @Description 完成家务并获得积分，同一家务一天一次
// @Tags 家务
// @Produce json
// @Security BearerAuth
// @Param id path int true "家务ID"
// @Param kidId query int false "孩子ID（家长必传）"
// @Param timezone query string false "时区名" default(America/Los_Angeles)
// @Success 200 {object} util.Response
// @Router /api/chores/{id}/complete [post]
func (c *ChoreController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	choreID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	resp, err := c.ChoreService.Complete(claims.FamilyID, kidID, choreID, queryTimezone(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
