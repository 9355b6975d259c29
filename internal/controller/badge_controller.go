package controller

import (
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BadgeController struct {
	BadgeService *service.BadgeService
	UserRepo     *repository.UserRepository
}

func NewBadgeController(badgeService *service.BadgeService, userRepo *repository.UserRepository) *BadgeController {
	return &BadgeController{BadgeService: badgeService, UserRepo: userRepo}
}

// @Summary 徽章列表
// @Description 孩子的家务徽章和成就徽章，成就含未解锁的
// @Tags 徽章
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Success 200 {object} util.Response
// @Router /api/badges [get]
func (c *BadgeController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	badges, err := c.BadgeService.ListBadges(claims.FamilyID, kidID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// @Summary 徽章模板列表
// @Tags 徽章
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/badge-templates [get]
func (c *BadgeController) ListTemplates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	templates, err := c.BadgeService.ListTemplates(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, templates)
}

// @Summary 创建徽章模板
// @Description 自定义徽章外观，覆盖内置定义
// @Tags 徽章
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.BadgeTemplateRequest true "模板"
// @Success 201 {object} util.Response
// @Router /api/badge-templates [post]
func (c *BadgeController) CreateTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BadgeTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.BadgeService.CreateTemplate(claims.FamilyID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, template)
}

// @Summary 更新徽章模板
// @Tags 徽章
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "模板ID"
// @Param body body service.BadgeTemplateRequest true "模板"
// @Success 200 {object} util.Response
// @Router /api/badge-templates/{id} [put]
func (c *BadgeController) UpdateTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	templateID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.BadgeTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.BadgeService.UpdateTemplate(claims.FamilyID, templateID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, template)
}

// @Summary 删除徽章模板
// @Tags 徽章
// @Produce json
// @Security BearerAuth
// @Param id path int true "模板ID"
// @Success 200 {object} util.Response
// @Router /api/badge-templates/{id} [delete]
func (c *BadgeController) DeleteTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	templateID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.BadgeService.DeleteTemplate(claims.FamilyID, templateID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
