package controller

import (
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FamilyController struct {
	FamilyService *service.FamilyService
}

func NewFamilyController(familyService *service.FamilyService) *FamilyController {
	return &FamilyController{FamilyService: familyService}
}

// @Summary 家庭概览
// @Description 家庭信息和全部成员
// @Tags 家庭
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/family [get]
func (c *FamilyController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.FamilyService.Overview(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// @Summary 创建孩子账号
// @Tags 家庭
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateKidRequest true "孩子信息"
// @Success 201 {object} util.Response
// @Router /api/family/kids [post]
func (c *FamilyController) CreateKid(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateKidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	kid, err := c.FamilyService.CreateKid(claims.FamilyID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, kid)
}

// @Summary 生成邀请码
// @Description 生成 7 天有效的家庭邀请码
// @Tags 家庭
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/family/invites [post]
func (c *FamilyController) CreateInvite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	invite, err := c.FamilyService.CreateInvite(claims.FamilyID, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, invite)
}

// @Summary 邀请码列表
// @Tags 家庭
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/family/invites [get]
func (c *FamilyController) ListInvites(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	invites, err := c.FamilyService.ListInvites(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, invites)
}
