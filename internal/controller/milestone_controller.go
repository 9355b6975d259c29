package controller

import (
	"strconv"

	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MilestoneController struct {
	MilestoneService *service.MilestoneService
	StorageService   *service.StorageService
}

func NewMilestoneController(milestoneService *service.MilestoneService, storageService *service.StorageService) *MilestoneController {
	return &MilestoneController{MilestoneService: milestoneService, StorageService: storageService}
}

// @Summary 里程碑列表
// @Tags 里程碑
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID，不传为全家"
// @Success 200 {object} util.Response
// @Router /api/milestones [get]
func (c *MilestoneController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var kidID uint
	if raw := ctx.Query("kidId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid kidId")
			return
		}
		kidID = uint(parsed)
	}

	milestones, err := c.MilestoneService.List(claims.FamilyID, kidID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, milestones)
}

// @Summary 记录里程碑
// @Tags 里程碑
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MilestoneRequest true "里程碑"
// @Success 201 {object} util.Response
// @Router /api/milestones [post]
func (c *MilestoneController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	milestone, err := c.MilestoneService.Create(claims.FamilyID, claims.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, milestone)
}

// @Summary 上传里程碑照片
// @Tags 里程碑
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "照片"
// @Success 200 {object} util.Response
// @Router /api/milestones/photo [post]
func (c *MilestoneController) UploadPhoto(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.StorageService.UploadImage(ctx.Request.Context(), fileHeader, "milestones")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"photoUrl": url})
}

// @Summary 更新里程碑
// @Tags 里程碑
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "里程碑ID"
// @Param body body service.MilestoneRequest true "里程碑"
// @Success 200 {object} util.Response
// @Router /api/milestones/{id} [put]
func (c *MilestoneController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	milestoneID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.MilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	milestone, err := c.MilestoneService.Update(claims.FamilyID, milestoneID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, milestone)
}

// @Summary 删除里程碑
// @Tags 里程碑
// @Produce json
// @Security BearerAuth
// @Param id path int true "里程碑ID"
// @Success 200 {object} util.Response
// @Router /api/milestones/{id} [delete]
func (c *MilestoneController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	milestoneID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.MilestoneService.Delete(claims.FamilyID, milestoneID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
