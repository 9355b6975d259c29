package controller

import (
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DishController struct {
	DishService    *service.DishService
	StorageService *service.StorageService
}

func NewDishController(dishService *service.DishService, storageService *service.StorageService) *DishController {
	return &DishController{DishService: dishService, StorageService: storageService}
}

// @Summary 菜品列表
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/dishes [get]
func (c *DishController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dishes, err := c.DishService.List(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, dishes)
}

// @Summary 新增菜品
// @Tags 膳食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.DishRequest true "菜品"
// @Success 201 {object} util.Response
// @Router /api/dishes [post]
func (c *DishController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.DishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dish, err := c.DishService.Create(claims.FamilyID, claims.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, dish)
}

// @Summary 上传菜品照片
// @Tags 膳食
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "照片"
// @Success 200 {object} util.Response
// @Router /api/dishes/photo [post]
func (c *DishController) UploadPhoto(ctx *gin.Context) {
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

	url, err := c.StorageService.UploadImage(ctx.Request.Context(), fileHeader, "dishes")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"photoUrl": url})
}

// @Summary 菜品详情
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品ID"
// @Success 200 {object} util.Response
// @Router /api/dishes/{id} [get]
func (c *DishController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	dishID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	dish, err := c.DishService.Get(claims.FamilyID, dishID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, dish)
}

// @Summary 更新菜品
// @Tags 膳食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品ID"
// @Param body body service.DishRequest true "菜品"
// @Success 200 {object} util.Response
// @Router /api/dishes/{id} [put]
func (c *DishController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	dishID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.DishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dish, err := c.DishService.Update(claims.FamilyID, dishID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, dish)
}

// @Summary 删除菜品
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜品ID"
// @Success 200 {object} util.Response
// @Router /api/dishes/{id} [delete]
func (c *DishController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	dishID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.DishService.Delete(claims.FamilyID, dishID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
