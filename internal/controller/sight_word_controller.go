package controller

import (
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SightWordController struct {
	SightWordService *service.SightWordService
	UserRepo         *repository.UserRepository
}

func NewSightWordController(sightWordService *service.SightWordService, userRepo *repository.UserRepository) *SightWordController {
	return &SightWordController{SightWordService: sightWordService, UserRepo: userRepo}
}

// @Summary 今日常见词
// @Description 按词表顺序轮转出今天要学的词
// @Tags 常见词
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param timezone query string false "时区名" default(America/Los_Angeles)
// @Success 200 {object} util.Response
// @Router /api/sight-words/today [get]
func (c *SightWordController) Today(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	resp, err := c.SightWordService.Today(kidID, claims.FamilyID, queryTimezone(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 提交拼写测验
// @Description 拼写正确当天首次发一分
// @Tags 常见词
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param timezone query string false "时区名" default(America/Los_Angeles)
// @Param body body service.SightWordQuizRequest true "答案"
// @Success 200 {object} util.Response
// @Router /api/sight-words/quiz [post]
func (c *SightWordController) Quiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	var req service.SightWordQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.SightWordService.Quiz(kidID, claims.FamilyID, claims.UserID, queryTimezone(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 词表
// @Tags 常见词
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/sight-words [get]
func (c *SightWordController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	words, err := c.SightWordService.List(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, words)
}

// @Summary 新增常见词
// @Tags 常见词
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SightWordRequest true "词"
// @Success 201 {object} util.Response
// @Router /api/sight-words [post]
func (c *SightWordController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SightWordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	word, err := c.SightWordService.Create(claims.FamilyID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, word)
}

// @Summary 更新常见词
// @Tags 常见词
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "词ID"
// @Param body body service.SightWordUpdateRequest true "更新内容"
// @Success 200 {object} util.Response
// @Router /api/sight-words/{id} [put]
func (c *SightWordController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	wordID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.SightWordUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	word, err := c.SightWordService.Update(claims.FamilyID, wordID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, word)
}

// @Summary 删除常见词
// @Tags 常见词
// @Produce json
// @Security BearerAuth
// @Param id path int true "词ID"
// @Success 200 {object} util.Response
// @Router /api/sight-words/{id} [delete]
func (c *SightWordController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	wordID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.SightWordService.Delete(claims.FamilyID, wordID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type reorderRequest struct {
	WordIDs []uint `json:"wordIds" binding:"required,min=1"`
}

// @Summary 调整词表顺序
// @Tags 常见词
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controller.reorderRequest true "新顺序的词ID列表"
// @Success 200 {object} util.Response
// @Router /api/sight-words/reorder [put]
func (c *SightWordController) Reorder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SightWordService.Reorder(claims.FamilyID, req.WordIDs); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}

// @Summary Excel 批量导入
// @Description 从 xlsx 导入常见词，A 列词 B 列配图地址
// @Tags 常见词
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx 文件"
// @Success 200 {object} util.Response
// @Router /api/sight-words/import [post]
func (c *SightWordController) Import(ctx *gin.Context) {
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
	file, err := fileHeader.Open()
	if err != nil {
		util.BadRequest(ctx, "cannot open uploaded file")
		return
	}
	defer file.Close()

	result, err := c.SightWordService.ImportFromExcel(claims.FamilyID, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
