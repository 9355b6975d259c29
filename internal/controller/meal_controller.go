package controller

import (
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	MealService     *service.MealService
	FeedbackService *service.MealFeedbackService
}

func NewMealController(mealService *service.MealService, feedbackService *service.MealFeedbackService) *MealController {
	return &MealController{MealService: mealService, FeedbackService: feedbackService}
}

// @Summary 发起周餐投票
// @Description weekOf 会归一到所在周的周一
// @Tags 膳食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MealPlanRequest true "候选菜"
// @Success 201 {object} util.Response
// @Router /api/meal-plans [post]
func (c *MealController) CreatePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MealPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan, err := c.MealService.CreatePlan(claims.FamilyID, claims.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, plan)
}

// @Summary 周餐投票列表
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/meal-plans [get]
func (c *MealController) ListPlans(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.MealService.ListPlans(claims.FamilyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// @Summary 周餐投票详情
// @Description 含各候选菜票数和我投的票
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Param id path int true "投票ID"
// @Success 200 {object} util.Response
// @Router /api/meal-plans/{id} [get]
func (c *MealController) GetPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	planID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	plan, err := c.MealService.GetPlan(claims.FamilyID, planID, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, plan)
}

type voteRequest struct {
	OptionID uint `json:"optionId" binding:"required"`
}

// @Summary 投票/取消投票
// @Description 再次投同一候选即取消
// @Tags 膳食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "投票ID"
// @Param body body controller.voteRequest true "候选项"
// @Success 200 {object} util.Response
// @Router /api/meal-plans/{id}/vote [post]
func (c *MealController) Vote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	planID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req voteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.MealService.ToggleVote(claims.FamilyID, claims.UserID, planID, req.OptionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 关闭周餐投票
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Param id path int true "投票ID"
// @Success 200 {object} util.Response
// @Router /api/meal-plans/{id}/close [post]
func (c *MealController) ClosePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	planID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	plan, err := c.MealService.ClosePlan(claims.FamilyID, planID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, plan)
}

// @Summary 营养点评
// @Description 调用 AI 对一组菜做营养分析，未配置 AI 时返回 503
// @Tags 膳食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MealFeedbackRequest true "菜品清单"
// @Success 200 {object} util.Response
// @Router /api/meal-plans/feedback [post]
func (c *MealController) Feedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MealFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.FeedbackService.Analyze(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 记一餐
// @Tags 膳食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MealLogRequest true "用餐记录"
// @Success 201 {object} util.Response
// @Router /api/meals [post]
func (c *MealController) LogMeal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MealLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	log, err := c.MealService.LogMeal(claims.FamilyID, claims.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, log)
}

// @Summary 用餐记录
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Param start query string true "起始日期 YYYY-MM-DD"
// @Param end query string true "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/meals [get]
func (c *MealController) ListMeals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	start := ctx.Query("start")
	end := ctx.Query("end")
	if start == "" || end == "" {
		util.BadRequest(ctx, "start and end are required")
		return
	}

	logs, err := c.MealService.ListMeals(claims.FamilyID, start, end)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

// @Summary 改用餐记录
// @Description 只更新请求里带的字段
// @Tags 膳食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param body body service.MealLogUpdateRequest true "要改的字段"
// @Success 200 {object} util.Response
// @Router /api/meals/{id} [patch]
func (c *MealController) UpdateMealLog(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	logID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.MealLogUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	log, err := c.MealService.UpdateMealLog(claims.FamilyID, logID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, log)
}

// @Summary 删除用餐记录
// @Tags 膳食
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response
// @Router /api/meals/{id} [delete]
func (c *MealController) DeleteMealLog(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	logID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.MealService.DeleteMealLog(claims.FamilyID, logID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
