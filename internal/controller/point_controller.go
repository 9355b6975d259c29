package controller

import (
	"strconv"
	"time"

	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PointController struct {
	PointService *service.PointService
	UserRepo     *repository.UserRepository
}

func NewPointController(pointService *service.PointService, userRepo *repository.UserRepository) *PointController {
	return &PointController{PointService: pointService, UserRepo: userRepo}
}

// @Summary 积分余额
// @Tags 积分
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Success 200 {object} util.Response
// @Router /api/points/balance [get]
func (c *PointController) Balance(ctx *gin.Context) {
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	balance, err := c.PointService.Balance(kidID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"balance": balance})
}

// @Summary 积分流水
// @Tags 积分
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response
// @Router /api/points/history [get]
func (c *PointController) History(ctx *gin.Context) {
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	history, err := c.PointService.History(kidID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// @Summary 积分日历
// @Description 按月返回逐日积分合计和火花标记
// @Tags 积分
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID（家长必传）"
// @Param year query int true "年份"
// @Param month query int true "月份 1-12"
// @Param timezone query string false "时区名" default(America/Los_Angeles)
// @Success 200 {object} util.Response
// @Router /api/points/calendar [get]
func (c *PointController) Calendar(ctx *gin.Context) {
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	now := time.Now()
	year, err := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		util.BadRequest(ctx, "invalid year")
		return
	}
	month, err := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		util.BadRequest(ctx, "invalid month")
		return
	}

	days, err := c.PointService.Calendar(kidID, year, month, queryTimezone(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"days": days})
}

// @Summary 手动调整积分
// @Description 家长加减分，须附备注
// @Tags 积分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PointAdjustRequest true "调整内容"
// @Success 201 {object} util.Response
// @Router /api/points/adjust [post]
func (c *PointController) Adjust(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PointAdjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.PointService.Adjust(claims.FamilyID, claims.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}
