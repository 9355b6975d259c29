package controller

import (
	"strconv"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/service"
	"family_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RewardController struct {
	RewardService *service.RewardService
	UserRepo      *repository.UserRepository
}

func NewRewardController(rewardService *service.RewardService, userRepo *repository.UserRepository) *RewardController {
	return &RewardController{RewardService: rewardService, UserRepo: userRepo}
}

// @Summary 奖励列表
// @Tags 奖励
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/rewards [get]
func (c *RewardController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 孩子只看在售的奖励
	activeOnly := claims.Role == model.Kid
	rewards, err := c.RewardService.List(claims.FamilyID, activeOnly)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rewards)
}

// @Summary 创建奖励
// @Tags 奖励
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.RewardRequest true "奖励信息"
// @Success 201 {object} util.Response
// @Router /api/rewards [post]
func (c *RewardController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reward, err := c.RewardService.Create(claims.FamilyID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, reward)
}

// @Summary 更新奖励
// @Tags 奖励
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "奖励ID"
// @Param body body service.RewardRequest true "奖励信息"
// @Success 200 {object} util.Response
// @Router /api/rewards/{id} [put]
func (c *RewardController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	rewardID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.RewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reward, err := c.RewardService.Update(claims.FamilyID, rewardID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, reward)
}

// @Summary 删除奖励
// @Tags 奖励
// @Produce json
// @Security BearerAuth
// @Param id path int true "奖励ID"
// @Success 200 {object} util.Response
// @Router /api/rewards/{id} [delete]
func (c *RewardController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	rewardID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.RewardService.Delete(claims.FamilyID, rewardID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 兑换奖励
// @Description 扣减积分并记录兑换，余额不足拒绝
// @Tags 奖励
// @Produce json
// @Security BearerAuth
// @Param id path int true "奖励ID"
// @Param kidId query int false "孩子ID（家长必传）"
// @Success 200 {object} util.Response
// @Router /api/rewards/{id}/redeem [post]
func (c *RewardController) Redeem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	rewardID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	kidID, ok := resolveKidID(ctx, c.UserRepo)
	if !ok {
		return
	}

	resp, err := c.RewardService.Redeem(claims.FamilyID, kidID, rewardID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 兑换记录
// @Tags 奖励
// @Produce json
// @Security BearerAuth
// @Param kidId query int false "孩子ID，不传为全家"
// @Success 200 {object} util.Response
// @Router /api/rewards/redemptions [get]
func (c *RewardController) Redemptions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var kidID uint
	if claims.Role == model.Kid {
		kidID = claims.UserID
	} else if raw := ctx.Query("kidId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid kidId")
			return
		}
		kidID = uint(parsed)
	}

	redemptions, err := c.RewardService.ListRedemptions(claims.FamilyID, kidID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, redemptions)
}
