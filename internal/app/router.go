package app

import (
	"family_hub_backend/docs"
	"family_hub_backend/internal/config"
	"family_hub_backend/internal/middleware"
	"family_hub_backend/internal/model"

	"family_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 全家庭成员可用的接口
		a.registerFamilyRoutes(authGroup, c)

		// 家长管理接口
		a.registerParentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerFamilyRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.PUT("/user/password", c.user.ChangePassword)
	rg.POST("/user/avatar", c.user.UploadAvatar)

	rg.GET("/family/overview", c.family.Overview)

	// 积分
	rg.GET("/points/balance", c.point.Balance)
	rg.GET("/points/history", c.point.History)
	rg.GET("/points/calendar", c.point.Calendar)

	// 家务
	rg.GET("/chores", c.chore.List)
	rg.GET("/chores/today", c.chore.Today)
	rg.POST("/chores/:id/complete", c.chore.Complete)

	// 每日数学
	rg.GET("/math/today", c.math.Today)
	rg.POST("/math/submit", c.math.Submit)
	rg.GET("/math/attempts", c.math.Attempts)
	rg.GET("/math/settings", c.math.GetSettings)

	// 常见词
	rg.GET("/sight-words/today", c.sightWord.Today)
	rg.POST("/sight-words/quiz", c.sightWord.Quiz)
	rg.GET("/sight-words", c.sightWord.List)

	// 奖励兑换
	rg.GET("/rewards", c.reward.List)
	rg.POST("/rewards/:id/redeem", c.reward.Redeem)
	rg.GET("/rewards/redemptions", c.reward.Redemptions)

	// 徽章
	rg.GET("/badges", c.badge.List)
	rg.GET("/badge-templates", c.badge.ListTemplates)

	// 里程碑
	rg.GET("/milestones", c.milestone.List)

	// 膳食
	rg.GET("/dishes", c.dish.List)
	rg.GET("/dishes/:id", c.dish.Get)
	rg.GET("/meal-plans", c.meal.ListPlans)
	rg.GET("/meal-plans/:id", c.meal.GetPlan)
	rg.POST("/meal-plans/:id/vote", c.meal.Vote)
	rg.GET("/meals", c.meal.ListMeals)
	rg.POST("/meals", c.meal.LogMeal)
}

func (a *App) registerParentRoutes(rg *gin.RouterGroup, c *controllers) {
	parent := rg.Group("/")
	parent.Use(middleware.RoleMiddleware(model.Parent))
	{
		// 家庭管理
		parent.POST("/family/kids", c.family.CreateKid)
		parent.POST("/family/invites", c.family.CreateInvite)
		parent.GET("/family/invites", c.family.ListInvites)

		// 积分调整
		parent.POST("/points/adjust", c.point.Adjust)

		// 家务管理
		parent.POST("/chores", c.chore.Create)
		parent.PUT("/chores/:id", c.chore.Update)
		parent.DELETE("/chores/:id", c.chore.Delete)

		// 数学设置
		parent.PUT("/math/settings", c.math.UpdateSettings)

		// 词表管理
		parent.POST("/sight-words", c.sightWord.Create)
		parent.PUT("/sight-words/reorder", c.sightWord.Reorder)
		parent.POST("/sight-words/import", c.sightWord.Import)
		parent.PUT("/sight-words/:id", c.sightWord.Update)
		parent.DELETE("/sight-words/:id", c.sightWord.Delete)

		// 奖励管理
		parent.POST("/rewards", c.reward.Create)
		parent.PUT("/rewards/:id", c.reward.Update)
		parent.DELETE("/rewards/:id", c.reward.Delete)

		// 徽章模板
		parent.POST("/badge-templates", c.badge.CreateTemplate)
		parent.PUT("/badge-templates/:id", c.badge.UpdateTemplate)
		parent.DELETE("/badge-templates/:id", c.badge.DeleteTemplate)

		// 里程碑管理
		parent.POST("/milestones", c.milestone.Create)
		parent.POST("/milestones/photo", c.milestone.UploadPhoto)
		parent.PUT("/milestones/:id", c.milestone.Update)
		parent.DELETE("/milestones/:id", c.milestone.Delete)

		// 膳食管理
		parent.POST("/dishes", c.dish.Create)
		parent.POST("/dishes/photo", c.dish.UploadPhoto)
		parent.PUT("/dishes/:id", c.dish.Update)
		parent.DELETE("/dishes/:id", c.dish.Delete)
		parent.POST("/meal-plans", c.meal.CreatePlan)
		parent.POST("/meal-plans/:id/close", c.meal.ClosePlan)
		parent.POST("/meal-plans/feedback", c.meal.Feedback)
		parent.PATCH("/meals/:id", c.meal.UpdateMealLog)
		parent.DELETE("/meals/:id", c.meal.DeleteMealLog)
	}
}
