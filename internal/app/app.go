package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"family_hub_backend/internal/config"
	"family_hub_backend/internal/controller"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/service"
	"family_hub_backend/pkg/configwatcher"
	"family_hub_backend/pkg/database"
	"family_hub_backend/pkg/logger"
	"family_hub_backend/pkg/monitoring"
	"family_hub_backend/pkg/security"
	"family_hub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	family    *repository.FamilyRepository
	chore     *repository.ChoreRepository
	point     *repository.PointRepository
	reward    *repository.RewardRepository
	badge     *repository.BadgeRepository
	milestone *repository.MilestoneRepository
	dish      *repository.DishRepository
	meal      *repository.MealRepository
	math      *repository.MathRepository
	sightWord *repository.SightWordRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	family       *service.FamilyService
	point        *service.PointService
	badge        *service.BadgeService
	chore        *service.ChoreService
	math         *service.MathService
	sightWord    *service.SightWordService
	reward       *service.RewardService
	milestone    *service.MilestoneService
	dish         *service.DishService
	meal         *service.MealService
	mealFeedback *service.MealFeedbackService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	family    *controller.FamilyController
	point     *controller.PointController
	chore     *controller.ChoreController
	math      *controller.MathController
	sightWord *controller.SightWordController
	reward    *controller.RewardController
	badge     *controller.BadgeController
	milestone *controller.MilestoneController
	dish      *controller.DishController
	meal      *controller.MealController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		family:    repository.NewFamilyRepository(db),
		chore:     repository.NewChoreRepository(db),
		point:     repository.NewPointRepository(db),
		reward:    repository.NewRewardRepository(db),
		badge:     repository.NewBadgeRepository(db),
		milestone: repository.NewMilestoneRepository(db),
		dish:      repository.NewDishRepository(db),
		meal:      repository.NewMealRepository(db),
		math:      repository.NewMathRepository(db),
		sightWord: repository.NewSightWordRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.family, repos.sightWord, cfg, logger.Log)
	s.user = service.NewUserService(repos.user, s.storage)
	s.family = service.NewFamilyService(repos.family, repos.user)
	s.point = service.NewPointService(repos.point, repos.user, rdb)
	s.badge = service.NewBadgeService(repos.badge, repos.chore, repos.point, repos.math, logger.Log)
	s.chore = service.NewChoreService(repos.chore, repos.user, s.point, s.badge)
	s.math = service.NewMathService(repos.math, s.point, s.badge)
	s.sightWord = service.NewSightWordService(repos.sightWord, repos.user, s.point, s.badge)
	s.reward = service.NewRewardService(repos.reward, repos.user, s.point)
	s.milestone = service.NewMilestoneService(repos.milestone, repos.user)
	s.dish = service.NewDishService(repos.dish)
	s.meal = service.NewMealService(repos.meal, repos.dish, rdb, logger.Log)
	s.mealFeedback = service.NewMealFeedbackService(cfg.AI)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		family:    controller.NewFamilyController(s.family),
		point:     controller.NewPointController(s.point, repos.user),
		chore:     controller.NewChoreController(s.chore, repos.user),
		math:      controller.NewMathController(s.math, repos.user),
		sightWord: controller.NewSightWordController(s.sightWord, repos.user),
		reward:    controller.NewRewardController(s.reward, repos.user),
		badge:     controller.NewBadgeController(s.badge, repos.user),
		milestone: controller.NewMilestoneController(s.milestone, s.storage),
		dish:      controller.NewDishController(s.dish, s.storage),
		meal:      controller.NewMealController(s.meal, s.mealFeedback),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// 每小时扫一次过期的周餐投票并关闭
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			s.meal.ClosePlansDue()
		}
	}()
}

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("family-hub", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)
	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
