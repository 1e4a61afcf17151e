package app

import (
	"database/sql"

	"go-workschedule/internal/auth"
	"go-workschedule/internal/config"
	"go-workschedule/internal/holiday"
	"go-workschedule/internal/messaging/kafka"
	"go-workschedule/internal/middleware"
	"go-workschedule/internal/rbac"
	"go-workschedule/internal/schedule"
	"go-workschedule/internal/schedulerequest"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	requestRepo := schedulerequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	loc := cfg.Location()
	calc := schedule.NewCycleCalculator(loc)

	authService := auth.NewService(authRepo, cfg.JWTSecret, loc)
	holidayService := holiday.NewService(db, holidayRepo, loc)
	scheduleService := schedule.NewService(db, scheduleRepo, calc)
	requestService := schedulerequest.NewService(
		db,
		requestRepo,
		scheduleRepo,
		calc,
		outboxRepo,
		schedulerequest.Policy{
			AdvanceNoticeDays: cfg.AdvanceNoticeDays,
			ProbationMonths:   cfg.ProbationMonths,
		},
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.AppEnv == "production")
	holidayHandler := holiday.NewHandler(holidayService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	requestHandler := schedulerequest.NewHandler(requestService, rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService, cfg.JWTSecret)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, cfg.JWTSecret)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService, cfg.JWTSecret)
		schedulerequest.RegisterRoutes(api, requestHandler, rbacService, rdb, cfg.JWTSecret)
	}

	return nil
}
