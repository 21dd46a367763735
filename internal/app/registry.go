package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/auth"
	"go-backoffice/internal/employee"
	"go-backoffice/internal/leave"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/rbac"
	"go-backoffice/internal/rbac/infra"
	"go-backoffice/internal/shared/counter"
	"go-backoffice/internal/shared/storage"
	"go-backoffice/internal/timesheet"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	files storage.FileStore,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, files, counterRepo, outboxRepo, logger)
	timesheetService := timesheet.NewService(db, timesheetRepo, logger)

	// --- Handlers ---
	busyTracker := leave.NewBusyTracker(rdb, 0)
	authHandler := auth.NewHandler(authService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, busyTracker, rdb, logger)
	timesheetHandler := timesheet.NewHandler(timesheetService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService, logger)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}
