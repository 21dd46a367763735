package timesheet

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	timesheets.Use(middleware.ContextLogger(logger))
	{
		timesheets.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "timesheet", "read"),
			handler.GetAll,
		)

		timesheets.GET("/summary",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "timesheet", "read"),
			handler.Summary,
		)

		timesheets.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "timesheet", "read"),
			handler.Export,
		)

		timesheets.POST("/clock-in",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "timesheet", "create"),
			handler.ClockIn,
		)

		timesheets.POST("/clock-out",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "timesheet", "create"),
			handler.ClockOut,
		)
	}
}
