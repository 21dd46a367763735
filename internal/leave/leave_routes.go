package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/rbac"
)

// RegisterRoutes mounts one route family per subtype under /leaves/:type.
// Every handler is subtype-agnostic; the tag is validated once by
// LeaveTypeParam and carried in context.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	leaves := r.Group("/leaves/:type")
	leaves.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), LeaveTypeParam())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		if redisClient != nil {
			leaves.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "leave", "create"),
				handler.Create,
			)
		} else {
			leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		}
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Update)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Delete)

		leaves.GET("/:id/actions", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Actions)

		leaves.GET("/:id/application/document", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.DownloadApplication)
		leaves.POST("/:id/application", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.UploadApplication)

		// Adjudication is a reviewer-only capability, enforced here.
		leaves.POST("/:id/review", middleware.RBACAuthorize(rbacService, "leave_review", "decide"), handler.Review)

		leaves.POST("/:id/order", middleware.RBACAuthorize(rbacService, "leave_review", "decide"), handler.CreateOrder)
		leaves.GET("/:id/order/document", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.DownloadOrder)
		leaves.POST("/:id/order/upload", middleware.RBACAuthorize(rbacService, "leave_review", "decide"), handler.UploadOrder)

		leaves.POST("/:id/certificate", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.UploadCertificate)
		leaves.POST("/:id/complete", middleware.RBACAuthorize(rbacService, "leave_review", "decide"), handler.Complete)
	}
}
