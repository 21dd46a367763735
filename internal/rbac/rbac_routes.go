package rbac

import (
	"github.com/gin-gonic/gin"

	"go-backoffice/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, handler *Handler) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)
	}
}
