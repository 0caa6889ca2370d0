package reports

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hbenali/childguard/internal/config"
	"github.com/hbenali/childguard/internal/features/auth"
	"github.com/hbenali/childguard/internal/pkg/storage"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, notifier Notifier, uploader *storage.Service) {
	repo := NewRepository(db)
	userRepo := auth.NewRepository(db)
	service := NewService(repo, userRepo, notifier)
	handler := NewHandler(service, uploader)
	authMiddleware := auth.NewAuthMiddleware(userRepo, cfg)

	group := router.Group("/reports")
	group.Use(authMiddleware)
	{
		group.POST("", handler.CreateReport)
		group.GET("", handler.ListReports)
		group.GET("/stats", auth.RequireRoles(auth.RolePsychologist, auth.RoleDirector, auth.RoleAdmin), handler.GetStats)
		group.GET("/:id", handler.GetReport)
		group.PUT("/:id/classify", auth.RequireRoles(auth.RolePsychologist, auth.RoleDirector, auth.RoleAdmin), handler.ClassifyReport)
		group.PUT("/:id/assign", auth.RequireRoles(auth.RolePsychologist, auth.RoleDirector, auth.RoleAdmin), handler.AssignReport)
		group.PUT("/:id/steps/:step/start", auth.RequireRoles(auth.RolePsychologist, auth.RoleDirector, auth.RoleAdmin), handler.StartStep)
		group.PUT("/:id/steps/:step/complete", auth.RequireRoles(auth.RolePsychologist, auth.RoleDirector, auth.RoleAdmin), handler.CompleteStep)
		group.PUT("/:id/decision", auth.RequireRoles(auth.RoleDirector, auth.RoleAdmin), handler.DecideReport)
	}
}
