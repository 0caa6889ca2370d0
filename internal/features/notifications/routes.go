package notifications

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hbenali/childguard/internal/config"
	"github.com/hbenali/childguard/internal/features/auth"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	authRepo := auth.NewRepository(db)
	handler := NewHandler(repo)
	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)

	group := router.Group("/notifications")
	group.Use(authMiddleware)
	{
		group.GET("", handler.ListNotifications)
		group.GET("/unread-count", handler.GetUnreadCount)
		group.PATCH("/:id/read", handler.MarkAsRead)
		group.PATCH("/read-all", handler.MarkAllAsRead)
	}
}

// GetService builds the fan-out service for use by other modules.
func GetService(db *mongo.Database, publisher Publisher) *Service {
	repo := NewRepository(db)
	authRepo := auth.NewRepository(db)
	return NewService(repo, authRepo, publisher)
}
