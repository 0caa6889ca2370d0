package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hbenali/childguard/internal/config"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg)
	authMiddleware := NewAuthMiddleware(repo, cfg)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.GET("/me", authMiddleware, handler.Me)
	}

	users := router.Group("/users")
	users.Use(authMiddleware)
	{
		users.POST("", RequireRoles(RoleAdmin), handler.CreateUser)
		users.GET("", RequireRoles(RoleDirector, RoleAdmin), handler.ListUsers)
		users.GET("/analysts", RequireRoles(RolePsychologist, RoleDirector, RoleAdmin), handler.ListAnalysts)
		users.PATCH("/:id/active", RequireRoles(RoleAdmin), handler.SetActive)
	}
}
