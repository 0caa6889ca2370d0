package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/hbenali/childguard/internal/config"
	"github.com/hbenali/childguard/internal/pkg/response"
	"github.com/hbenali/childguard/internal/pkg/token"
)

type Handler struct {
	repo *Repository
	cfg  *config.Config
}

func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, cfg: cfg}
}

// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := h.repo.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		response.InternalServerError(c, "Failed to look up user", "DATABASE_ERROR")
		return
	}
	// Same message for unknown email and wrong password
	if user == nil {
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}
	if !user.IsActive {
		response.Forbidden(c, "Account is deactivated", "ACCOUNT_INACTIVE")
		return
	}

	accessToken, err := token.Generate(user.ID.Hex(), user.Email, string(user.Role), user.Village, h.cfg.JWTSecret, h.cfg.JWTExpireHours)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token", "TOKEN_ERROR")
		return
	}

	response.Success(c, AuthResponse{User: user, AccessToken: accessToken})
}

// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}
	response.Success(c, user)
}

// @Summary Create a staff account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "Account details"
// @Success 201 {object} response.SuccessResponse{data=User}
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	if err := ValidateCreateUserRequest(&req); err != nil {
		response.FromError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to hash password", "INTERNAL_ERROR")
		return
	}

	user := &User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         Role(req.Role),
		Village:      req.Village,
		IsActive:     true,
	}

	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, user)
}

// @Summary List staff accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param village query string false "Filter by village"
// @Success 200 {object} response.SuccessResponse{data=[]User}
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	var q ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	users, err := h.repo.ListUsers(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list users", "DATABASE_ERROR")
		return
	}
	if users == nil {
		users = []User{}
	}
	response.Success(c, users)
}

// @Summary List active analysts for assignment
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param village query string false "Restrict to a village"
// @Success 200 {object} response.SuccessResponse{data=[]User}
// @Router /users/analysts [get]
func (h *Handler) ListAnalysts(c *gin.Context) {
	village := strings.TrimSpace(strings.ToLower(c.Query("village")))

	analysts, err := h.repo.FindAnalysts(c.Request.Context(), village)
	if err != nil {
		response.InternalServerError(c, "Failed to list analysts", "DATABASE_ERROR")
		return
	}
	if analysts == nil {
		analysts = []User{}
	}
	response.Success(c, analysts)
}

// @Summary Activate or deactivate an account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body SetActiveRequest true "Activation state"
// @Success 200 {object} response.SuccessResponse
// @Router /users/{id}/active [patch]
func (h *Handler) SetActive(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", "INVALID_ID")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		response.BadRequest(c, "isActive is required", "INVALID_JSON")
		return
	}

	if err := h.repo.SetActive(c.Request.Context(), oid, *req.IsActive); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"id": oid, "isActive": *req.IsActive})
}
