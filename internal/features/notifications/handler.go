package notifications

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/features/auth"
	"github.com/hbenali/childguard/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary List the caller's notifications
// @Description Unread notifications sort first, then newest
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 50)"
// @Param unreadOnly query bool false "Only show unread"
// @Success 200 {object} response.PaginatedResponse{data=[]Notification}
// @Router /notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_FAILED")
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	notifications, total, err := h.repo.ListForUser(c.Request.Context(), user.ID, query.UnreadOnly, query.Page, query.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch notifications", "DATABASE_ERROR")
		return
	}

	response.Paginated(c, notifications, total, query.Limit, query.Page)
}

// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=UnreadCountResponse}
// @Router /notifications/unread-count [get]
func (h *Handler) GetUnreadCount(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_FAILED")
		return
	}

	count, err := h.repo.CountUnread(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalServerError(c, "Failed to count notifications", "DATABASE_ERROR")
		return
	}

	response.Success(c, UnreadCountResponse{UnreadCount: count})
}

// @Summary Mark one notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.SuccessResponse
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkAsRead(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_FAILED")
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification ID", "INVALID_ID")
		return
	}

	if err := h.repo.MarkAsRead(c.Request.Context(), oid, user.ID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Notification marked as read"})
}

// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=MarkAllReadResponse}
// @Router /notifications/read-all [patch]
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_FAILED")
		return
	}

	updated, err := h.repo.MarkAllAsRead(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalServerError(c, "Failed to update notifications", "DATABASE_ERROR")
		return
	}

	response.Success(c, MarkAllReadResponse{Updated: updated})
}
