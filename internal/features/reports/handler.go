package reports

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/features/auth"
	"github.com/hbenali/childguard/internal/pkg/response"
	"github.com/hbenali/childguard/internal/pkg/storage"
)

type Handler struct {
	service  *Service
	uploader *storage.Service
}

func NewHandler(service *Service, uploader *storage.Service) *Handler {
	return &Handler{service: service, uploader: uploader}
}

func currentUser(c *gin.Context) (*auth.User, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_FAILED")
		return nil, false
	}
	return user, true
}

func reportID(c *gin.Context) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// @Summary File a new incident report
// @Description Accepts JSON, or multipart with a "data" JSON field and up to 5 "attachments" files
// @Tags reports
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param request body CreateReportRequest true "Report details"
// @Success 201 {object} response.SuccessResponse{data=Report}
// @Router /reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	var attachments []Attachment

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		data := c.PostForm("data")
		if data == "" {
			response.BadRequest(c, "Missing data field", "MISSING_DATA")
			return
		}
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			response.BadRequest(c, "Invalid request format", "INVALID_JSON")
			return
		}

		var ok bool
		attachments, ok = h.uploadAttachments(c)
		if !ok {
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request format", "INVALID_JSON")
			return
		}
	}

	report, err := h.service.Create(c.Request.Context(), user, &req, attachments)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, report)
}

func (h *Handler) uploadAttachments(c *gin.Context) ([]Attachment, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form", "INVALID_FORM")
		return nil, false
	}

	files := form.File["attachments"]
	if len(files) == 0 {
		return nil, true
	}
	if len(files) > storage.MaxAttachments {
		response.BadRequest(c, "At most 5 attachments are allowed", "TOO_MANY_ATTACHMENTS")
		return nil, false
	}
	if h.uploader == nil {
		response.Error(c, 503, "Attachment storage is not configured", "STORAGE_UNAVAILABLE")
		return nil, false
	}

	var attachments []Attachment
	for _, header := range files {
		if err := storage.ValidateAttachment(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return nil, false
		}

		file, err := header.Open()
		if err != nil {
			response.InternalServerError(c, "Failed to read attachment", "UPLOAD_FAILED")
			return nil, false
		}

		result, err := h.uploader.Upload(c.Request.Context(), file, header)
		file.Close()
		if err != nil {
			response.InternalServerError(c, "Failed to store attachment", "UPLOAD_FAILED")
			return nil, false
		}

		attachments = append(attachments, Attachment{
			FileName:     result.FileName,
			OriginalName: result.OriginalName,
			MimeType:     result.MimeType,
			Size:         result.Size,
			URL:          result.URL,
		})
	}
	return attachments, true
}

// @Summary List reports visible to the caller
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param urgency query string false "Filter by urgency"
// @Param village query string false "Filter by village"
// @Param incidentType query string false "Filter by incident type"
// @Success 200 {object} response.PaginatedResponse{data=[]ReportView}
// @Router /reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	views, total, err := h.service.List(c.Request.Context(), user, q)
	if err != nil {
		response.InternalServerError(c, "Failed to list reports", "DATABASE_ERROR")
		return
	}

	response.Paginated(c, views, total, q.Limit, q.Page)
}

// @Summary Report statistics for the dashboard
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=Stats}
// @Router /reports/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to compute statistics", "DATABASE_ERROR")
		return
	}
	response.Success(c, stats)
}

// @Summary Read one report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.SuccessResponse{data=ReportView}
// @Router /reports/{id} [get]
func (h *Handler) GetReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	oid, ok := reportID(c)
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), user, oid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, view)
}

// @Summary Classify a report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body ClassifyRequest true "Classification"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Router /reports/{id}/classify [put]
func (h *Handler) ClassifyReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	oid, ok := reportID(c)
	if !ok {
		return
	}

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	report, err := h.service.Classify(c.Request.Context(), user, oid, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// @Summary Assign a report to an analyst
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body AssignRequest true "Assignment"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Router /reports/{id}/assign [put]
func (h *Handler) AssignReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	oid, ok := reportID(c)
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	report, err := h.service.Assign(c.Request.Context(), user, oid, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

func stepNumber(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		response.BadRequest(c, "Invalid step number", "INVALID_STEP")
		return 0, false
	}
	return n, true
}

// @Summary Start a workflow step
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param step path int true "Step number (1-6)"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Router /reports/{id}/steps/{step}/start [put]
func (h *Handler) StartStep(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	oid, ok := reportID(c)
	if !ok {
		return
	}
	n, ok := stepNumber(c)
	if !ok {
		return
	}

	report, err := h.service.StartStep(c.Request.Context(), user, oid, n)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// @Summary Complete a workflow step
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param step path int true "Step number (1-6)"
// @Param request body CompleteStepRequest true "Completion notes"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Router /reports/{id}/steps/{step}/complete [put]
func (h *Handler) CompleteStep(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	oid, ok := reportID(c)
	if !ok {
		return
	}
	n, ok := stepNumber(c)
	if !ok {
		return
	}

	var req CompleteStepRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request format", "INVALID_JSON")
			return
		}
	}

	report, err := h.service.CompleteStep(c.Request.Context(), user, oid, n, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// @Summary Issue the final decision on a report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body DecisionRequest true "Decision"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Router /reports/{id}/decision [put]
func (h *Handler) DecideReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	oid, ok := reportID(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	report, err := h.service.Decide(c.Request.Context(), user, oid, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}
