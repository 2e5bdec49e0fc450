package photo

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"portfolio/internal/pkg/response"
	"portfolio/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	photos := r.Group("/photos")
	{
		photos.POST("", h.Upload)
		photos.GET("", h.List)
		photos.GET("/stats", h.Stats)
		photos.GET("/:id", h.GetByID)
		photos.PUT("/:id", h.Update)
		photos.DELETE("/:id", h.Delete)
	}
}

// Upload handles POST /api/v1/photos (multipart form).
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "no file provided")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "could not open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "could not read uploaded file")
		return
	}

	record, err := h.service.Upload(c.Request.Context(), UploadInput{
		Data:     data,
		Filename: fileHeader.Filename,
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
		Comment:  c.PostForm("comment"),
		Tags:     c.PostForm("tags"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, record)
}

// List handles GET /api/v1/photos with optional category filter and
// offset/limit pagination.
func (h *Handler) List(c *gin.Context) {
	category := c.Query("category")

	offset := 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	list, err := h.service.List(c.Request.Context(), category, offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}

// GetByID handles GET /api/v1/photos/:id.
func (h *Handler) GetByID(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// Update handles PUT /api/v1/photos/:id with any subset of the
// mutable fields.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", fields)
		return
	}

	record, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// Delete handles DELETE /api/v1/photos/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Stats handles GET /api/v1/photos/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "INVALID_INPUT", err.Error())
	case errors.Is(err, ErrUnreadableImage):
		response.Error(c, http.StatusBadRequest, "UNPARSEABLE_IMAGE", err.Error())
	case errors.Is(err, ErrTranscodeFailed):
		response.Error(c, http.StatusUnprocessableEntity, "TRANSCODE_FAILURE", err.Error())
	case errors.Is(err, ErrPhotoNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrPersistFailed):
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_FAILURE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "unexpected error")
	}
}
