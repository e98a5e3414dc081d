package attachment

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go-fleetops/internal/shared/apperror"
	"go-fleetops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attachment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attachment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attachment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Create accepts a JSON body with base64 content, or a multipart form with
// a "file" part plus the metadata fields.
func (h *Handler) Create(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		h.createFromMultipart(c)
		return
	}

	var req CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("content"))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req, content)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) createFromMultipart(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, apperror.RequiredField("file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, apperror.ErrInternal)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		h.writeServiceError(c, apperror.ErrInternal)
		return
	}

	req := CreateAttachmentRequest{
		EntityType:  c.PostForm("entity_type"),
		EntityID:    c.PostForm("entity_id"),
		Category:    c.PostForm("category"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}
	if req.EntityID == "" {
		h.writeServiceError(c, apperror.RequiredField("entity_id"))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req, content)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter ListAttachmentsFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetContent(c *gin.Context) {
	a, err := h.service.GetContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+a.FileName+`"`)
	c.Data(http.StatusOK, a.ContentType, a.Content)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
