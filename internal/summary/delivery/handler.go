package delivery

import (
	"errors"
	"fmt"
	"net/http"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/internal/summary/dto"
	"meeting-notes-backend/internal/summary/usecase"
	"meeting-notes-backend/pkg/apperror"
	"meeting-notes-backend/pkg/docexport"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SummaryHandler serves the transcript, summary and share endpoints.
type SummaryHandler struct {
	summaryUsecase usecase.SummaryUsecase
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryUsecase usecase.SummaryUsecase, maxUploadBytes int64, logger zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// RegisterRoutes mounts the handlers on g.
func (h *SummaryHandler) RegisterRoutes(g gin.IRoutes) {
	g.POST("/parse-file", h.ParseFile)
	g.POST("/generate-summary", h.GenerateSummary)
	g.POST("/share-summary", h.ShareSummary)
}

// RegisterSummaryRoutes mounts the record endpoints on g.
func (h *SummaryHandler) RegisterSummaryRoutes(g gin.IRoutes) {
	g.GET("/summaries/:id", h.GetSummary)
	g.GET("/summaries/:id/export", h.ExportSummary)
}

// POST /parse-file
// multipart form, field "file"
func (h *SummaryHandler) ParseFile(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File is too large. Maximum size is %d bytes.", h.maxUploadBytes)})
			return
		}
		h.writeError(c, apperror.NoFileProvided())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeError(c, apperror.Internal("Failed to read uploaded file", err))
		return
	}
	defer file.Close()

	res, err := h.summaryUsecase.ParseFile(file, fileHeader.Filename)
	if err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("parse file failed")
			c.JSON(appErr.Status, gin.H{"error": "Failed to parse file: " + appErr.Message})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ParseFileResponse{
		Text:     res.Text,
		Filename: res.Filename,
		FileType: string(res.FileType),
		Length:   res.Length,
	})
}

// POST /generate-summary
func (h *SummaryHandler) GenerateSummary(c *gin.Context) {
	var req dto.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.InvalidRequest("Transcript and custom prompt are required"))
		return
	}

	res, err := h.summaryUsecase.GenerateSummary(c.Request.Context(), req.Transcript, req.CustomPrompt)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateSummaryResponse{
		Summary:   res.Summary.GeneratedSummary,
		SummaryID: res.Summary.ID,
		Warning:   res.Warning,
	})
}

// POST /share-summary
func (h *SummaryHandler) ShareSummary(c *gin.Context) {
	var req dto.ShareSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.InvalidRequest("Summary ID and email addresses are required"))
		return
	}

	if _, err := h.summaryUsecase.ShareSummary(c.Request.Context(), req.SummaryID, req.Emails, req.Summary); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareSummaryResponse{
		Success: true,
		Message: "Summary shared successfully",
	})
}

// GET /api/summaries/:id
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	s, err := h.summaryUsecase.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(s))
}

// GET /api/summaries/:id/export
func (h *SummaryHandler) ExportSummary(c *gin.Context) {
	id := c.Param("id")
	data, err := h.summaryUsecase.ExportSummary(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="meeting-summary-%s.docx"`, id))
	c.Data(http.StatusOK, docexport.ContentType, data)
}

func (h *SummaryHandler) writeError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("code", string(appErr.Code)).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}

func toSummaryResponse(s *domain.Summary) dto.SummaryResponse {
	emails := []string(s.EmailsSent)
	if emails == nil {
		emails = []string{}
	}
	return dto.SummaryResponse{
		ID:                 s.ID,
		OriginalTranscript: s.OriginalTranscript,
		CustomPrompt:       s.CustomPrompt,
		GeneratedSummary:   s.GeneratedSummary,
		EditedSummary:      s.EditedSummary,
		EmailsSent:         emails,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
