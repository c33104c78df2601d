package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resume-match/internal/analyzer"
	"resume-match/internal/documents"
	"resume-match/internal/llm"
	"resume-match/internal/shared/server/middleware"
	"resume-match/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
	rg.POST("/analyses/:id/improve", h.improve)
	rg.GET("/analyses/:id/latex", h.getLatex)
	rg.PUT("/analyses/:id/latex", h.saveLatex)
	rg.GET("/analyses/:id/download", h.download)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "resume_file is required", nil)
		return
	}
	jobText := c.PostForm("jd_text")
	if jobText == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "jd_text is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, AnalyzeInput{
		FileName:   fileHeader.Filename,
		FileData:   data,
		JobText:    jobText,
		JobTitle:   c.PostForm("jd_title"),
		JobCompany: c.PostForm("jd_company"),
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(analysis))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysis, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load analysis", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(analysis))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list analyses", nil)
		return
	}
	responses := make([]analysisResponse, 0, len(items))
	for _, analysis := range items {
		responses = append(responses, toResponse(analysis))
	}
	respond.JSON(c, http.StatusOK, gin.H{"analyses": responses})
}

func (h *Handler) improve(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysis, err := h.Svc.Improve(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"message":        "resume improved successfully",
		"analysisId":     analysis.ID,
		"latexAvailable": analysis.ImprovedLatex != "",
		"pdfAvailable":   false,
	})
}

func (h *Handler) getLatex(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysis, err := h.Svc.Latex(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoLatex) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "no improved resume available", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load latex", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"analysisId":   analysis.ID,
		"latexContent": analysis.ImprovedLatex,
		"lastUpdated":  analysis.UpdatedAt,
	})
}

type saveLatexRequest struct {
	LatexContent string `json:"latexContent" binding:"required"`
}

func (h *Handler) saveLatex(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var req saveLatexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "latexContent is required", nil)
		return
	}
	if err := h.Svc.SaveLatex(c.Request.Context(), userID, c.Param("id"), req.LatexContent); err != nil {
		respondWorkflowError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "latex saved successfully", "analysisId": c.Param("id")})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysis, err := h.Svc.Latex(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoLatex) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "no improved resume available", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load latex", nil)
		return
	}

	url, signed, err := h.Svc.DownloadURL(c.Request.Context(), analysis, time.Hour)
	if err == nil && signed {
		c.Redirect(http.StatusTemporaryRedirect, url)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="improved_resume.tex"`)
	c.Data(http.StatusOK, "application/x-tex", []byte(analysis.ImprovedLatex))
}

// respondWorkflowError maps workflow failures onto the error taxonomy.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, documents.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
	case errors.Is(err, ErrNoResult):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysis has no match result yet", nil)
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, respond.CodeOracleDown, "analysis service temporarily unavailable", nil)
	case errors.Is(err, analyzer.ErrOracleResponseInvalid):
		respond.Error(c, http.StatusBadGateway, respond.CodeOracleInvalid, "analysis service returned an invalid response", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "analysis failed", nil)
	}
}
