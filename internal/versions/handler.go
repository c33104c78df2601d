package versions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-match/internal/shared/server/middleware"
	"resume-match/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches version routes under the analysis resource.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses/:id/versions", h.create)
	rg.GET("/analyses/:id/versions", h.list)
	rg.GET("/analyses/:id/versions/:versionId", h.get)
	rg.PATCH("/analyses/:id/versions/:versionId", h.updateDescription)
	rg.DELETE("/analyses/:id/versions/:versionId", h.remove)
}

type createVersionRequest struct {
	Description  string `json:"description"`
	LatexContent string `json:"latexContent"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	// Body is optional; an empty body snapshots the current improved latex.
	var req createVersionRequest
	_ = c.ShouldBindJSON(&req)

	version, err := h.Svc.Create(c.Request.Context(), userID, c.Param("id"), CreateInput{
		Description:  req.Description,
		LatexContent: req.LatexContent,
	})
	if err != nil {
		respondVersionError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(version, false))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	items, err := h.Svc.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondVersionError(c, err)
		return
	}
	responses := make([]versionResponse, 0, len(items))
	for _, version := range items {
		responses = append(responses, toResponse(version, false))
	}
	respond.JSON(c, http.StatusOK, gin.H{"versions": responses})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	version, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"), c.Param("versionId"))
	if err != nil {
		respondVersionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(version, true))
}

type updateVersionRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *Handler) updateDescription(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var req updateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "description is required", nil)
		return
	}
	if err := h.Svc.UpdateDescription(c.Request.Context(), userID, c.Param("id"), c.Param("versionId"), req.Description); err != nil {
		respondVersionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "version updated", "versionId": c.Param("versionId")})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id"), c.Param("versionId")); err != nil {
		respondVersionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "version deleted", "versionId": c.Param("versionId")})
}

func respondVersionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "version not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "version operation failed", nil)
	}
}
