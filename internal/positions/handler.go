package positions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-match/internal/shared/server/middleware"
	"resume-match/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/positions", h.create)
	rg.GET("/positions", h.list)
	rg.GET("/positions/:id", h.get)
}

type createRequest struct {
	Title        string `json:"title" binding:"required"`
	Company      string `json:"company"`
	Description  string `json:"description" binding:"required"`
	Requirements string `json:"requirements"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "title and description are required", nil)
		return
	}
	position, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), CreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusCreated, position)
}

func (h *Handler) get(c *gin.Context) {
	position, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "position not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load position", nil)
		return
	}
	respond.JSON(c, http.StatusOK, position)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list positions", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"positions": items})
}
