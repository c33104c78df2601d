package feedback

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

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.submit)
}

type submitRequest struct {
	Rating   int    `json:"rating" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Category string `json:"category"`
	Email    string `json:"email"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "rating and message are required", nil)
		return
	}

	// Anonymous submissions carry no user ID.
	userID := middleware.UserIDFromContext(c)
	entry, err := h.Svc.Submit(c.Request.Context(), userID, SubmitInput{
		Rating:   req.Rating,
		Message:  req.Message,
		Category: req.Category,
		Email:    req.Email,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to store feedback", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, entry)
}
