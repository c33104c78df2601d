package users

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
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.GET("/me", h.me)
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	FullName string `json:"fullName"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "email, username and password are required", nil)
		return
	}
	user, token, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, respond.CodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"user":  publicUser(user),
		"token": token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "email and password are required", nil)
		return
	}
	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "login failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"user":  publicUser(user),
		"token": token,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, publicUser(user))
}

func publicUser(user User) gin.H {
	return gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"username":  user.Username,
		"fullName":  user.FullName,
		"createdAt": user.CreatedAt,
	}
}
