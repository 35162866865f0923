package accounts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the account service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches account routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/accounts/register", h.register)
	rg.POST("/accounts/login", h.login)
	rg.GET("/me", middleware.RequireAuth(), h.me)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email, password and role are required", nil)
		return
	}

	account, token, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.Role, req.Name)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, sessionResponse{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		Token:     token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	account, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, sessionResponse{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		Token:     token,
	})
}

func (h *Handler) me(c *gin.Context) {
	respond.OK(c, gin.H{
		"accountId": middleware.AccountIDFromContext(c),
		"email":     middleware.EmailFromContext(c),
		"role":      middleware.RoleFromContext(c),
	})
}
