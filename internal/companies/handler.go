package companies

import (
	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the company service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches company routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	company := rg.Group("/companies", middleware.RequireRole(middleware.RoleCompany))
	company.GET("/me", h.me)
}

func (h *Handler) me(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	company, err := h.Svc.Repo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, company)
}
