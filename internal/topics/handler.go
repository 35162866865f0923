package topics

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the topic service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches topic routes to the router group. Names are
// public, full question banks are for companies, and curation is for
// admins.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/topics/names", h.listNames)

	company := rg.Group("/topics", middleware.RequireRole(middleware.RoleCompany))
	company.GET("", h.getByNames)

	admin := rg.Group("/topics", middleware.RequireRole(middleware.RoleAdmin))
	admin.POST("", h.add)
	admin.DELETE("/:name", h.remove)
}

func (h *Handler) listNames(c *gin.Context) {
	names, err := h.Svc.ListNames(c.Request.Context())
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"names": names})
}

func (h *Handler) getByNames(c *gin.Context) {
	raw := c.Query("names")
	if strings.TrimSpace(raw) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "names parameter is required", nil)
		return
	}
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	list, err := h.Svc.GetByNames(c.Request.Context(), names)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"topics": list})
}

type addTopicRequest struct {
	Name      string          `json:"name"`
	Questions []TopicQuestion `json:"questions"`
}

func (h *Handler) add(c *gin.Context) {
	var req addTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	topic, err := h.Svc.Add(c.Request.Context(), req.Name, req.Questions)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, topic)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Remove(c.Request.Context(), c.Param("name")); err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
