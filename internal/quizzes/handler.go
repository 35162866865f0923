package quizzes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the quiz service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches quiz routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	company := rg.Group("/jobs/:jobID/quiz", middleware.RequireRole(middleware.RoleCompany))
	company.POST("", h.addQuiz)
	company.GET("", h.getQuiz)
	company.DELETE("", h.removeQuiz)
}

type addQuizRequest struct {
	Questions       []Question `json:"questions"`
	PassRatio       float64    `json:"passRatio"`
	DurationMinutes int        `json:"quizDurationInMinutes"`
}

func (h *Handler) addQuiz(c *gin.Context) {
	var req addQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	email := middleware.EmailFromContext(c)
	quiz, err := h.Svc.AddQuiz(c.Request.Context(), email, c.Param("jobID"), req.Questions, req.PassRatio, req.DurationMinutes)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, quiz)
}

func (h *Handler) getQuiz(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	if _, err := h.Svc.Jobs.RequireOwned(c.Request.Context(), email, c.Param("jobID")); err != nil {
		respond.AppError(c, err)
		return
	}
	quiz, err := h.Svc.GetByJob(c.Request.Context(), c.Param("jobID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, quiz)
}

func (h *Handler) removeQuiz(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	if err := h.Svc.Remove(c.Request.Context(), email, c.Param("jobID")); err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
