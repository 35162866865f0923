package analysis

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

// Handler wires the analysis proxy routes.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group. All routes
// act on the caller's own application.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	applicant := rg.Group("/applications/:applicationID", middleware.RequireRole(middleware.RoleApplicant))
	applicant.POST("/quiz/calibration", h.quizCalibration)
	applicant.POST("/quiz/calibration/:corner", h.quizCalibration)
	applicant.POST("/quiz/stream", h.startQuizStream)
	applicant.POST("/interview/calibration", h.interviewCalibration)
	applicant.POST("/interview/stream", h.startInterviewStream)
	applicant.POST("/interview/questions-socket", h.generateQuestionsSocket)
}

func (h *Handler) quizCalibration(c *gin.Context) {
	var in CalibrationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	email := middleware.EmailFromContext(c)
	raw, err := h.Svc.QuizCalibration(c.Request.Context(), email, c.Param("applicationID"), c.Param("corner"), in)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) interviewCalibration(c *gin.Context) {
	var in CalibrationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	email := middleware.EmailFromContext(c)
	raw, err := h.Svc.InterviewCalibration(c.Request.Context(), email, c.Param("applicationID"), in)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) startQuizStream(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	raw, err := h.Svc.StartQuizStream(c.Request.Context(), email, c.Param("applicationID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) startInterviewStream(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	applicationID := c.Param("applicationID")
	c.Set("applicationId", applicationID)

	raw, err := h.Svc.StartInterviewStream(c.Request.Context(), email, applicationID)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	c.Set("stageTransition", "Online Interview -> Final Result")
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) generateQuestionsSocket(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	raw, err := h.Svc.GenerateQuestionsSocket(c.Request.Context(), email, c.Param("applicationID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
