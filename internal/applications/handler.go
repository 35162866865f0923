package applications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the application service. ServiceToken
// guards the callback endpoints the analysis service posts results to.
type Handler struct {
	Svc          *Service
	ServiceToken string
}

func NewHandler(svc *Service, serviceToken string) *Handler {
	return &Handler{Svc: svc, ServiceToken: serviceToken}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	applicant := rg.Group("/applications", middleware.RequireRole(middleware.RoleApplicant))
	applicant.POST("", h.create)
	applicant.GET("", h.listMine)
	applicant.GET("/applied", h.hasApplied)
	applicant.GET("/:applicationID", h.get)
	applicant.POST("/:applicationID/quiz/start", h.startQuiz)
	applicant.POST("/:applicationID/quiz/submit", h.submitQuiz)

	company := rg.Group("/applications/job", middleware.RequireRole(middleware.RoleCompany))
	company.GET("/:jobID", h.listByJob)
	company.GET("/:jobID/finished", h.listFinishedByJob)
	company.GET("/:jobID/count", h.countByJob)

	internal := rg.Group("/internal/applications", middleware.RequireServiceToken(h.ServiceToken))
	internal.POST("/:applicationID/interview-question", h.recordInterviewQuestion)
	internal.PUT("/:applicationID/quiz-cheating", h.recordQuizCheating)
}

type createRequest struct {
	JobID string `json:"jobId"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.JobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobId is required", nil)
		return
	}
	email := middleware.EmailFromContext(c)
	app, err := h.Svc.Create(c.Request.Context(), email, req.JobID)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, app)
}

func (h *Handler) get(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	app, err := h.Svc.Get(c.Request.Context(), email, c.Param("applicationID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, app)
}

func (h *Handler) listMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	email := middleware.EmailFromContext(c)
	list, err := h.Svc.ListMine(c.Request.Context(), email, limit, page)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"applications": list})
}

func (h *Handler) hasApplied(c *gin.Context) {
	jobID := c.Query("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobId is required", nil)
		return
	}
	email := middleware.EmailFromContext(c)
	applied, err := h.Svc.HasApplied(c.Request.Context(), email, jobID)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"applied": applied})
}

func (h *Handler) listByJob(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	list, err := h.Svc.ListByJob(c.Request.Context(), email, c.Param("jobID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"applications": list})
}

func (h *Handler) listFinishedByJob(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	list, err := h.Svc.ListFinishedByJob(c.Request.Context(), email, c.Param("jobID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"applications": list})
}

func (h *Handler) countByJob(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	total, err := h.Svc.CountByJob(c.Request.Context(), email, c.Param("jobID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"count": total})
}

func (h *Handler) startQuiz(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	applicationID := c.Param("applicationID")
	c.Set("applicationId", applicationID)

	session, err := h.Svc.StartQuiz(c.Request.Context(), email, applicationID)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, session)
}

type submitQuizRequest struct {
	Answers []string `json:"answers"`
}

func (h *Handler) submitQuiz(c *gin.Context) {
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	email := middleware.EmailFromContext(c)
	applicationID := c.Param("applicationID")
	c.Set("applicationId", applicationID)

	result, err := h.Svc.SubmitQuiz(c.Request.Context(), email, applicationID, req.Answers)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	c.Set("stageTransition", StageOnlineQuiz+" -> "+result.Status)
	respond.OK(c, result)
}

func (h *Handler) recordInterviewQuestion(c *gin.Context) {
	var in InterviewQuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	applicationID := c.Param("applicationID")
	c.Set("applicationId", applicationID)

	agg, err := h.Svc.RecordInterviewQuestion(c.Request.Context(), applicationID, &in)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, agg)
}

// quizCheatingRequest binds the scalars through pointers so a payload
// missing one of them is rejected instead of zeroing the stored value.
type quizCheatingRequest struct {
	EyeCheating               *float64    `json:"quizEyeCheating"`
	FaceSpeechCheating        *float64    `json:"quizFaceSpeechCheating"`
	EyeCheatingDurations      [][]float64 `json:"quizEyeCheatingDurations"`
	SpeakingCheatingDurations [][]float64 `json:"quizSpeakingCheatingDurations"`
}

func (h *Handler) recordQuizCheating(c *gin.Context) {
	var req quizCheatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.EyeCheating == nil || req.FaceSpeechCheating == nil ||
		req.EyeCheatingDurations == nil || req.SpeakingCheatingDurations == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "all cheating fields are required", nil)
		return
	}
	applicationID := c.Param("applicationID")
	c.Set("applicationId", applicationID)

	cheating := QuizCheating{
		EyeCheating:               *req.EyeCheating,
		FaceSpeechCheating:        *req.FaceSpeechCheating,
		EyeCheatingDurations:      req.EyeCheatingDurations,
		SpeakingCheatingDurations: req.SpeakingCheatingDurations,
	}
	if err := h.Svc.RecordQuizCheating(c.Request.Context(), applicationID, cheating); err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"recorded": true})
}
