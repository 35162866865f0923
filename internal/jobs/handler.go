package jobs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the job service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.listAvailable)
	rg.GET("/jobs/:jobID", h.get)

	company := rg.Group("/jobs", middleware.RequireRole(middleware.RoleCompany))
	company.POST("", h.create)
	company.GET("/mine/list", h.listMine)
	company.DELETE("/:jobID", h.delete)
}

type questionRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type createRequest struct {
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	RequiredSkills      []string          `json:"requiredSkills"`
	Salary              string            `json:"salary"`
	ApplicationDeadline time.Time         `json:"applicationDeadline"`
	QuizDeadline        time.Time         `json:"quizDeadline"`
	InterviewDeadline   time.Time         `json:"interviewDeadline"`
	QuizRequired        bool              `json:"quizRequired"`
	Published           bool              `json:"published"`
	Questions           []questionRequest `json:"questions"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	questions := make([]InterviewQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, InterviewQuestion{Question: q.Question, Answer: q.Answer})
	}

	email := middleware.EmailFromContext(c)
	job, err := h.Svc.Create(c.Request.Context(), email, CreateInput{
		Title:               req.Title,
		Description:         req.Description,
		RequiredSkills:      req.RequiredSkills,
		Salary:              req.Salary,
		ApplicationDeadline: req.ApplicationDeadline,
		QuizDeadline:        req.QuizDeadline,
		InterviewDeadline:   req.InterviewDeadline,
		QuizRequired:        req.QuizRequired,
		Published:           req.Published,
		Questions:           questions,
	})
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, job)
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), c.Param("jobID"))
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, job)
}

func (h *Handler) listAvailable(c *gin.Context) {
	limit, page := pagination(c)
	list, total, err := h.Svc.ListAvailable(c.Request.Context(), limit, page)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"jobs": list, "total": total})
}

func (h *Handler) listMine(c *gin.Context) {
	limit, page := pagination(c)
	email := middleware.EmailFromContext(c)
	list, total, err := h.Svc.ListByCompany(c.Request.Context(), email, limit, page)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"jobs": list, "total": total})
}

func (h *Handler) delete(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), email, c.Param("jobID")); err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func pagination(c *gin.Context) (limit, page int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	return limit, page
}
