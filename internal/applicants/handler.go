package applicants

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
)

const maxResumeBytes = 10 << 20

// Handler wires HTTP handlers to the applicant service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches applicant routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	applicant := rg.Group("/applicants", middleware.RequireRole(middleware.RoleApplicant))
	applicant.GET("/me", h.me)
	applicant.PUT("/me/skills", h.updateSkills)
	applicant.POST("/me/resume", h.uploadResume)
}

func (h *Handler) me(c *gin.Context) {
	email := middleware.EmailFromContext(c)
	applicant, err := h.Svc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, applicant)
}

type skillsRequest struct {
	Skills []string `json:"skills"`
}

func (h *Handler) updateSkills(c *gin.Context) {
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	email := middleware.EmailFromContext(c)
	if err := h.Svc.UpdateSkills(c.Request.Context(), email, req.Skills); err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"updated": true})
}

func (h *Handler) uploadResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file could not be read", nil)
		return
	}
	if len(data) > maxResumeBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file too large", nil)
		return
	}

	email := middleware.EmailFromContext(c)
	mimeType := header.Header.Get("Content-Type")
	if err := h.Svc.UploadResume(c.Request.Context(), email, data, mimeType, header.Filename); err != nil {
		respond.AppError(c, err)
		return
	}
	respond.OK(c, gin.H{"uploaded": true})
}
