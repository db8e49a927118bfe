package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"grcdesk-backend/models"
	"grcdesk-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles HTTP requests for ethics reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReportRequest represents the request body for creating an ethics report
type CreateReportRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Category      string  `json:"category"`
	Severity      string  `json:"severity"`
	ReporterName  *string `json:"reporter_name"`
	ReporterEmail *string `json:"reporter_email"`
	Anonymous     bool    `json:"anonymous"`
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	serviceReq := service.CreateReportRequest{
		TenantID:      tenant,
		Title:         req.Title,
		Description:   req.Description,
		Category:      models.ReportCategory(req.Category),
		Severity:      models.ReportSeverity(req.Severity),
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		Anonymous:     req.Anonymous,
	}

	result, err := h.reportService.CreateReport(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// GetReport handles GET /api/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid report ID format",
			},
		})
		return
	}

	result, err := h.reportService.GetReport(c.Request.Context(), service.GetReportRequest{
		TenantID: tenant,
		ID:       id,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Report not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	var status *models.ReportStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ReportStatus(raw)
		status = &s
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.reportService.ListReports(c.Request.Context(), service.ListReportsRequest{
		TenantID: tenantScope(c),
		Status:   status,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Reports,
	})
}

// TransitionReportRequest represents the request body for a status change
type TransitionReportRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionReport handles PUT /api/reports/:id/status
func (h *ReportHandler) TransitionReport(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid report ID format",
			},
		})
		return
	}

	var req TransitionReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.reportService.TransitionReport(c.Request.Context(), service.TransitionReportRequest{
		TenantID: tenant,
		ID:       id,
		To:       models.ReportStatus(req.Status),
	})
	if err != nil {
		var invalid *service.InvalidTransitionError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": invalid.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRANSITION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// AssignReportRequest represents the request body for assigning a report
type AssignReportRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required"`
}

// AssignReport handles PUT /api/reports/:id/assign
func (h *ReportHandler) AssignReport(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid report ID format",
			},
		})
		return
	}

	var req AssignReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	assignee, err := uuid.Parse(req.AssignedTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid assigned_to format",
			},
		})
		return
	}

	result, err := h.reportService.AssignReport(c.Request.Context(), service.AssignReportRequest{
		TenantID:   tenant,
		ID:         id,
		AssignedTo: assignee,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ASSIGN_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// SavePlanRequest represents the request body for an investigation plan
type SavePlanRequest struct {
	Summary string `json:"summary"`
	Steps   []struct {
		Name  string     `json:"name" binding:"required"`
		Owner string     `json:"owner"`
		Due   *time.Time `json:"due"`
	} `json:"steps" binding:"required"`
}

// SavePlan handles POST /api/reports/:id/plan
func (h *ReportHandler) SavePlan(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid report ID format",
			},
		})
		return
	}

	var req SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	steps := make(models.PlanSteps, 0, len(req.Steps))
	for _, s := range req.Steps {
		steps = append(steps, models.PlanStep{
			Name:   s.Name,
			Status: "pending",
			Owner:  s.Owner,
			Due:    s.Due,
		})
	}

	result, err := h.reportService.SavePlan(c.Request.Context(), service.SavePlanRequest{
		TenantID: tenant,
		ReportID: reportID,
		Summary:  req.Summary,
		Steps:    steps,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PLAN_SAVE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Plan,
	})
}

// UpdatePlanStepsRequest represents the request body for updating plan steps
type UpdatePlanStepsRequest struct {
	Steps []models.PlanStep `json:"steps" binding:"required"`
}

// UpdatePlanSteps handles PUT /api/plans/:id/steps
func (h *ReportHandler) UpdatePlanSteps(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid plan ID format",
			},
		})
		return
	}

	var req UpdatePlanStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.reportService.UpdatePlanSteps(c.Request.Context(), service.UpdatePlanStepsRequest{
		TenantID: tenant,
		PlanID:   planID,
		Steps:    req.Steps,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PLAN_UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Plan,
	})
}

// CreateActionRequest represents the request body for a corrective action
type CreateActionRequest struct {
	Description string    `json:"description" binding:"required"`
	Owner       string    `json:"owner" binding:"required"`
	DueAt       time.Time `json:"due_at" binding:"required"`
}

// CreateAction handles POST /api/reports/:id/actions
func (h *ReportHandler) CreateAction(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid report ID format",
			},
		})
		return
	}

	var req CreateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.reportService.CreateAction(c.Request.Context(), service.CreateActionRequest{
		TenantID:    tenant,
		ReportID:    reportID,
		Description: req.Description,
		Owner:       req.Owner,
		DueAt:       req.DueAt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACTION_CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Action,
	})
}

// CompleteAction handles PUT /api/actions/:id/complete
func (h *ReportHandler) CompleteAction(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid action ID format",
			},
		})
		return
	}

	result, err := h.reportService.CompleteAction(c.Request.Context(), service.CompleteActionRequest{
		TenantID: tenant,
		ID:       id,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACTION_COMPLETE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Action,
	})
}

// NotifyRegulatorRequest represents the request body for a regulatory notification
type NotifyRegulatorRequest struct {
	Authority  string    `json:"authority" binding:"required"`
	Reference  *string   `json:"reference"`
	NotifiedAt time.Time `json:"notified_at"`
	Notes      *string   `json:"notes"`
}

// NotifyRegulator handles POST /api/reports/:id/notifications
func (h *ReportHandler) NotifyRegulator(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid report ID format",
			},
		})
		return
	}

	var req NotifyRegulatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.reportService.NotifyRegulator(c.Request.Context(), service.NotifyRegulatorRequest{
		TenantID:   tenant,
		ReportID:   reportID,
		Authority:  req.Authority,
		Reference:  req.Reference,
		NotifiedAt: req.NotifiedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOTIFICATION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Notification,
	})
}
