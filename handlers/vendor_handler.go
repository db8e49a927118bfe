package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"grcdesk-backend/models"
	"grcdesk-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VendorHandler handles HTTP requests for vendor onboarding
type VendorHandler struct {
	vendorService *service.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// RegisterVendorRequest represents the request body for registering a vendor
type RegisterVendorRequest struct {
	LegalName    string  `json:"legal_name" binding:"required"`
	TradeName    *string `json:"trade_name"`
	TaxID        string  `json:"tax_id"`
	ContactName  string  `json:"contact_name"`
	ContactEmail string  `json:"contact_email"`
	Category     *string `json:"category"`
}

// RegisterVendor handles POST /api/vendors
func (h *VendorHandler) RegisterVendor(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	var req RegisterVendorRequest
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

	result, err := h.vendorService.RegisterVendor(c.Request.Context(), service.RegisterVendorRequest{
		TenantID:     tenant,
		LegalName:    req.LegalName,
		TradeName:    req.TradeName,
		TaxID:        req.TaxID,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Category:     req.Category,
	})
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
		"data":    result.Vendor,
	})
}

// GetVendor handles GET /api/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
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
				"message": "Invalid vendor ID format",
			},
		})
		return
	}

	result, err := h.vendorService.GetVendor(c.Request.Context(), service.GetVendorRequest{
		TenantID: tenant,
		ID:       id,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Vendor not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Vendor,
	})
}

// ListVendors handles GET /api/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
	var status *models.VendorStatus
	if raw := c.Query("status"); raw != "" {
		s := models.VendorStatus(raw)
		status = &s
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.vendorService.ListVendors(c.Request.Context(), service.ListVendorsRequest{
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
		"data":    result.Vendors,
	})
}

// NextStep handles POST /api/vendors/:id/next-step
func (h *VendorHandler) NextStep(c *gin.Context) {
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
				"message": "Invalid vendor ID format",
			},
		})
		return
	}

	result, err := h.vendorService.NextStep(c.Request.Context(), service.NextStepRequest{
		TenantID: tenant,
		VendorID: id,
	})
	if err != nil {
		var blocked *service.StepBlockedError
		if errors.As(err, &blocked) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STEP_BLOCKED",
					"message": blocked.Reason,
					"step":    blocked.Step,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STEP_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Vendor,
	})
}

// GoToStepRequest represents the request body for direct step navigation
type GoToStepRequest struct {
	Step string `json:"step" binding:"required"`
}

// GoToStep handles POST /api/vendors/:id/goto-step
func (h *VendorHandler) GoToStep(c *gin.Context) {
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
				"message": "Invalid vendor ID format",
			},
		})
		return
	}

	var req GoToStepRequest
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

	result, err := h.vendorService.GoToStep(c.Request.Context(), service.GoToStepRequest{
		TenantID: tenant,
		VendorID: id,
		Step:     models.OnboardingStep(req.Step),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STEP_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Vendor,
	})
}

// CompleteAssessmentRequest represents the request body for a risk assessment
type CompleteAssessmentRequest struct {
	RiskScore int    `json:"risk_score" binding:"min=0,max=100"`
	RiskLevel string `json:"risk_level" binding:"required"`
}

// CompleteAssessment handles PUT /api/vendors/:id/assessment
func (h *VendorHandler) CompleteAssessment(c *gin.Context) {
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
				"message": "Invalid vendor ID format",
			},
		})
		return
	}

	var req CompleteAssessmentRequest
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

	result, err := h.vendorService.CompleteAssessment(c.Request.Context(), service.CompleteAssessmentRequest{
		TenantID:  tenant,
		VendorID:  id,
		RiskScore: req.RiskScore,
		RiskLevel: models.RiskLevel(req.RiskLevel),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ASSESSMENT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Vendor,
	})
}

// SkipContractReview handles POST /api/vendors/:id/skip-contract-review
func (h *VendorHandler) SkipContractReview(c *gin.Context) {
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
				"message": "Invalid vendor ID format",
			},
		})
		return
	}

	result, err := h.vendorService.SkipContractReview(c.Request.Context(), service.SkipContractReviewRequest{
		TenantID: tenant,
		VendorID: id,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SKIP_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Vendor,
	})
}

// RespondChecklistRequest represents the request body for a checklist answer
type RespondChecklistRequest struct {
	Status        string `json:"status" binding:"required"`
	Justification string `json:"justification"`
}

// RespondChecklist handles PUT /api/vendors/:id/checklist/:item
func (h *VendorHandler) RespondChecklist(c *gin.Context) {
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
				"message": "Invalid vendor ID format",
			},
		})
		return
	}

	var req RespondChecklistRequest
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

	result, err := h.vendorService.RespondChecklist(c.Request.Context(), service.RespondChecklistRequest{
		TenantID:      tenant,
		VendorID:      id,
		ItemID:        c.Param("item"),
		Status:        models.ComplianceStatus(req.Status),
		Justification: req.Justification,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CHECKLIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"response": result.Response,
			"progress": result.Progress,
		},
	})
}

// ListChecklist handles GET /api/vendors/:id/checklist
func (h *VendorHandler) ListChecklist(c *gin.Context) {
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
				"message": "Invalid vendor ID format",
			},
		})
		return
	}

	result, err := h.vendorService.ListChecklist(c.Request.Context(), service.ListChecklistRequest{
		TenantID: tenant,
		VendorID: id,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CHECKLIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"template":  result.Template,
			"responses": result.Responses,
			"progress":  result.Progress,
		},
	})
}
