package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"grcdesk-backend/docgen"
	"grcdesk-backend/extract"
	"grcdesk-backend/models"
	"grcdesk-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxContractFileSize = 10 * 1024 * 1024 // 10MB

// AnalysisHandler handles HTTP requests for contract analyses
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// RunAnalysisRequest represents the JSON request body for a text analysis
type RunAnalysisRequest struct {
	Text     string  `json:"text"`
	VendorID *string `json:"vendor_id"`
	Filename *string `json:"filename"`
}

// RunAnalysis handles POST /api/analyses. Accepts either a JSON body with
// pasted contract text or a multipart upload with a contract file; uploaded
// files go through best-effort text extraction first.
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	var text string
	var filename *string
	var vendorID *uuid.UUID

	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > maxContractFileSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_TOO_LARGE",
					"message": fmt.Sprintf("File size exceeds maximum of %d bytes", int64(maxContractFileSize)),
				},
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_OPEN_ERROR",
					"message": err.Error(),
				},
			})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_READ_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		extracted, err := extract.Text(fileHeader.Filename, data)
		if err != nil {
			if errors.Is(err, extract.ErrNeedsManualPaste) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "MANUAL_PASTE_REQUIRED",
						"message": "Could not extract text from this file format. Paste the contract text instead.",
					},
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXTRACTION_FAILED",
					"message": err.Error(),
				},
			})
			return
		}

		text = extracted
		name := fileHeader.Filename
		filename = &name

		if raw := c.PostForm("vendor_id"); raw != "" {
			vid, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INVALID_VENDOR_ID",
						"message": "Invalid vendor_id format",
					},
				})
				return
			}
			vendorID = &vid
		}
	} else {
		var req RunAnalysisRequest
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

		if req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TEXT",
					"message": "Either a file upload or contract text is required",
				},
			})
			return
		}

		text = req.Text
		filename = req.Filename

		if req.VendorID != nil {
			vid, err := uuid.Parse(*req.VendorID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INVALID_VENDOR_ID",
						"message": "Invalid vendor_id format",
					},
				})
				return
			}
			vendorID = &vid
		}
	}

	result, err := h.analysisService.RunAnalysis(c.Request.Context(), service.RunAnalysisRequest{
		TenantID: tenant,
		VendorID: vendorID,
		Filename: filename,
		Text:     text,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// GetAnalysis handles GET /api/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
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
				"message": "Invalid analysis ID format",
			},
		})
		return
	}

	result, err := h.analysisService.GetAnalysis(c.Request.Context(), service.GetAnalysisRequest{
		TenantID: tenant,
		ID:       id,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Analysis not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// ListPoints handles GET /api/analysis-points
func (h *AnalysisHandler) ListPoints(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	result, err := h.analysisService.ListPoints(c.Request.Context(), service.ListPointsRequest{
		TenantID: tenant,
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
		"data":    result.Points,
	})
}

// CreatePointRequest represents the request body for creating an analysis point
type CreatePointRequest struct {
	Category    string   `json:"category"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Weight      int      `json:"weight" binding:"required,min=1,max=10"`
	Enabled     bool     `json:"enabled"`
	Keywords    []string `json:"keywords"`
}

// CreatePoint handles POST /api/analysis-points
func (h *AnalysisHandler) CreatePoint(c *gin.Context) {
	tenant, ok := requireTenant(c)
	if !ok {
		return
	}

	var req CreatePointRequest
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

	result, err := h.analysisService.CreatePoint(c.Request.Context(), service.CreatePointRequest{
		TenantID:    tenant,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Weight:      req.Weight,
		Enabled:     req.Enabled,
		Keywords:    req.Keywords,
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
		"data":    result.Point,
	})
}

// UpdatePointRequest represents the request body for updating an analysis point
type UpdatePointRequest struct {
	Category    *string   `json:"category"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Weight      *int      `json:"weight"`
	Enabled     *bool     `json:"enabled"`
	Keywords    *[]string `json:"keywords"`
}

// UpdatePoint handles PUT /api/analysis-points/:id
func (h *AnalysisHandler) UpdatePoint(c *gin.Context) {
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
				"message": "Invalid point ID format",
			},
		})
		return
	}

	var req UpdatePointRequest
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

	// Load the current rubric entry to apply a partial update
	listResult, err := h.analysisService.ListPoints(c.Request.Context(), service.ListPointsRequest{TenantID: tenant})
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

	var point *models.AnalysisPoint
	for i := range listResult.Points {
		if listResult.Points[i].ID == id {
			point = &listResult.Points[i]
			break
		}
	}
	if point == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Analysis point not found",
			},
		})
		return
	}

	if req.Category != nil {
		point.Category = *req.Category
	}
	if req.Title != nil {
		point.Title = *req.Title
	}
	if req.Description != nil {
		point.Description = *req.Description
	}
	if req.Weight != nil {
		point.Weight = *req.Weight
	}
	if req.Enabled != nil {
		point.Enabled = *req.Enabled
	}
	if req.Keywords != nil {
		point.Keywords = *req.Keywords
	}

	result, err := h.analysisService.UpdatePoint(c.Request.Context(), service.UpdatePointRequest{Point: point})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Point,
	})
}

// GetManual handles GET /api/manual, serving the static compliance manual PDF
func (h *AnalysisHandler) GetManual(c *gin.Context) {
	buf, err := docgen.ComplianceManual()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MANUAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="manual-de-conformidade.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
