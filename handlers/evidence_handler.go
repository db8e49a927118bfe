package handlers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"grcdesk-backend/models"
	"grcdesk-backend/repository"
	"grcdesk-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EvidenceHandler handles HTTP requests for ethics report evidence files
type EvidenceHandler struct {
	evidenceRepo     *repository.EvidenceRepository
	reportRepo       *repository.EthicsReportRepository
	storage          storage.Storage
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewEvidenceHandler creates a new evidence handler
func NewEvidenceHandler(evidenceRepo *repository.EvidenceRepository, reportRepo *repository.EthicsReportRepository, storage storage.Storage) *EvidenceHandler {
	return &EvidenceHandler{
		evidenceRepo: evidenceRepo,
		reportRepo:   reportRepo,
		storage:      storage,
		maxFileSize:  10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"application/pdf":    true,
			"text/plain":         true,
			"application/rtf":    true,
			"text/csv":           true,
			"image/png":          true,
			"image/jpeg":         true,
			"message/rfc822":     true,
			"application/msword": true, // .doc
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // .docx
		},
	}
}

// UploadEvidence handles POST /api/reports/:id/evidence
func (h *EvidenceHandler) UploadEvidence(c *gin.Context) {
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

	// Evidence only attaches to reports that exist in the same tenant
	if _, err := h.reportRepo.GetByID(c.Request.Context(), tenant, reportID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_NOT_FOUND",
				"message": "Report not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
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

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = inferMimeType(fileHeader.Filename)
	}

	if !h.allowedMimeTypes[mimeType] && !strings.HasPrefix(mimeType, "text/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "File type not allowed",
			},
		})
		return
	}

	// Read once: the hash and the stored bytes must refer to the same content
	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
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
	if int64(len(data)) > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	digest := sha256.Sum256(data)

	evidenceID := uuid.New()
	storagePath, err := h.storage.Upload(c.Request.Context(), evidenceID, fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": fmt.Sprintf("Failed to upload file: %v", err),
			},
		})
		return
	}

	actor := c.PostForm("actor")
	if actor == "" {
		actor = "unknown"
	}

	evidence := &models.EthicsEvidence{
		ID:          evidenceID,
		TenantID:    tenant,
		ReportID:    reportID,
		Filename:    fileHeader.Filename,
		MimeType:    mimeType,
		Size:        int64(len(data)),
		StoragePath: storagePath,
		SHA256:      hex.EncodeToString(digest[:]),
		CustodyChain: models.CustodyChain{
			{Actor: actor, Action: "collected", At: time.Now(), Note: "uploaded via API"},
		},
	}

	if err := h.evidenceRepo.Create(c.Request.Context(), evidence); err != nil {
		h.storage.Delete(c.Request.Context(), storagePath)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to save evidence record: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    evidence,
	})
}

// ListEvidence handles GET /api/reports/:id/evidence
func (h *EvidenceHandler) ListEvidence(c *gin.Context) {
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

	evidence, err := h.evidenceRepo.ListByReportID(c.Request.Context(), tenant, reportID)
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
		"data":    evidence,
	})
}

// DownloadEvidence handles GET /api/evidence/:id
//
// Every download appends an "accessed" entry to the custody chain before the
// bytes are returned.
func (h *EvidenceHandler) DownloadEvidence(c *gin.Context) {
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
				"message": "Invalid evidence ID format",
			},
		})
		return
	}

	evidence, err := h.evidenceRepo.GetByID(c.Request.Context(), tenant, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Evidence not found",
			},
		})
		return
	}

	actor := c.Query("actor")
	if actor == "" {
		actor = "unknown"
	}

	chain := append(evidence.CustodyChain, models.CustodyEntry{
		Actor:  actor,
		Action: "accessed",
		At:     time.Now(),
		Note:   "downloaded via API",
	})
	if err := h.evidenceRepo.UpdateCustodyChain(c.Request.Context(), tenant, id, chain); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTODY_UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), evidence.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download file: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", evidence.MimeType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", evidence.Filename))
	c.DataFromReader(http.StatusOK, evidence.Size, evidence.MimeType, reader, nil)
}

// inferMimeType guesses the content type from a filename extension
func inferMimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".txt"):
		return "text/plain"
	case strings.HasSuffix(lower, ".rtf"):
		return "application/rtf"
	case strings.HasSuffix(lower, ".csv"):
		return "text/csv"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".eml"):
		return "message/rfc822"
	case strings.HasSuffix(lower, ".doc"):
		return "application/msword"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
