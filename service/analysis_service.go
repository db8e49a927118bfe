package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"grcdesk-backend/ai"
	"grcdesk-backend/analysis"
	"grcdesk-backend/models"
	"grcdesk-backend/repository"

	"github.com/google/uuid"
)

const heuristicProviderName = "heuristic"

// AnalysisService orchestrates contract analysis runs
type AnalysisService struct {
	analysisRepo *repository.AnalysisRepository
	vendorRepo   *repository.VendorRepository
	provider     ai.Provider
	config       analysis.Config
	instructions string
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithAnalysisRepository sets the analysis repository
func WithAnalysisRepository(repo *repository.AnalysisRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.analysisRepo = repo
	}
}

// WithAnalysisVendorRepository sets the vendor repository used to flag
// contract review completion
func WithAnalysisVendorRepository(repo *repository.VendorRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.vendorRepo = repo
	}
}

// WithAIProvider sets the model provider. Without one every run uses the
// heuristic scorer.
func WithAIProvider(provider ai.Provider) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.provider = provider
	}
}

// WithScoringConfig sets the scorer thresholds
func WithScoringConfig(cfg analysis.Config) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.config = cfg
	}
}

// WithCustomInstructions sets tenant-specific prompt instructions
func WithCustomInstructions(instructions string) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.instructions = instructions
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{config: analysis.DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunAnalysisRequest represents a request to analyze contract text
type RunAnalysisRequest struct {
	TenantID uuid.UUID
	VendorID *uuid.UUID
	Filename *string
	Text     string
}

// RunAnalysisResult represents the result of an analysis run
type RunAnalysisResult struct {
	Analysis *models.ContractAnalysis
}

// RunAnalysis validates the text, scores it via the configured model provider
// or the heuristic scorer, persists the run and, when the run belongs to a
// vendor, marks the vendor's contract review as done. Every run is fresh;
// there is no caching of prior results.
func (s *AnalysisService) RunAnalysis(ctx context.Context, req RunAnalysisRequest) (*RunAnalysisResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	if req.Text == "" {
		return nil, errors.New("contract text is required")
	}

	points := s.loadPoints(ctx, req.TenantID)

	var result *models.AnalysisResult
	providerName := heuristicProviderName

	if validation := analysis.Validate(req.Text); !validation.IsValid {
		result = analysis.InvalidResult(validation.Reason)
	} else if s.provider != nil {
		result = s.runProvider(ctx, req, points)
		if result != nil {
			providerName = s.provider.Name()
		}
	}

	if result == nil {
		result = analysis.Analyze(req.Text, points, s.config)
		if s.provider != nil {
			// Provider was configured but failed; disclose the fallback
			result.Summary = fmt.Sprintf("[análise heurística - fallback] %s", result.Summary)
		}
	}

	record := &models.ContractAnalysis{
		TenantID:     req.TenantID,
		VendorID:     req.VendorID,
		Filename:     req.Filename,
		Provider:     providerName,
		Result:       *result,
		OverallScore: result.OverallScore,
		RiskLevel:    result.RiskLevel,
	}

	if err := s.analysisRepo.CreateAnalysis(ctx, record); err != nil {
		return nil, err
	}

	if req.VendorID != nil && s.vendorRepo != nil {
		if err := s.markContractReviewed(ctx, req.TenantID, *req.VendorID); err != nil {
			log.Printf("Warning: failed to mark vendor %s contract review done: %v", req.VendorID, err)
		}
	}

	return &RunAnalysisResult{Analysis: record}, nil
}

// loadPoints fetches the tenant's rubric, falling back to the default rubric
// when the tenant has none configured
func (s *AnalysisService) loadPoints(ctx context.Context, tenantID uuid.UUID) []models.AnalysisPoint {
	stored, err := s.analysisRepo.ListPoints(ctx, tenantID)
	if err != nil {
		log.Printf("Warning: failed to load analysis points, using defaults: %v", err)
		return analysis.DefaultPoints(tenantID)
	}
	return rubricFor(tenantID, stored)
}

// rubricFor selects the enabled points from a stored rubric. Defaults apply
// only when the tenant has no points at all; a rubric whose every point is
// disabled stays empty so the scorer reports zero coverage.
func rubricFor(tenantID uuid.UUID, stored []models.AnalysisPoint) []models.AnalysisPoint {
	if len(stored) == 0 {
		return analysis.DefaultPoints(tenantID)
	}

	enabled := make([]models.AnalysisPoint, 0, len(stored))
	for _, point := range stored {
		if point.Enabled {
			enabled = append(enabled, point)
		}
	}
	return enabled
}

// runProvider sends the contract to the model provider. Any failure along the
// way returns nil so the caller falls back to the heuristic scorer.
func (s *AnalysisService) runProvider(ctx context.Context, req RunAnalysisRequest, points []models.AnalysisPoint) *models.AnalysisResult {
	system := ai.BuildSystemPrompt(s.instructions, points)

	filename := ""
	if req.Filename != nil {
		filename = *req.Filename
	}
	user := ai.BuildUserPrompt(req.Text, filename)

	content, err := s.provider.Complete(ctx, system, user)
	if err != nil {
		log.Printf("Warning: %s provider failed: %v", s.provider.Name(), err)
		return nil
	}

	parsed, err := ai.ParseResult(content)
	if err != nil {
		log.Printf("Warning: %s provider returned unparsable result: %v", s.provider.Name(), err)
		return nil
	}

	return ai.PostProcess(parsed, s.provider.Name())
}

// markContractReviewed flags the vendor so the contract_review stage gate
// passes
func (s *AnalysisService) markContractReviewed(ctx context.Context, tenantID, vendorID uuid.UUID) error {
	vendor, err := s.vendorRepo.GetByID(ctx, tenantID, vendorID)
	if err != nil {
		return err
	}

	if vendor.ContractReviewDone {
		return nil
	}

	vendor.ContractReviewDone = true
	return s.vendorRepo.Update(ctx, vendor)
}

// GetAnalysisRequest represents a request to fetch a persisted analysis
type GetAnalysisRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
}

// GetAnalysisResult represents the result of fetching an analysis
type GetAnalysisResult struct {
	Analysis *models.ContractAnalysis
}

// GetAnalysis retrieves a persisted analysis run
func (s *AnalysisService) GetAnalysis(ctx context.Context, req GetAnalysisRequest) (*GetAnalysisResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	record, err := s.analysisRepo.GetAnalysis(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetAnalysisResult{Analysis: record}, nil
}

// ListPointsRequest represents a request to list analysis points
type ListPointsRequest struct {
	TenantID uuid.UUID
}

// ListPointsResult represents the result of listing analysis points
type ListPointsResult struct {
	Points []models.AnalysisPoint
}

// ListPoints lists the tenant's rubric, seeding the defaults on first access
func (s *AnalysisService) ListPoints(ctx context.Context, req ListPointsRequest) (*ListPointsResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	points, err := s.analysisRepo.ListPoints(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		for _, point := range analysis.DefaultPoints(req.TenantID) {
			p := point
			if err := s.analysisRepo.CreatePoint(ctx, &p); err != nil {
				return nil, err
			}
			points = append(points, p)
		}
	}

	return &ListPointsResult{Points: points}, nil
}

// CreatePointRequest represents a request to create an analysis point
type CreatePointRequest struct {
	TenantID    uuid.UUID
	Category    string
	Title       string
	Description string
	Weight      int
	Enabled     bool
	Keywords    []string
}

// CreatePointResult represents the result of creating an analysis point
type CreatePointResult struct {
	Point *models.AnalysisPoint
}

// CreatePoint adds a rubric point to the tenant's configuration
func (s *AnalysisService) CreatePoint(ctx context.Context, req CreatePointRequest) (*CreatePointResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Weight < 1 || req.Weight > 10 {
		return nil, errors.New("weight must be between 1 and 10")
	}

	point := &models.AnalysisPoint{
		TenantID:    req.TenantID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Weight:      req.Weight,
		Enabled:     req.Enabled,
		Keywords:    req.Keywords,
	}

	if err := s.analysisRepo.CreatePoint(ctx, point); err != nil {
		return nil, err
	}

	return &CreatePointResult{Point: point}, nil
}

// UpdatePointRequest represents a request to update an analysis point
type UpdatePointRequest struct {
	Point *models.AnalysisPoint
}

// UpdatePointResult represents the result of updating an analysis point
type UpdatePointResult struct {
	Point *models.AnalysisPoint
}

// UpdatePoint updates a rubric point
func (s *AnalysisService) UpdatePoint(ctx context.Context, req UpdatePointRequest) (*UpdatePointResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	if req.Point.Weight < 1 || req.Point.Weight > 10 {
		return nil, errors.New("weight must be between 1 and 10")
	}

	if err := s.analysisRepo.UpdatePoint(ctx, req.Point); err != nil {
		return nil, err
	}

	return &UpdatePointResult{Point: req.Point}, nil
}
