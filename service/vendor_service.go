package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"grcdesk-backend/models"
	"grcdesk-backend/repository"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// StepBlockedError indicates an onboarding advance rejected by a step guard.
// The vendor's current step is left unchanged.
type StepBlockedError struct {
	Step   models.OnboardingStep
	Reason string
}

func (e *StepBlockedError) Error() string {
	return fmt.Sprintf("onboarding step %s blocked: %s", e.Step, e.Reason)
}

// ChecklistProgress summarizes a vendor's due-diligence checklist state
type ChecklistProgress struct {
	TotalItems       int  `json:"total_items"`
	RequiredItems    int  `json:"required_items"`
	AnsweredRequired int  `json:"answered_required"`
	MissingRequired  int  `json:"missing_required"`
	PendingReasons   int  `json:"pending_justifications"`
	Complete         bool `json:"complete"`
}

// EvaluateChecklist computes checklist completion for the due-diligence gate.
// A required item counts as answered only when it has a response; a
// non_compliant answer additionally needs a non-blank justification.
func EvaluateChecklist(items models.ChecklistItems, responses []*models.ChecklistResponse) ChecklistProgress {
	byItem := make(map[string]*models.ChecklistResponse, len(responses))
	for _, resp := range responses {
		byItem[resp.ItemID] = resp
	}

	progress := ChecklistProgress{TotalItems: len(items)}
	for _, item := range items {
		if !item.Required {
			continue
		}
		progress.RequiredItems++

		resp, ok := byItem[item.ID]
		if !ok {
			progress.MissingRequired++
			continue
		}
		if resp.Status == models.NonCompliant && strings.TrimSpace(resp.Justification) == "" {
			progress.PendingReasons++
			continue
		}
		progress.AnsweredRequired++
	}

	progress.Complete = progress.MissingRequired == 0 && progress.PendingReasons == 0
	return progress
}

// NextOnboardingStep returns the stage following the given one, or false when
// the vendor is already at the final stage
func NextOnboardingStep(step models.OnboardingStep) (models.OnboardingStep, bool) {
	for i, s := range models.OnboardingStepOrder {
		if s == step && i+1 < len(models.OnboardingStepOrder) {
			return models.OnboardingStepOrder[i+1], true
		}
	}
	return "", false
}

// OnboardingProgress computes percent progress from the current step, counting
// every stage before the current one as completed
func OnboardingProgress(step models.OnboardingStep) int {
	for i, s := range models.OnboardingStepOrder {
		if s == step {
			return i * 100 / len(models.OnboardingStepOrder)
		}
	}
	return 0
}

// VendorService handles business logic for vendor onboarding
type VendorService struct {
	vendorRepo    *repository.VendorRepository
	checklistRepo *repository.ChecklistRepository

	// checklistProgress loads a vendor's checklist state for the
	// due_diligence guard; defaults to the repository-backed lookup
	checklistProgress func(ctx context.Context, tenantID, vendorID uuid.UUID) (ChecklistProgress, error)
}

// VendorServiceOption is a functional option for VendorService
type VendorServiceOption func(*VendorService)

// WithVendorRepository sets the vendor repository
func WithVendorRepository(repo *repository.VendorRepository) VendorServiceOption {
	return func(s *VendorService) {
		s.vendorRepo = repo
	}
}

// WithChecklistRepository sets the checklist repository
func WithChecklistRepository(repo *repository.ChecklistRepository) VendorServiceOption {
	return func(s *VendorService) {
		s.checklistRepo = repo
	}
}

// NewVendorService creates a new vendor service
func NewVendorService(opts ...VendorServiceOption) *VendorService {
	s := &VendorService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.checklistProgress == nil {
		s.checklistProgress = s.ChecklistProgress
	}
	return s
}

// RegisterVendorRequest represents a request to register a vendor
type RegisterVendorRequest struct {
	TenantID     uuid.UUID
	LegalName    string
	TradeName    *string
	TaxID        string
	ContactName  string
	ContactEmail string
	Category     *string
}

// RegisterVendorResult represents the result of registering a vendor
type RegisterVendorResult struct {
	Vendor *models.Vendor
}

// RegisterVendor creates a vendor at the first onboarding stage
func (s *VendorService) RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*RegisterVendorResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	if req.LegalName == "" {
		return nil, errors.New("legal name is required")
	}

	vendor := &models.Vendor{
		TenantID:         req.TenantID,
		LegalName:        req.LegalName,
		TradeName:        req.TradeName,
		TaxID:            req.TaxID,
		ContactName:      req.ContactName,
		ContactEmail:     req.ContactEmail,
		Category:         req.Category,
		OnboardingStatus: models.OnboardingInProgress,
		OnboardingStep:   models.StepBasicInfo,
		Status:           models.VendorStatusPending,
	}

	err := s.vendorRepo.Create(ctx, vendor)
	if err != nil {
		return nil, err
	}

	return &RegisterVendorResult{Vendor: vendor}, nil
}

// GetVendorRequest represents a request to get a vendor
type GetVendorRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
}

// GetVendorResult represents the result of getting a vendor
type GetVendorResult struct {
	Vendor *models.Vendor
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, req GetVendorRequest) (*GetVendorResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetVendorResult{Vendor: vendor}, nil
}

// ListVendorsRequest represents a request to list vendors
type ListVendorsRequest struct {
	TenantID *uuid.UUID
	Status   *models.VendorStatus
	Limit    int
	Offset   int
}

// ListVendorsResult represents the result of listing vendors
type ListVendorsResult struct {
	Vendors []*models.Vendor
}

// ListVendors lists vendors scoped to a tenant. A nil TenantID lists across
// all tenants (platform admin only, enforced at the handler).
func (s *VendorService) ListVendors(ctx context.Context, req ListVendorsRequest) (*ListVendorsResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	vendors, err := s.vendorRepo.List(ctx, req.TenantID, req.Status, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListVendorsResult{Vendors: vendors}, nil
}

// UpdateVendorRequest represents a request to update vendor master data
type UpdateVendorRequest struct {
	Vendor *models.Vendor
}

// UpdateVendorResult represents the result of updating a vendor
type UpdateVendorResult struct {
	Vendor *models.Vendor
}

// UpdateVendor updates a vendor record
func (s *VendorService) UpdateVendor(ctx context.Context, req UpdateVendorRequest) (*UpdateVendorResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	err := s.vendorRepo.Update(ctx, req.Vendor)
	if err != nil {
		return nil, err
	}

	return &UpdateVendorResult{Vendor: req.Vendor}, nil
}

// NextStepRequest represents a request to advance vendor onboarding
type NextStepRequest struct {
	TenantID uuid.UUID
	VendorID uuid.UUID
}

// NextStepResult represents the result of advancing onboarding
type NextStepResult struct {
	Vendor *models.Vendor
}

// NextStep advances the vendor to the next onboarding stage if the current
// stage's exit guard passes. A failed guard returns a StepBlockedError and
// leaves the vendor unchanged.
func (s *VendorService) NextStep(ctx context.Context, req NextStepRequest) (*NextStepResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, req.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	if vendor.OnboardingStatus == models.OnboardingCompleted {
		return nil, &StepBlockedError{Step: vendor.OnboardingStep, Reason: "onboarding already completed"}
	}

	if err := s.checkStepGuard(ctx, vendor); err != nil {
		return nil, err
	}

	if vendor.OnboardingStep == models.StepFinalApproval {
		vendor.OnboardingStatus = models.OnboardingCompleted
		vendor.OnboardingProgress = 100
		vendor.Status = models.VendorStatusActive
	} else {
		next, _ := NextOnboardingStep(vendor.OnboardingStep)
		vendor.OnboardingStep = next
		vendor.OnboardingProgress = OnboardingProgress(next)
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return &NextStepResult{Vendor: vendor}, nil
}

// checkStepGuard evaluates the exit condition of the vendor's current stage
func (s *VendorService) checkStepGuard(ctx context.Context, vendor *models.Vendor) error {
	switch vendor.OnboardingStep {
	case models.StepBasicInfo:
		return CheckBasicInfo(vendor)

	case models.StepDueDiligence:
		progress, err := s.checklistProgress(ctx, vendor.TenantID, vendor.ID)
		if err != nil {
			return err
		}
		if !progress.Complete {
			return &StepBlockedError{
				Step: models.StepDueDiligence,
				Reason: fmt.Sprintf(
					"checklist incomplete: %d required item(s) unanswered, %d non-compliant item(s) missing justification",
					progress.MissingRequired, progress.PendingReasons,
				),
			}
		}
		return nil

	case models.StepRiskAssessment:
		if !vendor.AssessmentDone {
			return &StepBlockedError{Step: models.StepRiskAssessment, Reason: "risk assessment not completed"}
		}
		return nil

	case models.StepContractReview:
		if !vendor.ContractReviewDone && !vendor.ContractReviewSkipped {
			return &StepBlockedError{Step: models.StepContractReview, Reason: "contract review neither completed nor skipped"}
		}
		return nil

	case models.StepFinalApproval:
		return nil
	}

	return &StepBlockedError{Step: vendor.OnboardingStep, Reason: "unknown onboarding step"}
}

// CheckBasicInfo validates the basic_info stage exit condition
func CheckBasicInfo(vendor *models.Vendor) error {
	if strings.TrimSpace(vendor.LegalName) == "" {
		return &StepBlockedError{Step: models.StepBasicInfo, Reason: "legal name is required"}
	}
	if strings.TrimSpace(vendor.TaxID) == "" {
		return &StepBlockedError{Step: models.StepBasicInfo, Reason: "tax id is required"}
	}
	if strings.TrimSpace(vendor.ContactName) == "" {
		return &StepBlockedError{Step: models.StepBasicInfo, Reason: "contact name is required"}
	}
	if !emailPattern.MatchString(vendor.ContactEmail) {
		return &StepBlockedError{Step: models.StepBasicInfo, Reason: "contact email is invalid"}
	}
	return nil
}

// GoToStepRequest represents a request to move a vendor to a specific stage
type GoToStepRequest struct {
	TenantID uuid.UUID
	VendorID uuid.UUID
	Step     models.OnboardingStep
}

// GoToStepResult represents the result of direct step navigation
type GoToStepResult struct {
	Vendor *models.Vendor
}

// GoToStep moves the vendor to an arbitrary onboarding stage without guard
// checks. Used for corrections and backward navigation.
func (s *VendorService) GoToStep(ctx context.Context, req GoToStepRequest) (*GoToStepResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	valid := false
	for _, step := range models.OnboardingStepOrder {
		if step == req.Step {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown onboarding step: %s", req.Step)
	}

	vendor, err := s.vendorRepo.GetByID(ctx, req.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	vendor.OnboardingStep = req.Step
	vendor.OnboardingStatus = models.OnboardingInProgress
	vendor.OnboardingProgress = OnboardingProgress(req.Step)

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return &GoToStepResult{Vendor: vendor}, nil
}

// CompleteAssessmentRequest represents a request to record a risk assessment
type CompleteAssessmentRequest struct {
	TenantID  uuid.UUID
	VendorID  uuid.UUID
	RiskScore int
	RiskLevel models.RiskLevel
}

// CompleteAssessmentResult represents the result of recording an assessment
type CompleteAssessmentResult struct {
	Vendor *models.Vendor
}

// CompleteAssessment records the vendor's risk score and marks the
// risk_assessment stage as satisfiable
func (s *VendorService) CompleteAssessment(ctx context.Context, req CompleteAssessmentRequest) (*CompleteAssessmentResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	if req.RiskScore < 0 || req.RiskScore > 100 {
		return nil, errors.New("risk score must be between 0 and 100")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, req.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	score := req.RiskScore
	level := req.RiskLevel
	vendor.RiskScore = &score
	vendor.RiskLevel = &level
	vendor.AssessmentDone = true

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return &CompleteAssessmentResult{Vendor: vendor}, nil
}

// SkipContractReviewRequest represents a request to waive contract review
type SkipContractReviewRequest struct {
	TenantID uuid.UUID
	VendorID uuid.UUID
}

// SkipContractReviewResult represents the result of waiving contract review
type SkipContractReviewResult struct {
	Vendor *models.Vendor
}

// SkipContractReview waives the contract_review stage for vendors without a
// contract to analyze
func (s *VendorService) SkipContractReview(ctx context.Context, req SkipContractReviewRequest) (*SkipContractReviewResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, req.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	vendor.ContractReviewSkipped = true

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return &SkipContractReviewResult{Vendor: vendor}, nil
}

// RespondChecklistRequest represents a checklist item response
type RespondChecklistRequest struct {
	TenantID      uuid.UUID
	VendorID      uuid.UUID
	ItemID        string
	Status        models.ComplianceStatus
	Justification string
}

// RespondChecklistResult represents the result of answering a checklist item
type RespondChecklistResult struct {
	Response *models.ChecklistResponse
	Progress ChecklistProgress
}

// RespondChecklist records or replaces a vendor's answer to a checklist item
func (s *VendorService) RespondChecklist(ctx context.Context, req RespondChecklistRequest) (*RespondChecklistResult, error) {
	if s.vendorRepo == nil {
		return nil, errors.New("vendor repository not set")
	}
	if s.checklistRepo == nil {
		return nil, errors.New("checklist repository not set")
	}

	switch req.Status {
	case models.Compliant, models.CompliantWithReservation, models.NonCompliant:
	default:
		return nil, fmt.Errorf("unknown compliance status: %s", req.Status)
	}

	if _, err := s.vendorRepo.GetByID(ctx, req.TenantID, req.VendorID); err != nil {
		return nil, err
	}

	template, err := s.checklistRepo.GetDefaultTemplate(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, item := range template.Items {
		if item.ID == req.ItemID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown checklist item: %s", req.ItemID)
	}

	response := &models.ChecklistResponse{
		TenantID:      req.TenantID,
		VendorID:      req.VendorID,
		TemplateID:    template.ID,
		ItemID:        req.ItemID,
		Status:        req.Status,
		Justification: req.Justification,
	}

	if err := s.checklistRepo.UpsertResponse(ctx, response); err != nil {
		return nil, err
	}

	responses, err := s.checklistRepo.ListResponses(ctx, req.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	return &RespondChecklistResult{
		Response: response,
		Progress: EvaluateChecklist(template.Items, responses),
	}, nil
}

// ChecklistProgress loads the vendor's checklist state against the tenant's
// default template
func (s *VendorService) ChecklistProgress(ctx context.Context, tenantID, vendorID uuid.UUID) (ChecklistProgress, error) {
	if s.checklistRepo == nil {
		return ChecklistProgress{}, errors.New("checklist repository not set")
	}

	template, err := s.checklistRepo.GetDefaultTemplate(ctx, tenantID)
	if err != nil {
		return ChecklistProgress{}, err
	}

	responses, err := s.checklistRepo.ListResponses(ctx, tenantID, vendorID)
	if err != nil {
		return ChecklistProgress{}, err
	}

	return EvaluateChecklist(template.Items, responses), nil
}

// ListChecklistRequest represents a request for a vendor's checklist state
type ListChecklistRequest struct {
	TenantID uuid.UUID
	VendorID uuid.UUID
}

// ListChecklistResult carries the template, responses and completion summary
type ListChecklistResult struct {
	Template  *models.ChecklistTemplate
	Responses []*models.ChecklistResponse
	Progress  ChecklistProgress
}

// ListChecklist returns the vendor's checklist responses with the template
// and a completion summary
func (s *VendorService) ListChecklist(ctx context.Context, req ListChecklistRequest) (*ListChecklistResult, error) {
	if s.checklistRepo == nil {
		return nil, errors.New("checklist repository not set")
	}

	template, err := s.checklistRepo.GetDefaultTemplate(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	responses, err := s.checklistRepo.ListResponses(ctx, req.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	return &ListChecklistResult{
		Template:  template,
		Responses: responses,
		Progress:  EvaluateChecklist(template.Items, responses),
	}, nil
}
