package models

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingStep represents a stage of the vendor onboarding workflow
type OnboardingStep string

const (
	StepBasicInfo      OnboardingStep = "basic_info"
	StepDueDiligence   OnboardingStep = "due_diligence"
	StepRiskAssessment OnboardingStep = "risk_assessment"
	StepContractReview OnboardingStep = "contract_review"
	StepFinalApproval  OnboardingStep = "final_approval"
)

// OnboardingStepOrder is the fixed sequence of onboarding stages
var OnboardingStepOrder = []OnboardingStep{
	StepBasicInfo,
	StepDueDiligence,
	StepRiskAssessment,
	StepContractReview,
	StepFinalApproval,
}

// OnboardingStatus represents the overall onboarding state of a vendor
type OnboardingStatus string

const (
	OnboardingInProgress OnboardingStatus = "in_progress"
	OnboardingCompleted  OnboardingStatus = "completed"
)

// VendorStatus represents the lifecycle status of a vendor
type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "pending"
	VendorStatusActive    VendorStatus = "active"
	VendorStatusSuspended VendorStatus = "suspended"
	VendorStatusRetired   VendorStatus = "retired"
)

// Vendor represents a vendor registry entry
type Vendor struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	LegalName string    `json:"legal_name"`
	TradeName *string   `json:"trade_name,omitempty"`
	TaxID     string    `json:"tax_id"`

	ContactName  string  `json:"contact_name"`
	ContactEmail string  `json:"contact_email"`
	Category     *string `json:"category,omitempty"`

	RiskScore *int       `json:"risk_score,omitempty"`
	RiskLevel *RiskLevel `json:"risk_level,omitempty"`

	OnboardingStatus   OnboardingStatus `json:"onboarding_status"`
	OnboardingStep     OnboardingStep   `json:"onboarding_step"`
	OnboardingProgress int              `json:"onboarding_progress"`
	Status             VendorStatus     `json:"status"`

	ContractReviewDone    bool `json:"contract_review_done"`
	ContractReviewSkipped bool `json:"contract_review_skipped"`
	AssessmentDone        bool `json:"assessment_done"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
