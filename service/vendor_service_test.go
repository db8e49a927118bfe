package service

import (
	"context"
	"testing"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checklistItems() models.ChecklistItems {
	return models.ChecklistItems{
		{ID: "legal", Question: "Regularidade fiscal?", Required: true},
		{ID: "sanctions", Question: "Verificação em listas de sanções?", Required: true},
		{ID: "security", Question: "Certificação de segurança?", Required: false},
	}
}

func TestEvaluateChecklistComplete(t *testing.T) {
	responses := []*models.ChecklistResponse{
		{ItemID: "legal", Status: models.Compliant},
		{ItemID: "sanctions", Status: models.CompliantWithReservation},
	}

	progress := EvaluateChecklist(checklistItems(), responses)

	assert.True(t, progress.Complete)
	assert.Equal(t, 2, progress.RequiredItems)
	assert.Equal(t, 2, progress.AnsweredRequired)
	assert.Equal(t, 0, progress.MissingRequired)
}

func TestEvaluateChecklistMissingRequired(t *testing.T) {
	responses := []*models.ChecklistResponse{
		{ItemID: "legal", Status: models.Compliant},
	}

	progress := EvaluateChecklist(checklistItems(), responses)

	assert.False(t, progress.Complete)
	assert.Equal(t, 1, progress.MissingRequired)
}

func TestEvaluateChecklistNonCompliantNeedsJustification(t *testing.T) {
	responses := []*models.ChecklistResponse{
		{ItemID: "legal", Status: models.Compliant},
		{ItemID: "sanctions", Status: models.NonCompliant, Justification: "   "},
	}

	progress := EvaluateChecklist(checklistItems(), responses)

	assert.False(t, progress.Complete)
	assert.Equal(t, 1, progress.PendingReasons)

	// A real justification makes the same answer count
	responses[1].Justification = "Fornecedor em processo de regularização, risco aceito pela diretoria"
	progress = EvaluateChecklist(checklistItems(), responses)

	assert.True(t, progress.Complete)
	assert.Equal(t, 0, progress.PendingReasons)
}

func TestEvaluateChecklistOptionalItemsDoNotBlock(t *testing.T) {
	responses := []*models.ChecklistResponse{
		{ItemID: "legal", Status: models.Compliant},
		{ItemID: "sanctions", Status: models.Compliant},
		// "security" (optional) unanswered
	}

	progress := EvaluateChecklist(checklistItems(), responses)

	assert.True(t, progress.Complete)
	assert.Equal(t, 3, progress.TotalItems)
}

func TestNextOnboardingStepSequence(t *testing.T) {
	next, ok := NextOnboardingStep(models.StepBasicInfo)
	require.True(t, ok)
	assert.Equal(t, models.StepDueDiligence, next)

	next, ok = NextOnboardingStep(models.StepContractReview)
	require.True(t, ok)
	assert.Equal(t, models.StepFinalApproval, next)

	_, ok = NextOnboardingStep(models.StepFinalApproval)
	assert.False(t, ok)
}

func TestOnboardingProgress(t *testing.T) {
	assert.Equal(t, 0, OnboardingProgress(models.StepBasicInfo))
	assert.Equal(t, 20, OnboardingProgress(models.StepDueDiligence))
	assert.Equal(t, 40, OnboardingProgress(models.StepRiskAssessment))
	assert.Equal(t, 60, OnboardingProgress(models.StepContractReview))
	assert.Equal(t, 80, OnboardingProgress(models.StepFinalApproval))
}

func TestCheckBasicInfo(t *testing.T) {
	vendor := &models.Vendor{
		LegalName:    "Fornecedora Exemplo Ltda",
		TaxID:        "12.345.678/0001-90",
		ContactName:  "Maria Silva",
		ContactEmail: "maria@exemplo.com.br",
	}
	assert.NoError(t, CheckBasicInfo(vendor))

	missing := *vendor
	missing.TaxID = "  "
	err := CheckBasicInfo(&missing)
	var blocked *StepBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, models.StepBasicInfo, blocked.Step)
	assert.Contains(t, blocked.Reason, "tax id")

	badEmail := *vendor
	badEmail.ContactEmail = "not-an-email"
	err = CheckBasicInfo(&badEmail)
	require.ErrorAs(t, err, &blocked)
	assert.Contains(t, blocked.Reason, "email")
}

func TestStepGuardDueDiligence(t *testing.T) {
	s := NewVendorService()
	s.checklistProgress = func(ctx context.Context, tenantID, vendorID uuid.UUID) (ChecklistProgress, error) {
		return ChecklistProgress{
			TotalItems:       3,
			RequiredItems:    2,
			AnsweredRequired: 1,
			MissingRequired:  1,
			PendingReasons:   1,
		}, nil
	}

	vendor := &models.Vendor{
		ID:             uuid.New(),
		TenantID:       uuid.New(),
		OnboardingStep: models.StepDueDiligence,
	}

	err := s.checkStepGuard(context.Background(), vendor)
	var blocked *StepBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, models.StepDueDiligence, blocked.Step)
	assert.Contains(t, blocked.Reason, "1 required item(s) unanswered")
	assert.Contains(t, blocked.Reason, "1 non-compliant item(s) missing justification")
	assert.Equal(t, models.StepDueDiligence, vendor.OnboardingStep)

	// A complete checklist opens the gate
	s.checklistProgress = func(ctx context.Context, tenantID, vendorID uuid.UUID) (ChecklistProgress, error) {
		return ChecklistProgress{TotalItems: 3, RequiredItems: 2, AnsweredRequired: 2, Complete: true}, nil
	}
	assert.NoError(t, s.checkStepGuard(context.Background(), vendor))
}

func TestStepGuardsPure(t *testing.T) {
	s := NewVendorService()

	// risk_assessment blocks until the assessment is recorded
	vendor := &models.Vendor{OnboardingStep: models.StepRiskAssessment}
	err := s.checkStepGuard(nil, vendor)
	var blocked *StepBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, models.StepRiskAssessment, blocked.Step)

	vendor.AssessmentDone = true
	assert.NoError(t, s.checkStepGuard(nil, vendor))

	// contract_review passes on either completion or waiver
	vendor = &models.Vendor{OnboardingStep: models.StepContractReview}
	err = s.checkStepGuard(nil, vendor)
	require.ErrorAs(t, err, &blocked)
	assert.Contains(t, blocked.Reason, "contract review")

	vendor.ContractReviewSkipped = true
	assert.NoError(t, s.checkStepGuard(nil, vendor))

	vendor.ContractReviewSkipped = false
	vendor.ContractReviewDone = true
	assert.NoError(t, s.checkStepGuard(nil, vendor))

	// final_approval has no exit guard
	vendor = &models.Vendor{OnboardingStep: models.StepFinalApproval}
	assert.NoError(t, s.checkStepGuard(nil, vendor))
}
