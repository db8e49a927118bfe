package service

import (
	"strings"
	"testing"
	"time"

	"grcdesk-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTable(t *testing.T) {
	allowed := []struct {
		from, to models.ReportStatus
	}{
		{models.ReportStatusReceived, models.ReportStatusTriage},
		{models.ReportStatusTriage, models.ReportStatusInvestigating},
		{models.ReportStatusTriage, models.ReportStatusDismissed},
		{models.ReportStatusInvestigating, models.ReportStatusResolved},
		{models.ReportStatusResolved, models.ReportStatusClosed},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to models.ReportStatus
	}{
		{models.ReportStatusReceived, models.ReportStatusInvestigating},
		{models.ReportStatusReceived, models.ReportStatusDismissed},
		{models.ReportStatusInvestigating, models.ReportStatusTriage},
		{models.ReportStatusInvestigating, models.ReportStatusDismissed},
		{models.ReportStatusResolved, models.ReportStatusInvestigating},
		{models.ReportStatusClosed, models.ReportStatusTriage},
		{models.ReportStatusDismissed, models.ReportStatusTriage},
		{models.ReportStatusTriage, models.ReportStatusTriage},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestSLADuePerSeverity(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(48*time.Hour), SLADue(models.SeverityCritical, start))
	assert.Equal(t, start.Add(96*time.Hour), SLADue(models.SeverityHigh, start))
	assert.Equal(t, start.Add(7*24*time.Hour), SLADue(models.SeverityMedium, start))
	assert.Equal(t, start.Add(14*24*time.Hour), SLADue(models.SeverityLow, start))
}

func TestReportBreachesSLA(t *testing.T) {
	now := time.Now()
	report := &models.EthicsReport{
		Status:   models.ReportStatusInvestigating,
		SLADueAt: now.Add(-time.Hour),
	}
	assert.True(t, reportBreachesSLA(report, now))

	report.SLADueAt = now.Add(time.Hour)
	assert.False(t, reportBreachesSLA(report, now))

	// Terminal states keep whatever flag they closed with
	closed := &models.EthicsReport{
		Status:    models.ReportStatusClosed,
		SLADueAt:  now.Add(-time.Hour),
		SLABreach: false,
	}
	assert.False(t, reportBreachesSLA(closed, now))

	closed.SLABreach = true
	assert.True(t, reportBreachesSLA(closed, now))
}

func TestNewReferenceCodeFormat(t *testing.T) {
	code := NewReferenceCode()

	require.True(t, strings.HasPrefix(code, "ETH-"))
	suffix := strings.TrimPrefix(code, "ETH-")
	assert.Len(t, suffix, 8)
	assert.Equal(t, strings.ToUpper(suffix), suffix)

	// Codes are effectively unique
	assert.NotEqual(t, code, NewReferenceCode())
}

func TestPlanStatusFromSteps(t *testing.T) {
	assert.Equal(t, models.PlanStatusDraft, PlanStatusFromSteps(nil))

	pending := models.PlanSteps{{Name: "Entrevistar denunciante", Status: "pending"}}
	assert.Equal(t, models.PlanStatusDraft, PlanStatusFromSteps(pending))

	started := models.PlanSteps{
		{Name: "Entrevistar denunciante", Status: "completed"},
		{Name: "Coletar registros", Status: "pending"},
	}
	assert.Equal(t, models.PlanStatusInProgress, PlanStatusFromSteps(started))

	inProgress := models.PlanSteps{{Name: "Coletar registros", Status: "in_progress"}}
	assert.Equal(t, models.PlanStatusInProgress, PlanStatusFromSteps(inProgress))

	done := models.PlanSteps{
		{Name: "Entrevistar denunciante", Status: "completed"},
		{Name: "Coletar registros", Status: "skipped"},
	}
	assert.Equal(t, models.PlanStatusCompleted, PlanStatusFromSteps(done))
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{From: models.ReportStatusClosed, To: models.ReportStatusTriage}
	assert.Contains(t, err.Error(), "closed")
	assert.Contains(t, err.Error(), "triage")
}
