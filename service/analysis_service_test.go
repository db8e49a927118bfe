package service

import (
	"testing"

	"grcdesk-backend/analysis"
	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRubricForEmptyStoredUsesDefaults(t *testing.T) {
	tenantID := uuid.New()
	points := rubricFor(tenantID, nil)
	require.NotEmpty(t, points)
	assert.Equal(t, len(analysis.DefaultPoints(tenantID)), len(points))
}

func TestRubricForKeepsOnlyEnabledPoints(t *testing.T) {
	tenantID := uuid.New()
	stored := []models.AnalysisPoint{
		{TenantID: tenantID, Title: "Multas", Weight: 5, Enabled: true, Keywords: []string{"multa"}},
		{TenantID: tenantID, Title: "Foro", Weight: 3, Enabled: false, Keywords: []string{"foro"}},
	}

	points := rubricFor(tenantID, stored)
	require.Len(t, points, 1)
	assert.Equal(t, "Multas", points[0].Title)
}

func TestRubricForAllDisabledStaysEmpty(t *testing.T) {
	tenantID := uuid.New()
	stored := []models.AnalysisPoint{
		{TenantID: tenantID, Title: "Multas", Weight: 5, Enabled: false, Keywords: []string{"multa"}},
		{TenantID: tenantID, Title: "Foro", Weight: 3, Enabled: false, Keywords: []string{"foro"}},
	}

	points := rubricFor(tenantID, stored)
	assert.Empty(t, points)

	// An empty rubric scores nothing, it never resurrects the defaults
	result := analysis.Analyze("contrato com cláusula de multa e eleição de foro", points, analysis.DefaultConfig())
	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.Empty(t, result.Findings)
}
