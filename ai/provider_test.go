package ai

import (
	"testing"

	"grcdesk-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultPlainJSON(t *testing.T) {
	content := `{"overallScore": 72, "riskLevel": "medium", "summary": "Contrato razoável", "findings": [], "documentType": "contrato de serviços"}`

	result, err := ParseResult(content)
	require.NoError(t, err)
	assert.Equal(t, 72, result.OverallScore)
	assert.Equal(t, models.RiskMedium, result.RiskLevel)
	assert.Equal(t, "contrato de serviços", result.DocumentType)
}

func TestParseResultStripsCodeFences(t *testing.T) {
	content := "```json\n{\"overallScore\": 40, \"riskLevel\": \"high\", \"summary\": \"ok\"}\n```"

	result, err := ParseResult(content)
	require.NoError(t, err)
	assert.Equal(t, 40, result.OverallScore)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
}

func TestParseResultExtractsEmbeddedJSON(t *testing.T) {
	content := `Segue a análise solicitada:

{"overallScore": 10, "riskLevel": "critical", "summary": "Crítico"}

Espero ter ajudado.`

	result, err := ParseResult(content)
	require.NoError(t, err)
	assert.Equal(t, 10, result.OverallScore)
}

func TestParseResultZeroScoreIsNotMissing(t *testing.T) {
	content := `{"overallScore": 0, "riskLevel": "critical", "summary": "Sem cobertura"}`

	result, err := ParseResult(content)
	require.NoError(t, err)
	assert.Equal(t, 0, result.OverallScore)
}

func TestParseResultNoJSON(t *testing.T) {
	_, err := ParseResult("Desculpe, não consegui analisar o documento.")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestParseResultMissingField(t *testing.T) {
	_, err := ParseResult(`{"riskLevel": "low", "summary": "sem pontuação"}`)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestParseResultUnknownRiskLevel(t *testing.T) {
	_, err := ParseResult(`{"overallScore": 50, "riskLevel": "catastrophic", "summary": "x"}`)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestPostProcessInvalidContractForcesCritical(t *testing.T) {
	invalid := false
	input := &ModelAnalysis{
		AnalysisResult: models.AnalysisResult{
			OverallScore:    85,
			RiskLevel:       models.RiskLow,
			Summary:         "Parece bom",
			Recommendations: []string{"Assinar"},
			IsValidContract: &invalid,
		},
	}

	result := PostProcess(input, "gemini")

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.NotEmpty(t, result.RedFlags)
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[0], "URGENTE")
}

func TestPostProcessLowScoreForcesCritical(t *testing.T) {
	input := &ModelAnalysis{
		AnalysisResult: models.AnalysisResult{
			OverallScore: 20,
			RiskLevel:    models.RiskMedium,
			Summary:      "Cobertura fraca",
		},
	}

	result := PostProcess(input, "openai")

	assert.Equal(t, models.RiskCritical, result.RiskLevel)
}

func TestPostProcessPrefixesProviderName(t *testing.T) {
	input := &ModelAnalysis{
		AnalysisResult: models.AnalysisResult{
			OverallScore: 80,
			RiskLevel:    models.RiskLow,
			Summary:      "Contrato adequado",
		},
	}

	result := PostProcess(input, "gemini")

	assert.Equal(t, "[gemini] Contrato adequado", result.Summary)
}

func TestPostProcessNormalizesNilSlices(t *testing.T) {
	input := &ModelAnalysis{
		AnalysisResult: models.AnalysisResult{
			OverallScore: 90,
			RiskLevel:    models.RiskLow,
			Summary:      "ok",
		},
	}

	result := PostProcess(input, "gemini")

	assert.NotNil(t, result.Findings)
	assert.NotNil(t, result.Recommendations)
	assert.NotNil(t, result.MissingClauses)
	assert.NotNil(t, result.RedFlags)
}

func TestBuildSystemPromptListsEnabledPoints(t *testing.T) {
	points := []models.AnalysisPoint{
		{Title: "Pagamento", Category: "financeiro", Weight: 5, Enabled: true, Keywords: []string{"pagamento"}},
		{Title: "Oculto", Category: "x", Weight: 3, Enabled: false, Keywords: []string{"oculto"}},
	}

	prompt := BuildSystemPrompt("Priorizar riscos regulatórios.", points)

	assert.Contains(t, prompt, "Pagamento")
	assert.NotContains(t, prompt, "Oculto")
	assert.Contains(t, prompt, "Priorizar riscos regulatórios.")
	assert.Contains(t, prompt, "overallScore")
}
