package analysis

import (
	"testing"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(title string, weight int, keywords ...string) models.AnalysisPoint {
	return models.AnalysisPoint{
		ID:       uuid.New(),
		Category: "test",
		Title:    title,
		Weight:   weight,
		Enabled:  true,
		Keywords: keywords,
	}
}

func TestAnalyzeZeroMatchesIsCritical(t *testing.T) {
	points := []models.AnalysisPoint{
		point("Garantias", 5, "garantia", "indenização"),
		point("Foro", 3, "foro", "comarca"),
	}

	result := Analyze("texto sem nenhuma das palavras esperadas", points, DefaultConfig())

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.NotEmpty(t, result.RedFlags)
	assert.Len(t, result.MissingClauses, 2)
}

func TestAnalyzeFullCoverageIsLowRisk(t *testing.T) {
	// Three keywords: expected matches = max(3*0.3, 1) = 1, so a single hit
	// already saturates coverage
	points := []models.AnalysisPoint{point("Pagamento", 5, "pagamento", "valor", "preço")}

	result := Analyze("o pagamento será efetuado mensalmente", points, DefaultConfig())

	assert.Equal(t, 100, result.OverallScore)
	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Empty(t, result.Findings)
	assert.Empty(t, result.MissingClauses)
}

func TestAnalyzeScoreIsMonotonicInMatches(t *testing.T) {
	points := []models.AnalysisPoint{
		point("Cobertura", 5, "alfa", "beta", "gama", "delta", "epsilon", "zeta", "eta", "teta", "iota", "capa"),
	}
	cfg := DefaultConfig()

	prev := -1
	texts := []string{
		"nada relevante aqui",
		"alfa",
		"alfa beta",
		"alfa beta gama",
		"alfa beta gama delta epsilon",
	}
	for _, text := range texts {
		score := Analyze(text, points, cfg).OverallScore
		assert.GreaterOrEqual(t, score, prev, "score must not decrease as matches increase: %q", text)
		prev = score
	}
}

func TestAnalyzeDisabledPointIsExcluded(t *testing.T) {
	enabled := point("Pagamento", 5, "pagamento")
	disabled := point("Garantias", 8, "garantia")
	disabled.Enabled = false

	text := "o pagamento será mensal"

	withDisabled := Analyze(text, []models.AnalysisPoint{enabled, disabled}, DefaultConfig())
	without := Analyze(text, []models.AnalysisPoint{enabled}, DefaultConfig())

	assert.Equal(t, without.OverallScore, withDisabled.OverallScore)
	assert.Equal(t, without.RiskLevel, withDisabled.RiskLevel)
	assert.Len(t, withDisabled.Findings, len(without.Findings))

	// Re-enabling restores the missing-clause finding
	disabled.Enabled = true
	reEnabled := Analyze(text, []models.AnalysisPoint{enabled, disabled}, DefaultConfig())
	assert.Contains(t, reEnabled.MissingClauses, "Garantias")
	assert.Less(t, reEnabled.OverallScore, withDisabled.OverallScore)
}

func TestAnalyzePartialCoverageBands(t *testing.T) {
	// Ten keywords: expected = 3, one match gives coverage 1/3 -> score 33,
	// which lands in the high-risk band
	points := []models.AnalysisPoint{
		point("Cobertura", 5, "alfa", "beta", "gama", "delta", "epsilon", "zeta", "eta", "teta", "iota", "capa"),
	}

	result := Analyze("somente alfa aparece", points, DefaultConfig())

	assert.Equal(t, 33, result.OverallScore)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, models.RiskMedium, result.Findings[0].RiskLevel)
}

func TestAnalyzeHeavyPointGetsHighRiskFinding(t *testing.T) {
	heavy := point("Proteção de Dados", 9, "lgpd", "dados pessoais", "titular", "consentimento")

	result := Analyze("contrato sem menção ao tema", []models.AnalysisPoint{heavy}, DefaultConfig())

	require.Len(t, result.Findings, 1)
	assert.Equal(t, models.RiskHigh, result.Findings[0].RiskLevel)
}

func TestAnalyzeDetectsRedFlagPhrases(t *testing.T) {
	points := []models.AnalysisPoint{point("Pagamento", 5, "pagamento")}
	text := "o pagamento é devido, mas o fornecedor fica isento de responsabilidade por atrasos"

	result := Analyze(text, points, DefaultConfig())

	require.NotEmpty(t, result.RedFlags)
	assert.Contains(t, result.RedFlags[0], "isento de responsabilidade")
}

func TestAnalyzeValidatorPassScorerZero(t *testing.T) {
	// A plausible contract can still score zero when the configured rubric
	// looks for vocabulary the document never uses
	require.True(t, Validate(validContract).IsValid)

	points := []models.AnalysisPoint{
		point("Propriedade Intelectual", 7, "propriedade intelectual", "direitos autorais", "patente"),
	}
	result := Analyze(validContract, points, DefaultConfig())

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
}

func TestInvalidResult(t *testing.T) {
	result := InvalidResult("documento muito curto")

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	require.NotNil(t, result.IsValidContract)
	assert.False(t, *result.IsValidContract)
	assert.Contains(t, result.Summary, "documento muito curto")
	require.Len(t, result.Findings, 1)
}

func TestClassifyScoreBands(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, models.RiskCritical, classifyScore(0, cfg))
	assert.Equal(t, models.RiskCritical, classifyScore(29, cfg))
	assert.Equal(t, models.RiskHigh, classifyScore(30, cfg))
	assert.Equal(t, models.RiskHigh, classifyScore(49, cfg))
	assert.Equal(t, models.RiskMedium, classifyScore(50, cfg))
	assert.Equal(t, models.RiskMedium, classifyScore(74, cfg))
	assert.Equal(t, models.RiskLow, classifyScore(75, cfg))
	assert.Equal(t, models.RiskLow, classifyScore(100, cfg))
}
