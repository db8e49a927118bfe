package analysis

import (
	"fmt"
	"math"
	"strings"

	"grcdesk-backend/models"
)

// Config holds the scoring thresholds. The cutoffs have no documented
// derivation; they are kept as configuration rather than constants.
type Config struct {
	LowCoverage float64 // below this coverage a point is flagged as insufficient
	OkCoverage  float64 // below this coverage a point needs attention

	CriticalBelow int // overall score bands
	HighBelow     int
	MediumBelow   int
}

// DefaultConfig returns the scoring thresholds used when none are configured.
func DefaultConfig() Config {
	return Config{
		LowCoverage:   0.3,
		OkCoverage:    0.7,
		CriticalBelow: 30,
		HighBelow:     50,
		MediumBelow:   75,
	}
}

// redFlagPhrases are risk phrases scanned for verbatim in the text.
var redFlagPhrases = []string{
	"limitação total",
	"isento de responsabilidade",
	"isenção total de responsabilidade",
	"renúncia de direitos",
	"irrevogável e irretratável",
	"sem qualquer garantia",
	"exime-se de qualquer obrigação",
}

// Analyze produces a deterministic coverage score for the text against the
// given analysis points. Disabled points are excluded from scoring. The
// result carries findings, missing clauses, red flags and a summary whose
// wording branches on the risk tier.
func Analyze(text string, points []models.AnalysisPoint, cfg Config) *models.AnalysisResult {
	lower := strings.ToLower(text)

	result := &models.AnalysisResult{
		Findings:        []models.Finding{},
		Recommendations: []string{},
		MissingClauses:  []string{},
		RedFlags:        []string{},
	}

	totalScore := 0.0
	maxScore := 0.0

	for _, point := range points {
		if !point.Enabled || point.Weight <= 0 {
			continue
		}

		matches := countPresent(lower, lowercaseAll(point.Keywords))
		expected := math.Max(float64(len(point.Keywords))*0.3, 1)
		coverage := math.Min(float64(matches)/expected, 1)

		totalScore += coverage * float64(point.Weight)
		maxScore += float64(point.Weight)

		switch {
		case coverage < cfg.LowCoverage:
			risk := models.RiskMedium
			if point.Weight >= 8 {
				risk = models.RiskHigh
			}
			result.Findings = append(result.Findings, models.Finding{
				ID:             fmt.Sprintf("point-%s", point.ID),
				Category:       point.Category,
				Title:          fmt.Sprintf("Cobertura insuficiente: %s", point.Title),
				Description:    fmt.Sprintf("Apenas %d das palavras-chave de %q foram encontradas no documento.", matches, point.Title),
				RiskLevel:      risk,
				Recommendation: fmt.Sprintf("Revisar o contrato e incluir disposições sobre %s.", point.Title),
			})
			result.MissingClauses = append(result.MissingClauses, point.Title)
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("Incluir ou reforçar cláusulas de %s.", point.Title))
		case coverage < cfg.OkCoverage:
			result.Findings = append(result.Findings, models.Finding{
				ID:             fmt.Sprintf("point-%s", point.ID),
				Category:       point.Category,
				Title:          fmt.Sprintf("Atenção: %s", point.Title),
				Description:    fmt.Sprintf("%q está presente, mas com cobertura parcial (%d palavras-chave encontradas).", point.Title, matches),
				RiskLevel:      models.RiskMedium,
				Recommendation: fmt.Sprintf("Detalhar as disposições de %s.", point.Title),
			})
		}
	}

	if maxScore > 0 && totalScore > 0 {
		result.OverallScore = int(math.Round(totalScore / maxScore * 100))
	} else {
		result.OverallScore = 0
	}

	result.RiskLevel = classifyScore(result.OverallScore, cfg)

	for _, phrase := range redFlagPhrases {
		if strings.Contains(lower, phrase) {
			result.RedFlags = append(result.RedFlags, fmt.Sprintf("Frase de risco encontrada: %q", phrase))
		}
	}
	if result.OverallScore == 0 {
		result.RedFlags = append(result.RedFlags, "Nenhum dos pontos de análise habilitados foi encontrado no documento.")
	} else if result.OverallScore < cfg.CriticalBelow {
		result.RedFlags = append(result.RedFlags, "Cobertura contratual criticamente baixa em todos os pontos de análise.")
	}

	result.Summary = summarize(result.OverallScore, result.RiskLevel, len(result.Findings))

	return result
}

// classifyScore maps the aggregate score to a discrete risk level.
func classifyScore(score int, cfg Config) models.RiskLevel {
	switch {
	case score == 0:
		return models.RiskCritical
	case score < cfg.CriticalBelow:
		return models.RiskCritical
	case score < cfg.HighBelow:
		return models.RiskHigh
	case score < cfg.MediumBelow:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func summarize(score int, risk models.RiskLevel, findings int) string {
	switch risk {
	case models.RiskCritical:
		return fmt.Sprintf("Análise crítica: pontuação geral de %d/100. O documento não cobre os pontos de análise essenciais; recomenda-se revisão jurídica completa antes de qualquer assinatura.", score)
	case models.RiskHigh:
		return fmt.Sprintf("Risco alto: pontuação geral de %d/100 com %d apontamentos. Diversas cláusulas importantes estão ausentes ou incompletas.", score, findings)
	case models.RiskMedium:
		return fmt.Sprintf("Risco médio: pontuação geral de %d/100 com %d apontamentos. O contrato cobre os pontos principais, mas há lacunas a endereçar.", score, findings)
	default:
		return fmt.Sprintf("Risco baixo: pontuação geral de %d/100. O contrato cobre adequadamente os pontos de análise configurados.", score)
	}
}

// InvalidResult builds the critical-risk result returned when the
// plausibility gate rejects the text. Validation failure propagates into the
// result as a finding, never as an error.
func InvalidResult(reason string) *models.AnalysisResult {
	invalid := false
	return &models.AnalysisResult{
		OverallScore: 0,
		RiskLevel:    models.RiskCritical,
		Summary:      fmt.Sprintf("Documento rejeitado pela validação: %s", reason),
		Findings: []models.Finding{{
			ID:             "validation",
			Category:       "Validação",
			Title:          "Documento não reconhecido como contrato",
			Description:    reason,
			RiskLevel:      models.RiskCritical,
			Recommendation: "Verificar se o arquivo enviado é de fato um contrato, ou colar o texto manualmente.",
		}},
		Recommendations: []string{"Enviar um documento contratual válido para análise."},
		MissingClauses:  []string{},
		RedFlags:        []string{fmt.Sprintf("Validação falhou: %s", reason)},
		IsValidContract: &invalid,
	}
}

func lowercaseAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}
