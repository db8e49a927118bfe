package analysis

import (
	"strings"

	"grcdesk-backend/models"
)

// categoryRule is a weighted keyword rule for one ethics report category.
type categoryRule struct {
	category models.ReportCategory
	severity models.ReportSeverity
	weight   int
	keywords []string
}

var categoryRules = []categoryRule{
	{
		category: models.CategoryFraud,
		severity: models.SeverityHigh,
		weight:   3,
		keywords: []string{"fraude", "desvio", "falsificação", "superfaturamento", "nota fria"},
	},
	{
		category: models.CategoryCorruption,
		severity: models.SeverityCritical,
		weight:   3,
		keywords: []string{"suborno", "propina", "corrupção", "vantagem indevida", "agente público"},
	},
	{
		category: models.CategoryHarassment,
		severity: models.SeverityHigh,
		weight:   3,
		keywords: []string{"assédio", "constrangimento", "humilhação", "intimidação", "discriminação"},
	},
	{
		category: models.CategoryDataPrivacy,
		severity: models.SeverityHigh,
		weight:   2,
		keywords: []string{"vazamento", "dados pessoais", "lgpd", "acesso indevido", "privacidade"},
	},
	{
		category: models.CategorySafety,
		severity: models.SeverityMedium,
		weight:   2,
		keywords: []string{"acidente", "segurança do trabalho", "epi", "risco físico", "incidente"},
	},
	{
		category: models.CategoryConflictOfInterest,
		severity: models.SeverityMedium,
		weight:   2,
		keywords: []string{"conflito de interesse", "parente", "empresa própria", "benefício pessoal"},
	},
}

// ClassifyReport suggests a category and severity for an ethics report based
// on its free-text description. Returns CategoryOther with low severity when
// no rule scores.
func ClassifyReport(description string) (models.ReportCategory, models.ReportSeverity) {
	lower := strings.ToLower(description)

	bestScore := 0
	best := categoryRule{category: models.CategoryOther, severity: models.SeverityLow}

	for _, rule := range categoryRules {
		score := countPresent(lower, rule.keywords) * rule.weight
		if score > bestScore {
			bestScore = score
			best = rule
		}
	}

	return best.category, best.severity
}
