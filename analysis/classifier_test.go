package analysis

import (
	"testing"

	"grcdesk-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReportCorruption(t *testing.T) {
	category, severity := ClassifyReport("Funcionário ofereceu propina a agente público para liberar a licença")

	assert.Equal(t, models.CategoryCorruption, category)
	assert.Equal(t, models.SeverityCritical, severity)
}

func TestClassifyReportHarassment(t *testing.T) {
	category, severity := ClassifyReport("Gestor pratica assédio e intimidação constante contra a equipe")

	assert.Equal(t, models.CategoryHarassment, category)
	assert.Equal(t, models.SeverityHigh, severity)
}

func TestClassifyReportDataPrivacy(t *testing.T) {
	category, severity := ClassifyReport("Houve vazamento de dados pessoais de clientes sem comunicação à autoridade, violando a LGPD")

	assert.Equal(t, models.CategoryDataPrivacy, category)
	assert.Equal(t, models.SeverityHigh, severity)
}

func TestClassifyReportFallsBackToOther(t *testing.T) {
	category, severity := ClassifyReport("Tenho uma sugestão de melhoria para o refeitório")

	assert.Equal(t, models.CategoryOther, category)
	assert.Equal(t, models.SeverityLow, severity)
}

func TestClassifyReportPicksHighestScore(t *testing.T) {
	// One harassment keyword vs three fraud keywords: fraud wins
	category, _ := ClassifyReport("Denúncia de fraude com desvio de verba e superfaturamento, além de constrangimento")

	assert.Equal(t, models.CategoryFraud, category)
}
