package analysis

import (
	"grcdesk-backend/models"

	"github.com/google/uuid"
)

// DefaultPoints returns the built-in analysis rubric used when a tenant has
// not configured its own points. IDs are generated per call; callers that
// persist the defaults keep them stable from then on.
func DefaultPoints(tenantID uuid.UUID) []models.AnalysisPoint {
	points := []models.AnalysisPoint{
		{
			Category:    "Objeto",
			Title:       "Definição do Objeto",
			Description: "O contrato define claramente o objeto e o escopo dos serviços.",
			Weight:      9,
			Keywords:    []string{"objeto do contrato", "escopo", "especificação", "descrição dos serviços"},
		},
		{
			Category:    "Financeiro",
			Title:       "Condições de Pagamento",
			Description: "Valores, prazos e forma de pagamento estão definidos.",
			Weight:      8,
			Keywords:    []string{"pagamento", "valor", "preço", "reajuste", "nota de débito"},
		},
		{
			Category:    "Vigência",
			Title:       "Prazo e Rescisão",
			Description: "Vigência, renovação e hipóteses de rescisão estão previstas.",
			Weight:      8,
			Keywords:    []string{"vigência", "prazo", "rescisão", "renovação", "denúncia"},
		},
		{
			Category:    "Responsabilidade",
			Title:       "Limitação de Responsabilidade",
			Description: "Alocação de responsabilidade e limites indenizatórios.",
			Weight:      7,
			Keywords:    []string{"responsabilidade", "indenização", "danos", "perdas"},
		},
		{
			Category:    "Proteção de Dados",
			Title:       "Proteção de Dados Pessoais",
			Description: "Tratamento de dados pessoais conforme a LGPD.",
			Weight:      9,
			Keywords:    []string{"lgpd", "dados pessoais", "proteção de dados", "titular", "operador"},
		},
		{
			Category:    "Confidencialidade",
			Title:       "Confidencialidade",
			Description: "Obrigações de sigilo sobre informações trocadas.",
			Weight:      6,
			Keywords:    []string{"confidencialidade", "sigilo", "informações confidenciais"},
		},
		{
			Category:    "Compliance",
			Title:       "Anticorrupção e Compliance",
			Description: "Cláusulas anticorrupção e de integridade.",
			Weight:      8,
			Keywords:    []string{"anticorrupção", "lei 12.846", "integridade", "compliance", "suborno"},
		},
		{
			Category:    "Nível de Serviço",
			Title:       "Níveis de Serviço",
			Description: "Metas de desempenho e penalidades por descumprimento.",
			Weight:      5,
			Keywords:    []string{"nível de serviço", "sla", "penalidade", "multa"},
		},
	}

	for i := range points {
		points[i].ID = uuid.New()
		points[i].TenantID = tenantID
		points[i].Enabled = true
	}
	return points
}
