// Package docgen produces the static PDF artifacts served by the API.
package docgen

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

type manualSection struct {
	title string
	body  string
}

var manualSections = []manualSection{
	{
		title: "1. Canal de Ética",
		body:  "Relatos podem ser registrados de forma identificada ou anônima. Cada relato recebe um código de referência e um prazo de tratamento conforme a severidade: crítica em 48 horas, alta em 96 horas, média em 7 dias e baixa em 14 dias. O relato passa pelos estágios de recebimento, triagem, investigação, resolução e encerramento.",
	},
	{
		title: "2. Evidências",
		body:  "Arquivos de evidência são aceitos nos formatos PDF, TXT, DOC, DOCX e RTF, com limite de 10MB. Cada evidência mantém uma cadeia de custódia: o registro de coleta é criado no envio e cada acesso posterior é registrado automaticamente.",
	},
	{
		title: "3. Homologação de Fornecedores",
		body:  "O fluxo de homologação possui cinco etapas fixas: dados básicos, due diligence, avaliação de risco, revisão contratual e aprovação final. O avanço para a próxima etapa exige a conclusão da etapa atual; a navegação para etapas anteriores é livre.",
	},
	{
		title: "4. Due Diligence",
		body:  "O questionário de due diligence usa três status de conformidade: conforme, conforme com ressalva e não conforme. Um item obrigatório marcado como não conforme só é considerado tratado quando acompanhado de justificativa por escrito.",
	},
	{
		title: "5. Análise de Contratos",
		body:  "A análise de contratos valida o documento, pontua a cobertura dos pontos de análise configurados e classifica o risco em baixo, médio, alto ou crítico. Quando um provedor de IA está configurado, a análise é delegada a ele; em caso de falha, o sistema recorre automaticamente à análise heurística determinística.",
	},
}

// ComplianceManual renders the static user manual as a PDF. The content is
// fixed and independent of any analysis results.
func ComplianceManual() (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Manual de Uso - GRC Desk", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Manual de Uso — GRC Desk"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, tr("Gestão de ética, fornecedores e análise de contratos"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, section := range manualSections {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, tr(section.title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(section.body), "", "L", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render manual: %w", err)
	}
	return &buf, nil
}
