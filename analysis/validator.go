// Package analysis implements the deterministic contract scoring engine:
// a plausibility validator, a keyword-weighted scorer and a report
// category classifier. All functions are pure and safe for concurrent use.
package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minContractLength is the minimum text length accepted by the validator.
const minContractLength = 500

// genericContractKeywords is the generic contract vocabulary. At least
// three distinct entries must appear in the text.
var genericContractKeywords = []string{
	"contrato",
	"acordo",
	"termo",
	"contratante",
	"contratada",
	"cláusula",
	"objeto",
	"obrigações",
	"partes",
	"vigência",
	"rescisão",
}

// structuralMarkers are section markers typical of contract structure.
// At least two distinct entries must appear in the text.
var structuralMarkers = []string{
	"cláusula",
	"artigo",
	"parágrafo",
	"das obrigações",
	"do objeto",
	"disposições gerais",
	"disposições finais",
}

// disallowedDocumentMarkers identify document types that are not contracts.
// Any hit rejects the text outright.
var disallowedDocumentMarkers = []string{
	"currículo",
	"curriculum vitae",
	"nota fiscal",
	"recibo de pagamento",
	"boleto bancário",
	"receita médica",
	"atestado médico",
	"manual do usuário",
	"política de privacidade do site",
	"ata de reunião",
	"holerite",
}

// essentialGroup is a group of interchangeable keywords for one essential
// contract element.
type essentialGroup struct {
	name      string
	mandatory bool
	keywords  []string
}

var essentialGroups = []essentialGroup{
	{name: "objeto ou serviço", mandatory: true, keywords: []string{"objeto", "serviço", "serviços", "fornecimento", "prestação"}},
	{name: "partes contratantes", mandatory: true, keywords: []string{"contratante", "contratada", "contratado", "partes"}},
	{name: "pagamento", keywords: []string{"pagamento", "valor", "preço", "remuneração"}},
	{name: "prazo", keywords: []string{"prazo", "vigência", "duração"}},
	{name: "obrigações", keywords: []string{"obrigações", "responsabilidades", "deveres"}},
}

// ValidationResult is the typed outcome of the plausibility gate. A failed
// validation is a value, never an error.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason,omitempty"`
}

// Validate decides whether text plausibly constitutes a contract before any
// scoring happens. Each unmet condition short-circuits with a specific
// human-readable reason.
func Validate(text string) ValidationResult {
	if n := utf8.RuneCountInString(text); n < minContractLength {
		return ValidationResult{
			IsValid: false,
			Reason:  fmt.Sprintf("documento muito curto (%d caracteres; mínimo %d) para ser um contrato", n, minContractLength),
		}
	}

	lower := strings.ToLower(text)

	for _, marker := range disallowedDocumentMarkers {
		if strings.Contains(lower, marker) {
			return ValidationResult{
				IsValid: false,
				Reason:  fmt.Sprintf("o documento aparenta ser de outro tipo (%q encontrado), não um contrato", marker),
			}
		}
	}

	if n := countPresent(lower, genericContractKeywords); n < 3 {
		return ValidationResult{
			IsValid: false,
			Reason:  fmt.Sprintf("vocabulário contratual insuficiente: apenas %d de %d termos genéricos encontrados (mínimo 3)", n, len(genericContractKeywords)),
		}
	}

	if n := countPresent(lower, structuralMarkers); n < 2 {
		return ValidationResult{
			IsValid: false,
			Reason:  fmt.Sprintf("estrutura contratual insuficiente: apenas %d marcadores estruturais encontrados (mínimo 2)", n),
		}
	}

	matched := 0
	for _, group := range essentialGroups {
		present := countPresent(lower, group.keywords) > 0
		if present {
			matched++
			continue
		}
		if group.mandatory {
			return ValidationResult{
				IsValid: false,
				Reason:  fmt.Sprintf("elemento essencial ausente: %s", group.name),
			}
		}
	}
	if matched < 2 {
		return ValidationResult{
			IsValid: false,
			Reason:  fmt.Sprintf("apenas %d de %d elementos essenciais presentes (mínimo 2)", matched, len(essentialGroups)),
		}
	}

	return ValidationResult{IsValid: true}
}

// countPresent counts how many distinct keywords occur in the lowercased text.
func countPresent(lowerText string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			count++
		}
	}
	return count
}
