// Package ai holds the external-model path of contract analysis: provider
// clients, prompt construction and defensive parsing of model output.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"grcdesk-backend/models"
)

// Provider is the narrow contract required from any text-generation backend:
// accept a system+user message pair and return a string, optionally
// containing embedded JSON.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

var (
	ErrEmptyResponse = errors.New("model returned empty content")
	ErrNoJSON        = errors.New("no JSON object found in model output")
	ErrBadShape      = errors.New("model output does not match the expected result shape")
)

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ModelAnalysis is the structured output requested from the model. It embeds
// the analysis result plus the document-type guess the prompt asks for.
type ModelAnalysis struct {
	models.AnalysisResult
	DocumentType string `json:"documentType,omitempty"`
}

// BuildSystemPrompt embeds the tenant's custom instructions and the enabled
// analysis points into a strict structured-output instruction.
func BuildSystemPrompt(instructions string, points []models.AnalysisPoint) string {
	var b strings.Builder

	b.WriteString("Você é um analista jurídico especializado em revisão de contratos de fornecedores.\n")
	if instructions != "" {
		b.WriteString("\nInstruções adicionais do cliente:\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}

	b.WriteString("\nAvalie o documento contra os seguintes pontos de análise:\n")
	for _, p := range points {
		if !p.Enabled {
			continue
		}
		fmt.Fprintf(&b, "- [%s] %s (peso %d): %s. Palavras-chave: %s\n",
			p.Category, p.Title, p.Weight, p.Description, strings.Join(p.Keywords, ", "))
	}

	b.WriteString(`
Responda APENAS com um objeto JSON válido, sem texto adicional, no formato:
{
  "overallScore": <0-100>,
  "riskLevel": "low" | "medium" | "high" | "critical",
  "summary": "<resumo em português>",
  "findings": [{"id": "...", "category": "...", "title": "...", "description": "...", "riskLevel": "...", "recommendation": "...", "clauseReference": "..."}],
  "recommendations": ["..."],
  "missingClauses": ["..."],
  "redFlags": ["..."],
  "isValidContract": true | false,
  "documentType": "<tipo do documento>"
}`)

	return b.String()
}

// BuildUserPrompt wraps the document text and filename as the user turn.
func BuildUserPrompt(text, filename string) string {
	if filename == "" {
		return "Documento para análise:\n\n" + text
	}
	return fmt.Sprintf("Arquivo: %s\n\nDocumento para análise:\n\n%s", filename, text)
}

// ParseResult defensively extracts the analysis result from raw model
// output: strip code fences, extract the first top-level JSON block,
// unmarshal, and verify the minimum shape (overallScore, riskLevel, summary).
func ParseResult(content string) (*ModelAnalysis, error) {
	cleaned := stripFences(content)

	block := jsonBlockRe.FindString(cleaned)
	if block == "" {
		return nil, ErrNoJSON
	}

	// Shape check first: a zero score must be distinguishable from a
	// missing field, so probe the raw keys before unmarshalling.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	for _, key := range []string{"overallScore", "riskLevel", "summary"} {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrBadShape, key)
		}
	}

	var result ModelAnalysis
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	switch result.RiskLevel {
	case models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical:
	default:
		return nil, fmt.Errorf("%w: unknown riskLevel %q", ErrBadShape, result.RiskLevel)
	}

	return &result, nil
}

// PostProcess applies the safety overrides to a model-produced result and
// discloses the provider in the summary.
func PostProcess(result *ModelAnalysis, providerName string) *models.AnalysisResult {
	out := result.AnalysisResult

	if out.IsValidContract != nil && !*out.IsValidContract {
		out.OverallScore = 0
		out.RiskLevel = models.RiskCritical
		if len(out.RedFlags) == 0 {
			out.RedFlags = []string{"O modelo identificou que o documento não é um contrato válido."}
		}
		out.Recommendations = append(
			[]string{"URGENTE: confirmar se o documento enviado é de fato um contrato antes de prosseguir."},
			out.Recommendations...,
		)
	}

	if out.OverallScore < 30 && out.RiskLevel != models.RiskCritical {
		out.RiskLevel = models.RiskCritical
	}

	out.Summary = fmt.Sprintf("[%s] %s", providerName, out.Summary)

	if out.Findings == nil {
		out.Findings = []models.Finding{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	if out.MissingClauses == nil {
		out.MissingClauses = []string{}
	}
	if out.RedFlags == nil {
		out.RedFlags = []string{}
	}

	return &out
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
