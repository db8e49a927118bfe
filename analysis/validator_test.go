package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// validContract is a minimal Portuguese service agreement that passes every
// validation gate.
const validContract = `CONTRATO DE PRESTAÇÃO DE SERVIÇOS

Pelo presente instrumento, as partes, de um lado a CONTRATANTE, empresa com
sede na capital, e de outro lado a CONTRATADA, prestadora de serviços de
tecnologia, celebram o presente contrato mediante as cláusulas seguintes.

CLÁUSULA PRIMEIRA - DO OBJETO
O objeto do presente contrato é a prestação de serviços de consultoria em
tecnologia da informação pela contratada.

CLÁUSULA SEGUNDA - DAS OBRIGAÇÕES
São obrigações da contratada executar os serviços com diligência. A
contratante deverá efetuar o pagamento do valor acordado no prazo previsto.

CLÁUSULA TERCEIRA - DA VIGÊNCIA
O presente acordo tem vigência de doze meses a contar da assinatura, podendo
ser encerrado por rescisão mediante aviso prévio de trinta dias.

ARTIGO FINAL - DISPOSIÇÕES GERAIS
Fica eleito o foro da comarca da capital para dirimir quaisquer dúvidas.`

func TestValidateAcceptsContract(t *testing.T) {
	result := Validate(validContract)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Reason)
}

func TestValidateRejectsShortText(t *testing.T) {
	// All the vocabulary in the world does not compensate for length
	short := "contrato acordo termo contratante contratada cláusula objeto obrigações partes vigência rescisão"
	result := Validate(short)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Reason, "muito curto")
}

func TestValidateCountsRunesNotBytes(t *testing.T) {
	// Accented text inflates byte length past the minimum while staying under
	// it in characters; 492 runes, 519 bytes, every other gate satisfied
	text := strings.Repeat("Contrato e acordo entre contratante e contratada: cláusula sobre objeto, obrigações, vigência, prestação de serviço, pagamento e prazo. Artigo: disposições gerais. ", 3)
	result := Validate(text)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Reason, "muito curto")
	assert.Contains(t, result.Reason, "492 caracteres")
}

func TestValidateRejectsSparseVocabulary(t *testing.T) {
	text := strings.Repeat("Relatório mensal de atividades da equipe de operações. ", 20)
	result := Validate(text)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Reason, "vocabulário contratual insuficiente")
}

func TestValidateRejectsDisallowedDocumentType(t *testing.T) {
	text := "Currículo profissional. " + validContract
	result := Validate(text)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Reason, "outro tipo")
}

func TestValidateRejectsMissingStructure(t *testing.T) {
	// Generic vocabulary without any section markers
	text := strings.Repeat("O contrato firmado entre as partes estabelece um acordo de fornecimento com obrigações mútuas e vigência determinada. ", 6)
	result := Validate(text)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Reason, "estrutura contratual insuficiente")
}

func TestValidateRequiresMandatoryElements(t *testing.T) {
	// Vocabulary and structure present, but nothing about the object of the
	// agreement or the services provided
	text := strings.Repeat("O presente contrato e acordo, conforme a cláusula e o artigo abaixo, trata do prazo e do pagamento. ", 8)
	result := Validate(text)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Reason, "elemento essencial ausente")
}

func TestCountPresentCountsDistinctKeywords(t *testing.T) {
	assert.Equal(t, 2, countPresent("contrato com cláusula", []string{"contrato", "cláusula", "vigência"}))
	assert.Equal(t, 0, countPresent("texto qualquer", []string{"contrato"}))
}
