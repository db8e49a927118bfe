package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlainFile(t *testing.T) {
	text, err := Text("contrato.txt", []byte("conteúdo do contrato"))
	require.NoError(t, err)
	assert.Equal(t, "conteúdo do contrato", text)
}

func TestTextRTF(t *testing.T) {
	rtf := `{\rtf1\ansi\deff0 {\fonttbl {\f0 Times New Roman;}}\f0\fs24 Primeira linha\par Segunda linha}`

	text, err := Text("contrato.rtf", []byte(rtf))
	require.NoError(t, err)
	assert.Contains(t, text, "Primeira linha")
	assert.Contains(t, text, "Segunda linha")
	assert.NotContains(t, text, `\par`)
	assert.NotContains(t, text, "{")
}

func TestTextPDFLiteralStrings(t *testing.T) {
	// Uncompressed PDF text operators carry literal strings in parentheses
	var b strings.Builder
	b.WriteString("%PDF-1.4\n1 0 obj\nBT\n")
	for i := 0; i < 10; i++ {
		b.WriteString("(Esta linha faz parte do contrato de prestação) Tj\n")
	}
	b.WriteString("ET\nendobj")

	text, err := Text("contrato.pdf", []byte(b.String()))
	require.NoError(t, err)
	assert.Contains(t, text, "Esta linha faz parte do contrato")
}

func TestTextPDFCompressedFallsBack(t *testing.T) {
	// A compressed stream exposes no literal strings, so the heuristic
	// recovers almost nothing and asks for manual paste
	data := []byte("%PDF-1.7\nstream\x01\x02\x03\x04endstream")

	_, err := Text("contrato.pdf", data)
	assert.ErrorIs(t, err, ErrNeedsManualPaste)
}

func TestTextWordDocumentsUnsupported(t *testing.T) {
	_, err := Text("contrato.docx", []byte("PK..."))
	assert.ErrorIs(t, err, ErrNeedsManualPaste)

	_, err = Text("contrato.doc", []byte{0xD0, 0xCF})
	assert.ErrorIs(t, err, ErrNeedsManualPaste)
}

func TestTextUnknownExtension(t *testing.T) {
	_, err := Text("planilha.xlsx", []byte{})
	assert.ErrorIs(t, err, ErrNeedsManualPaste)
}

func TestStripRTFEscapedBraces(t *testing.T) {
	assert.Equal(t, `chaves {literais} e \ barra`, stripRTF(`chaves \{literais\} e \\ barra`))
}

func TestPDFLiteralStringsNestedAndEscaped(t *testing.T) {
	text := pdfLiteralStrings([]byte(`(clausula (primeira) do contrato) (linha\n seguinte)`))
	assert.Contains(t, text, "primeira")
	assert.Contains(t, text, "clausula")
	assert.Contains(t, text, "linha\n seguinte")
}
