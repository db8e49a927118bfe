// Package extract pulls plain text out of uploaded documents. Extraction is
// best-effort: the PDF path is a byte-filtering heuristic, not a parser, and
// unsupported formats ask the caller to paste the text instead.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrNeedsManualPaste signals that the file format could not be extracted
// reliably and the user should paste the document text instead.
var ErrNeedsManualPaste = errors.New("could not extract text from this file; paste the document text instead")

// minExtractedLength is the minimum amount of text the PDF heuristic must
// recover before the result is trusted.
const minExtractedLength = 100

// Text extracts plain text from file data based on the filename extension.
func Text(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return string(data), nil
	case ".rtf":
		return stripRTF(string(data)), nil
	case ".pdf":
		text := pdfLiteralStrings(data)
		if len(text) < minExtractedLength {
			return "", fmt.Errorf("pdf heuristic recovered only %d characters: %w", len(text), ErrNeedsManualPaste)
		}
		return text, nil
	case ".doc", ".docx":
		return "", ErrNeedsManualPaste
	default:
		return "", fmt.Errorf("unsupported file type %q: %w", filepath.Ext(filename), ErrNeedsManualPaste)
	}
}

// pdfLiteralStrings collects the contents of PDF literal string objects
// (parenthesised text). This recovers text from simple, uncompressed PDFs
// only; compressed streams yield nothing and trigger the manual-paste path.
func pdfLiteralStrings(data []byte) string {
	var b strings.Builder
	depth := 0
	escaped := false

	for _, c := range data {
		if depth > 0 {
			if escaped {
				escaped = false
				if c == 'n' || c == 'r' {
					b.WriteByte('\n')
				} else if c >= 32 && c < 127 {
					b.WriteByte(c)
				}
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					b.WriteByte(' ')
				}
			default:
				if c >= 32 && c < 127 || c >= 0xC0 {
					b.WriteByte(c)
				}
			}
			continue
		}
		if c == '(' {
			depth = 1
		}
	}

	return strings.TrimSpace(b.String())
}

// stripRTF removes RTF control words and group braces, keeping plain text.
func stripRTF(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '{', '}':
			i++
		case '\\':
			i++
			// Escaped literal braces and backslash
			if i < len(s) && (s[i] == '{' || s[i] == '}' || s[i] == '\\') {
				b.WriteByte(s[i])
				i++
				continue
			}
			// Control word: letters followed by optional numeric parameter
			start := i
			for i < len(s) && unicode.IsLetter(rune(s[i])) {
				i++
			}
			word := s[start:i]
			for i < len(s) && (s[i] == '-' || unicode.IsDigit(rune(s[i]))) {
				i++
			}
			// A single space after a control word is a delimiter, not content
			if i < len(s) && s[i] == ' ' {
				i++
			}
			if word == "par" || word == "line" {
				b.WriteByte('\n')
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return strings.TrimSpace(b.String())
}
