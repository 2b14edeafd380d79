package normalisers

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// asciiFold maps unicode punctuation that commonly appears in exported
// documents to its ASCII equivalent. Applied after NFKC so that the
// same sentence hashes identically across export tools.
var asciiFold = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	" ", " ", // no-break space
	"…", "...", // ellipsis
)

var (
	thousandsRe  = regexp.MustCompile(`(\d),(\d{3})\b`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
	percentRe    = regexp.MustCompile(`(\d)\s+%`)
	currencyRe   = regexp.MustCompile(`([$€£])\s+(\d)`)
	tokenRe      = regexp.MustCompile(`[a-z0-9]+`)
)

// NormalizeText folds text into its canonical form. The pipeline is
// deterministic: equal input always yields equal output.
//
// Steps: NFKC normalisation, ASCII folding of common unicode
// punctuation, thousands-separator removal inside numbers, tightening
// of percent and currency spacing, then whitespace collapse (single
// spaces within lines, at most two consecutive newlines).
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = asciiFold.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// 1,234,567 → 1234567; applied repeatedly for nested groups.
	for thousandsRe.MatchString(text) {
		text = thousandsRe.ReplaceAllString(text, "$1$2")
	}

	text = percentRe.ReplaceAllString(text, "$1%")
	text = currencyRe.ReplaceAllString(text, "$1$2")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRunRe.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// Tokenize lowercases the text and splits it into alphanumeric runs.
// Used by the lexical retrieval scorer; everything outside [a-z0-9]
// is a separator.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}
