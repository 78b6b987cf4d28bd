// Package ingredient implements the deterministic canonicalization of drug
// descriptions into ingredient tokens. Catalog text is inconsistent free
// text (differing salts, dosage strings, pharmaceutical forms); the
// canonical token is the join key for grouping and indexed search.
//
// Canonicalization is a fixed, ordered list of rule-based text transforms.
// It is not fuzzy matching: salts or forms outside the hard-coded term
// lists pass through unchanged.
package ingredient

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks removes diacritical marks so that accented catalog vocabulary
// ("Cápsula", "Solución") matches the term lists below.
var foldMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

var (
	// Salt and ester prefixes with an optional trailing 'de' connective.
	reSalt = regexp.MustCompile(
		`\b(clorhidrato|sulfato|besilato|maleato|tartrato|citrato|acetato|bromuro)\s+(de\s+)?`)

	// Concentration expressions: a number followed by a unit token.
	// Matching happens on lower-cased text, hence 'meq' for mEq.
	reConcentration = regexp.MustCompile(
		`\d+(\.\d+)?\s*(mg|g|ml|mcg|μg|ui|%|meq)`)

	// Pharmaceutical-form nouns.
	reForm = regexp.MustCompile(
		`\b(tableta|capsula|ampolleta|solucion|crema|gel|jarabe|supositorio|parche)\b`)

	// Filler words common in catalog clauses.
	reFiller = regexp.MustCompile(`\b(cada|contiene|envase|con)\b`)

	reSymbols    = regexp.MustCompile(`[^\w\s]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Canonicalize converts a record's free text into its canonical ingredient
// token. The generic name wins over the description when present. The
// function is pure: identical inputs always produce the identical token,
// which is what makes a full normalization pass idempotent and
// order-independent. Empty input produces an empty string, never a nil
// sentinel.
func Canonicalize(description, genericName string) string {
	text := description
	if genericName != "" {
		text = genericName
	}
	if text == "" {
		return ""
	}

	text = fold(strings.ToLower(text))

	// Only the first salt prefix is removed per canonicalization.
	if loc := reSalt.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + text[loc[1]:]
	}

	text = reConcentration.ReplaceAllString(text, "")
	text = reForm.ReplaceAllString(text, "")
	text = reFiller.ReplaceAllString(text, "")
	text = reSymbols.ReplaceAllString(text, "")
	text = reWhitespace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return strings.ToUpper(text)
}

// CanonicalizeTerm canonicalizes a search term. Terms run in
// description-only mode so that the same rules apply to queries and to
// stored records.
func CanonicalizeTerm(term string) string {
	return Canonicalize(term, "")
}

func fold(s string) string {
	res, _, err := transform.String(foldMarks, s)
	if err != nil {
		return s
	}
	return res
}
