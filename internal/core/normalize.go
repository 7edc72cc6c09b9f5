package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vowelFolder replaces accented vowels (acute, grave, circumflex,
// diaeresis) with their base letter. Other letters such as Ñ are kept.
var vowelFolder = runes.Map(func(r rune) rune {
	d := []rune(norm.NFD.String(string(r)))
	if len(d) > 1 && strings.ContainsRune("AEIOUaeiou", d[0]) {
		return d[0]
	}
	return r
})

// NormalizeName maps a display name to the key used to group names that
// differ only by accents, punctuation or spacing.
//
//	NormalizeName("Café Résumé") -> "CAFE RESUME"
//	NormalizeName("  Dr. O'Neil, ") -> "DR ONEIL"
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	// NFC first so decomposed input folds like precomposed input.
	folded, _, err := transform.String(transform.Chain(norm.NFC, vowelFolder), strings.ToUpper(name))
	if err != nil {
		folded = strings.ToUpper(name)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '\'' || r == '.' || r == ',':
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
