// Package naming decomposes test method identifiers into readable phrases
// and detects their naming convention.
package naming

import (
	"regexp"
	"strings"

	"github.com/specvital/testdoc/pkg/domain"
)

// testCasePattern matches identifiers carrying a test case prefix, e.g. "TC01_loginWorks".
var testCasePattern = regexp.MustCompile(`^(TC\d+)_(.*)$`)

// upperPattern matches every uppercase ASCII letter for camelCase splitting.
var upperPattern = regexp.MustCompile(`([A-Z])`)

const testWord = "test"

// gherkinKeywords in the order they are rewritten.
var gherkinKeywords = []struct {
	word   string
	marker string
}{
	{"given", "\nGiven "},
	{"when", "\nWhen "},
	{"then", "\nThen "},
}

// Decomposer turns an identifier into NameTokens.
type Decomposer interface {
	Decompose(name string) domain.NameTokens
}

// DecomposerFunc adapts a plain function to the Decomposer interface.
type DecomposerFunc func(name string) domain.NameTokens

// Decompose calls f(name).
func (f DecomposerFunc) Decompose(name string) domain.NameTokens {
	return f(name)
}

// Standard is the uncached Decomposer.
var Standard Decomposer = DecomposerFunc(Decompose)

// Decompose splits a method identifier into its test case id and a readable phrase.
//
// Identifiers containing "given", "when" and "then" are treated as Gherkin style
// and their phrase is split over lines per keyword. Decompose never fails; an
// identifier equal to "test" yields an empty phrase.
func Decompose(name string) domain.NameTokens {
	tokens := domain.NameTokens{Kind: domain.NamingGeneric}

	remainder := name
	if m := testCasePattern.FindStringSubmatch(name); m != nil {
		tokens.TestCaseID = m[1]
		remainder = m[2]
	}

	phrase := strings.ReplaceAll(remainder, testWord, "")
	phrase = upperPattern.ReplaceAllString(phrase, " $1")
	phrase = strings.TrimSpace(strings.ToLower(phrase))

	if IsGherkin(phrase) {
		tokens.Kind = domain.NamingGherkin
		tokens.Phrase = gherkinPhrase(phrase)
		return tokens
	}

	tokens.Phrase = strings.ReplaceAll(phrase, "_", " ")
	return tokens
}

// IsGherkin reports whether a lowercased phrase contains all of given, when and then.
func IsGherkin(phrase string) bool {
	for _, kw := range gherkinKeywords {
		if !strings.Contains(phrase, kw.word) {
			return false
		}
	}
	return true
}

func gherkinPhrase(phrase string) string {
	for _, kw := range gherkinKeywords {
		phrase = strings.ReplaceAll(phrase, kw.word, kw.marker)
	}
	phrase = strings.ReplaceAll(phrase, testWord, "")
	phrase = strings.ReplaceAll(phrase, "_", " ")
	return strings.TrimSpace(phrase)
}
