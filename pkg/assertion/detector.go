// Package assertion translates assertion source lines into prose fragments.
//
// Detection is string based: a Detector looks for assertion call names in a
// single line and extracts the assertion message or its arguments. Quoted
// messages containing escaped quotes or spanning several lines are not
// supported.
package assertion

import (
	"strings"

	"github.com/specvital/testdoc/pkg/domain"
)

const (
	// conditionDetail is used when neither a message nor arguments can be extracted.
	conditionDetail = "the test condition is validated"
	// argumentsPrefix precedes the raw arguments of an assertion without message.
	argumentsPrefix = conditionDetail + ": "
)

// Detector recognizes assertion lines.
type Detector interface {
	// Name returns the detector identifier (e.g., "testng").
	Name() string
	// Priority returns the detector priority (higher = tried first).
	Priority() int
	// Detect returns the fragment for line and true, or false when line is not an assertion it knows.
	Detect(line string) (domain.AssertionFragment, bool)
}

// Rule maps an assertion call name to the verb phrase opening its sentence.
type Rule struct {
	Keyword string
	Verb    string
}

// TestNGRules are the assertion calls shared by TestNG and JUnit, in detection order.
// Matching is by case-sensitive substring and the first rule wins.
var TestNGRules = []Rule{
	{Keyword: "assertEquals", Verb: "Verifies that "},
	{Keyword: "assertTrue", Verb: "Confirms that "},
	{Keyword: "assertFalse", Verb: "Ensures that "},
	{Keyword: "assertNotNull", Verb: "Validates that "},
	{Keyword: "assertNull", Verb: "Checks that "},
}

// KeywordDetector matches lines by substring against an ordered rule table.
type KeywordDetector struct {
	name     string
	priority int
	rules    []Rule
}

// NewKeywordDetector creates a detector trying rules in the given order.
func NewKeywordDetector(name string, priority int, rules []Rule) *KeywordDetector {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &KeywordDetector{
		name:     name,
		priority: priority,
		rules:    copied,
	}
}

// Name returns the detector identifier.
func (d *KeywordDetector) Name() string { return d.name }

// Priority returns the detector priority.
func (d *KeywordDetector) Priority() int { return d.priority }

// Detect returns the fragment of the first rule whose keyword occurs in line.
func (d *KeywordDetector) Detect(line string) (domain.AssertionFragment, bool) {
	for _, r := range d.rules {
		if strings.Contains(line, r.Keyword) {
			return domain.AssertionFragment{
				VerbPhrase: r.Verb,
				Detail:     ExtractDetail(line),
			}, true
		}
	}
	return domain.AssertionFragment{}, false
}

// ExtractDetail returns the text between the first pair of double quotes.
// Without a complete quoted message it falls back to the text between the
// first "(" and the last ")", and finally to a generic phrase.
func ExtractDetail(line string) string {
	if start := strings.IndexByte(line, '"'); start >= 0 {
		if end := strings.IndexByte(line[start+1:], '"'); end >= 0 {
			return line[start+1 : start+1+end]
		}
	}

	open := strings.IndexByte(line, '(')
	closing := strings.LastIndexByte(line, ')')
	if open >= 0 && closing > open {
		return argumentsPrefix + line[open+1:closing]
	}

	return conditionDetail
}
