// Package domain defines the core types shared by narrative synthesis and
// statistics aggregation.
package domain

// NamingKind represents the naming convention detected in a test method identifier.
type NamingKind string

// Supported naming conventions.
const (
	// NamingGeneric is a plain camelCase or snake_case identifier.
	NamingGeneric NamingKind = "generic"
	// NamingGherkin is a given/when/then structured identifier.
	NamingGherkin NamingKind = "gherkin"
)

// NameTokens is the structured form of a decomposed method identifier.
type NameTokens struct {
	// Kind is the detected naming convention.
	Kind NamingKind `json:"kind"`
	// Phrase holds the decomposed, lowercased words.
	// For NamingGherkin it is split over lines starting with "Given ", "When " and "Then ".
	Phrase string `json:"phrase"`
	// TestCaseID is the "TCnn" prefix of the identifier, empty when absent.
	TestCaseID string `json:"testCaseId,omitempty"`
}

// HasTestCaseID reports whether the identifier carried a test case prefix.
func (t NameTokens) HasTestCaseID() bool {
	return t.TestCaseID != ""
}

// AssertionFragment is the prose form of a single assertion line.
type AssertionFragment struct {
	// Detail is the assertion message or the extracted call arguments.
	Detail string `json:"detail"`
	// VerbPhrase opens the sentence (e.g., "Verifies that ").
	VerbPhrase string `json:"verbPhrase"`
}

// String returns the full sentence.
func (f AssertionFragment) String() string {
	return f.VerbPhrase + f.Detail
}
