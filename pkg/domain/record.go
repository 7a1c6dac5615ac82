package domain

import "strings"

// lineCommentMarker starts a single-line source comment.
const lineCommentMarker = "//"

// MethodRecord is one test method handed over by the upstream parser.
// Records are never mutated after construction.
type MethodRecord struct {
	// Body is the raw source of the method body. Empty means no body was found.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
	// Name is the raw method identifier.
	Name string `json:"name" yaml:"name"`
	// Tags are free-form tags in declaration order (e.g., "Feature: Login").
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HasBody reports whether the parser supplied a method body.
func (r MethodRecord) HasBody() bool {
	return r.Body != ""
}

// Lines returns the trimmed lines of the body with the enclosing braces removed.
// Returns nil when there is no body.
func (r MethodRecord) Lines() []string {
	if !r.HasBody() {
		return nil
	}

	code := strings.TrimSpace(r.Body)
	code = strings.TrimPrefix(code, "{")
	code = strings.TrimSuffix(code, "}")
	code = strings.TrimSpace(code)

	raw := strings.Split(code, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

// Comments returns the text of every line comment in the body, marker stripped.
func (r MethodRecord) Comments() []string {
	var comments []string
	for _, line := range r.Lines() {
		if strings.HasPrefix(line, lineCommentMarker) {
			comments = append(comments, strings.TrimSpace(strings.TrimPrefix(line, lineCommentMarker)))
		}
	}
	return comments
}

// ClassRecord groups the method records discovered in one test class.
type ClassRecord struct {
	// ClassName is the simple class name.
	ClassName string `json:"className" yaml:"className"`
	// Methods contains the test methods in discovery order.
	Methods []MethodRecord `json:"methods" yaml:"methods"`
	// PackageName is the package the class was declared in.
	PackageName string `json:"packageName" yaml:"packageName"`
}

// CountMethods returns the number of method records in this class.
func (c ClassRecord) CountMethods() int {
	return len(c.Methods)
}
