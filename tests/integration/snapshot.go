//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/specvital/testdoc/pkg/domain"
)

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Snapshot is the golden summary of one fixture's document model.
type Snapshot struct {
	ClassCount       int               `json:"classCount"`
	ClassPercentages map[string]string `json:"classPercentages"`
	Fixture          string            `json:"fixture"`
	MethodCount      int               `json:"methodCount"`
	SampleMethods    []SnapshotMethod  `json:"sampleMethods"`
	TagCounts        map[string]int    `json:"tagCounts,omitempty"`
	Title            string            `json:"title"`
}

// SnapshotMethod summarizes one documented method.
type SnapshotMethod struct {
	AssertionCount int    `json:"assertionCount"`
	Class          string `json:"class"`
	Name           string `json:"name"`
}

// Key identifies the method across snapshots.
func (m SnapshotMethod) Key() string {
	return m.Class + "." + m.Name
}

// SnapshotFromModel creates a Snapshot from an assembled document model.
func SnapshotFromModel(fixture Fixture, model *domain.DocumentModel, maxSamples int) *Snapshot {
	percentages := make(map[string]string, len(model.Classes))
	for _, c := range model.Classes {
		percentages[c.ClassName] = c.Percentage
	}

	var tagCounts map[string]int
	if model.Tags != nil {
		tagCounts = model.Tags.Counts
	}

	return &Snapshot{
		ClassCount:       len(model.Classes),
		ClassPercentages: percentages,
		Fixture:          fixture.Name,
		MethodCount:      model.TotalMethods,
		SampleMethods:    extractSampleMethods(model, maxSamples),
		TagCounts:        tagCounts,
		Title:            model.Settings.Title,
	}
}

// extractSampleMethods extracts up to maxSamples methods, sorted by key for determinism.
func extractSampleMethods(model *domain.DocumentModel, maxSamples int) []SnapshotMethod {
	var sorted []SnapshotMethod
	for _, c := range model.Classes {
		for _, m := range c.Methods {
			sorted = append(sorted, SnapshotMethod{
				AssertionCount: countAssertions(m.Description),
				Class:          c.ClassName,
				Name:           m.Name,
			})
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key() < sorted[j].Key()
	})

	if len(sorted) > maxSamples {
		sorted = sorted[:maxSamples]
	}
	return sorted
}

func countAssertions(description string) int {
	count := 0
	for _, line := range strings.Split(description, "\n") {
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count
}

// SaveSnapshot saves a snapshot to the golden directory.
func SaveSnapshot(snapshot *Snapshot) error {
	goldenDir, err := getGoldenDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(goldenDir, 0755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}

	path := filepath.Join(goldenDir, snapshotFilename(snapshot.Fixture))
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot loads a snapshot from the golden directory.
func LoadSnapshot(fixtureName string) (*Snapshot, error) {
	goldenDir, err := getGoldenDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(goldenDir, snapshotFilename(fixtureName))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot not found: %s (run with -update to create)", path)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// SnapshotDiff represents differences between expected and actual snapshots.
type SnapshotDiff struct {
	ClassCountDiff   int
	ExtraMethods     []string
	MethodCountDiff  int
	MissingMethods   []string
	PercentageDiffs  map[string]ValueDiff
	TagCountDiffs    map[string]ValueDiff
	TitleDiff        *ValueDiff
	AssertionChanges []string
}

// ValueDiff holds an expected and actual value.
type ValueDiff struct {
	Expected string
	Actual   string
}

// IsEmpty returns true if there are no differences.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.ClassCountDiff == 0 &&
		d.MethodCountDiff == 0 &&
		d.TitleDiff == nil &&
		len(d.PercentageDiffs) == 0 &&
		len(d.TagCountDiffs) == 0 &&
		len(d.MissingMethods) == 0 &&
		len(d.ExtraMethods) == 0 &&
		len(d.AssertionChanges) == 0
}

// String returns a human-readable diff summary.
func (d *SnapshotDiff) String() string {
	if d.IsEmpty() {
		return "no differences"
	}

	var sb strings.Builder

	if d.ClassCountDiff != 0 {
		sb.WriteString(fmt.Sprintf("  class count: %+d\n", d.ClassCountDiff))
	}
	if d.MethodCountDiff != 0 {
		sb.WriteString(fmt.Sprintf("  method count: %+d\n", d.MethodCountDiff))
	}
	if d.TitleDiff != nil {
		sb.WriteString(fmt.Sprintf("  title: expected %q, got %q\n", d.TitleDiff.Expected, d.TitleDiff.Actual))
	}

	for _, class := range sortedKeys(d.PercentageDiffs) {
		diff := d.PercentageDiffs[class]
		sb.WriteString(fmt.Sprintf("  class %s: expected %s%%, got %s%%\n", class, diff.Expected, diff.Actual))
	}
	for _, tag := range sortedKeys(d.TagCountDiffs) {
		diff := d.TagCountDiffs[tag]
		sb.WriteString(fmt.Sprintf("  tag %s: expected %s, got %s\n", tag, diff.Expected, diff.Actual))
	}

	writeList(&sb, "missing methods", "-", d.MissingMethods)
	writeList(&sb, "extra methods", "+", d.ExtraMethods)
	writeList(&sb, "assertion count changed", "~", d.AssertionChanges)

	return sb.String()
}

func writeList(sb *strings.Builder, title, marker string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("  %s (%d):\n", title, len(items)))
	for i, item := range items {
		if i < 10 {
			sb.WriteString(fmt.Sprintf("    %s %s\n", marker, item))
		}
	}
	if len(items) > 10 {
		sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(items)-10))
	}
}

// CompareSnapshots compares an expected snapshot with an actual one.
func CompareSnapshots(expected *Snapshot, actual *Snapshot) *SnapshotDiff {
	diff := &SnapshotDiff{
		ClassCountDiff:  actual.ClassCount - expected.ClassCount,
		MethodCountDiff: actual.MethodCount - expected.MethodCount,
		PercentageDiffs: make(map[string]ValueDiff),
		TagCountDiffs:   make(map[string]ValueDiff),
	}

	if expected.Title != actual.Title {
		diff.TitleDiff = &ValueDiff{Expected: expected.Title, Actual: actual.Title}
	}

	for class := range union(expected.ClassPercentages, actual.ClassPercentages) {
		e, a := expected.ClassPercentages[class], actual.ClassPercentages[class]
		if e != a {
			diff.PercentageDiffs[class] = ValueDiff{Expected: e, Actual: a}
		}
	}

	for tag := range union(expected.TagCounts, actual.TagCounts) {
		e, a := expected.TagCounts[tag], actual.TagCounts[tag]
		if e != a {
			diff.TagCountDiffs[tag] = ValueDiff{Expected: fmt.Sprint(e), Actual: fmt.Sprint(a)}
		}
	}

	expectedMethods := make(map[string]SnapshotMethod)
	for _, m := range expected.SampleMethods {
		expectedMethods[m.Key()] = m
	}
	actualMethods := make(map[string]SnapshotMethod)
	for _, m := range actual.SampleMethods {
		actualMethods[m.Key()] = m
	}

	for key, e := range expectedMethods {
		a, ok := actualMethods[key]
		switch {
		case !ok:
			diff.MissingMethods = append(diff.MissingMethods, key)
		case a.AssertionCount != e.AssertionCount:
			diff.AssertionChanges = append(diff.AssertionChanges,
				fmt.Sprintf("%s: %d -> %d", key, e.AssertionCount, a.AssertionCount))
		}
	}
	for key := range actualMethods {
		if _, ok := expectedMethods[key]; !ok {
			diff.ExtraMethods = append(diff.ExtraMethods, key)
		}
	}

	sort.Strings(diff.MissingMethods)
	sort.Strings(diff.ExtraMethods)
	sort.Strings(diff.AssertionChanges)

	return diff
}

func union[V any](a, b map[string]V) map[string]bool {
	keys := make(map[string]bool, len(a)+len(b))
	for k := range a {
		keys[k] = true
	}
	for k := range b {
		keys[k] = true
	}
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func getGoldenDir() (string, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(testDataDir, "golden"), nil
}

func snapshotFilename(fixtureName string) string {
	return unsafePathChars.ReplaceAllString(fixtureName, "_") + ".json"
}
