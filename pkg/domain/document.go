package domain

import "sort"

// PercentageSentinel is the class percentage used before statistics are applied
// and whenever the run contains no methods.
const PercentageSentinel = "0.00"

// DefaultTitle is the report title used when none is configured.
const DefaultTitle = "TestNG Documentation"

// MethodNarrative is the documented form of one test method.
type MethodNarrative struct {
	// Description is the generated multi-line narrative.
	Description string `json:"description"`
	// Name is the original, untouched method identifier.
	Name string `json:"name"`
	// Tags are copied from the originating MethodRecord.
	Tags []string `json:"tags,omitempty"`
}

// ClassAggregate holds the narratives of one test class.
type ClassAggregate struct {
	// ClassName is the simple class name.
	ClassName string `json:"className"`
	// Methods contains the narratives in discovery order.
	Methods []MethodNarrative `json:"methods"`
	// PackageName is the package the class was declared in.
	PackageName string `json:"packageName"`
	// Percentage is this class's share of all methods in the run, formatted for display.
	Percentage string `json:"percentage"`
}

// NewClassAggregate creates an aggregate with the sentinel percentage.
func NewClassAggregate(className, packageName string, methods []MethodNarrative) ClassAggregate {
	return ClassAggregate{
		ClassName:   className,
		Methods:     methods,
		PackageName: packageName,
		Percentage:  PercentageSentinel,
	}
}

// CountMethods returns the number of methods in this class.
func (c ClassAggregate) CountMethods() int {
	return len(c.Methods)
}

// TagDistribution is the per-category tag usage of a run.
type TagDistribution struct {
	// Counts maps a tag category to its number of occurrences.
	Counts map[string]int `json:"counts"`
	// Percentages maps a tag category to its share of methods, one decimal place.
	// Values may add up to more than 100 when methods carry several tags.
	Percentages map[string]float64 `json:"percentages"`
}

// Categories returns all categories ordered by count descending, then name.
func (d *TagDistribution) Categories() []string {
	if d == nil {
		return nil
	}
	categories := make([]string, 0, len(d.Counts))
	for c := range d.Counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		ci, cj := d.Counts[categories[i]], d.Counts[categories[j]]
		if ci != cj {
			return ci > cj
		}
		return categories[i] < categories[j]
	})
	return categories
}

// Settings are presentation settings carried through to the renderer unmodified.
type Settings struct {
	// DarkMode selects the dark theme.
	DarkMode bool `json:"darkMode"`
	// Header is an optional header line shown above the report.
	Header string `json:"header,omitempty"`
	// TagsChart enables the tag distribution chart (and its statistics).
	TagsChart bool `json:"tagsChart"`
	// Title is the report title.
	Title string `json:"title"`
}

// DocumentModel is everything a renderer needs to produce the documentation.
type DocumentModel struct {
	// Classes contains the documented classes in discovery order.
	Classes []ClassAggregate `json:"classes"`
	// Settings are the pass-through presentation settings.
	Settings Settings `json:"settings"`
	// Tags is the tag distribution. Nil unless Settings.TagsChart is enabled.
	Tags *TagDistribution `json:"tags,omitempty"`
	// TotalMethods is the number of methods across all classes.
	TotalMethods int `json:"totalMethods"`
}

// CountMethods returns the total number of methods across all classes.
func (m *DocumentModel) CountMethods() int {
	count := 0
	for _, c := range m.Classes {
		count += c.CountMethods()
	}
	return count
}
