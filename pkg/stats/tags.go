// Package stats computes class shares and tag category distributions.
package stats

import (
	"math"
	"strings"

	"github.com/specvital/testdoc/pkg/domain"
)

// TagCategory returns the grouping key of a tag: the trimmed text before the
// first colon, or the whole tag when it has none.
func TagCategory(tag string) string {
	if i := strings.Index(tag, ":"); i >= 0 {
		return strings.TrimSpace(tag[:i])
	}
	return tag
}

// AggregateTags counts tag categories across tagLists and computes each
// category's share of methods, rounded to one decimal place.
//
// The denominator is the number of methods in scope, not the number of tag
// occurrences, so percentages can add up to more than 100.
func AggregateTags(tagLists [][]string, methods int) *domain.TagDistribution {
	dist := &domain.TagDistribution{
		Counts:      make(map[string]int),
		Percentages: make(map[string]float64),
	}

	for _, tags := range tagLists {
		for _, tag := range tags {
			dist.Counts[TagCategory(tag)]++
		}
	}

	for category, count := range dist.Counts {
		if methods <= 0 {
			dist.Percentages[category] = 0
			continue
		}
		dist.Percentages[category] = roundOneDecimal(float64(count) / float64(methods) * 100)
	}

	return dist
}

// AggregateClassTags is AggregateTags over every method of classes.
func AggregateClassTags(classes []domain.ClassAggregate) *domain.TagDistribution {
	var (
		tagLists [][]string
		methods  int
	)
	for _, c := range classes {
		for _, m := range c.Methods {
			tagLists = append(tagLists, m.Tags)
		}
		methods += c.CountMethods()
	}
	return AggregateTags(tagLists, methods)
}

// roundOneDecimal rounds half up like Math.round(x*10)/10.
func roundOneDecimal(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
