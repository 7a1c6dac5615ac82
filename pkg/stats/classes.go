package stats

import (
	"fmt"
	"math"
	"strconv"

	"github.com/specvital/testdoc/pkg/domain"
)

// Precision selects the number of decimals in class percentages.
type Precision int

// Supported precisions.
const (
	OneDecimal  Precision = 1
	TwoDecimals Precision = 2
)

// DefaultPrecision is used when no precision is configured.
const DefaultPrecision = OneDecimal

// ParsePrecision converts a decimal count (1 or 2) into a Precision.
func ParsePrecision(decimals int) (Precision, error) {
	p := Precision(decimals)
	if !p.Valid() {
		return 0, fmt.Errorf("stats: unsupported precision %d (want 1 or 2)", decimals)
	}
	return p, nil
}

// Valid reports whether p is a supported precision.
func (p Precision) Valid() bool {
	return p == OneDecimal || p == TwoDecimals
}

// Format renders value with p decimals, rounding half up (6.25 -> "6.3").
// Invalid precisions use DefaultPrecision.
func (p Precision) Format(value float64) string {
	if !p.Valid() {
		p = DefaultPrecision
	}
	scale := math.Pow10(int(p))
	return strconv.FormatFloat(math.Floor(value*scale+0.5)/scale, 'f', int(p), 64)
}

// ApplyClassPercentages sets each class's share of the total method count.
// When the classes hold no methods at all every percentage is set to
// domain.PercentageSentinel.
func ApplyClassPercentages(classes []domain.ClassAggregate, precision Precision) {
	total := 0
	for _, c := range classes {
		total += c.CountMethods()
	}

	for i := range classes {
		if total == 0 {
			classes[i].Percentage = domain.PercentageSentinel
			continue
		}
		share := float64(classes[i].CountMethods()) / float64(total) * 100
		classes[i].Percentage = precision.Format(share)
	}
}
