// Package distance implements the pure column-distance companion function
// from spec §4.2: a symmetric total function over pairs of column.Column
// values that returns ErrIncomparableColumns for any pair outside the
// enumerated table.
//
// Grounded on the __sub__ operators of
// original_source/semanticlabeling/labeledcolumn.py.
package distance

import (
	"errors"
	"math"

	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
)

// ErrIncomparableColumns is returned for any variant pair not in the table.
var ErrIncomparableColumns = errors.New("distance: incomparable columns")

func isLengthKind(k column.Kind) bool {
	switch k {
	case column.KindID, column.KindTypedID, column.KindString, column.KindText:
		return true
	default:
		return false
	}
}

func isNumericKind(k column.Kind) bool {
	switch k {
	case column.KindInteger, column.KindFloat, column.KindLatitude, column.KindLongitude:
		return true
	default:
		return false
	}
}

// Distance computes distance(a, b) per the table in spec §4.2.
func Distance(a, b *column.Column) (float64, error) {
	if a.Kind == column.KindUnknown || b.Kind == column.KindUnknown {
		return 0, ErrIncomparableColumns
	}

	switch {
	case isLengthKind(a.Kind) && isLengthKind(b.Kind):
		return math.Abs(a.MinLen-b.MinLen) + math.Abs(a.AvgLen-b.AvgLen) + math.Abs(a.MaxLen-b.MaxLen), nil

	case isNumericKind(a.Kind) && isNumericKind(b.Kind):
		return math.Abs(a.Min-b.Min) + math.Abs(a.Avg-b.Avg) + math.Abs(a.Max-b.Max) + math.Abs(a.Stddev-b.Stddev), nil

	case a.Kind == column.KindBoolean && b.Kind == column.KindBoolean:
		return math.Abs(a.PortionTrue-b.PortionTrue) + math.Abs(a.PortionFalse-b.PortionFalse), nil

	case a.Kind == column.KindDateTime && b.Kind == column.KindDateTime:
		return dateTimeDistance(a, b), nil

	case a.Kind == column.KindCategories && b.Kind == column.KindCategories:
		return jaccardDistance(a.Categories, b.Categories), nil

	default:
		return 0, ErrIncomparableColumns
	}
}

// dateTimeDistance sums absolute POSIX-second deltas over (min, mean, max),
// falling back to the largest finite float64 on overflow, matching the
// sys.float_info.max fallback in the source's DateTimeColumn.__sub__.
func dateTimeDistance(a, b *column.Column) (result float64) {
	defer func() {
		if r := recover(); r != nil || math.IsInf(result, 0) || math.IsNaN(result) {
			result = math.MaxFloat64
		}
	}()

	d1 := math.Abs(a.MinTime - b.MinTime)
	d2 := math.Abs(a.MeanTime - b.MeanTime)
	d3 := math.Abs(a.MaxTime - b.MaxTime)
	result = d1 + d2 + d3
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return math.MaxFloat64
	}
	return result
}

// jaccardDistance is 1 - |A∩B|/|A∪B| over two category sets.
func jaccardDistance(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}

	union := make(map[string]struct{}, len(setA)+len(setB))
	intersect := 0
	for v := range setA {
		union[v] = struct{}{}
		if _, ok := setB[v]; ok {
			intersect++
		}
	}
	for v := range setB {
		union[v] = struct{}{}
	}

	if len(union) == 0 {
		return 0
	}
	return 1 - float64(intersect)/float64(len(union))
}
