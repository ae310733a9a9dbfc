package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
)

func newInferencer() *Inferencer {
	return New(NewConfig(), nil)
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func TestInferDenseConsecutiveIntegersIsId(t *testing.T) {
	values := make([]int, 0, 41)
	values = append(values, 999)
	for i := 1001; i <= 1040; i++ {
		values = append(values, i)
	}
	c := newInferencer().Infer(toAny(values), "row_id")

	require.Equal(t, column.KindID, c.Kind)
	assert.Equal(t, 3.0, c.MinLen)
	assert.Equal(t, 4.0, c.MaxLen)
	assert.InDelta(t, 3.975, c.AvgLen, 1e-3)
}

func TestInferSmallIntegerSetIsInteger(t *testing.T) {
	values := []int{23, 42, 1, 2, 3, 4, 5, 8, 9, 13}
	c := newInferencer().Infer(toAny(values), "n")

	require.Equal(t, column.KindInteger, c.Kind)
	assert.Equal(t, 1.0, c.Min)
	assert.Equal(t, 42.0, c.Max)
	assert.InDelta(t, 11.0, c.Avg, 1e-9)
	assert.InDelta(t, 12.05, c.Stddev, 0.01)
}

func TestInferNumberWordsIsString(t *testing.T) {
	values := []string{
		"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
		"eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	c := newInferencer().Infer(toAny(values), "word")

	require.Equal(t, column.KindString, c.Kind)
	assert.Equal(t, 3.0, c.MinLen)
	assert.Equal(t, 9.0, c.MaxLen)
	assert.InDelta(t, 5.47, c.AvgLen, 0.05)
}

func TestInferThreeDistinctValuesIsCategories(t *testing.T) {
	species := []string{"mammal", "fish", "bird"}
	values := make([]string, 0, 31)
	for i := 0; i < 31; i++ {
		values = append(values, species[i%3])
	}
	c := newInferencer().Infer(toAny(values), "species")

	require.Equal(t, column.KindCategories, c.Kind)
	assert.ElementsMatch(t, []string{"bird", "fish", "mammal"}, c.Categories)
}

func TestInferFloatsIsFloat(t *testing.T) {
	values := []float64{
		0.136, 0.246, 0.993, 0.006, 0.512, 0.478, 0.321, 0.789, 0.654, 0.123,
		0.876, 0.234, 0.567, 0.890, 0.345, 0.678, 0.901, 0.432, 0.765, 0.307,
	}
	c := newInferencer().Infer(toAny(values), "score")

	require.Equal(t, column.KindFloat, c.Kind)
	assert.Equal(t, 0.006, c.Min)
	assert.Equal(t, 0.993, c.Max)
}

func TestInferLatitudeSeries(t *testing.T) {
	values := []float64{
		-34.6, 55.76, 40.71, -23.55, 51.5, 35.68, -33.87, 48.85, 19.43, 1.35,
	}
	c := newInferencer().Infer(toAny(values), "lat")

	require.Equal(t, column.KindLatitude, c.Kind)
	assert.True(t, c.Stddev > 10)
}

func TestInferBooleanColumn(t *testing.T) {
	values := []bool{true, true, false, true}
	c := newInferencer().Infer(toAny(values), "flag")

	require.Equal(t, column.KindBoolean, c.Kind)
	assert.InDelta(t, 0.75, c.PortionTrue, 1e-9)
	assert.InDelta(t, 0.25, c.PortionFalse, 1e-9)
}

func TestInferYearLikeStringsAreDateTimeBeforeNumeric(t *testing.T) {
	values := []string{"2020", "2021", "2022"}
	c := newInferencer().Infer(toAny(values), "year")

	require.Equal(t, column.KindDateTime, c.Kind)
}

func TestInferFallsBackToUnknownOnMixedTypes(t *testing.T) {
	values := []any{1, "two", 3.0, true}
	c := newInferencer().Infer(values, "mixed")

	require.Equal(t, column.KindUnknown, c.Kind)
	assert.Len(t, c.Values, 4)
}
