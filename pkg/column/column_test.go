package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIDIncrementalStats(t *testing.T) {
	c := New("person", KindTypedID)
	c.AddID("a")
	c.AddID("bb")
	c.AddID("ccc")

	assert.Equal(t, float64(1), c.MinLen)
	assert.Equal(t, float64(3), c.MaxLen)
	assert.InDelta(t, 2.0, c.AvgLen, 1e-9)
	assert.True(t, c.ContainsID("bb"))
	assert.False(t, c.ContainsID("zzz"))
}

func TestAddCategoryPreservesInsertionOrder(t *testing.T) {
	c := New("species", KindCategories)
	c.AddCategory("fish")
	c.AddCategory("mammal")
	c.AddCategory("fish")
	c.AddCategory("bird")

	assert.Equal(t, []string{"fish", "mammal", "bird"}, c.Categories)
}

func TestValidateRejectsOutOfOrderStats(t *testing.T) {
	c := New("age", KindInteger)
	c.Min, c.Avg, c.Max = 10, 5, 20
	require.Error(t, c.Validate())
}

func TestValidateAcceptsWellFormedLatitude(t *testing.T) {
	c := New("lat", KindLatitude)
	c.Min, c.Avg, c.Max, c.Stddev = -34.6, 10.58, 55.76, 18.49
	require.NoError(t, c.Validate())
}

func TestValidateRejectsEmptyCategories(t *testing.T) {
	c := New("flag", KindCategories)
	require.Error(t, c.Validate())
}

func TestAddLinkIsBorrowedReference(t *testing.T) {
	a := New("person", KindTypedID)
	b := New("company", KindTypedID)
	a.AddLink("worksFor", b)

	require.Contains(t, a.Links, "worksFor")
	assert.Same(t, b, a.Links["worksFor"]["company"])
}
