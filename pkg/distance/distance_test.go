package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
)

func categories(name string, members ...string) *column.Column {
	c := column.New(name, column.KindCategories)
	for _, m := range members {
		c.AddCategory(m)
	}
	return c
}

func TestDistanceIsZeroForIdenticalCategories(t *testing.T) {
	a := categories("species", "c1", "c2", "c3")
	b := categories("species2", "c1", "c2", "c3")
	d, err := Distance(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistanceCategoriesJaccard(t *testing.T) {
	a := categories("a", "c1", "c2", "c3")
	b := categories("b", "c3", "c4", "c5")
	d, err := Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, d, 1e-9)
}

func TestDistanceDateTime(t *testing.T) {
	a := column.New("created", column.KindDateTime)
	a.MinTime, a.MeanTime, a.MaxTime = 0, 0, 0

	b := column.New("created2", column.KindDateTime)
	dayPlusHours := 86400.0 + 2*3600 + 4*60
	b.MinTime, b.MeanTime, b.MaxTime = dayPlusHours, 0, 63158400

	d, err := Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 63252240.0, d, 1e-6)
}

func TestDistanceIncomparableIdBoolean(t *testing.T) {
	id := column.New("id", column.KindID)
	id.MinLen, id.AvgLen, id.MaxLen = 3, 3, 3

	b := column.New("flag", column.KindBoolean)
	b.PortionTrue, b.PortionFalse = 0.5, 0.5

	_, err := Distance(id, b)
	assert.ErrorIs(t, err, ErrIncomparableColumns)
}

func TestDistanceSelfIsZero(t *testing.T) {
	c := column.New("age", column.KindInteger)
	c.Min, c.Avg, c.Max, c.Stddev = 1, 11, 42, 12.05
	d, err := Distance(c, c)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}
