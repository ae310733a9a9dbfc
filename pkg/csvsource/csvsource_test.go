package csvsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
	"github.com/mimir-aip/semantic-schema-infer/pkg/inference"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFirstColumnIsAlwaysId(t *testing.T) {
	path := writeTempCSV(t, "id,species,age\n1,fish,2\n2,bird,3\n3,mammal,4\n")

	g, err := Load(path, Options{HasHeader: true}, inference.NewConfig(), nil)
	require.NoError(t, err)

	nodes := g.Nodes()
	require.NotEmpty(t, nodes)
	assert.Equal(t, column.KindID, nodes[0].Column.Kind)
	assert.Equal(t, "id", nodes[0].Column.Name)
}

func TestLoadLinksRemainingColumnsUnderHeaderName(t *testing.T) {
	path := writeTempCSV(t, "id,species,age\n1,fish,2\n2,bird,3\n3,mammal,4\n")

	g, err := Load(path, Options{HasHeader: true}, inference.NewConfig(), nil)
	require.NoError(t, err)

	edges := g.Edges()
	require.Len(t, edges, 2)
	keys := map[string]bool{}
	for _, e := range edges {
		keys[e.Key] = true
		assert.Equal(t, "id", e.Source)
	}
	assert.True(t, keys["species"])
	assert.True(t, keys["age"])
}
