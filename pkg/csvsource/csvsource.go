// Package csvsource implements the CSV ingestion external interface from
// spec §6: the first column is unconditionally an Id column, every other
// column is inferred via pkg/inference and linked onto the first column
// under its header name.
//
// Grounded on pipelines/Input/csv_plugin.go's encoding/csv usage in the
// teacher, adapted from a pipeline-step plugin into a standalone loader.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"unicode/utf8"

	"github.com/mimir-aip/semantic-schema-infer/internal/log"
	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
	"github.com/mimir-aip/semantic-schema-infer/pkg/graph"
	"github.com/mimir-aip/semantic-schema-infer/pkg/inference"
)

// Options configures one CSV load.
type Options struct {
	HasHeader bool
	MaxRows   int // 0 means use inference.Config's default
}

// Load reads path and returns the column graph per spec §6: node 0 is the
// unconditional Id column over the first field, every other node is C2's
// classification of its column, linked from the Id column under the
// header name.
func Load(path string, opts Options, cfg inference.Config, logger *log.Logger) (*graph.Graph, error) {
	if logger == nil {
		logger = log.Default()
	}
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = cfg.MaxRows
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvsource: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvsource: parse failure: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csvsource: empty file %q", path)
	}

	var headers []string
	if opts.HasHeader {
		headers = rows[0]
		rows = rows[1:]
	} else {
		if len(rows) > 0 {
			headers = make([]string, len(rows[0]))
			for i := range headers {
				headers[i] = fmt.Sprintf("col%d", i)
			}
		}
	}

	rows = sampleRows(rows, maxRows, logger)

	if len(headers) == 0 {
		return nil, fmt.Errorf("csvsource: no columns in %q", path)
	}

	idCol := idColumnFromRows(headers[0], rows, 0)

	inf := inference.New(cfg, logger)
	g := graph.New()
	g.AddNode(idCol)

	for colIdx := 1; colIdx < len(headers); colIdx++ {
		values := make([]any, 0, len(rows))
		for _, row := range rows {
			if colIdx < len(row) {
				values = append(values, row[colIdx])
			} else {
				values = append(values, nil)
			}
		}
		col := inf.Infer(values, headers[colIdx])
		idCol.AddLink(headers[colIdx], col)
		g.AddNode(col)
	}

	for linkName, targets := range idCol.Links {
		for _, target := range targets {
			g.AddEdge(idCol.Name, target.Name, linkName)
		}
	}

	return g, nil
}

// idColumnFromRows builds the unconditional first-column Id, per spec §6.
func idColumnFromRows(name string, rows [][]string, colIdx int) *column.Column {
	c := column.New(name, column.KindID)
	var lengths []float64
	for _, row := range rows {
		if colIdx >= len(row) {
			continue
		}
		lengths = append(lengths, float64(utf8.RuneCountInString(row[colIdx])))
	}
	if len(lengths) == 0 {
		return c
	}
	min, max := lengths[0], lengths[0]
	var sum float64
	for _, l := range lengths {
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
		sum += l
	}
	c.MinLen, c.MaxLen = min, max
	c.AvgLen = sum / float64(len(lengths))
	return c
}

// sampleRows admits each row with independent probability
// maxRows/total_rows when the file exceeds maxRows, per spec §6.
func sampleRows(rows [][]string, maxRows int, logger *log.Logger) [][]string {
	total := len(rows)
	if total <= maxRows {
		return rows
	}
	probability := float64(maxRows) / float64(total)
	logger.Debug("csvsource: sampling rows", log.Int("total", total), log.Int("max_rows", maxRows), log.Float("probability", probability))

	out := make([][]string, 0, maxRows)
	for _, row := range rows {
		if rand.Float64() < probability {
			out = append(out, row)
		}
	}
	return out
}
