package registry

import (
	"fmt"
	"sort"

	"github.com/mimir-aip/semantic-schema-infer/internal/log"
	"github.com/mimir-aip/semantic-schema-infer/pkg/graph"
)

// Finalize runs the closure passes (sub-property propagation, inverse
// swap) and projects every Type into a column.Column graph per spec
// §4.3's "Column projection" step. Untyped residue is silently excluded:
// only Types that actually gained an id-column or buffered values are
// projected, matching §4.3 rule 4.
func (r *Registry) Finalize() *graph.Graph {
	r.propagateSubproperties()
	r.propagateInverseProperties()

	g := graph.New()

	for _, t := range r.types {
		if t.IDColumn != nil {
			g.AddNode(t.IDColumn)
		}
	}
	if r.nameColumn != nil {
		g.AddNode(r.nameColumn)
	}
	if r.commentColumn != nil {
		g.AddNode(r.commentColumn)
	}

	rangeColumnFor := make(map[string]*Type)
	for propIRI, t := range r.datatypeTypes {
		if t.DatatypeIRI == "" {
			continue
		}
		col, err := ProjectDatatype(t.DatatypeIRI, t.Values, t.ID)
		if err != nil {
			r.Logger.Warn("registry: datatype projection failed", log.String("property", propIRI), log.Error(err))
			continue
		}
		rangeColumnFor[propIRI] = t
		t.IDColumn = col // reuse IDColumn field to stash the projected column for a datatype Type
		g.AddNode(col)
	}

	for propIRI, prop := range r.properties {
		for _, domainType := range prop.Domains {
			if domainType.IDColumn == nil {
				continue
			}
			for _, rangeType := range prop.Ranges {
				if rangeType.IDColumn == nil {
					continue
				}
				domainType.IDColumn.AddLink(prop.ID, rangeType.IDColumn)
			}
			if dt, ok := rangeColumnFor[propIRI]; ok {
				domainType.IDColumn.AddLink(prop.ID, dt.IDColumn)
			}
		}
	}

	for _, n := range g.Nodes() {
		for linkName, targets := range n.Column.Links {
			for _, target := range targets {
				g.AddEdge(n.ID, target.Name, linkName)
			}
		}
	}

	return g
}

// DebugRows flattens a Type's members (instances for a class, buffered
// literal values for a datatype buffer) back into tabular rows for
// inspection. It is inspection-only tooling: no write-back into the
// registry, so it never reintroduces persistence. Grounded on the intent
// of original_source's rdf2csv.py, not a port of its round-trip logic.
func (r *Registry) DebugRows(t *Type) [][]string {
	rows := [][]string{{t.ID}}
	if t.IsDatatype {
		for _, v := range t.Values {
			rows = append(rows, []string{fmt.Sprintf("%v", v)})
		}
		return rows
	}

	instances := make([]string, 0, len(t.Instances))
	for iri := range t.Instances {
		instances = append(instances, iri)
	}
	sort.Strings(instances)
	for _, iri := range instances {
		rows = append(rows, []string{iri})
	}
	return rows
}
