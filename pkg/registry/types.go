// Package registry implements the Type Registry (C3): the store of Types,
// Properties and pending buffers that the Statement Router (pkg/rdfsource)
// drives, plus the closure rules and final projection into a column.Column
// graph.
//
// Grounded on original_source/util/type.py, util/property.py and
// util/statement.py.
package registry

import "github.com/mimir-aip/semantic-schema-infer/pkg/column"

// Type represents an RDF class or, when IsDatatype is set, the per-property
// literal-value buffer that feeds a datatype projection (see
// GetOrCreateDatatypeType and RouteLiteral). Every Type is owned by exactly
// one Registry.
type Type struct {
	IRI         string
	ID          string
	Instances   map[string]struct{}
	IsDatatype  bool
	DatatypeIRI string // the XSD IRI last observed for a datatype Type
	Values      []any
	IDColumn    *column.Column // present once any instance has been added
}

func newType(iri, id string) *Type {
	return &Type{IRI: iri, ID: id, Instances: make(map[string]struct{})}
}

// Property represents an RDF property: its domain/range class sets and its
// kind flags, evolved through the state machine in spec §4.3.
type Property struct {
	IRI                 string
	ID                  string
	Domains             map[string]*Type
	Ranges              map[string]*Type
	IsObject            bool
	IsDatatype          bool
	IsFunctional        bool
	IsInverseFunctional bool
}

func newProperty(iri, id string) *Property {
	return &Property{
		IRI:     iri,
		ID:      id,
		Domains: make(map[string]*Type),
		Ranges:  make(map[string]*Type),
	}
}

// DeclareObject applies the "declare_object" transition from spec §4.3. A
// property previously pinned datatype is downgraded to generic instead of
// becoming object, mirroring DeclareDatatype's symmetric downgrade: an
// object observation on a datatype property means the earlier literal
// observation was tentative.
func (p *Property) DeclareObject() {
	if p.IsDatatype {
		p.IsDatatype = false
		return
	}
	p.IsObject = true
}

// DeclareDatatype applies the "declare_datatype" transition: a property
// previously observed as object is downgraded to generic (neither flag
// set), since the earlier object classification was only tentative.
func (p *Property) DeclareDatatype() {
	if p.IsObject {
		p.IsObject = false
		p.IsDatatype = false
		return
	}
	p.IsDatatype = true
}
