package rdfsource

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mimir-aip/semantic-schema-infer/internal/log"
	"github.com/mimir-aip/semantic-schema-infer/pkg/registry"
	"github.com/mimir-aip/semantic-schema-infer/pkg/vocab"
)

// OWLRestriction is a partial restriction object built from
// owl:someValuesFrom / owl:hasSelf / owl:onProperty triples. Per spec
// §4.4, restrictions are recorded but never reasoned over further.
type OWLRestriction struct {
	IRI            string
	OnProperty     string
	SomeValuesFrom string
	HasSelf        bool
}

// Router is the Statement Router (C4). It owns blank-node skolemization
// state and the (unreasoned) restriction table for one ingestion run.
type Router struct {
	Registry     *registry.Registry
	Logger       *log.Logger
	blankNodes   map[string]string
	restrictions map[string]*OWLRestriction
}

// New builds a Router over registry reg.
func New(reg *registry.Registry, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.Default()
	}
	return &Router{
		Registry:     reg,
		Logger:       logger,
		blankNodes:   make(map[string]string),
		restrictions: make(map[string]*OWLRestriction),
	}
}

// Restrictions returns every partial OWL restriction object recorded
// during Ingest.
func (rt *Router) Restrictions() []OWLRestriction {
	out := make([]OWLRestriction, 0, len(rt.restrictions))
	for _, r := range rt.restrictions {
		out = append(out, *r)
	}
	return out
}

// skolemize replaces a blank node label with a stable, freshly minted IRI
// the first time it is seen, per §6's "skolemize blank nodes on load".
func (rt *Router) skolemize(t Term) string {
	if t.Kind != BlankTerm {
		return t.Value
	}
	if iri, ok := rt.blankNodes[t.Value]; ok {
		return iri
	}
	iri := "urn:skolem:" + uuid.NewString()
	rt.blankNodes[t.Value] = iri
	return iri
}

func (rt *Router) resourceIRI(t Term) string {
	if t.Kind == BlankTerm {
		return rt.skolemize(t)
	}
	return t.Value
}

// Ingest routes every statement per the predicate table in spec §4.4.
// samplePortion selects which fraction of data statements (everything
// outside the ontology predicates) are routed; ontology statements are
// always routed regardless.
func (rt *Router) Ingest(statements []Statement, samplePortion float64) error {
	if samplePortion <= 0 || samplePortion > 1 {
		return fmt.Errorf("rdfsource: sample_portion must be in (0,1], got %v", samplePortion)
	}

	var acc float64
	for _, st := range statements {
		if rt.isDataStatement(st.Predicate.Value) {
			acc += samplePortion
			if acc < 1 {
				continue
			}
			acc -= 1
		}
		rt.route(st)
	}
	return nil
}

func (rt *Router) isDataStatement(predicate string) bool {
	_, ok := ontologyPredicates[predicate]
	return !ok
}

var ontologyPredicates = map[string]struct{}{
	vocab.RDFType: {}, vocab.RDFSLabel: {}, vocab.RDFSComment: {}, vocab.RDFSSubClassOf: {},
	vocab.RDFSSubPropertyOf: {}, vocab.RDFSDomain: {}, vocab.RDFSRange: {}, vocab.OWLInverseOf: {},
	vocab.OWLEquivalentClass: {}, vocab.OWLDatatypeProperty: {}, vocab.OWLObjectProperty: {},
	vocab.OWLFunctionalProperty: {}, vocab.OWLInverseFunctionalProp: {}, vocab.OWLSomeValuesFrom: {},
	vocab.OWLHasSelf: {}, vocab.OWLOnProperty: {}, vocab.OWLPriorVersion: {}, vocab.OWLVersionInfo: {},
	vocab.OWLImports: {}, vocab.OWLDeprecated: {},
}

func (rt *Router) route(st Statement) {
	s := rt.resourceIRI(st.Subject)
	p := st.Predicate.Value
	o := st.Object

	switch p {
	case vocab.RDFType:
		rt.routeTypeAssertion(s, rt.resourceIRI(o))

	case vocab.RDFSLabel:
		rt.Registry.UpdateLabel(o.Value)

	case vocab.RDFSComment:
		rt.Registry.UpdateComment(o.Value)

	case vocab.RDFSSubClassOf:
		rt.Registry.AddSubclass(rt.resourceIRI(o), s)

	case vocab.RDFSSubPropertyOf:
		rt.Registry.AddSubproperty(rt.resourceIRI(o), s)

	case vocab.RDFSDomain:
		rt.Registry.AddDomain(s, rt.resourceIRI(o))

	case vocab.RDFSRange:
		rt.Registry.AddRange(s, rt.resourceIRI(o))

	case vocab.OWLInverseOf:
		rt.Registry.AddInverseOf(s, rt.resourceIRI(o))

	case vocab.OWLEquivalentClass:
		rt.Registry.AddEquivalentClass(s, rt.resourceIRI(o))

	case vocab.OWLDatatypeProperty:
		rt.Registry.GetOrCreateProperty(s).DeclareDatatype()

	case vocab.OWLObjectProperty:
		rt.Registry.GetOrCreateProperty(s).DeclareObject()

	case vocab.OWLFunctionalProperty:
		rt.Registry.GetOrCreateProperty(s).IsFunctional = true

	case vocab.OWLInverseFunctionalProp:
		prop := rt.Registry.GetOrCreateProperty(s)
		prop.IsInverseFunctional = true
		prop.IsObject = true

	case vocab.OWLSomeValuesFrom:
		rt.restriction(s).SomeValuesFrom = rt.resourceIRI(o)

	case vocab.OWLHasSelf:
		rt.restriction(s).HasSelf = true

	case vocab.OWLOnProperty:
		rt.restriction(s).OnProperty = rt.resourceIRI(o)

	case vocab.OWLPriorVersion, vocab.OWLVersionInfo, vocab.OWLImports, vocab.OWLDeprecated:
		// no-op, per spec §4.4.

	default:
		rt.routeDataStatement(s, p, o)
	}
}

func (rt *Router) restriction(iri string) *OWLRestriction {
	r, ok := rt.restrictions[iri]
	if !ok {
		r = &OWLRestriction{IRI: iri}
		rt.restrictions[iri] = r
	}
	return r
}

// routeTypeAssertion handles rdf:type, distinguishing the annotation and
// ontology metadata classes (no-op) from real instance typing.
func (rt *Router) routeTypeAssertion(subjectIRI, classIRI string) {
	switch classIRI {
	case vocab.OWLClass, vocab.RDFSClass, vocab.OWLRestriction:
		rt.Registry.GetOrCreateType(subjectIRI)
	case vocab.OWLAnnotationProperty, vocab.OWLOntology, vocab.RDFSDatatype:
		// no-op, per spec §4.4.
	case vocab.OWLDatatypeProperty:
		rt.Registry.GetOrCreateProperty(subjectIRI).DeclareDatatype()
	case vocab.OWLObjectProperty:
		rt.Registry.GetOrCreateProperty(subjectIRI).DeclareObject()
	case vocab.OWLFunctionalProperty:
		rt.Registry.GetOrCreateProperty(subjectIRI).IsFunctional = true
	case vocab.OWLInverseFunctionalProp:
		prop := rt.Registry.GetOrCreateProperty(subjectIRI)
		prop.IsInverseFunctional = true
		prop.IsObject = true
	default:
		rt.Registry.RegisterTypeAssertion(subjectIRI, classIRI)
	}
}

// routeDataStatement implements the core routing algorithm of §4.4 for
// any predicate outside the ontology table.
func (rt *Router) routeDataStatement(subjectIRI, propertyIRI string, o Term) {
	if o.Kind == LiteralTerm {
		datatype := InferLiteralDatatype(o)
		rt.Registry.RouteLiteral(subjectIRI, propertyIRI, datatype, literalValue(o))
		return
	}
	rt.Registry.RouteObject(subjectIRI, propertyIRI, rt.resourceIRI(o))
}
