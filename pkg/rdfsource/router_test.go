package rdfsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
	"github.com/mimir-aip/semantic-schema-infer/pkg/inference"
	"github.com/mimir-aip/semantic-schema-infer/pkg/registry"
	"github.com/mimir-aip/semantic-schema-infer/pkg/vocab"
)

func iri(v string) Term   { return Term{Kind: IRITerm, Value: v} }
func blank(v string) Term { return Term{Kind: BlankTerm, Value: v} }
func lit(v string) Term   { return Term{Kind: LiteralTerm, Value: v} }
func typedLit(v, dt string) Term {
	return Term{Kind: LiteralTerm, Value: v, Datatype: dt}
}

func newRouter() (*Router, *registry.Registry) {
	reg := registry.New(inference.NewConfig(), nil)
	return New(reg, nil), reg
}

func TestIngestSubClassOfOutOfOrderType(t *testing.T) {
	rt, reg := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: iri("http://ex/Dog"), Predicate: iri(vocab.RDFSSubClassOf), Object: iri("http://ex/Animal")},
		{Subject: iri("http://ex/rex"), Predicate: iri(vocab.RDFType), Object: iri("http://ex/Dog")},
	}, 1.0)
	require.NoError(t, err)

	subs := reg.Subclasses("http://ex/Animal")
	assert.Contains(t, subs, "http://ex/Dog")

	dogType, ok := reg.Type("http://ex/Dog")
	require.True(t, ok)
	assert.True(t, dogType.IDColumn.ContainsID("http://ex/rex"))
}

func TestIngestBothUnknownThenBothTyped(t *testing.T) {
	rt, reg := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: iri("s1"), Predicate: iri("knows"), Object: iri("o1")},
		{Subject: iri("s1"), Predicate: iri(vocab.RDFType), Object: iri("Person")},
		{Subject: iri("o1"), Predicate: iri(vocab.RDFType), Object: iri("Person")},
	}, 1.0)
	require.NoError(t, err)

	personType, _ := reg.Type("Person")
	require.NotNil(t, personType.IDColumn)

	knowsProp, ok := reg.Property("knows")
	require.True(t, ok)
	found := false
	for name := range personType.IDColumn.Links {
		if name == knowsProp.ID {
			found = true
		}
	}
	assert.True(t, found, "link should be installed once both endpoints are typed")
}

func TestIngestLiteralStatementBuildsDatatypeColumn(t *testing.T) {
	rt, reg := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: iri("p1"), Predicate: iri(vocab.RDFType), Object: iri("Person")},
		{Subject: iri("p1"), Predicate: iri("age"), Object: typedLit("42", vocab.XSDInt)},
	}, 1.0)
	require.NoError(t, err)

	g := reg.Finalize()
	var ageFound bool
	for _, n := range g.Nodes() {
		if n.Column.Kind == column.KindInteger {
			ageFound = true
		}
	}
	assert.True(t, ageFound)
}

func TestIngestBlankNodeSkolemization(t *testing.T) {
	rt, reg := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: blank("b0"), Predicate: iri(vocab.RDFType), Object: iri("Thing")},
	}, 1.0)
	require.NoError(t, err)

	thingType, ok := reg.Type("Thing")
	require.True(t, ok)
	assert.Len(t, thingType.Instances, 1)
}

func TestIngestRestrictionRecordedNotReasoned(t *testing.T) {
	rt, _ := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: blank("r0"), Predicate: iri(vocab.OWLOnProperty), Object: iri("hasPart")},
		{Subject: blank("r0"), Predicate: iri(vocab.OWLSomeValuesFrom), Object: iri("Engine")},
	}, 1.0)
	require.NoError(t, err)

	restrictions := rt.Restrictions()
	require.Len(t, restrictions, 1)
	assert.Equal(t, "hasPart", restrictions[0].OnProperty)
	assert.Equal(t, "Engine", restrictions[0].SomeValuesFrom)
}

func TestIngestOWLRestrictionTypeAssertionDoesNotRegisterInstance(t *testing.T) {
	rt, reg := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: blank("r0"), Predicate: iri(vocab.RDFType), Object: iri(vocab.OWLRestriction)},
		{Subject: blank("r0"), Predicate: iri(vocab.OWLOnProperty), Object: iri("hasPart")},
	}, 1.0)
	require.NoError(t, err)

	restrictions := rt.Restrictions()
	require.Len(t, restrictions, 1)
	assert.Equal(t, "hasPart", restrictions[0].OnProperty)

	restrictionIRI := restrictions[0].IRI
	restrictionType, ok := reg.Type(restrictionIRI)
	require.True(t, ok, "rdf:type owl:Restriction should allocate a Type for the subject, like owl:Class/rdfs:Class")
	assert.Empty(t, restrictionType.Instances, "the restriction node must not be registered as an instance of anything")
	assert.NotContains(t, reg.UntypedResources(), restrictionIRI, "GetOrCreateType must not leave the restriction node pending as untyped")
}

func TestIngestExplicitDomainAppliesRedundancyCheck(t *testing.T) {
	rt, reg := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: iri("Dog"), Predicate: iri(vocab.RDFSSubClassOf), Object: iri("Animal")},
		{Subject: iri("hasOwner"), Predicate: iri(vocab.RDFSDomain), Object: iri("Animal")},
		{Subject: iri("hasOwner"), Predicate: iri(vocab.RDFSDomain), Object: iri("Dog")},
	}, 1.0)
	require.NoError(t, err)

	prop, ok := reg.Property("hasOwner")
	require.True(t, ok)
	require.Len(t, prop.Domains, 1, "the redundant Animal domain should be dropped once the more specific Dog domain is asserted")
	_, domainOK := prop.Domains["Dog"]
	assert.True(t, domainOK)
}

func TestIngestObjectStatementSeedsDomainAndRange(t *testing.T) {
	rt, reg := newRouter()
	err := rt.Ingest([]Statement{
		{Subject: iri("alice"), Predicate: iri(vocab.RDFType), Object: iri("Person")},
		{Subject: iri("rex"), Predicate: iri(vocab.RDFType), Object: iri("Dog")},
		{Subject: iri("alice"), Predicate: iri("ownsPet"), Object: iri("rex")},
	}, 1.0)
	require.NoError(t, err)

	prop, ok := reg.Property("ownsPet")
	require.True(t, ok)
	assert.Contains(t, prop.Domains, "Person")
	assert.Contains(t, prop.Ranges, "Dog")
}

func TestInferLiteralDatatypePrefersExplicit(t *testing.T) {
	assert.Equal(t, vocab.XSDBoolean, InferLiteralDatatype(typedLit("true", vocab.XSDBoolean)))
	assert.Equal(t, vocab.XSDInt, InferLiteralDatatype(lit("42")))
	assert.Equal(t, vocab.XSDFloat, InferLiteralDatatype(lit("4.2")))
	assert.Equal(t, vocab.XSDString, InferLiteralDatatype(lit("hello world")))
}
