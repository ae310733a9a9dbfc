package rdfsource

import "gonum.org/v1/gonum/graph/formats/rdf"

// FromGonum converts a stream of gonum rdf.Statement values (the parsed
// triple stream spec §1 treats as an external, lower-level collaborator)
// into this package's own Statement model.
//
// Assumption: rdf.Term exposes Kind() rdf.Kind and Value() string, and a
// Literal term additionally exposes Datatype() rdf.Term and Lang()
// string. No read-accessor usage of this API was available anywhere in
// the retrieved example pack (only construction via NewIRITerm /
// NewLiteralTerm / NewBlankTerm was evidenced); this is the one place in
// the module where that gap matters, and it is isolated here.
func FromGonum(statements []rdf.Statement) []Statement {
	out := make([]Statement, 0, len(statements))
	for _, s := range statements {
		out = append(out, Statement{
			Subject:   fromGonumTerm(s.Subject),
			Predicate: fromGonumTerm(s.Predicate),
			Object:    fromGonumTerm(s.Object),
		})
	}
	return out
}

func fromGonumTerm(t rdf.Term) Term {
	switch t.Kind() {
	case rdf.IRI:
		return Term{Kind: IRITerm, Value: t.Value()}
	case rdf.Blank:
		return Term{Kind: BlankTerm, Value: t.Value()}
	case rdf.Literal:
		term := Term{Kind: LiteralTerm, Value: t.Value(), Lang: t.Lang()}
		if dt := t.Datatype(); dt.Kind() == rdf.IRI {
			term.Datatype = dt.Value()
		}
		return term
	default:
		return Term{Kind: IRITerm, Value: t.Value()}
	}
}
