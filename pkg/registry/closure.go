package registry

// AddSubclass records that sub is a subclass of super and propagates the
// fact through the existing closure so that, regardless of the order
// rdfs:subClassOf triples arrive in, every ancestor of super ends up with
// sub (and all of sub's descendants) in its subclass set. Grounded on
// TypesHandler.add_subclass.
func (r *Registry) AddSubclass(superIRI, subIRI string) {
	r.GetOrCreateType(superIRI)
	r.GetOrCreateType(subIRI)

	ancestors := r.closureSet(r.superclassesOf[superIRI], superIRI)
	descendants := r.closureSet(r.subclassesOf[subIRI], subIRI)

	for a := range ancestors {
		for d := range descendants {
			r.addDirectSubclassEdge(a, d)
		}
	}
}

func (r *Registry) closureSet(existing map[string]struct{}, self string) map[string]struct{} {
	out := map[string]struct{}{self: {}}
	for k := range existing {
		out[k] = struct{}{}
	}
	return out
}

func (r *Registry) addDirectSubclassEdge(superIRI, subIRI string) {
	if r.subclassesOf[superIRI] == nil {
		r.subclassesOf[superIRI] = make(map[string]struct{})
	}
	r.subclassesOf[superIRI][subIRI] = struct{}{}

	if r.superclassesOf[subIRI] == nil {
		r.superclassesOf[subIRI] = make(map[string]struct{})
	}
	r.superclassesOf[subIRI][superIRI] = struct{}{}
}

// Subclasses returns the full transitive subclass set of classIRI.
func (r *Registry) Subclasses(classIRI string) map[string]struct{} {
	return r.subclassesOf[classIRI]
}

// Superclasses returns the full transitive superclass set of classIRI.
func (r *Registry) Superclasses(classIRI string) map[string]struct{} {
	return r.superclassesOf[classIRI]
}

// AddSubproperty records that sub is a subproperty of super; kind and
// domain/range propagation happens at Finalize.
func (r *Registry) AddSubproperty(superIRI, subIRI string) {
	r.GetOrCreateProperty(superIRI)
	r.GetOrCreateProperty(subIRI)
	if r.subproperties[superIRI] == nil {
		r.subproperties[superIRI] = make(map[string]struct{})
	}
	r.subproperties[superIRI][subIRI] = struct{}{}
}

// AddInverseOf records an owl:inverseOf pair; the domain/range swap
// happens at Finalize.
func (r *Registry) AddInverseOf(p1, p2 string) {
	r.GetOrCreateProperty(p1)
	r.GetOrCreateProperty(p2)
	r.inversePairs = append(r.inversePairs, [2]string{p1, p2})
}

// AddEquivalentClass is sugar for two AddSubclass calls, per spec §9's
// resolution of the equivalentClass/KnowledgeSource open question.
func (r *Registry) AddEquivalentClass(a, b string) {
	r.AddSubclass(a, b)
	r.AddSubclass(b, a)
}

// propagateSubproperties copies kind flags and unions domains/ranges from
// every superproperty down to its subproperties until no edge adds new
// information, handling arbitrarily long subproperty chains.
func (r *Registry) propagateSubproperties() {
	for changed := true; changed; {
		changed = false
		for superIRI, subs := range r.subproperties {
			super := r.properties[superIRI]
			if super == nil {
				continue
			}
			for subIRI := range subs {
				sub := r.properties[subIRI]
				if sub == nil {
					continue
				}
				if super.IsObject && !sub.IsObject && !sub.IsDatatype {
					sub.IsObject = true
					changed = true
				}
				if super.IsDatatype && !sub.IsDatatype && !sub.IsObject {
					sub.IsDatatype = true
					changed = true
				}
				for iri, t := range super.Domains {
					if _, ok := sub.Domains[iri]; !ok {
						sub.Domains[iri] = t
						changed = true
					}
				}
				for iri, t := range super.Ranges {
					if _, ok := sub.Ranges[iri]; !ok {
						sub.Ranges[iri] = t
						changed = true
					}
				}
			}
		}
	}
}

// propagateInverseProperties applies the symmetric domain/range swap from
// spec §4.3 rule 3 to every recorded owl:inverseOf pair.
func (r *Registry) propagateInverseProperties() {
	for _, pair := range r.inversePairs {
		p1 := r.properties[pair[0]]
		p2 := r.properties[pair[1]]
		if p1 == nil || p2 == nil {
			continue
		}
		p1.IsObject = true
		p2.IsObject = true
		p1.IsDatatype = false
		p2.IsDatatype = false

		for iri, t := range p1.Domains {
			p2.Ranges[iri] = t
		}
		for iri, t := range p1.Ranges {
			p2.Domains[iri] = t
		}
		for iri, t := range p2.Domains {
			p1.Ranges[iri] = t
		}
		for iri, t := range p2.Ranges {
			p1.Domains[iri] = t
		}
	}
}

// FunctionalObjectProperties returns the IRIs of object properties marked
// functional.
func (r *Registry) FunctionalObjectProperties() map[string]struct{} {
	out := make(map[string]struct{})
	for iri, p := range r.properties {
		if p.IsObject && p.IsFunctional {
			out[iri] = struct{}{}
		}
	}
	return out
}

// InverseFunctionalProperties returns the IRIs of object properties marked
// inverse-functional.
func (r *Registry) InverseFunctionalProperties() map[string]struct{} {
	out := make(map[string]struct{})
	for iri, p := range r.properties {
		if p.IsObject && p.IsInverseFunctional {
			out[iri] = struct{}{}
		}
	}
	return out
}
