package registry

// RouteLiteral implements the literal half of §4.4's core data-statement
// routing: it pins propertyIRI datatype (downgrading from object if
// needed), buffers value under the property's per-property datatype Type,
// and either attaches the subject's type as a domain or defers it.
func (r *Registry) RouteLiteral(subjectIRI, propertyIRI, datatypeIRI string, value any) {
	prop := r.GetOrCreateProperty(propertyIRI)
	prop.DeclareDatatype()

	dt := r.GetOrCreateDatatypeType(propertyIRI)
	dt.DatatypeIRI = datatypeIRI
	dt.Values = append(dt.Values, value)

	if sType := r.TypeForInstance(subjectIRI); sType != nil {
		r.addDomainWithRedundancyCheck(propertyIRI, sType)
	} else {
		r.AddPendingDomainInstance(propertyIRI, subjectIRI)
	}
}

// RouteObject implements the IRI-object half of §4.4's core routing: the
// four sub-cases keyed by whether the subject and object already have a
// known Type.
func (r *Registry) RouteObject(subjectIRI, propertyIRI, objectIRI string) {
	prop := r.GetOrCreateProperty(propertyIRI)
	prop.DeclareObject()

	sType := r.TypeForInstance(subjectIRI)
	oType := r.TypeForInstance(objectIRI)

	if sType != nil {
		r.addDomainWithRedundancyCheck(propertyIRI, sType)
	} else {
		r.AddPendingDomainInstance(propertyIRI, subjectIRI)
	}
	if oType != nil {
		r.addRangeWithRedundancyCheck(propertyIRI, oType)
	} else {
		r.AddPendingRangeInstance(propertyIRI, objectIRI)
	}

	switch {
	case sType != nil && oType != nil:
		sType.IDColumn.AddID(subjectIRI)
		oType.IDColumn.AddID(objectIRI)
		sType.IDColumn.AddLink(prop.ID, oType.IDColumn)

	case sType != nil && oType == nil:
		sType.IDColumn.AddID(subjectIRI)
		r.AddPendingLinkTarget(objectIRI, prop.ID, sType.IDColumn)

	case sType == nil && oType != nil:
		oType.IDColumn.AddID(objectIRI)
		r.AddPendingLinkSource(subjectIRI, prop.ID, oType.IDColumn)

	default:
		r.AddPendingBothUnknownEdge(subjectIRI, propertyIRI, objectIRI)
	}
}
