package registry

import (
	"strings"

	"github.com/mimir-aip/semantic-schema-infer/internal/log"
	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
	"github.com/mimir-aip/semantic-schema-infer/pkg/inference"
)

type pendingLinkTargetEntry struct {
	linkName     string
	sourceColumn *column.Column
}

type pendingLinkSourceEntry struct {
	linkName     string
	targetColumn *column.Column
}

type pendingEdge struct {
	subject, predicate, object string
}

// Registry is the Type Registry (C3): it owns every Type and Property,
// the pending buffers that defer decisions on still-untyped resources, and
// the closure bookkeeping run at Finalize.
type Registry struct {
	Config inference.Config
	Logger *log.Logger

	types         map[string]*Type // keyed by class IRI
	datatypeTypes map[string]*Type // keyed by property IRI, for literal-range buffers
	properties    map[string]*Property
	instanceType  map[string]*Type // resource IRI -> its Type, once known

	typeIRIToID map[string]string
	typeIDToIRI map[string]string

	propIRIToID map[string]string
	propIDToIRI map[string]string

	subclassesOf   map[string]map[string]struct{} // superclass IRI -> set of subclass IRIs
	superclassesOf map[string]map[string]struct{} // subclass IRI -> set of superclass IRIs

	subproperties map[string]map[string]struct{} // superproperty IRI -> set of subproperty IRIs

	inversePairs [][2]string

	// Pending buffers (spec §3 / §4.4).
	untypedResources       map[string]struct{}
	pendingDomainInstances map[string]map[string]struct{} // property IRI -> resource IRIs
	pendingRangeInstances  map[string]map[string]struct{}
	pendingLinkTarget      map[string][]pendingLinkTargetEntry // keyed by the still-unknown object IRI
	pendingLinkSource      map[string][]pendingLinkSourceEntry // keyed by the still-unknown subject IRI
	pendingBothUnknown     []pendingEdge

	nameColumn    *column.Column // shared rdfs:label text column
	commentColumn *column.Column // shared rdfs:comment text column
}

// New builds an empty Registry.
func New(cfg inference.Config, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		Config:                 cfg,
		Logger:                 logger,
		types:                  make(map[string]*Type),
		datatypeTypes:          make(map[string]*Type),
		properties:             make(map[string]*Property),
		instanceType:           make(map[string]*Type),
		typeIRIToID:            make(map[string]string),
		typeIDToIRI:            make(map[string]string),
		propIRIToID:            make(map[string]string),
		propIDToIRI:            make(map[string]string),
		subclassesOf:           make(map[string]map[string]struct{}),
		superclassesOf:         make(map[string]map[string]struct{}),
		subproperties:          make(map[string]map[string]struct{}),
		untypedResources:       make(map[string]struct{}),
		pendingDomainInstances: make(map[string]map[string]struct{}),
		pendingRangeInstances:  make(map[string]map[string]struct{}),
		pendingLinkTarget:      make(map[string][]pendingLinkTargetEntry),
		pendingLinkSource:      make(map[string][]pendingLinkSourceEntry),
	}
}

// shortID computes the stable short id for an IRI: the local part after
// the final "/" or "#", disambiguated against prior ids in idToIRI with a
// numeric suffix. Grounded on TypesHandler._get_type_id /
// PropertiesHandler._compute_and_add_property_id.
func shortID(iri string, idToIRI map[string]string) string {
	local := iri
	if i := strings.LastIndexAny(local, "/#"); i >= 0 {
		local = local[i+1:]
	}
	candidate := local
	counter := 0
	for {
		existing, taken := idToIRI[candidate]
		if !taken || existing == iri {
			return candidate
		}
		counter++
		candidate = local + itoa(counter)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// GetOrCreateType returns the Type for iri, allocating a short id and
// registering it on first mention.
func (r *Registry) GetOrCreateType(iri string) *Type {
	if t, ok := r.types[iri]; ok {
		return t
	}
	id := shortID(iri, r.typeIDToIRI)
	r.typeIRIToID[iri] = id
	r.typeIDToIRI[id] = iri
	t := newType(iri, id)
	r.types[iri] = t
	return t
}

// GetOrCreateProperty returns the Property for iri, allocating a short id
// on first mention.
func (r *Registry) GetOrCreateProperty(iri string) *Property {
	if p, ok := r.properties[iri]; ok {
		return p
	}
	id := shortID(iri, r.propIDToIRI)
	r.propIRIToID[iri] = id
	r.propIDToIRI[id] = iri
	p := newProperty(iri, id)
	r.properties[iri] = p
	return p
}

// GetOrCreateDatatypeType returns the per-property literal-value buffer
// Type for propertyIRI, creating it (and the backing Property) on first
// mention. Column name mirrors the property's own id, per
// PropertyHandler.get_column_name in the source.
func (r *Registry) GetOrCreateDatatypeType(propertyIRI string) *Type {
	if t, ok := r.datatypeTypes[propertyIRI]; ok {
		return t
	}
	prop := r.GetOrCreateProperty(propertyIRI)
	t := &Type{IRI: propertyIRI, ID: prop.ID, IsDatatype: true}
	r.datatypeTypes[propertyIRI] = t
	return t
}

// TypeForInstance returns the Type a resource is currently known to
// belong to, or nil if it is still untyped.
func (r *Registry) TypeForInstance(iri string) *Type {
	return r.instanceType[iri]
}

// MarkUntyped records that resource is referenced but not yet typed.
func (r *Registry) MarkUntyped(iri string) {
	if _, known := r.instanceType[iri]; known {
		return
	}
	r.untypedResources[iri] = struct{}{}
}

// AddPendingDomainInstance buffers resource as awaiting its type so
// property's domain can later be inferred.
func (r *Registry) AddPendingDomainInstance(propertyIRI, resourceIRI string) {
	r.MarkUntyped(resourceIRI)
	bucket := r.pendingDomainInstances[propertyIRI]
	if bucket == nil {
		bucket = make(map[string]struct{})
		r.pendingDomainInstances[propertyIRI] = bucket
	}
	bucket[resourceIRI] = struct{}{}
}

// AddPendingRangeInstance buffers object resource as awaiting its type so
// property's range can later be inferred.
func (r *Registry) AddPendingRangeInstance(propertyIRI, resourceIRI string) {
	r.MarkUntyped(resourceIRI)
	bucket := r.pendingRangeInstances[propertyIRI]
	if bucket == nil {
		bucket = make(map[string]struct{})
		r.pendingRangeInstances[propertyIRI] = bucket
	}
	bucket[resourceIRI] = struct{}{}
}

// AddPendingLinkTarget buffers a link whose source column is known but
// whose target resource (keyed by its IRI) is still untyped.
func (r *Registry) AddPendingLinkTarget(targetIRI, linkName string, sourceColumn *column.Column) {
	r.MarkUntyped(targetIRI)
	r.pendingLinkTarget[targetIRI] = append(r.pendingLinkTarget[targetIRI], pendingLinkTargetEntry{linkName, sourceColumn})
}

// AddPendingLinkSource buffers a link whose target column is known but
// whose source resource is still untyped.
func (r *Registry) AddPendingLinkSource(sourceIRI, linkName string, targetColumn *column.Column) {
	r.MarkUntyped(sourceIRI)
	r.pendingLinkSource[sourceIRI] = append(r.pendingLinkSource[sourceIRI], pendingLinkSourceEntry{linkName, targetColumn})
}

// AddPendingBothUnknownEdge buffers an edge whose subject and object are
// both still untyped; it is re-examined whenever either end is typed.
func (r *Registry) AddPendingBothUnknownEdge(subject, predicate, object string) {
	r.MarkUntyped(subject)
	r.MarkUntyped(object)
	r.pendingBothUnknown = append(r.pendingBothUnknown, pendingEdge{subject, predicate, object})
}

// RegisterTypeAssertion implements §4.4's register_type_assertion: it moves
// resource from untyped_resources to typeIRI's instances, lazily creates
// the Type's id-column, and flushes every pending buffer that mentions it.
func (r *Registry) RegisterTypeAssertion(resourceIRI, typeIRI string) {
	t := r.GetOrCreateType(typeIRI)
	if t.IDColumn == nil {
		t.IDColumn = column.New(t.ID, column.KindTypedID)
	}
	t.Instances[resourceIRI] = struct{}{}
	t.IDColumn.AddID(resourceIRI)
	r.instanceType[resourceIRI] = t
	delete(r.untypedResources, resourceIRI)

	r.flushPendingDomain(resourceIRI, t)
	r.flushPendingRange(resourceIRI, t)
	r.flushPendingLinkTarget(resourceIRI, t)
	r.flushPendingLinkSource(resourceIRI, t)
	r.flushPendingBothUnknown()
}

func (r *Registry) flushPendingDomain(resourceIRI string, t *Type) {
	for propertyIRI, bucket := range r.pendingDomainInstances {
		if _, ok := bucket[resourceIRI]; !ok {
			continue
		}
		delete(bucket, resourceIRI)
		r.addDomainWithRedundancyCheck(propertyIRI, t)
	}
}

func (r *Registry) flushPendingRange(resourceIRI string, t *Type) {
	for propertyIRI, bucket := range r.pendingRangeInstances {
		if _, ok := bucket[resourceIRI]; !ok {
			continue
		}
		delete(bucket, resourceIRI)
		r.addRangeWithRedundancyCheck(propertyIRI, t)
	}
}

func (r *Registry) flushPendingLinkTarget(resourceIRI string, t *Type) {
	entries := r.pendingLinkTarget[resourceIRI]
	delete(r.pendingLinkTarget, resourceIRI)
	for _, e := range entries {
		e.sourceColumn.AddLink(e.linkName, t.IDColumn)
	}
}

func (r *Registry) flushPendingLinkSource(resourceIRI string, t *Type) {
	entries := r.pendingLinkSource[resourceIRI]
	delete(r.pendingLinkSource, resourceIRI)
	for _, e := range entries {
		t.IDColumn.AddLink(e.linkName, e.targetColumn)
	}
}

// flushPendingBothUnknown re-examines edges buffered while both endpoints
// were untyped, installing the link as soon as both sides are resolved.
func (r *Registry) flushPendingBothUnknown() {
	remaining := r.pendingBothUnknown[:0]
	for _, e := range r.pendingBothUnknown {
		sType := r.instanceType[e.subject]
		oType := r.instanceType[e.object]
		if sType != nil && oType != nil {
			prop := r.GetOrCreateProperty(e.predicate)
			sType.IDColumn.AddLink(prop.ID, oType.IDColumn)
			continue
		}
		remaining = append(remaining, e)
	}
	r.pendingBothUnknown = remaining
}

// AddDomain attaches classIRI as a domain of propertyIRI, applying the same
// redundancy check as an instance-inferred domain assignment. Used by the
// router for an explicit rdfs:domain triple, so that an asserted domain
// never bypasses the minimality invariant an instance-inferred one obeys.
func (r *Registry) AddDomain(propertyIRI, classIRI string) {
	r.addDomainWithRedundancyCheck(propertyIRI, r.GetOrCreateType(classIRI))
}

// AddRange attaches classIRI as a range of propertyIRI, the rdfs:range
// counterpart of AddDomain.
func (r *Registry) AddRange(propertyIRI, classIRI string) {
	r.addRangeWithRedundancyCheck(propertyIRI, r.GetOrCreateType(classIRI))
}

// addDomainWithRedundancyCheck attaches domain type T to property p. The
// redundancy check runs both directions so the result is independent of
// arrival order: T is skipped if a more specific domain is already present,
// and any already-present domain that T is more specific than is evicted.
func (r *Registry) addDomainWithRedundancyCheck(propertyIRI string, t *Type) {
	prop := r.GetOrCreateProperty(propertyIRI)
	if r.pruneRedundantDomains(prop, t) {
		r.Logger.Debug("registry: redundant domain assignment skipped", log.String("property", propertyIRI), log.String("type", t.IRI))
		return
	}
	prop.Domains[t.IRI] = t
}

func (r *Registry) addRangeWithRedundancyCheck(propertyIRI string, t *Type) {
	prop := r.GetOrCreateProperty(propertyIRI)
	if r.pruneRedundantRanges(prop, t) {
		r.Logger.Debug("registry: redundant range assignment skipped", log.String("property", propertyIRI), log.String("type", t.IRI))
		return
	}
	prop.Ranges[t.IRI] = t
}

// pruneRedundantDomains reports whether t itself is redundant (a more
// specific domain already covers it), evicting any existing domain that t
// is more specific than along the way.
func (r *Registry) pruneRedundantDomains(prop *Property, t *Type) bool {
	for iri, existing := range prop.Domains {
		switch {
		case r.isSuperclassOf(t.IRI, existing.IRI):
			return true
		case r.isSuperclassOf(existing.IRI, t.IRI):
			delete(prop.Domains, iri)
		}
	}
	return false
}

func (r *Registry) pruneRedundantRanges(prop *Property, t *Type) bool {
	for iri, existing := range prop.Ranges {
		switch {
		case r.isSuperclassOf(t.IRI, existing.IRI):
			return true
		case r.isSuperclassOf(existing.IRI, t.IRI):
			delete(prop.Ranges, iri)
		}
	}
	return false
}

// UpdateLabel folds value into the shared rdfs:label text column.
func (r *Registry) UpdateLabel(value string) {
	if r.nameColumn == nil {
		r.nameColumn = column.New("name", column.KindText)
	}
	r.nameColumn.UpdateLengthStats(value)
}

// UpdateComment folds value into the shared rdfs:comment text column.
func (r *Registry) UpdateComment(value string) {
	if r.commentColumn == nil {
		r.commentColumn = column.New("comment", column.KindText)
	}
	r.commentColumn.UpdateLengthStats(value)
}

// Type returns the Type registered for iri, if any.
func (r *Registry) Type(iri string) (*Type, bool) {
	t, ok := r.types[iri]
	return t, ok
}

// Property returns the Property registered for iri, if any.
func (r *Registry) Property(iri string) (*Property, bool) {
	p, ok := r.properties[iri]
	return p, ok
}

// Properties returns every registered Property, keyed by IRI.
func (r *Registry) Properties() map[string]*Property {
	return r.properties
}

// Types returns every registered class Type, keyed by IRI.
func (r *Registry) Types() map[string]*Type {
	return r.types
}

// UntypedResources returns the IRIs still untyped after streaming; callers
// use this only for diagnostics, never to resurrect them into the graph.
func (r *Registry) UntypedResources() map[string]struct{} {
	return r.untypedResources
}

// isSuperclassOf reports whether super is a (transitive) superclass of sub.
func (r *Registry) isSuperclassOf(super, sub string) bool {
	supers, ok := r.superclassesOf[sub]
	if !ok {
		return false
	}
	_, ok = supers[super]
	return ok
}
