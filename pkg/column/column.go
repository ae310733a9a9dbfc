// Package column implements the labeled column sum type (C1): the set of
// semantic variants a raw cell sequence can be classified into, each
// carrying its summary statistics and a set of named links to other
// columns. A column never owns its link targets — the registry that
// created the column owns every target; links here are borrowed
// references by name, resolved through that registry.
//
// Grounded on original_source/semanticlabeling/labeledcolumn.py.
package column

import "fmt"

// Kind identifies which variant of the column sum type a Column holds.
type Kind int

const (
	KindUnknown Kind = iota
	KindID
	KindTypedID
	KindString
	KindText
	KindCategories
	KindBoolean
	KindInteger
	KindFloat
	KindLatitude
	KindLongitude
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "Id"
	case KindTypedID:
		return "TypedId"
	case KindString:
		return "String"
	case KindText:
		return "Text"
	case KindCategories:
		return "Categories"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindLatitude:
		return "Latitude"
	case KindLongitude:
		return "Longitude"
	case KindDateTime:
		return "DateTime"
	default:
		return "Unknown"
	}
}

// Column is the common shape shared by every variant: a name, a link set,
// and kind-specific payload fields. Only the fields relevant to Kind are
// meaningful; this mirrors the source's class hierarchy as a flat struct
// because Go has no sum types, and the decision tree only ever constructs
// one shape at a time.
type Column struct {
	Name  string
	Kind  Kind
	Links map[string]map[string]*Column // link name -> target column name -> target column

	// Id / TypedId / String / Text: length statistics over the string form.
	MinLen float64
	AvgLen float64
	MaxLen float64

	// TypedId: the set of observed member ids.
	IDs map[string]struct{}

	// Categories: insertion-order-preserved unique values.
	Categories []string
	catSeen    map[string]struct{}

	// Boolean.
	PortionTrue  float64
	PortionFalse float64

	// Integer / Float / Latitude / Longitude.
	Min    float64
	Avg    float64
	Max    float64
	Stddev float64

	// DateTime: POSIX seconds.
	MinTime  float64
	MeanTime float64
	MaxTime  float64

	// Unknown: raw values awaiting later re-inference.
	Values []any

	n int // count of values folded into running stats, for incremental updates
}

// New creates an empty column of the given kind and name. Callers populate
// the kind-specific fields directly; New only establishes the invariant
// container fields (Links, catSeen) that every variant needs.
func New(name string, kind Kind) *Column {
	return &Column{
		Name:    name,
		Kind:    kind,
		Links:   make(map[string]map[string]*Column),
		catSeen: make(map[string]struct{}),
	}
}

// AddLink records a borrowed reference from this column to target under
// link name. The registry owns target; this column merely remembers it.
func (c *Column) AddLink(linkName string, target *Column) {
	if target == nil {
		return
	}
	bucket := c.Links[linkName]
	if bucket == nil {
		bucket = make(map[string]*Column)
		c.Links[linkName] = bucket
	}
	bucket[target.Name] = target
}

// AddCategory appends value to Categories if not already present,
// preserving first-seen order.
func (c *Column) AddCategory(value string) {
	if c.catSeen == nil {
		c.catSeen = make(map[string]struct{})
	}
	if _, ok := c.catSeen[value]; ok {
		return
	}
	c.catSeen[value] = struct{}{}
	c.Categories = append(c.Categories, value)
}

// AddID records a new member of a TypedId column and incrementally updates
// its length statistics using the running-mean update formula from
// TypedIDColumn.add_id in the source (avoids re-scanning all ids on every
// insert).
func (c *Column) AddID(id string) {
	if c.IDs == nil {
		c.IDs = make(map[string]struct{})
	}
	if _, ok := c.IDs[id]; ok {
		return
	}
	c.IDs[id] = struct{}{}
	length := float64(len(id))
	c.n++
	if c.n == 1 {
		c.MinLen, c.AvgLen, c.MaxLen = length, length, length
		return
	}
	c.AvgLen += (length - c.AvgLen) / float64(c.n)
	if length < c.MinLen {
		c.MinLen = length
	}
	if length > c.MaxLen {
		c.MaxLen = length
	}
}

// UpdateLengthStats incrementally folds one more string value's length
// into a String/Text column's min/avg/max, using the same running-mean
// update as AddID. Used for the shared rdfs:label/comment columns, which
// accumulate length statistics without a backing id set.
func (c *Column) UpdateLengthStats(value string) {
	length := float64(len(value))
	c.n++
	if c.n == 1 {
		c.MinLen, c.AvgLen, c.MaxLen = length, length, length
		return
	}
	c.AvgLen += (length - c.AvgLen) / float64(c.n)
	if length < c.MinLen {
		c.MinLen = length
	}
	if length > c.MaxLen {
		c.MaxLen = length
	}
}

// ContainsID reports whether id is a known member of a TypedId column.
func (c *Column) ContainsID(id string) bool {
	if c.IDs == nil {
		return false
	}
	_, ok := c.IDs[id]
	return ok
}

// Validate checks the summary-statistics invariants from spec §3.
func (c *Column) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("column: empty column_name")
	}
	switch c.Kind {
	case KindID, KindTypedID, KindString, KindText:
		if !(c.MinLen <= c.AvgLen && c.AvgLen <= c.MaxLen) {
			return fmt.Errorf("column %q: length stats out of order (min=%v avg=%v max=%v)", c.Name, c.MinLen, c.AvgLen, c.MaxLen)
		}
	case KindInteger, KindFloat, KindLatitude, KindLongitude:
		if !(c.Min <= c.Avg && c.Avg <= c.Max) {
			return fmt.Errorf("column %q: numeric stats out of order (min=%v avg=%v max=%v)", c.Name, c.Min, c.Avg, c.Max)
		}
		if c.Stddev < 0 {
			return fmt.Errorf("column %q: negative stddev", c.Name)
		}
		if c.Kind == KindLatitude && (c.Min < -90 || c.Max > 90) {
			return fmt.Errorf("column %q: latitude out of bounds", c.Name)
		}
		if c.Kind == KindLongitude && (c.Min < -180 || c.Max > 180) {
			return fmt.Errorf("column %q: longitude out of bounds", c.Name)
		}
	case KindDateTime:
		if !(c.MinTime <= c.MeanTime && c.MeanTime <= c.MaxTime) {
			return fmt.Errorf("column %q: datetime stats out of order", c.Name)
		}
	case KindCategories:
		if len(c.Categories) < 1 {
			return fmt.Errorf("column %q: categories column has no members", c.Name)
		}
	case KindBoolean:
		if c.PortionTrue < 0 || c.PortionFalse < 0 || c.PortionTrue+c.PortionFalse > 1+1e-9 {
			return fmt.Errorf("column %q: boolean portions out of range", c.Name)
		}
	}
	return nil
}
