// Package inference implements the Column Inferencer (C2): the
// deterministic decision tree that turns a raw sequence of cell values
// into a labeled column.Column.
//
// Grounded on original_source/util/columninferencer.py.
package inference

// Config carries every threshold the decision tree uses. A single record
// is constructed with defaults and shared by the CSV/RDF ingesters and the
// type registry, per spec §9's configuration note.
type Config struct {
	// IntegerIDDensity is the minimum unique/range ratio for an integral
	// column to be classified Id rather than Integer.
	IntegerIDDensity float64
	// IntegerIDMinUnique is the minimum distinct-value count additionally
	// required for the Id classification.
	IntegerIDMinUnique int
	// CategoryRatio is the maximum unique/non-null ratio for a string
	// column to be classified Categories.
	CategoryRatio float64
	// IDLengthStddev is the maximum population stddev of string lengths
	// for a string column (that isn't Categories or Text) to be Id.
	IDLengthStddev float64
	// LatLonStddev is the minimum stddev a float column must have to be
	// considered for Latitude/Longitude refinement.
	LatLonStddev float64
	// LatitudeBound/LongitudeBound are the open-interval bounds checked
	// before refining a Float column into Latitude/Longitude.
	LatitudeBound  float64
	LongitudeBound float64

	// MaxRows is the CSV row count above which rows are sampled, each
	// admitted independently with probability MaxRows/total_rows, so the
	// sampled count is MaxRows on average rather than exactly.
	MaxRows int
	// SamplePortion selects which fraction of RDF data statements are
	// routed; ontology statements are always routed regardless.
	SamplePortion float64
}

// NewConfig returns a Config with the defaults named in spec §4.1/§6.
func NewConfig() Config {
	return Config{
		IntegerIDDensity:   0.9,
		IntegerIDMinUnique: 30,
		CategoryRatio:      0.1,
		IDLengthStddev:     0.5,
		LatLonStddev:       10.0,
		LatitudeBound:      90.0,
		LongitudeBound:     180.0,
		MaxRows:            10000,
		SamplePortion:      1.0,
	}
}
