package registry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
	"github.com/mimir-aip/semantic-schema-infer/pkg/vocab"
)

// ErrUnknownDatatype is returned by ProjectDatatype for an XSD IRI absent
// from the table in spec §6.
var ErrUnknownDatatype = errors.New("registry: unknown datatype")

var integerDatatypes = map[string]struct{}{
	vocab.XSDInt: {}, vocab.XSDInteger: {}, vocab.XSDLong: {}, vocab.XSDShort: {},
	vocab.XSDPositiveInteger: {}, vocab.XSDNonNegativeInt: {}, vocab.XSDNonPositiveInt: {},
	vocab.XSDNegativeInteger: {}, vocab.XSDUnsignedByte: {}, vocab.XSDUnsignedInt: {},
	vocab.XSDUnsignedLong: {}, vocab.XSDUnsignedShort: {}, vocab.XSDYear: {}, vocab.XSDMonth: {},
	vocab.XSDDay: {}, vocab.XSDHour: {}, vocab.XSDMinute: {}, vocab.XSDSecond: {},
	vocab.XSDTimezoneOffset: {}, vocab.XSDByte: {},
}

var floatDatatypes = map[string]struct{}{
	vocab.XSDDecimal: {}, vocab.XSDFloat: {}, vocab.XSDDouble: {},
}

var dateTimeDatatypes = map[string]struct{}{
	vocab.XSDDate: {}, vocab.XSDDateTime: {}, vocab.XSDDateTimeStamp: {},
}

var stringDatatypes = map[string]struct{}{
	vocab.XSDString: {}, vocab.XSDNormalizedString: {}, vocab.XSDToken: {},
	vocab.XSDIDREFS: {}, vocab.XSDNMTOKENS: {}, vocab.XSDNOTATION: {},
}

var typedIDDatatypes = map[string]struct{}{
	vocab.XSDAnyURI: {}, vocab.XSDID: {}, vocab.XSDIDREF: {}, vocab.XSDNCName: {},
	vocab.XSDNMTOKEN: {}, vocab.XSDName: {}, vocab.XSDQName: {}, vocab.XSDLanguage: {},
	vocab.XSDHexBinary: {},
}

// ProjectDatatype builds the column for a datatype Type's buffered literal
// values using the datatype-IRI -> column-variant table in spec §6,
// instead of re-running the full C2 decision tree: the XSD IRI is already
// known, so the branch is determined directly.
func ProjectDatatype(datatypeIRI string, values []any, columnName string) (*column.Column, error) {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = fmt.Sprintf("%v", v)
	}

	switch {
	case datatypeIRI == vocab.XSDBoolean:
		return projectBoolean(columnName, strs), nil

	case datatypeIRI == vocab.XSDTime:
		return projectTime(columnName, strs), nil

	case dateTimeIsKnown(datatypeIRI):
		return projectDateTime(columnName, strs), nil

	case integerIsKnown(datatypeIRI):
		return projectInteger(columnName, strs), nil

	case floatIsKnown(datatypeIRI):
		return projectFloat(columnName, strs), nil

	case stringIsKnown(datatypeIRI):
		return projectStringOrText(columnName, strs), nil

	case typedIDIsKnown(datatypeIRI):
		return projectTypedID(columnName, strs), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDatatype, datatypeIRI)
	}
}

func integerIsKnown(iri string) bool  { _, ok := integerDatatypes[iri]; return ok }
func floatIsKnown(iri string) bool    { _, ok := floatDatatypes[iri]; return ok }
func dateTimeIsKnown(iri string) bool { _, ok := dateTimeDatatypes[iri]; return ok }
func stringIsKnown(iri string) bool   { _, ok := stringDatatypes[iri]; return ok }
func typedIDIsKnown(iri string) bool  { _, ok := typedIDDatatypes[iri]; return ok }

func projectBoolean(name string, values []string) *column.Column {
	c := column.New(name, column.KindBoolean)
	if len(values) == 0 {
		return c
	}
	var trueCount int
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "true" || v == "1" {
			trueCount++
		}
	}
	c.PortionTrue = float64(trueCount) / float64(len(values))
	c.PortionFalse = float64(len(values)-trueCount) / float64(len(values))
	return c
}

func projectInteger(name string, values []string) *column.Column {
	floats := make([]float64, 0, len(values))
	for _, v := range values {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			floats = append(floats, f)
		}
	}
	return numericColumn(name, column.KindInteger, floats)
}

func projectFloat(name string, values []string) *column.Column {
	floats := make([]float64, 0, len(values))
	for _, v := range values {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			floats = append(floats, f)
		}
	}
	return numericColumn(name, column.KindFloat, floats)
}

func numericColumn(name string, kind column.Kind, floats []float64) *column.Column {
	c := column.New(name, kind)
	if len(floats) == 0 {
		return c
	}
	min, max := floats[0], floats[0]
	var sum float64
	for _, f := range floats {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
		sum += f
	}
	avg := sum / float64(len(floats))
	var sumSq float64
	for _, f := range floats {
		d := f - avg
		sumSq += d * d
	}
	c.Min, c.Avg, c.Max = min, avg, max
	c.Stddev = math.Sqrt(sumSq / float64(len(floats)))
	return c
}

var dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func projectDateTime(name string, values []string) *column.Column {
	c := column.New(name, column.KindDateTime)
	secs := make([]float64, 0, len(values))
	for _, v := range values {
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				secs = append(secs, float64(t.Unix()))
				break
			}
		}
	}
	if len(secs) == 0 {
		return c
	}
	min, max := secs[0], secs[0]
	var sum float64
	for _, s := range secs {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		sum += s
	}
	c.MinTime, c.MaxTime = min, max
	c.MeanTime = sum / float64(len(secs))
	return c
}

// projectTime parses a lexical time-of-day and zeroes the date component,
// per the xsd:time row of the §6 table.
func projectTime(name string, values []string) *column.Column {
	c := column.New(name, column.KindDateTime)
	secs := make([]float64, 0, len(values))
	for _, v := range values {
		if t, err := time.Parse("15:04:05", strings.TrimSpace(v)); err == nil {
			zeroed := time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			secs = append(secs, float64(zeroed.Unix()))
		}
	}
	if len(secs) == 0 {
		return c
	}
	min, max := secs[0], secs[0]
	var sum float64
	for _, s := range secs {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		sum += s
	}
	c.MinTime, c.MaxTime = min, max
	c.MeanTime = sum / float64(len(secs))
	return c
}

func projectStringOrText(name string, values []string) *column.Column {
	kind := column.KindString
	for _, v := range values {
		if strings.Contains(strings.TrimSpace(v), " ") {
			kind = column.KindText
			break
		}
	}
	lengths := make([]float64, len(values))
	for i, v := range values {
		lengths[i] = float64(utf8.RuneCountInString(v))
	}
	c := column.New(name, kind)
	if len(lengths) == 0 {
		return c
	}
	min, max := lengths[0], lengths[0]
	var sum float64
	for _, l := range lengths {
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
		sum += l
	}
	c.MinLen, c.MaxLen = min, max
	c.AvgLen = sum / float64(len(lengths))
	return c
}

func projectTypedID(name string, values []string) *column.Column {
	c := column.New(name, column.KindTypedID)
	for _, v := range values {
		c.AddID(v)
	}
	return c
}
