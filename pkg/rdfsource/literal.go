package rdfsource

import (
	"strconv"
	"strings"
	"time"

	"github.com/mimir-aip/semantic-schema-infer/pkg/vocab"
)

var lenientLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// InferLiteralDatatype implements §4.4 step 2: use the literal's own
// datatype if present, else integer, then float, then mixed-format
// date-time (xsd:date if the parsed time is midnight, else xsd:dateTime),
// else xsd:string.
func InferLiteralDatatype(o Term) string {
	if o.Datatype != "" {
		return o.Datatype
	}

	v := strings.TrimSpace(o.Value)
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return vocab.XSDInt
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return vocab.XSDFloat
	}
	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return vocab.XSDDate
			}
			return vocab.XSDDateTime
		}
	}
	return vocab.XSDString
}

// literalValue converts a literal's lexical form to the Go value the
// registry's datatype projection expects: the raw string is always kept,
// letting ProjectDatatype reparse according to the XSD IRI it already
// knows, consistent with the per-property buffers built during routing.
func literalValue(o Term) any {
	return o.Value
}
