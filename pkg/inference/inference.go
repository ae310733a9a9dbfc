package inference

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mimir-aip/semantic-schema-infer/internal/log"
	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
)

// Inferencer runs the column-inference decision tree against a shared
// Config, logging the fallback path taken for a column at DEBUG level.
type Inferencer struct {
	Config Config
	Logger *log.Logger
}

// New builds an Inferencer with the given Config. A nil logger falls back
// to the package default.
func New(cfg Config, logger *log.Logger) *Inferencer {
	if logger == nil {
		logger = log.Default()
	}
	return &Inferencer{Config: cfg, Logger: logger}
}

// Infer classifies a raw value sequence into a column.Column following the
// decision tree in spec §4.1. It never returns an error: any branch that
// cannot classify the data falls through to an Unknown column.
func (inf *Inferencer) Infer(values []any, columnName string) *column.Column {
	nonNull := make([]any, 0, len(values))
	for _, v := range values {
		if v != nil {
			nonNull = append(nonNull, v)
		}
	}

	if bools, ok := allBools(nonNull); ok {
		return inf.booleanColumn(columnName, bools, len(nonNull))
	}
	if ints, ok := allInts(nonNull); ok {
		return inf.integralColumn(columnName, ints)
	}
	if floats, ok := allFloats(nonNull); ok {
		return inf.floatColumn(columnName, floats)
	}
	if strs, ok := allStrings(nonNull); ok {
		return inf.stringColumn(columnName, strs)
	}

	inf.Logger.Debug("inference: no branch matched, falling back to Unknown", log.String("column", columnName))
	c := column.New(columnName, column.KindUnknown)
	c.Values = values
	return c
}

func allBools(values []any) ([]bool, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]bool, 0, len(values))
	for _, v := range values {
		b, ok := v.(bool)
		if !ok {
			return nil, false
		}
		out = append(out, b)
	}
	return out, true
}

func allInts(values []any) ([]int64, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]int64, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int:
			out = append(out, int64(n))
		case int32:
			out = append(out, int64(n))
		case int64:
			out = append(out, n)
		default:
			return nil, false
		}
	}
	return out, true
}

func allFloats(values []any) ([]float64, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func allStrings(values []any) ([]string, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// booleanColumn implements decision-tree step 1.
func (inf *Inferencer) booleanColumn(name string, values []bool, total int) *column.Column {
	c := column.New(name, column.KindBoolean)
	if total == 0 {
		return c
	}
	var trueCount int
	for _, b := range values {
		if b {
			trueCount++
		}
	}
	c.PortionTrue = float64(trueCount) / float64(total)
	c.PortionFalse = float64(total-trueCount) / float64(total)
	return c
}

// integralColumn implements decision-tree step 2: Id if dense and
// sufficiently numerous, else Integer.
func (inf *Inferencer) integralColumn(name string, values []int64) *column.Column {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}

	density := integerDensity(floats)
	unique := uniqueCount(floats)

	if density > inf.Config.IntegerIDDensity && unique > inf.Config.IntegerIDMinUnique {
		return inf.idColumnFromStrings(name, formatInts(values))
	}

	c := column.New(name, column.KindInteger)
	c.Min, c.Max = minMax(floats)
	c.Avg = mean(floats)
	c.Stddev = stddev(floats)
	return c
}

func formatInts(values []int64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatInt(v, 10)
	}
	return out
}

// floatColumn implements decision-tree step 3: Float, refined to
// Latitude/Longitude when the bounds and spread test pass.
func (inf *Inferencer) floatColumn(name string, values []float64) *column.Column {
	min, max := minMax(values)
	avg := mean(values)
	sd := stddev(values)

	cfg := inf.Config
	if min > -cfg.LatitudeBound && max < cfg.LatitudeBound && sd > cfg.LatLonStddev && !strings.Contains(strings.ToLower(name), "lon") {
		c := column.New(name, column.KindLatitude)
		c.Min, c.Avg, c.Max, c.Stddev = min, avg, max, sd
		return c
	}
	if min > -cfg.LongitudeBound && max < cfg.LongitudeBound && sd > cfg.LatLonStddev {
		c := column.New(name, column.KindLongitude)
		c.Min, c.Avg, c.Max, c.Stddev = min, avg, max, sd
		return c
	}

	c := column.New(name, column.KindFloat)
	c.Min, c.Avg, c.Max, c.Stddev = min, avg, max, sd
	return c
}

// stringColumn implements decision-tree step 4: date-time parse attempted
// first (load-bearing ordering, see spec §4.1), then numeric reparse, then
// the category/whitespace/length-stddev string cascade.
func (inf *Inferencer) stringColumn(name string, values []string) *column.Column {
	if times, ok := allParseAsDateTime(values); ok {
		return dateTimeColumn(name, times)
	}

	if ints, ok := allParseAsInt(values); ok {
		inf.Logger.Debug("inference: numeric-string column reparsed as integer", log.String("column", name))
		return inf.integralColumn(name, ints)
	}

	if floats, ok := allParseAsFloat(values); ok {
		inf.Logger.Debug("inference: numeric-string column reparsed as float", log.String("column", name))
		return inf.floatColumn(name, floats)
	}

	return inf.categoricalOrStringColumn(name, values)
}

func allParseAsInt(values []string) ([]int64, bool) {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func allParseAsFloat(values []string) ([]float64, bool) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func (inf *Inferencer) categoricalOrStringColumn(name string, values []string) *column.Column {
	unique := uniqueStrings(values)
	nonNull := len(values)

	if nonNull > 0 && float64(unique)/float64(nonNull) < inf.Config.CategoryRatio {
		c := column.New(name, column.KindCategories)
		for _, v := range values {
			c.AddCategory(v)
		}
		return c
	}

	for _, v := range values {
		if strings.Contains(strings.TrimSpace(v), " ") {
			return inf.idColumnOrTextFromStrings(name, values, column.KindText)
		}
	}

	lengths := make([]float64, len(values))
	for i, v := range values {
		lengths[i] = float64(utf8.RuneCountInString(v))
	}
	if stddev(lengths) < inf.Config.IDLengthStddev {
		return inf.idColumnFromStrings(name, values)
	}

	return inf.idColumnOrTextFromStrings(name, values, column.KindString)
}

// idColumnOrTextFromStrings builds an Id, String or Text column (same
// shape, different Kind) with length statistics over the runes of each
// value.
func (inf *Inferencer) idColumnOrTextFromStrings(name string, values []string, kind column.Kind) *column.Column {
	lengths := make([]float64, len(values))
	for i, v := range values {
		lengths[i] = float64(utf8.RuneCountInString(v))
	}
	min, max := minMax(lengths)
	c := column.New(name, kind)
	c.MinLen, c.MaxLen = min, max
	c.AvgLen = mean(lengths)
	return c
}

func (inf *Inferencer) idColumnFromStrings(name string, values []string) *column.Column {
	return inf.idColumnOrTextFromStrings(name, values, column.KindID)
}

func dateTimeColumn(name string, times []time.Time) *column.Column {
	c := column.New(name, column.KindDateTime)
	if len(times) == 0 {
		return c
	}
	secs := make([]float64, len(times))
	for i, t := range times {
		secs[i] = float64(t.Unix())
	}
	min, max := minMax(secs)
	c.MinTime, c.MaxTime = min, max
	c.MeanTime = mean(secs)
	return c
}
