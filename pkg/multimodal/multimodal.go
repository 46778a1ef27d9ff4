// Package multimodal clusters literal values into value-range nodes.
// The miner treats the returned nodes as opaque generalised objects
// with a membership test; this package decides what the ranges are.
package multimodal

import (
	"math"
	"time"

	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

var (
	numericTypes = map[graph.IRI]struct{}{
		graph.XSDInteger:            {},
		graph.XSDNonNegativeInteger: {},
		graph.XSDNonPositiveInteger: {},
		graph.XSDNegativeInteger:    {},
		graph.XSDPositiveInteger:    {},
		graph.XSDFloat:              {},
		graph.XSDDouble:             {},
		graph.XSDDecimal:            {},
	}
	dateTimeTypes = map[graph.IRI]struct{}{
		graph.XSDDate:          {},
		graph.XSDDateTime:      {},
		graph.XSDDateTimeStamp: {},
	}
	dateFragTypes = map[graph.IRI]struct{}{
		graph.XSDGDay:       {},
		graph.XSDGMonth:     {},
		graph.XSDGMonthDay:  {},
		graph.XSDGYear:      {},
		graph.XSDGYearMonth: {},
	}
	stringTypes = map[graph.IRI]struct{}{
		graph.XSDString:           {},
		graph.XSDNormalizedString: {},
	}
)

// IsNumeric reports whether dtype clusters on the numeric axis.
func IsNumeric(dtype graph.IRI) bool {
	_, ok := numericTypes[dtype]
	return ok
}

// IsDateTime reports whether dtype clusters on the timestamp axis.
func IsDateTime(dtype graph.IRI) bool {
	_, ok := dateTimeTypes[dtype]
	return ok
}

// IsDateFrag reports whether dtype clusters on the day-count axis.
func IsDateFrag(dtype graph.IRI) bool {
	_, ok := dateFragTypes[dtype]
	return ok
}

// IsString reports whether dtype clusters by induced pattern.
func IsString(dtype graph.IRI) bool {
	_, ok := stringTypes[dtype]
	return ok
}

// Supported reports whether any clustering strategy applies to dtype.
func Supported(dtype graph.IRI) bool {
	return IsNumeric(dtype) || IsDateTime(dtype) || IsDateFrag(dtype) || IsString(dtype)
}

// Cluster partitions a multiset of literal values of one datatype into
// value-range nodes. Values that fail to parse are skipped; an empty
// result means no cluster satisfied the strategy.
func Cluster(values []graph.Literal, dtype graph.IRI) []types.MultiModalNode {
	switch {
	case IsNumeric(dtype):
		points := make([]float64, 0, len(values))
		for _, v := range values {
			if f, ok := parseFloat(v.Value); ok {
				points = append(points, f)
			}
		}
		var nodes []types.MultiModalNode
		for _, iv := range numericClusters(points, 3) {
			nodes = append(nodes, types.NumericNode{Dtype: dtype, Min: iv.lo, Max: iv.hi})
		}
		return nodes

	case IsDateTime(dtype):
		points := make([]float64, 0, len(values))
		for _, v := range values {
			if t, err := types.ParseDateTime(v.Value); err == nil {
				points = append(points, float64(t.Unix()))
			}
		}
		var nodes []types.MultiModalNode
		for _, iv := range numericClusters(points, 0) {
			nodes = append(nodes, types.DateTimeNode{
				Dtype: dtype,
				Begin: time.Unix(int64(iv.lo), 0).UTC(),
				End:   time.Unix(int64(iv.hi), 0).UTC(),
			})
		}
		return nodes

	case IsDateFrag(dtype):
		points := make([]float64, 0, len(values))
		for _, v := range values {
			if days, err := types.DateFragToDays(v.Value, dtype); err == nil {
				points = append(points, float64(days))
			}
		}
		var nodes []types.MultiModalNode
		for _, iv := range numericClusters(points, 0) {
			nodes = append(nodes, types.DateFragNode{
				Dtype: dtype,
				Begin: int(math.Floor(iv.lo)),
				End:   int(math.Ceil(iv.hi)),
			})
		}
		return nodes

	case IsString(dtype):
		raw := make([]string, 0, len(values))
		for _, v := range values {
			raw = append(raw, v.Value)
		}
		var nodes []types.MultiModalNode
		for _, pattern := range stringClusters(raw) {
			nodes = append(nodes, types.StringNode{Dtype: dtype, Pattern: pattern})
		}
		return nodes
	}

	return nil
}

func parseFloat(s string) (float64, bool) {
	f, err := parseFloatStrict(s)
	if err != nil {
		return 0, false
	}
	return f, true
}
