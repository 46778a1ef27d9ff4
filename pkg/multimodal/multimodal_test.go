package multimodal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported(graph.XSDInteger))
	assert.True(t, Supported(graph.XSDDateTime))
	assert.True(t, Supported(graph.XSDGMonth))
	assert.True(t, Supported(graph.XSDString))
	assert.False(t, Supported(graph.XSDBoolean))
	assert.False(t, Supported(graph.XSDAnyType))
}

func intLiterals(values ...string) []graph.Literal {
	lits := make([]graph.Literal, 0, len(values))
	for _, v := range values {
		lits = append(lits, graph.Literal{Value: v, Datatype: graph.XSDInteger})
	}
	return lits
}

func TestClusterNumericSeparatesGroups(t *testing.T) {
	// Two well-separated value groups.
	values := intLiterals("1", "2", "3", "2", "1", "100", "101", "102", "101", "100")

	nodes := Cluster(values, graph.XSDInteger)
	require.NotEmpty(t, nodes)

	var lowCovered, highCovered bool
	for _, node := range nodes {
		if node.Contains(graph.Literal{Value: "2", Datatype: graph.XSDInteger}) {
			lowCovered = true
		}
		if node.Contains(graph.Literal{Value: "101", Datatype: graph.XSDInteger}) {
			highCovered = true
		}
	}
	assert.True(t, lowCovered, "low value group must be covered by a cluster")
	assert.True(t, highCovered, "high value group must be covered by a cluster")

	for _, node := range nodes {
		assert.Equal(t, graph.XSDInteger, node.Datatype())
		assert.IsType(t, types.NumericNode{}, node)
	}
}

func TestClusterSkipsUnparseableValues(t *testing.T) {
	values := intLiterals("10", "12", "notanumber", "11")
	nodes := Cluster(values, graph.XSDInteger)
	require.NotEmpty(t, nodes)
	assert.False(t, nodes[0].Contains(graph.Literal{Value: "notanumber", Datatype: graph.XSDInteger}))
}

func TestClusterUnsupportedDatatype(t *testing.T) {
	values := []graph.Literal{{Value: "true", Datatype: graph.XSDBoolean}}
	assert.Nil(t, Cluster(values, graph.XSDBoolean))
}

func TestClusterStringsKeepDominantPatterns(t *testing.T) {
	values := []graph.Literal{
		{Value: "AB-1234", Datatype: graph.XSDString},
		{Value: "CD-5678", Datatype: graph.XSDString},
		{Value: "EF-9012", Datatype: graph.XSDString},
		{Value: "GH-3456", Datatype: graph.XSDString},
		{Value: "odd one out", Datatype: graph.XSDString},
	}

	nodes := Cluster(values, graph.XSDString)
	require.Len(t, nodes, 1, "the rare pattern must be dropped")
	assert.True(t, nodes[0].Contains(graph.Literal{Value: "ZZ-0000", Datatype: graph.XSDString}))
	assert.False(t, nodes[0].Contains(graph.Literal{Value: "odd one out", Datatype: graph.XSDString}))
}

func TestClusterStringsUniformFrequenciesKeepAll(t *testing.T) {
	values := []graph.Literal{
		{Value: "abc", Datatype: graph.XSDString},
		{Value: "1234", Datatype: graph.XSDString},
	}

	nodes := Cluster(values, graph.XSDString)
	assert.Len(t, nodes, 2)
}

func TestGenerateRegex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ab12", `^[A-Z]{1}[a-z]{1}\d{2}$`},
		{"hello world", `^[a-z]{5}\s[a-z]{5}$`},
		{"End.", `^[A-Z]{1}[a-z]{2}[.?!]{1}$`},
		{"", "^$"},
		{"  spaced  out  ", `^[a-z]{6}\s[a-z]{3}$`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, generateRegex(tt.in))
		})
	}
}

func TestNumericClustersSingleGroup(t *testing.T) {
	intervals := numericClusters([]float64{5, 5, 5, 5}, 3)
	require.NotEmpty(t, intervals)
	assert.LessOrEqual(t, intervals[0].lo, 5.0)
	assert.GreaterOrEqual(t, intervals[0].hi, 5.0)
}

func TestNumericClustersEmpty(t *testing.T) {
	assert.Nil(t, numericClusters(nil, 3))
}

func TestKmeans1dDeterministic(t *testing.T) {
	points := []float64{1, 2, 3, 100, 101, 102}
	a := kmeans1d(points, 2)
	b := kmeans1d(points, 2)
	assert.Equal(t, a, b)
}
