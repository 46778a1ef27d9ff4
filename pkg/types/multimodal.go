package types

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// MultiModalNode is a clustered range or pattern over literal values,
// delivered by the clustering collaborator and used as a generalised
// object in a clause head. Nodes never occur inside clause bodies.
type MultiModalNode interface {
	Resource
	Datatype() graph.IRI
	Contains(l graph.Literal) bool
}

// NumericNode covers the closed interval [Min, Max].
type NumericNode struct {
	Dtype graph.IRI
	Min   float64
	Max   float64
}

func (n NumericNode) Datatype() graph.IRI { return n.Dtype }

func (n NumericNode) Contains(l graph.Literal) bool {
	v, err := strconv.ParseFloat(l.Value, 64)
	if err != nil {
		return false
	}
	return v >= n.Min && v <= n.Max
}

func (n NumericNode) String() string {
	return fmt.Sprintf("NUMERIC [%g, %g]", n.Min, n.Max)
}

// DateTimeNode covers the closed interval [Begin, End].
type DateTimeNode struct {
	Dtype graph.IRI
	Begin time.Time
	End   time.Time
}

func (n DateTimeNode) Datatype() graph.IRI { return n.Dtype }

func (n DateTimeNode) Contains(l graph.Literal) bool {
	t, err := ParseDateTime(l.Value)
	if err != nil {
		return false
	}
	return !t.Before(n.Begin) && !t.After(n.End)
}

func (n DateTimeNode) String() string {
	return fmt.Sprintf("DATETIME [%s, %s]",
		n.Begin.Format(time.RFC3339), n.End.Format(time.RFC3339))
}

// DateFragNode covers date fragments (gYear, gMonthDay, ...) whose
// day-count projection falls in [Begin, End].
type DateFragNode struct {
	Dtype graph.IRI
	Begin int
	End   int
}

func (n DateFragNode) Datatype() graph.IRI { return n.Dtype }

func (n DateFragNode) Contains(l graph.Literal) bool {
	days, err := DateFragToDays(l.Value, n.Dtype)
	if err != nil {
		return false
	}
	return days >= n.Begin && days <= n.End
}

func (n DateFragNode) String() string {
	return fmt.Sprintf("DATEFRAG [%dd, %dd]", n.Begin, n.End)
}

// StringNode covers strings matching an induced regular expression.
type StringNode struct {
	Dtype   graph.IRI
	Pattern string
}

func (n StringNode) Datatype() graph.IRI { return n.Dtype }

func (n StringNode) Contains(l graph.Literal) bool {
	re, err := compiledPattern(n.Pattern)
	if err != nil {
		return false
	}
	return re.MatchString(l.Value)
}

func (n StringNode) String() string {
	return fmt.Sprintf("STRING [%s]", n.Pattern)
}

// ParseDateTime accepts the xsd:date and xsd:dateTime lexical forms.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable dateTime value %q", s)
}

// Induced patterns repeat across nodes, so compilation results are
// shared process-wide.
var (
	patternMu    sync.RWMutex
	patternCache = make(map[string]*regexp.Regexp)
)

func compiledPattern(pattern string) (*regexp.Regexp, error) {
	patternMu.RLock()
	re, ok := patternCache[pattern]
	patternMu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	patternMu.Lock()
	patternCache[pattern] = re
	patternMu.Unlock()
	return re, nil
}
