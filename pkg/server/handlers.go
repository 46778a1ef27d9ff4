package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// ClauseResponse is the JSON form of one mined clause.
type ClauseResponse struct {
	Type              string  `json:"type"`
	Depth             int     `json:"depth"`
	Head              string  `json:"head"`
	Body              string  `json:"body"`
	Support           int     `json:"support"`
	Confidence        int     `json:"confidence"`
	DomainProbability float64 `json:"domain_probability"`
	RangeProbability  float64 `json:"range_probability"`
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"clauses": s.forest.Size(),
	})
}

func (s *Server) listTypes(c *gin.Context) {
	ctypes := s.forest.Types()
	out := make([]string, 0, len(ctypes))
	for _, ctype := range ctypes {
		out = append(out, string(ctype))
	}
	c.JSON(http.StatusOK, gin.H{"types": out})
}

func (s *Server) listClauses(c *gin.Context) {
	ctype := graph.IRI(strings.TrimPrefix(c.Param("type"), "/"))
	if !s.forest.HasType(ctype) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown type"})
		return
	}
	tree := s.forest.GetTree(ctype)

	depth := -1
	if raw := c.Query("depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid depth"})
			return
		}
		depth = n
	}
	minSupport, ok := intQuery(c, "min_support", 0)
	if !ok {
		return
	}
	minConfidence, ok := intQuery(c, "min_confidence", 0)
	if !ok {
		return
	}

	var clauses []ClauseResponse
	for d := 0; d < tree.Height(); d++ {
		if depth >= 0 && d != depth {
			continue
		}
		for _, clause := range tree.Get(d) {
			if clause.Support < minSupport || clause.Confidence < minConfidence {
				continue
			}
			clauses = append(clauses, ClauseResponse{
				Type:              string(ctype),
				Depth:             d,
				Head:              clause.Head.String(),
				Body:              clause.Body.String(),
				Support:           clause.Support,
				Confidence:        clause.Confidence,
				DomainProbability: clause.DomainProbability,
				RangeProbability:  clause.RangeProbability,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"type":    ctype,
		"count":   len(clauses),
		"clauses": clauses,
	})
}

func (s *Server) stats(c *gin.Context) {
	perType := gin.H{}
	for _, ctype := range s.forest.Types() {
		tree := s.forest.GetTree(ctype)
		perType[string(ctype)] = gin.H{
			"clauses": tree.Size(),
			"height":  tree.Height(),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"clauses": s.forest.Size(),
		"types":   perType,
	})
}

// intQuery parses a non-negative integer query parameter, writing the
// error response itself on failure.
func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return n, true
}
