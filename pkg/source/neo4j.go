package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// localNamespace prefixes identifiers that carry no IRI of their own.
const localNamespace = "local://"

// Neo4jSource materialises a property graph as triples. Node labels
// become rdf:type assertions, node properties become literal-valued
// triples, and relationships become entity-to-entity triples.
type Neo4jSource struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jSource creates a source over a Neo4j database.
func NewNeo4jSource(uri, username, password, database string) (*Neo4jSource, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if database == "" {
		database = "neo4j"
	}

	return &Neo4jSource{client: driver, database: database}, nil
}

// Load implements Source.
func (s *Neo4jSource) Load(ctx context.Context) (*graph.MemoryGraph, error) {
	g := graph.NewMemoryGraph()

	if err := s.loadNodes(ctx, g); err != nil {
		return nil, err
	}
	if err := s.loadRelationships(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// Close implements Source.
func (s *Neo4jSource) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func (s *Neo4jSource) loadNodes(ctx context.Context, g *graph.MemoryGraph) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n)
			RETURN n.uri AS uri, labels(n) AS labels, properties(n) AS props
		`
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		for res.Next(ctx) {
			record := res.Record()

			uri, ok := stringValue(record.AsMap()["uri"])
			if !ok || uri == "" {
				continue
			}
			subject := toIRI(uri)

			if labels, ok := record.AsMap()["labels"].([]any); ok {
				for _, label := range labels {
					if name, ok := stringValue(label); ok {
						g.Add(graph.Triple{
							Subject:   subject,
							Predicate: graph.RDFType,
							Object:    toIRI(name),
						})
					}
				}
			}

			if props, ok := record.AsMap()["props"].(map[string]any); ok {
				for key, value := range props {
					if key == "uri" {
						continue
					}
					lit, ok := toLiteral(value)
					if !ok {
						continue
					}
					g.Add(graph.Triple{
						Subject:   subject,
						Predicate: toIRI(key),
						Object:    lit,
					})
				}
			}
		}
		return nil, res.Err()
	})
	if err != nil {
		return fmt.Errorf("failed to load nodes: %w", err)
	}
	return nil
}

func (s *Neo4jSource) loadRelationships(ctx context.Context, g *graph.MemoryGraph) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s)-[r]->(o)
			WHERE s.uri IS NOT NULL AND o.uri IS NOT NULL
			RETURN s.uri AS subject, type(r) AS predicate, o.uri AS object
		`
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		for res.Next(ctx) {
			m := res.Record().AsMap()
			subject, sok := stringValue(m["subject"])
			predicate, pok := stringValue(m["predicate"])
			object, ook := stringValue(m["object"])
			if !sok || !pok || !ook {
				continue
			}
			g.Add(graph.Triple{
				Subject:   toIRI(subject),
				Predicate: toIRI(predicate),
				Object:    toIRI(object),
			})
		}
		return nil, res.Err()
	})
	if err != nil {
		return fmt.Errorf("failed to load relationships: %w", err)
	}
	return nil
}

// toIRI maps a raw identifier to an IRI, namespacing bare names.
func toIRI(s string) graph.IRI {
	if strings.Contains(s, "://") {
		return graph.IRI(s)
	}
	return graph.IRI(localNamespace + s)
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// toLiteral maps a property value to a typed literal.
func toLiteral(v any) (graph.Literal, bool) {
	switch value := v.(type) {
	case string:
		return graph.Literal{Value: value, Datatype: graph.XSDString}, true
	case bool:
		return graph.Literal{Value: strconv.FormatBool(value), Datatype: graph.XSDBoolean}, true
	case int64:
		return graph.Literal{Value: strconv.FormatInt(value, 10), Datatype: graph.XSDInteger}, true
	case float64:
		return graph.Literal{Value: strconv.FormatFloat(value, 'g', -1, 64), Datatype: graph.XSDDouble}, true
	case time.Time:
		return graph.Literal{Value: value.Format(time.RFC3339), Datatype: graph.XSDDateTime}, true
	default:
		return graph.Literal{}, false
	}
}
