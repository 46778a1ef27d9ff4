package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a graph serialised as N-Triples. Only the line-oriented
// subset is supported: one triple per line, IRIs in angle brackets,
// literals with an optional language tag or datatype, and # comments.
// Blank node labels are kept verbatim as IRI terms.
func Load(r io.Reader) (*MemoryGraph, error) {
	g := NewMemoryGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		t, err := parseTriple(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		g.Add(t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadFile reads an N-Triples file from disk.
func LoadFile(path string) (*MemoryGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return g, nil
}

func parseTriple(line string) (Triple, error) {
	rest := line

	subject, rest, err := parseTerm(rest)
	if err != nil {
		return Triple{}, fmt.Errorf("subject: %w", err)
	}

	predicate, rest, err := parseTerm(rest)
	if err != nil {
		return Triple{}, fmt.Errorf("predicate: %w", err)
	}
	piri, ok := predicate.(IRI)
	if !ok {
		return Triple{}, fmt.Errorf("predicate must be an IRI, got %q", predicate)
	}

	object, rest, err := parseTerm(rest)
	if err != nil {
		return Triple{}, fmt.Errorf("object: %w", err)
	}

	rest = strings.TrimSpace(rest)
	if rest != "." {
		return Triple{}, fmt.Errorf("expected terminating '.', got %q", rest)
	}

	return Triple{Subject: subject, Predicate: piri, Object: object}, nil
}

func parseTerm(s string) (Term, string, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "<"):
		end := strings.Index(s, ">")
		if end < 0 {
			return nil, "", fmt.Errorf("unterminated IRI in %q", s)
		}
		return IRI(s[1:end]), s[end+1:], nil

	case strings.HasPrefix(s, "_:"):
		end := strings.IndexAny(s, " \t")
		if end < 0 {
			end = len(s)
		}
		return IRI(s[:end]), s[end:], nil

	case strings.HasPrefix(s, `"`):
		return parseLiteral(s)

	default:
		return nil, "", fmt.Errorf("unrecognised term in %q", s)
	}
}

func parseLiteral(s string) (Term, string, error) {
	var value strings.Builder
	i := 1
	for ; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			default:
				value.WriteByte(s[i])
			}
			continue
		}
		if c == '"' {
			break
		}
		value.WriteByte(c)
	}
	if i >= len(s) {
		return nil, "", fmt.Errorf("unterminated literal in %q", s)
	}

	lit := Literal{Value: value.String()}
	rest := s[i+1:]

	switch {
	case strings.HasPrefix(rest, "@"):
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		lit.Language = rest[1:end]
		rest = rest[end:]
	case strings.HasPrefix(rest, "^^<"):
		end := strings.Index(rest, ">")
		if end < 0 {
			return nil, "", fmt.Errorf("unterminated datatype in %q", rest)
		}
		lit.Datatype = IRI(rest[3:end])
		rest = rest[end+1:]
	}

	return lit, rest, nil
}
