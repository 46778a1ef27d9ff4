package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

func fixtureForest() *forest.Forest {
	person := graph.IRI("ex://Person")
	v := types.ObjectTypeVariable{Type: person}

	strong := types.NewClause(
		types.NewAssertion(v, "ex://livesIn", graph.IRI("ex://metropolis")),
		types.NewClauseBody(types.NewIdentityAssertion(v)),
		nil,
	)
	strong.Support, strong.Confidence = 3, 3
	strong.DomainProbability = 1.0

	weak := types.NewClause(
		types.NewAssertion(v, "ex://knows", v),
		types.NewClauseBody(types.NewIdentityAssertion(v)),
		nil,
	)
	weak.Support, weak.Confidence = 3, 2
	weak.DomainProbability = 2.0 / 3.0

	tree := forest.NewTree()
	tree.Add(weak, 0)
	tree.Add(strong, 0)

	f := forest.NewForest()
	f.Plant(person, tree)
	return f
}

func TestRecordsOrder(t *testing.T) {
	records := Records(fixtureForest())
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Same type and depth sorts by descending domain probability.
	if records[0].DomainProbability < records[1].DomainProbability {
		t.Errorf("records not sorted by probability: %v then %v",
			records[0].DomainProbability, records[1].DomainProbability)
	}
	if records[0].Support != 3 || records[0].Confidence != 3 {
		t.Errorf("unexpected leading record: %+v", records[0])
	}
}

func TestWriteTSV(t *testing.T) {
	var buf strings.Builder
	if err := WriteTSV(&buf, Records(fixtureForest())); err != nil {
		t.Fatalf("WriteTSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "type\tdepth\thead\tbody") {
		t.Errorf("bad header: %q", lines[0])
	}
	fields := strings.Split(lines[1], "\t")
	if len(fields) != 8 {
		t.Fatalf("row has %d fields, want 8: %q", len(fields), lines[1])
	}
	if fields[6] != "1.000000" {
		t.Errorf("probability field = %q, want 1.000000", fields[6])
	}
}

func TestWriteParquetRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clauses.parquet")
	records := Records(fixtureForest())
	if err := WriteParquetFile(path, records); err != nil {
		t.Fatalf("WriteParquetFile: %v", err)
	}

	read, err := parquet.ReadFile[Record](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(read) != len(records) {
		t.Fatalf("read %d records, want %d", len(read), len(records))
	}
	if read[0] != records[0] {
		t.Errorf("roundtrip mismatch: %+v != %+v", read[0], records[0])
	}
}

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()
	f := fixtureForest()

	if err := Write(filepath.Join(dir, "out.tsv"), "tsv", f); err != nil {
		t.Fatalf("Write tsv: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.tsv")); err != nil {
		t.Errorf("tsv file missing: %v", err)
	}

	if err := Write(filepath.Join(dir, "out.parquet"), "parquet", f); err != nil {
		t.Fatalf("Write parquet: %v", err)
	}

	if err := Write(filepath.Join(dir, "out.bin"), "xml", f); err == nil {
		t.Error("unknown format must error")
	}
}
