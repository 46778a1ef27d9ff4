// Package export flattens a generation forest into clause rows and
// writes them as TSV for quick inspection or Parquet for downstream
// analysis.
package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/soundprediction/gfdminer/pkg/forest"
)

// Record is one mined clause in flat form.
type Record struct {
	Type              string  `parquet:"type"`
	Depth             int32   `parquet:"depth"`
	Head              string  `parquet:"head"`
	Body              string  `parquet:"body"`
	Support           int32   `parquet:"support"`
	Confidence        int32   `parquet:"confidence"`
	DomainProbability float64 `parquet:"domain_probability"`
	RangeProbability  float64 `parquet:"range_probability"`
}

// Records flattens the forest in deterministic order: by type, then
// depth, then descending domain probability, then head text.
func Records(f *forest.Forest) []Record {
	var records []Record
	for _, ctype := range f.Types() {
		tree := f.GetTree(ctype)
		for depth := 0; depth < tree.Height(); depth++ {
			for _, clause := range tree.Get(depth) {
				records = append(records, Record{
					Type:              string(ctype),
					Depth:             int32(depth),
					Head:              clause.Head.String(),
					Body:              clause.Body.String(),
					Support:           int32(clause.Support),
					Confidence:        int32(clause.Confidence),
					DomainProbability: clause.DomainProbability,
					RangeProbability:  clause.RangeProbability,
				})
			}
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		if a.DomainProbability != b.DomainProbability {
			return a.DomainProbability > b.DomainProbability
		}
		if a.Head != b.Head {
			return a.Head < b.Head
		}
		return a.Body < b.Body
	})
	return records
}

// WriteTSV writes records as tab-separated rows with a header line.
func WriteTSV(w io.Writer, records []Record) error {
	header := []string{"type", "depth", "head", "body", "support", "confidence", "domain_probability", "range_probability"}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%d\t%0.6f\t%0.6f\n",
			r.Type, r.Depth, r.Head, r.Body, r.Support, r.Confidence,
			r.DomainProbability, r.RangeProbability)
		if err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

// WriteTSVFile writes records to a TSV file.
func WriteTSVFile(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	return WriteTSV(file, records)
}

// WriteParquetFile writes records to a Parquet file.
func WriteParquetFile(path string, records []Record) error {
	if err := parquet.WriteFile(path, records); err != nil {
		return fmt.Errorf("failed to write parquet file %s: %w", path, err)
	}
	return nil
}

// Write dispatches on format: "tsv" or "parquet".
func Write(path, format string, f *forest.Forest) error {
	records := Records(f)
	switch strings.ToLower(format) {
	case "tsv", "":
		return WriteTSVFile(path, records)
	case "parquet":
		return WriteParquetFile(path, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
