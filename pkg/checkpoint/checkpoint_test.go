package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func testParams() Parameters {
	return Parameters{
		DepthStart:    0,
		DepthStop:     2,
		MinSupport:    2,
		MinConfidence: 2,
		Mode:          "BB",
		PExplore:      1.0,
		PExtend:       1.0,
		Prune:         true,
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	cp := NewRunCheckpoint("graph.nt", testParams())
	cp.Depth = 1
	if err := m.Save(ctx, cp); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := m.Load(ctx, cp.RunID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for a saved run")
	}
	if loaded.RunID != cp.RunID || loaded.Source != "graph.nt" || loaded.Depth != 1 {
		t.Errorf("roundtrip mismatch: %+v", loaded)
	}
	if loaded.Parameters != testParams() {
		t.Errorf("parameters mismatch: %+v", loaded.Parameters)
	}
	if loaded.LastUpdatedAt.IsZero() {
		t.Error("Save must stamp LastUpdatedAt")
	}
}

func TestLoadMissingRun(t *testing.T) {
	m := testManager(t)

	loaded, err := m.Load(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("Load of missing run: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil for missing run, got %+v", loaded)
	}
}

func TestDeleteAndExists(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	cp := NewRunCheckpoint("graph.nt", testParams())
	if err := m.Save(ctx, cp); err != nil {
		t.Fatalf("Save: %v", err)
	}

	exists, err := m.Exists(ctx, cp.RunID)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	if err := m.Delete(ctx, cp.RunID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	exists, err = m.Exists(ctx, cp.RunID)
	if err != nil || exists {
		t.Fatalf("Exists after delete = %v, %v", exists, err)
	}
	// Deleting twice is not an error.
	if err := m.Delete(ctx, cp.RunID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestInvalidRunIDs(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	for _, runID := range []string{"", "../escape", "a/b", "run\x00id", ".."} {
		if _, err := m.Load(ctx, runID); !errors.Is(err, ErrInvalidRunID) {
			t.Errorf("Load(%q) error = %v, want ErrInvalidRunID", runID, err)
		}
		if err := m.Delete(ctx, runID); !errors.Is(err, ErrInvalidRunID) {
			t.Errorf("Delete(%q) error = %v, want ErrInvalidRunID", runID, err)
		}
	}
}

func TestRecordError(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	cp := NewRunCheckpoint("graph.nt", testParams())
	if err := m.Save(ctx, cp); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := m.RecordError(ctx, cp.RunID, errors.New("source unreachable")); err != nil {
		t.Fatalf("RecordError: %v", err)
	}

	loaded, err := m.Load(ctx, cp.RunID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.LastError != "source unreachable" {
		t.Errorf("LastError = %q", loaded.LastError)
	}
	if loaded.AttemptCount != 1 {
		t.Errorf("AttemptCount = %d, want 1", loaded.AttemptCount)
	}
}

func TestListAndCleanOld(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	fresh := NewRunCheckpoint("fresh.nt", testParams())
	if err := m.Save(ctx, fresh); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Save stamps LastUpdatedAt, so an aged run has to be written raw.
	stale := NewRunCheckpoint("stale.nt", testParams())
	stale.LastUpdatedAt = time.Now().Add(-48 * time.Hour)
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path, err := m.Path(stale.RunID)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	runs, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(runs))
	}

	removed, err := m.CleanOld(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("CleanOld: %v", err)
	}
	if removed != 1 {
		t.Errorf("CleanOld removed %d, want 1", removed)
	}

	exists, err := m.Exists(ctx, fresh.RunID)
	if err != nil || !exists {
		t.Errorf("fresh run should survive cleaning: %v, %v", exists, err)
	}
}

func TestCaptureRecordsForest(t *testing.T) {
	person := graph.IRI("ex://Person")
	v := types.ObjectTypeVariable{Type: person}

	parent := types.NewClause(
		types.NewAssertion(v, "ex://knows", v),
		types.NewClauseBody(types.NewIdentityAssertion(v)),
		nil,
	)
	parent.Support, parent.Confidence = 3, 2
	parent.DomainProbability = 2.0 / 3.0

	childBody := parent.Body.Copy()
	childBody.Extend(childBody.Identity, types.NewAssertion(v, "ex://livesIn", graph.IRI("ex://metropolis")))
	child := types.NewClause(parent.Head, childBody, parent)
	child.Support, child.Confidence = 2, 2
	child.DomainProbability = 1.0

	tree := forest.NewTree()
	tree.Add(parent, 0)
	tree.Add(child, 1)
	f := forest.NewForest()
	f.Plant(person, tree)

	cp := NewRunCheckpoint("graph.nt", testParams())
	cp.Capture(f, 1)

	if cp.Depth != 1 {
		t.Errorf("Depth = %d, want 1", cp.Depth)
	}
	if len(cp.Clauses) != 2 {
		t.Fatalf("captured %d clauses, want 2", len(cp.Clauses))
	}

	byDepth := make(map[int]ClauseRecord)
	for _, rec := range cp.Clauses {
		byDepth[rec.Depth] = rec
	}
	root, ok := byDepth[0]
	if !ok || root.ID == "" || root.ParentID != "" {
		t.Errorf("root record malformed: %+v", root)
	}
	leaf, ok := byDepth[1]
	if !ok || leaf.ParentID != root.ID {
		t.Errorf("leaf must link to its parent: %+v", leaf)
	}
	if leaf.Support != 2 || leaf.Type != string(person) {
		t.Errorf("leaf statistics mismatch: %+v", leaf)
	}

	// Recapture replaces, never appends.
	cp.Capture(f, 1)
	if len(cp.Clauses) != 2 {
		t.Errorf("recapture appended: %d clauses", len(cp.Clauses))
	}
}
