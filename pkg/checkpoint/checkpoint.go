// Package checkpoint persists mining run snapshots as JSON files, one
// per run. A snapshot records the run parameters, the last completed
// depth, and the flat clause listing of the forest at that point, so an
// interrupted run can be inspected or re-exported without repeating the
// search.
package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/types"
)

// ErrInvalidRunID is returned when a run ID contains invalid characters
var ErrInvalidRunID = errors.New("invalid run ID: contains path traversal or invalid characters")

// Parameters is the subset of mining options worth recording with a
// snapshot.
type Parameters struct {
	DepthStart    int     `json:"depth_start"`
	DepthStop     int     `json:"depth_stop"`
	MinSupport    int     `json:"min_support"`
	MinConfidence int     `json:"min_confidence"`
	Mode          string  `json:"mode"`
	PExplore      float64 `json:"p_explore"`
	PExtend       float64 `json:"p_extend"`
	Prune         bool    `json:"prune"`
	Multimodal    bool    `json:"multimodal"`
	Seed          int64   `json:"seed"`
}

// ClauseRecord is the serialized form of one clause.
type ClauseRecord struct {
	ID                string  `json:"id"`
	ParentID          string  `json:"parent_id,omitempty"`
	Type              string  `json:"type"`
	Depth             int     `json:"depth"`
	Head              string  `json:"head"`
	Body              string  `json:"body"`
	Support           int     `json:"support"`
	Confidence        int     `json:"confidence"`
	DomainProbability float64 `json:"domain_probability"`
	RangeProbability  float64 `json:"range_probability"`
	Pruned            bool    `json:"pruned"`
}

// RunCheckpoint represents the state of a mining run
type RunCheckpoint struct {
	RunID  string `json:"run_id"`
	Source string `json:"source"`

	// Depth is the last depth whose expansion completed. -1 means
	// only seeding finished.
	Depth     int  `json:"depth"`
	Completed bool `json:"completed"`

	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	AttemptCount  int       `json:"attempt_count"`
	LastError     string    `json:"last_error,omitempty"`

	Parameters Parameters     `json:"parameters"`
	Clauses    []ClauseRecord `json:"clauses,omitempty"`
}

// NewRunCheckpoint starts a fresh snapshot for a source graph.
func NewRunCheckpoint(source string, params Parameters) *RunCheckpoint {
	now := time.Now()
	return &RunCheckpoint{
		RunID:      uuid.NewString(),
		Source:     source,
		Depth:      -1,
		CreatedAt:  now,
		Parameters: params,
	}
}

// Capture replaces the snapshot's clause listing with the forest's
// current content and records the last completed depth.
func (c *RunCheckpoint) Capture(f *forest.Forest, depth int) {
	c.Depth = depth
	c.Clauses = c.Clauses[:0]

	ids := make(map[*types.Clause]string)
	for _, ctype := range f.Types() {
		tree := f.GetTree(ctype)
		for d := 0; d < tree.Height(); d++ {
			for _, clause := range tree.Get(d) {
				ids[clause] = uuid.NewString()
			}
		}
	}

	for _, ctype := range f.Types() {
		tree := f.GetTree(ctype)
		for d := 0; d < tree.Height(); d++ {
			for _, clause := range tree.Get(d) {
				rec := ClauseRecord{
					ID:                ids[clause],
					Type:              string(ctype),
					Depth:             d,
					Head:              clause.Head.String(),
					Body:              clause.Body.String(),
					Support:           clause.Support,
					Confidence:        clause.Confidence,
					DomainProbability: clause.DomainProbability,
					RangeProbability:  clause.RangeProbability,
					Pruned:            clause.Prune,
				}
				if parentID, ok := ids[clause.Parent]; ok {
					rec.ParentID = parentID
				}
				c.Clauses = append(c.Clauses, rec)
			}
		}
	}
}

// Manager manages run checkpoints on disk
type Manager struct {
	dir string
}

// NewManager creates a checkpoint manager. An empty dir falls back to
// os.TempDir()/gfdminer-checkpoints.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "gfdminer-checkpoints")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	return &Manager{dir: dir}, nil
}

// Dir returns the checkpoint directory path.
func (m *Manager) Dir() string { return m.dir }

// validateRunID checks that the run ID is safe for use in file paths.
func validateRunID(runID string) error {
	if runID == "" {
		return ErrInvalidRunID
	}
	if strings.Contains(runID, "..") {
		return ErrInvalidRunID
	}
	if strings.ContainsAny(runID, `/\`) {
		return ErrInvalidRunID
	}
	if strings.ContainsRune(runID, '\x00') {
		return ErrInvalidRunID
	}
	return nil
}

// isPathWithinDirectory checks that the resolved path stays inside the
// expected directory.
func isPathWithinDirectory(path, directory string) bool {
	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(directory)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath, cleanDir) || cleanPath == filepath.Clean(directory)
}

// Path returns the file path for a run's checkpoint. Returns an error
// if the run ID contains invalid characters or traversal sequences.
func (m *Manager) Path(runID string) (string, error) {
	if err := validateRunID(runID); err != nil {
		return "", err
	}

	fullPath := filepath.Join(m.dir, fmt.Sprintf("run_%s.json", runID))
	if !isPathWithinDirectory(fullPath, m.dir) {
		return "", ErrInvalidRunID
	}

	return fullPath, nil
}

// Save persists the checkpoint to disk
func (m *Manager) Save(ctx context.Context, checkpoint *RunCheckpoint) error {
	checkpoint.LastUpdatedAt = time.Now()

	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	path, err := m.Path(checkpoint.RunID)
	if err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}

	// Write to a temporary file first, then rename for atomic write
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename checkpoint file: %w", err)
	}

	return nil
}

// Load retrieves a checkpoint from disk. A missing checkpoint returns
// nil without error.
func (m *Manager) Load(ctx context.Context, runID string) (*RunCheckpoint, error) {
	path, err := m.Path(runID)
	if err != nil {
		return nil, fmt.Errorf("invalid run ID: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint file: %w", err)
	}

	var checkpoint RunCheckpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}

	return &checkpoint, nil
}

// Delete removes a checkpoint from disk
func (m *Manager) Delete(ctx context.Context, runID string) error {
	path, err := m.Path(runID)
	if err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete checkpoint file: %w", err)
	}

	return nil
}

// Exists checks if a checkpoint exists for a run
func (m *Manager) Exists(ctx context.Context, runID string) (bool, error) {
	path, err := m.Path(runID)
	if err != nil {
		return false, fmt.Errorf("invalid run ID: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check checkpoint existence: %w", err)
	}

	return true, nil
}

// List returns all checkpoints in the checkpoint directory
func (m *Manager) List(ctx context.Context) ([]*RunCheckpoint, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint directory: %w", err)
	}

	var checkpoints []*RunCheckpoint
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			continue
		}

		var checkpoint RunCheckpoint
		if err := json.Unmarshal(data, &checkpoint); err != nil {
			continue
		}

		checkpoints = append(checkpoints, &checkpoint)
	}

	return checkpoints, nil
}

// RecordError records a failed attempt in the checkpoint
func (m *Manager) RecordError(ctx context.Context, runID string, runErr error) error {
	checkpoint, err := m.Load(ctx, runID)
	if err != nil {
		return err
	}
	if checkpoint == nil {
		return fmt.Errorf("checkpoint not found for run %s", runID)
	}

	checkpoint.AttemptCount++
	checkpoint.LastError = runErr.Error()

	return m.Save(ctx, checkpoint)
}

// CleanOld removes checkpoints older than the specified duration
func (m *Manager) CleanOld(ctx context.Context, maxAge time.Duration) (int, error) {
	checkpoints, err := m.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, checkpoint := range checkpoints {
		if checkpoint.LastUpdatedAt.Before(cutoff) {
			if err := m.Delete(ctx, checkpoint.RunID); err != nil {
				continue
			}
			removed++
		}
	}

	return removed, nil
}
