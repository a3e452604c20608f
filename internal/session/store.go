// Package session owns scan lifecycle state and result storage. Transitions
// are monotonic: pending -> processing -> completed | failed, and terminal
// states are never left.
package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pqradar/pqradar/internal/aggregate"
	"github.com/pqradar/pqradar/internal/engine"
	"github.com/pqradar/pqradar/internal/risk"
	"github.com/pqradar/pqradar/internal/types"
)

// Status is the lifecycle state of a scan session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var (
	// ErrNotFound means no session exists for the scan id.
	ErrNotFound = errors.New("scan not found")
	// ErrScanInProgress means a processing pass is already in flight for the
	// scan id; the second request is rejected, not queued.
	ErrScanInProgress = errors.New("scan already processing")
	// ErrAlreadyFinished means the session reached a terminal state; a new
	// scan needs a new scan id.
	ErrAlreadyFinished = errors.New("scan already finished")
	// ErrNotReady means the session has not completed, so its aggregate and
	// reports are unavailable.
	ErrNotReady = errors.New("scan not completed")
)

// Snapshot is an immutable view of a session. Field names are the
// compatibility contract for adapters and for the structured report format.
type Snapshot struct {
	ScanID           string                  `json:"scan_id"`
	Status           Status                  `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
	FilesScanned     int                     `json:"files_scanned"`
	TableFingerprint string                  `json:"table_fingerprint,omitempty"`
	Findings         []types.EnrichedFinding `json:"findings"`
	Aggregate        *types.Aggregate        `json:"aggregate,omitempty"`
	SkippedFiles     []types.FileSkip        `json:"skipped_files,omitempty"`
	ErrorKind        types.ErrorKind         `json:"error_kind,omitempty"`
	ErrorMessage     string                  `json:"error_message,omitempty"`
}

// Ready reports whether reports may be generated from the snapshot.
func (s Snapshot) Ready() bool { return s.Status == StatusCompleted }

// Store holds sessions in memory, keyed by scan id. Each scan id has at most
// one in-flight processing pass; completed sessions are safe for concurrent
// readers.
type Store struct {
	mu       sync.RWMutex
	table    *risk.Table
	sessions map[string]*Snapshot
}

// NewStore builds a store around an already loaded risk table.
func NewStore(table *risk.Table) *Store {
	return &Store{table: table, sessions: map[string]*Snapshot{}}
}

// Table exposes the store's risk table for correlation-adjacent queries.
func (s *Store) Table() *risk.Table { return s.table }

// Create registers a new pending session and returns its snapshot.
func (s *Store) Create() Snapshot {
	snap := Snapshot{
		ScanID:           uuid.NewString(),
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
		TableFingerprint: s.table.Fingerprint(),
	}
	s.mu.Lock()
	s.sessions[snap.ScanID] = &snap
	s.mu.Unlock()
	return snap
}

// Get returns the current snapshot for a scan id.
func (s *Store) Get(id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return *snap, nil
}

// List returns all sessions, newest first.
func (s *Store) List() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, 0, len(s.sessions))
	for _, snap := range s.sessions {
		out = append(out, *snap)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ScanID < out[j].ScanID
	})
	return out
}

// Run executes the scan -> correlate -> aggregate pipeline for a pending
// session. Exactly one Run proceeds per scan id; concurrent attempts get
// ErrScanInProgress and terminal sessions get ErrAlreadyFinished. A timeout
// or cancellation fails the session while retaining the findings gathered so
// far.
func (s *Store) Run(ctx context.Context, id string, cfg engine.Config, topLimit int) (Snapshot, error) {
	if err := s.claim(id); err != nil {
		return Snapshot{}, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, scanErr := engine.Scan(ctx, cfg)
	enriched := s.table.Enrich(res.Findings)
	sort.SliceStable(enriched, func(i, j int) bool {
		a, b := enriched[i], enriched[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Algorithm < b.Algorithm
	})

	if scanErr != nil {
		return s.fail(id, classify(scanErr), scanErr.Error(), enriched, res)
	}
	agg := aggregate.Compute(enriched, topLimit)
	return s.complete(id, enriched, agg, res)
}

func (s *Store) claim(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	switch snap.Status {
	case StatusPending:
		snap.Status = StatusProcessing
		return nil
	case StatusProcessing:
		return ErrScanInProgress
	default:
		return ErrAlreadyFinished
	}
}

func (s *Store) complete(id string, findings []types.EnrichedFinding, agg types.Aggregate, res engine.Result) (Snapshot, error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.sessions[id]
	snap.Status = StatusCompleted
	snap.CompletedAt = &now
	snap.Findings = findings
	snap.Aggregate = &agg
	snap.SkippedFiles = res.Skips
	snap.FilesScanned = res.FilesScanned
	if len(res.Skips) > 0 {
		// Informational: per-file skips never fail a session.
		snap.ErrorKind = types.ErrPartialExtraction
	}
	return *snap, nil
}

func (s *Store) fail(id string, kind types.ErrorKind, msg string, findings []types.EnrichedFinding, res engine.Result) (Snapshot, error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.sessions[id]
	snap.Status = StatusFailed
	snap.CompletedAt = &now
	snap.Findings = findings
	snap.SkippedFiles = res.Skips
	snap.FilesScanned = res.FilesScanned
	snap.ErrorKind = kind
	snap.ErrorMessage = msg
	return *snap, nil
}

func classify(err error) types.ErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return types.ErrTimeout
	case errors.Is(err, context.Canceled):
		return types.ErrCancelled
	case errors.Is(err, engine.ErrTooManyFiles):
		return types.ErrResourceExhausted
	case errors.Is(err, engine.ErrBadRoot):
		return types.ErrInvalidInput
	default:
		return types.ErrInternal
	}
}
