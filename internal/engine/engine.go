// Package engine walks a materialized file tree and extracts cryptographic
// findings with a bounded worker pool.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pqradar/pqradar/internal/detectors"
	"github.com/pqradar/pqradar/internal/types"
)

// ErrTooManyFiles is returned when the walk exceeds cfg.MaxFiles.
var ErrTooManyFiles = errors.New("file limit exceeded")

// ErrBadRoot is returned when the scan root is missing or not a directory.
var ErrBadRoot = errors.New("invalid scan root")

// Config controls scan scope and resource limits.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	MaxFiles        int
	Threads         int
	DefaultExcludes bool
	Timeout         time.Duration
	Progress        func()
}

// Result carries extracted findings plus walk statistics. On error the
// partially gathered findings and skips are still populated.
type Result struct {
	Findings     []types.Finding
	Skips        []types.FileSkip
	FilesScanned int
	Duration     time.Duration
}

// Scan extracts findings from every candidate file under cfg.Root. Workers
// check the context between files, so cancellation and deadlines abort
// promptly while keeping everything gathered so far in the returned Result.
func Scan(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	started := time.Now()
	defer func() { res.Duration = time.Since(started) }()

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return res, fmt.Errorf("%w: %s", ErrBadRoot, cfg.Root)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return res, fmt.Errorf("%w: %s", ErrBadRoot, cfg.Root)
	}
	cfg.Root = abs

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	addSkip := func(rel, reason string) {
		mu.Lock()
		res.Skips = append(res.Skips, types.FileSkip{Path: rel, Reason: reason})
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	paths := make(chan string, threads*2)

	g.Go(func() error {
		defer close(paths)
		seen := 0
		return walk(gctx, cfg, func(rel string) error {
			seen++
			if cfg.MaxFiles > 0 && seen > cfg.MaxFiles {
				return fmt.Errorf("%w: more than %d candidate files", ErrTooManyFiles, cfg.MaxFiles)
			}
			select {
			case paths <- rel:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		}, addSkip)
	})

	for i := 0; i < threads; i++ {
		g.Go(func() error {
			for rel := range paths {
				if err := gctx.Err(); err != nil {
					return err
				}
				data, err := os.ReadFile(filepath.Join(cfg.Root, rel))
				if err != nil {
					addSkip(rel, "unreadable")
					continue
				}
				if looksBinary(data) {
					addSkip(rel, "binary")
					continue
				}
				findings := detectors.Extract(rel, data)
				mu.Lock()
				res.Findings = append(res.Findings, findings...)
				res.FilesScanned++
				mu.Unlock()
				if cfg.Progress != nil {
					cfg.Progress()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Surface the caller's deadline/cancellation over worker shutdown noise.
		if cerr := ctx.Err(); cerr != nil {
			return res, cerr
		}
		return res, err
	}
	return res, nil
}
