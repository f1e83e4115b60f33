package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/negspulse/internal/logger"
	"github.com/guttosm/negspulse/internal/storage"
)

const (
	maxParallelFiles = 7
	defaultBatchSize = 5000
)

// ErrNoFiles is returned when the input directory holds no NEGS .txt file.
var ErrNoFiles = errors.New("no .txt files found")

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.NegsRepository {
	return storage.NewNegsRepository(db)
}

// Options tunes a directory run.
//
// Fields:
//   - WindowDays: only sessions among the last N business days are stored; N < 1 disables the window.
//   - Parallel: files handled concurrently; 0 means min(7, NumCPU), values above 7 are clamped.
//   - BatchSize: trades per COPY statement (default 5000).
//   - Force: replace documents already stored for the same session and broker.
//   - Now: reference time for the window; zero means time.Now().
type Options struct {
	WindowDays int
	Parallel   int
	BatchSize  int
	Force      bool
	Now        time.Time
}

// Summary counts what a directory run did with each file.
type Summary struct {
	Files       int `json:"files"`
	Ingested    int `json:"ingested"`
	Replaced    int `json:"replaced"`
	Skipped     int `json:"skipped"`
	OutOfWindow int `json:"out_of_window"`
	Trades      int `json:"trades"`
}

func (s *Summary) add(o outcome) {
	switch o.status {
	case statusIngested:
		s.Ingested++
	case statusReplaced:
		s.Ingested++
		s.Replaced++
	case statusSkipped:
		s.Skipped++
	case statusOutOfWindow:
		s.OutOfWindow++
	}
	s.Trades += o.trades
}

// ProcessDirectory decodes every NEGS file in dir and persists the new ones.
//
// Parameters:
//   - dir: directory containing .txt input files (one document per file, any name).
//   - db:  open *sql.DB (PostgreSQL).
//
// Behavior:
//   - Files are decoded and stored concurrently, bounded by opts.Parallel.
//   - Documents whose data_pregao is outside the business-day window are skipped.
//   - A (session date, user code) pair already stored is skipped unless opts.Force.
//   - A pair repeated across files of the same run is stored once; the other copies are skipped.
//   - The first error cancels the remaining files and is returned.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, opts Options) (Summary, error) {
	repo := repoCtor(db)
	log := logger.For("ingestion").With().Str("run_id", uuid.NewString()).Logger()

	files, err := listInputFiles(dir)
	if err != nil {
		return Summary{}, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	window := newSessionWindow(opts.WindowDays, now)
	claims := newDocClaims()
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}

	// Concurrency: default to min(7, NumCPU), or use provided clamp(1..7)
	maxParallel := maxParallelFiles
	if opts.Parallel > 0 {
		maxParallel = min(opts.Parallel, maxParallelFiles)
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	log.Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", maxParallel).
		Int("window_days", opts.WindowDays).Bool("force", opts.Force).Msg("ingestion start")

	var (
		mu      sync.Mutex
		summary = Summary{Files: len(files)}
	)

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

dispatch:
	for i, file := range files {
		i, file := i, file
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			break dispatch
		}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(file)
			flog := log.With().Int("idx", i+1).Int("total", len(files)).Str("file", base).Logger()
			flog.Debug().Msg("file start")

			out, err := ingestFile(gctx, file, repo, window, claims, opts)
			if err != nil {
				flog.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", file, err)
			}

			mu.Lock()
			summary.add(out)
			mu.Unlock()

			if out.dupOf != "" {
				flog.Warn().Str("session", out.session).Str("duplicate_of", out.dupOf).Msg("document repeated in run")
			}
			flog.Info().Str("status", out.status.String()).Str("session", out.session).
				Int("trades", out.trades).Dur("elapsed", time.Since(start)).Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	log.Info().Int("ingested", summary.Ingested).Int("skipped", summary.Skipped).
		Int("out_of_window", summary.OutOfWindow).Int("trades", summary.Trades).Msg("ingestion done")
	return summary, nil
}

// listInputFiles returns the .txt files of dir sorted by name. The extension
// check is case-insensitive, like negs.ReadFile.
func listInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoFiles)
	}
	sort.Strings(files)
	return files, nil
}
