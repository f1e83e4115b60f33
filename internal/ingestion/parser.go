package ingestion

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/guttosm/negspulse/internal/negs"
	"github.com/guttosm/negspulse/internal/storage"
)

// docClaims records which file of a run owns each (session date, user code)
// pair, so two copies of the same document in one directory are stored once.
type docClaims struct {
	mu   sync.Mutex
	seen map[string]string
}

func newDocClaims() *docClaims {
	return &docClaims{seen: map[string]string{}}
}

// claim reports whether file is the first of the run to hold key. It returns
// the owning file when it is not. A nil receiver claims everything.
func (c *docClaims) claim(key, file string) (string, bool) {
	if c == nil {
		return "", true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if owner, ok := c.seen[key]; ok {
		return owner, false
	}
	c.seen[key] = file
	return "", true
}

type fileStatus int

const (
	statusIngested fileStatus = iota
	statusReplaced
	statusSkipped
	statusOutOfWindow
)

func (s fileStatus) String() string {
	switch s {
	case statusIngested:
		return "ingested"
	case statusReplaced:
		return "replaced"
	case statusSkipped:
		return "skipped"
	case statusOutOfWindow:
		return "out_of_window"
	default:
		return "unknown"
	}
}

// outcome is what happened to one input file.
type outcome struct {
	status  fileStatus
	session string
	trades  int
	dupOf   string
}

// ingestFile decodes, filters and persists one file.
// It fails on:
//   - any negs.FormatError / negs.DecodeError (no partial document is stored)
//   - an unparsable data_pregao
//   - repository errors
//
// Parameters:
//   - ctx:    context for cancellation; checked before touching the database.
//   - path:   file path.
//   - repo:   repository for DB insertion.
//   - window: accepted session dates (nil accepts all).
//   - claims: pairs already taken by other files of the run (nil disables the check).
//
// A pair stored by a concurrent writer between the existence check and the
// insert comes back as storage.ErrDocumentExists and is reported as skipped.
func ingestFile(ctx context.Context, path string, repo storage.NegsRepository, window sessionWindow, claims *docClaims, opts Options) (outcome, error) {
	doc, err := negs.ReadFile(path)
	if err != nil {
		return outcome{}, err
	}

	out := outcome{session: doc.Header.SessionDate}
	if !window.contains(doc.Header.SessionDate) {
		out.status = statusOutOfWindow
		return out, nil
	}

	session, err := doc.Header.Session()
	if err != nil {
		return out, err
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}

	key := doc.Header.SessionDate + "/" + doc.Header.UserCode
	if owner, ok := claims.claim(key, filepath.Base(path)); !ok {
		out.status = statusSkipped
		out.dupOf = owner
		return out, nil
	}

	// Idempotency: skip if already ingested, unless force
	exists, err := repo.HasDocument(session, doc.Header.UserCode)
	if err != nil {
		return out, fmt.Errorf("check existing document: %w", err)
	}
	if exists && !opts.Force {
		out.status = statusSkipped
		return out, nil
	}

	if exists {
		_, err = repo.ReplaceDocument(filepath.Base(path), doc, opts.BatchSize)
		out.status = statusReplaced
	} else {
		_, err = repo.InsertDocument(filepath.Base(path), doc, opts.BatchSize)
		out.status = statusIngested
	}
	switch {
	case errors.Is(err, storage.ErrDocumentExists):
		out.status = statusSkipped
		return out, nil
	case err != nil && exists:
		return out, fmt.Errorf("replace document: %w", err)
	case err != nil:
		return out, fmt.Errorf("insert document: %w", err)
	}
	out.trades = len(doc.Trades)
	return out, nil
}
