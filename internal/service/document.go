package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/guttosm/negspulse/internal/domain/models"
	"github.com/guttosm/negspulse/internal/negs"
	"github.com/guttosm/negspulse/internal/storage"
)

const (
	DefaultFileLimit = 50
	MaxFileLimit     = 500
)

// DocumentService decodes uploaded NEGS files and lists the ingested ones.
type DocumentService interface {
	Parse(ctx context.Context, filename string, r io.Reader) (*negs.Document, error)
	ListFiles(ctx context.Context, limit int) ([]models.NegsFile, error)
}

type documentService struct {
	repo storage.NegsRepository
}

func NewDocumentService(repo storage.NegsRepository) DocumentService {
	return &documentService{repo: repo}
}

// Parse decodes r as the NEGS file named filename. Names without the .txt
// extension fail with a *negs.FormatError wrapping negs.ErrNotTxt, exactly
// like negs.ReadFile.
func (s *documentService) Parse(ctx context.Context, filename string, r io.Reader) (*negs.Document, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".txt") {
		return nil, &negs.FormatError{Record: "file", Err: fmt.Errorf("%w: %s", negs.ErrNotTxt, filepath.Base(filename))}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return negs.Read(r)
}

// ListFiles returns the latest ingested documents; limit is clamped to
// [1, MaxFileLimit] and defaults to DefaultFileLimit.
func (s *documentService) ListFiles(ctx context.Context, limit int) ([]models.NegsFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultFileLimit
	case limit > MaxFileLimit:
		limit = MaxFileLimit
	}
	return s.repo.ListFiles(limit)
}
