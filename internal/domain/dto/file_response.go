package dto

import "github.com/guttosm/negspulse/internal/domain/models"

// FileListResponse is returned by GET /api/v1/negs/files.
type FileListResponse struct {
	Count int               `json:"count" example:"1"`
	Files []models.NegsFile `json:"files"`
}
