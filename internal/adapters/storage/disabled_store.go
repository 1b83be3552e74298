package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// DisabledStore stands in when no storage bucket is configured. Uploads
// fail with a caller-safe error; deletes are no-ops so records can still
// be cleaned up.
type DisabledStore struct{}

// NewDisabledStore creates a store that rejects uploads.
func NewDisabledStore() *DisabledStore {
	return &DisabledStore{}
}

var _ portssvc.ObjectStore = (*DisabledStore)(nil)

func (s *DisabledStore) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	return "", fmt.Errorf("file storage is not configured: %w", apperrors.ErrConflict)
}

func (s *DisabledStore) Delete(ctx context.Context, objectName string) error {
	return nil
}
