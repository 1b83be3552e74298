package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
)

type PgxAttachmentRepository struct {
	BaseRepository
}

func newPgxAttachmentRepository(db *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

const attachmentColumns = `attachment_id, company_id, parent_type, parent_id, file_name, content_type, size_bytes, url,
		created_at, created_by, last_updated_at, last_updated_by`

func scanAttachment(row pgx.Row) (*domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(
		&a.AttachmentID, &a.CompanyID, &a.ParentType, &a.ParentID, &a.FileName, &a.ContentType, &a.SizeBytes, &a.URL,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAttachmentRepository) FindAttachmentByID(ctx context.Context, companyID, attachmentID string) (*domain.Attachment, error) {
	query := fmt.Sprintf(`SELECT %s FROM attachments WHERE company_id = $1 AND attachment_id = $2;`, attachmentColumns)
	attachment, err := scanAttachment(r.Pool.QueryRow(ctx, query, companyID, attachmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find attachment by ID %s: %w", attachmentID, err)
	}
	return attachment, nil
}

func (r *PgxAttachmentRepository) ListAttachmentsByParent(ctx context.Context, companyID string, parentType domain.AttachmentParentType, parentID string) ([]domain.Attachment, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM attachments
        WHERE company_id = $1 AND parent_type = $2 AND parent_id = $3
        ORDER BY created_at DESC;`, attachmentColumns)

	rows, err := r.Pool.Query(ctx, query, companyID, parentType, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	attachments := []domain.Attachment{}
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment row: %w", err)
		}
		attachments = append(attachments, *attachment)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating attachment rows: %w", rows.Err())
	}
	return attachments, nil
}

func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	query := `
        INSERT INTO attachments (attachment_id, company_id, parent_type, parent_id, file_name, content_type, size_bytes, url,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		attachment.AttachmentID, attachment.CompanyID, attachment.ParentType, attachment.ParentID,
		attachment.FileName, attachment.ContentType, attachment.SizeBytes, attachment.URL,
		attachment.CreatedAt, attachment.CreatedBy, attachment.LastUpdatedAt, attachment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return nil
}

func (r *PgxAttachmentRepository) DeleteAttachment(ctx context.Context, companyID, attachmentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM attachments WHERE company_id = $1 AND attachment_id = $2;`, companyID, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("attachment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
