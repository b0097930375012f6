package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aarondl/null/v8"

	"auditor-srv/internal/lead"
	"auditor-srv/internal/lead/repository"
	"auditor-srv/internal/model"
	postgresPkg "auditor-srv/pkg/postgre"
)

// leadRow mirrors one row of the leads table with nullable columns.
type leadRow struct {
	ID           string
	BusinessName string
	ContactEmail null.String
	Score        int
	Status       string
	Metadata     []byte
	CreatedAt    null.Time
	UpdatedAt    null.Time
}

func (r leadRow) toModel() (model.Lead, error) {
	l := model.Lead{
		ID:           r.ID,
		BusinessName: r.BusinessName,
		Score:        r.Score,
		Status:       model.LeadStatus(r.Status),
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
	}
	if r.ContactEmail.Valid {
		l.ContactEmail = &r.ContactEmail.String
	}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &l.Metadata); err != nil {
			return model.Lead{}, fmt.Errorf("lead %s has malformed metadata: %w", r.ID, err)
		}
	}
	return l, nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Lead, error) {
	query, args := buildListQuery(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.lead.repository.postgres.List.QueryContext: %v", err)
		return nil, fmt.Errorf("%w: %v", lead.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var row leadRow
		if err := rows.Scan(&row.ID, &row.BusinessName, &row.ContactEmail, &row.Score,
			&row.Status, &row.Metadata, &row.CreatedAt, &row.UpdatedAt); err != nil {
			r.l.Errorf(ctx, "internal.lead.repository.postgres.List.Scan: %v", err)
			return nil, fmt.Errorf("%w: %v", lead.ErrStoreUnavailable, err)
		}
		m, err := row.toModel()
		if err != nil {
			// A single malformed row must not hide the rest of the pipeline.
			r.l.Warnf(ctx, "internal.lead.repository.postgres.List: skipping row: %v", err)
			continue
		}
		leads = append(leads, m)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.lead.repository.postgres.List.Err: %v", err)
		return nil, fmt.Errorf("%w: %v", lead.ErrStoreUnavailable, err)
	}

	return leads, nil
}

func (r *implRepository) Count(ctx context.Context, filter repository.Filter) (int, error) {
	query, args := buildCountQuery(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.l.Errorf(ctx, "internal.lead.repository.postgres.Count.Scan: %v", err)
		return 0, fmt.Errorf("%w: %v", lead.ErrStoreUnavailable, err)
	}
	return count, nil
}

func (r *implRepository) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.lead.repository.postgres.UpdateStatus.IsUUID: %v", err)
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", lead.ErrInvalidStatus, status)
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3",
		string(status), r.clock().UTC(), id)
	if err != nil {
		r.l.Errorf(ctx, "internal.lead.repository.postgres.UpdateStatus.ExecContext: %v", err)
		return fmt.Errorf("%w: %v", lead.ErrStoreUnavailable, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.lead.repository.postgres.UpdateStatus.RowsAffected: %v", err)
		return fmt.Errorf("%w: %v", lead.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
