package repository

import (
	"context"
	"errors"

	"auditor-srv/internal/model"
)

// ErrNotFound is returned by single-row operations when no lead matches.
var ErrNotFound = errors.New("lead not found")

// Repository is the read/update gateway to the leads table. It is the only
// component that touches the lead store; everything above it works on
// model.Lead snapshots.
type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]model.Lead, error)
	Count(ctx context.Context, filter Filter) (int, error)
	UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error
}
