package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditor-srv/internal/lead"
	"auditor-srv/internal/lead/repository"
	"auditor-srv/internal/model"
	pkgLog "auditor-srv/pkg/log"
)

const testLeadID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func newTestRepo(t *testing.T) (*implRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := pkgLog.Init(pkgLog.ZapConfig{
		Level:    pkgLog.LevelFatal,
		Mode:     pkgLog.ModeProduction,
		Encoding: pkgLog.EncodingJSON,
	})
	return New(l, db), mock
}

func leadRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "business_name", "contact_email", "score", "status", "metadata", "created_at", "updated_at",
	})
}

func TestList(t *testing.T) {
	repo, mock := newTestRepo(t)
	createdAt := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, business_name, contact_email, score, status, metadata, created_at, updated_at FROM leads ORDER BY score DESC, created_at ASC LIMIT $1",
	)).WithArgs(500).WillReturnRows(leadRows().
		AddRow(testLeadID, "Acme Roofing", "owner@acme.test", 85, "new", []byte(`{"source":"maps"}`), createdAt, createdAt).
		AddRow("l2", "No Email LLC", nil, 60, "contacted", nil, createdAt, createdAt))

	leads, err := repo.List(context.Background(), repository.ListOptions{Limit: 500})
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, testLeadID, leads[0].ID)
	assert.Equal(t, 85, leads[0].Score)
	assert.Equal(t, model.LeadStatusNew, leads[0].Status)
	require.NotNil(t, leads[0].ContactEmail)
	assert.Equal(t, "owner@acme.test", *leads[0].ContactEmail)
	assert.Equal(t, "maps", leads[0].Metadata["source"])

	assert.Nil(t, leads[1].ContactEmail)
	assert.Nil(t, leads[1].Metadata)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_WithFilter(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, business_name, contact_email, score, status, metadata, created_at, updated_at FROM leads WHERE status = $1 AND score >= $2 ORDER BY score DESC, created_at ASC",
	)).WithArgs("new", 80).WillReturnRows(leadRows())

	_, err := repo.List(context.Background(), repository.ListOptions{
		Filter: repository.Filter{Status: model.LeadStatusNew, MinScore: 80},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_SkipsMalformedMetadata(t *testing.T) {
	repo, mock := newTestRepo(t)
	createdAt := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM leads").WillReturnRows(leadRows().
		AddRow("l1", "Broken Row Inc", nil, 70, "new", []byte(`{not-json`), createdAt, createdAt).
		AddRow("l2", "Fine Co", nil, 65, "new", nil, createdAt, createdAt))

	leads, err := repo.List(context.Background(), repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "l2", leads[0].ID)
}

func TestList_StoreUnavailable(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT .+ FROM leads").WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background(), repository.ListOptions{})
	assert.ErrorIs(t, err, lead.ErrStoreUnavailable)
}

func TestCount(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM leads WHERE status = $1",
	)).WithArgs("new").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background(), repository.Filter{Status: model.LeadStatusNew})
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3",
	)).WithArgs("contacted", sqlmock.AnyArg(), testLeadID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), testLeadID, model.LeadStatusContacted)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE leads").
		WithArgs("contacted", sqlmock.AnyArg(), testLeadID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), testLeadID, model.LeadStatusContacted)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateStatus_InvalidInput(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.UpdateStatus(context.Background(), "not-a-uuid", model.LeadStatusContacted)
	assert.Error(t, err)

	err = repo.UpdateStatus(context.Background(), testLeadID, model.LeadStatus("archived"))
	assert.ErrorIs(t, err, lead.ErrInvalidStatus)
}
