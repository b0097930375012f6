package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgLog "auditor-srv/pkg/log"
)

type fakeMinIO struct {
	bucket string
	object string
	data   []byte
	err    error
}

func (f *fakeMinIO) EnsureBucket(_ context.Context, _ string) error { return nil }
func (f *fakeMinIO) HealthCheck(_ context.Context) error            { return nil }

func (f *fakeMinIO) PutJSON(_ context.Context, bucket, objectName string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.bucket = bucket
	f.object = objectName
	f.data = data
	return nil
}

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{
		Level:    pkgLog.LevelFatal,
		Mode:     pkgLog.ModeProduction,
		Encoding: pkgLog.EncodingJSON,
	})
}

func TestArchiveDigest(t *testing.T) {
	store := &fakeMinIO{}
	a := NewDigestArchive(testLogger(), store, "audit-digests")

	payload := []byte(`{"date":"2026-03-10","total":4}`)
	require.NoError(t, a.ArchiveDigest(context.Background(), "2026-03-10", payload))

	assert.Equal(t, "audit-digests", store.bucket)
	assert.Equal(t, "digests/2026/03/10.json", store.object)
	assert.Equal(t, payload, store.data)
}

func TestArchiveDigest_StoreFailure(t *testing.T) {
	store := &fakeMinIO{err: errors.New("access denied")}
	a := NewDigestArchive(testLogger(), store, "audit-digests")

	err := a.ArchiveDigest(context.Background(), "2026-03-10", []byte(`{}`))
	assert.Error(t, err)
}
