package archive

import (
	"context"
	"fmt"
	"strings"

	"auditor-srv/internal/auditor"
	pkgLog "auditor-srv/pkg/log"
	pkgMinio "auditor-srv/pkg/minio"
)

// DigestArchive writes delivered digest payloads to object storage as
// digests/YYYY/MM/DD.json so pipeline history outlives the process.
type DigestArchive struct {
	l      pkgLog.Logger
	client pkgMinio.IMinIO
	bucket string
}

var _ auditor.Archiver = &DigestArchive{}

func NewDigestArchive(l pkgLog.Logger, client pkgMinio.IMinIO, bucket string) *DigestArchive {
	return &DigestArchive{l: l, client: client, bucket: bucket}
}

// ArchiveDigest stores one day's digest. date is the UTC day in
// YYYY-MM-DD form; the object key nests it by year and month.
func (a *DigestArchive) ArchiveDigest(ctx context.Context, date string, payload []byte) error {
	objectName := fmt.Sprintf("digests/%s.json", strings.ReplaceAll(date, "-", "/"))
	if err := a.client.PutJSON(ctx, a.bucket, objectName, payload); err != nil {
		a.l.Errorf(ctx, "internal.archive.ArchiveDigest: %v", err)
		return err
	}
	return nil
}
