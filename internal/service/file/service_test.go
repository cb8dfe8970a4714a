package file

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileService(t *testing.T, maxSize int64) (FileService, *storage.LocalStorage) {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewFileService(local, maxSize), local
}

func TestUploadSicknessDocument(t *testing.T) {
	ctx := context.Background()
	svc, local := newTestFileService(t, 1024)
	content := []byte("%PDF-1.4 medical certificate")

	doc, err := svc.UploadSicknessDocument(ctx, "user-1", bytes.NewReader(content), "Certificate.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Path, "sickness/user-1/"))
	assert.True(t, strings.HasSuffix(doc.Path, ".pdf"))
	assert.NotContains(t, doc.Path, "Certificate")
	assert.Equal(t, content, doc.Data)

	exists, err := local.Exists(ctx, doc.Path)
	require.NoError(t, err)
	assert.True(t, exists)

	stored, err := svc.ReadFile(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	rc, err := svc.Open(ctx, doc.Path)
	require.NoError(t, err)
	streamed, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, content, streamed)

	require.NoError(t, svc.DeleteFile(ctx, doc.Path))
	_, err = svc.Open(ctx, doc.Path)
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestUploadSicknessDocumentRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestFileService(t, 16)

	_, err := svc.UploadSicknessDocument(ctx, "user-1", strings.NewReader("%PDF-1.4"), "scan.png")
	assert.ErrorIs(t, err, sickness.ErrDocumentNotPDF)

	_, err = svc.UploadSicknessDocument(ctx, "user-1", strings.NewReader("GIF89a not a pdf"), "fake.pdf")
	assert.ErrorIs(t, err, sickness.ErrDocumentNotPDF)

	_, err = svc.UploadSicknessDocument(ctx, "user-1", strings.NewReader("%PDF-1.4 this is far too long"), "big.pdf")
	assert.ErrorIs(t, err, sickness.ErrDocumentTooLarge)

	_, err = svc.UploadSicknessDocument(ctx, "user-1", strings.NewReader("%PDF-1.4 exactly16"[:16]), "exact.pdf")
	assert.NoError(t, err)
}
