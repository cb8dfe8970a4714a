package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

const (
	pdfExtension   = ".pdf"
	PDFContentType = "application/pdf"
)

var pdfMagic = []byte("%PDF-")

// StoredDocument is an uploaded file together with its content, kept for email attachments.
type StoredDocument struct {
	Path string
	Data []byte
}

type FileService interface {
	// UploadSicknessDocument validates a PDF and stores it under a generated name
	UploadSicknessDocument(ctx context.Context, userID string, file io.Reader, filename string) (StoredDocument, error)

	Open(ctx context.Context, path string) (io.ReadCloser, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage     storage.FileStorage
	maxFileSize int64
}

func NewFileService(storage storage.FileStorage, maxFileSize int64) FileService {
	return &fileServiceImpl{
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// UploadSicknessDocument implements FileService.
func (s *fileServiceImpl) UploadSicknessDocument(ctx context.Context, userID string, file io.Reader, filename string) (StoredDocument, error) {
	if strings.ToLower(filepath.Ext(filename)) != pdfExtension {
		return StoredDocument{}, sickness.ErrDocumentNotPDF
	}

	// One extra byte tells an exact-limit file from an oversized one
	data, err := io.ReadAll(io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		return StoredDocument{}, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return StoredDocument{}, sickness.ErrDocumentTooLarge
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return StoredDocument{}, sickness.ErrDocumentNotPDF
	}

	key := path.Join("sickness", userID, uuid.New().String()+pdfExtension)
	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(data), key)
	if err != nil {
		return StoredDocument{}, fmt.Errorf("failed to upload sickness document: %w", err)
	}

	return StoredDocument{Path: uploadedPath, Data: data}, nil
}

// Open implements FileService.
func (s *fileServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Open(ctx, path)
}

// ReadFile implements FileService.
func (s *fileServiceImpl) ReadFile(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.storage.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
