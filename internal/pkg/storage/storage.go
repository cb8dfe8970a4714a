package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// FileStorage stores uploaded documents under storage-relative keys.
type FileStorage interface {
	// Upload writes the content and returns the key to store alongside the record
	Upload(ctx context.Context, file io.Reader, key string) (string, error)

	// Open returns a reader for a stored file
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}
