package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file in the storage root and returns its accessible path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves a file under the given subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file; missing files are not an error
	DeleteFile(filePath string) error

	// GetFullPath returns the filesystem path behind an accessible path
	GetFullPath(fileURL string) string
}
