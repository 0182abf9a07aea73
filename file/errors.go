package file

import "errors"

var (
	ErrInvalidConfig      = errors.New("file: invalid storage config")
	ErrNilFileHeader      = errors.New("file: file header is nil")
	ErrInvalidPath        = errors.New("file: invalid path")
	ErrFileNotFound       = errors.New("file: file not found")
	ErrFileTooLarge       = errors.New("file: file size exceeds maximum allowed size")
	ErrMIMETypeNotAllowed = errors.New("file: MIME type is not allowed")
	ErrFailedToOpenFile   = errors.New("file: failed to open file")
	ErrFailedToReadFile   = errors.New("file: failed to read file")
	ErrFailedToWriteFile  = errors.New("file: failed to write file")
	ErrFailedToDeleteFile = errors.New("file: failed to delete file")
)
