package file

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"os"
)

// Upload is an in-memory copy of a submitted file.
type Upload struct {
	Filename string
	Size     int64
	MIMEType string
	Data     []byte
}

// IsImage reports whether the detected content type is an inline-renderable image.
func (u *Upload) IsImage() bool {
	return u != nil && IsImageMIME(u.MIMEType)
}

// DataURL encodes the upload as a base64 data URL, or "" for a nil upload.
func (u *Upload) DataURL() string {
	if u == nil {
		return ""
	}
	return "data:" + u.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(u.Data)
}

// Read loads a multipart file into memory, refusing files larger than maxBytes.
// The size is checked both from the header and while reading, since streamed
// uploads may report a zero size.
func Read(fh *multipart.FileHeader, maxBytes int64) (*Upload, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	if err := ValidateSize(fh, maxBytes); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	return read(f, SanitizeFilename(fh.Filename), maxBytes)
}

// ReadPath loads a file from disk with the same limits as Read.
func ReadPath(path string, maxBytes int64) (*Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	return read(f, SanitizeFilename(path), maxBytes)
}

func read(r io.Reader, name string, maxBytes int64) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file exceeds %d bytes limit: %w", maxBytes, ErrFileTooLarge)
	}

	return &Upload{
		Filename: name,
		Size:     int64(len(data)),
		MIMEType: DetectMIMEType(data),
		Data:     data,
	}, nil
}
