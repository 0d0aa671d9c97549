package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/file"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// FormTarget receives parsed form fields and uploaded files.
type FormTarget interface {
	BindForm(values map[string][]string, files map[string][]*multipart.FileHeader) error
}

// Form creates a binder for form submissions with optional file uploads.
// It handles application/x-www-form-urlencoded and multipart/form-data content types.
//
// maxMemory limits how much of a multipart body is held in memory; the rest is
// spooled to temporary files by net/http. Zero means DefaultMaxMemory.
func Form(maxMemory ...int64) func(r *http.Request, v any) error {
	limit := int64(DefaultMaxMemory)
	if len(maxMemory) > 0 && maxMemory[0] > 0 {
		limit = maxMemory[0]
	}

	return func(r *http.Request, v any) error {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			return ErrBinderNotApplicable
		}

		target, ok := v.(FormTarget)
		if !ok {
			return fmt.Errorf("%w: %T does not implement FormTarget", ErrInvalidTarget, v)
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: missing content-type header, expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		mediaType := contentType
		if idx := strings.Index(contentType, ";"); idx != -1 {
			mediaType = strings.TrimSpace(contentType[:idx])
		}

		var values map[string][]string
		var files map[string][]*multipart.FileHeader

		switch {
		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
			values = r.PostForm

		case mediaType == "multipart/form-data":
			_, params, err := mime.ParseMediaType(contentType)
			if err != nil {
				return fmt.Errorf("%w: malformed content type with boundary", ErrInvalidForm)
			}

			boundary, ok := params["boundary"]
			if !ok || boundary == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if !validateBoundary(boundary) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
			}

			if err := r.ParseMultipartForm(limit); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}

			values = make(map[string][]string)
			if r.MultipartForm != nil {
				values = r.MultipartForm.Value
				files = r.MultipartForm.File
			}

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
		}

		for _, headers := range files {
			for _, fh := range headers {
				fh.Filename = file.SanitizeFilename(fh.Filename)
			}
		}

		if err := target.BindForm(values, files); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return nil
	}
}

// validateBoundary checks the multipart boundary against RFC 2046:
// 1 to 70 characters from the bchars set, not ending with a space.
func validateBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 {
		return false
	}
	if strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}
