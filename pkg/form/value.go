package form

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/file"
	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Value is the raw input captured for one field. Text inputs, radios and
// checkboxes carry Strings; file inputs carry File (or FileErr when the upload
// could not be read).
type Value struct {
	Strings []string
	File    *file.Upload
	FileErr error
}

// Text builds a single-string value.
func Text(s string) Value {
	return Value{Strings: []string{s}}
}

// List builds a multi-select value.
func List(items ...string) Value {
	return Value{Strings: items}
}

// Bool builds a checkbox value.
func Bool(checked bool) Value {
	if !checked {
		return Value{}
	}
	return Value{Strings: []string{"on"}}
}

// File builds a file value.
func File(u *file.Upload) Value {
	return Value{File: u}
}

// Text returns the first submitted string.
func (v Value) Text() string {
	if len(v.Strings) == 0 {
		return ""
	}
	return v.Strings[0]
}

// List returns the non-blank submitted strings.
func (v Value) List() []string {
	return sanitizer.FilterEmpty(v.Strings)
}

// Checked reports whether a checkbox value is on.
func (v Value) Checked() bool {
	switch strings.ToLower(strings.TrimSpace(v.Text())) {
	case "on", "true", "1", "yes", "checked":
		return true
	}
	return false
}

// IsEmpty reports whether nothing usable was submitted for the given format.
func (v Value) IsEmpty(f Format) bool {
	switch f {
	case FormatList:
		return len(v.List()) == 0
	case FormatBool:
		return !v.Checked()
	case FormatFile:
		return v.File == nil && v.FileErr == nil
	default:
		return strings.TrimSpace(v.Text()) == ""
	}
}

// Values maps field names to submitted values.
type Values map[string]Value

// Submission collects a form post into Values. It is the bind target for
// binder.Form; files larger than MaxUpload are kept as FileErr so they fail
// their field instead of the whole request.
type Submission struct {
	MaxUpload int64
	Values    Values
}

// BindForm implements binder.FormTarget.
func (s *Submission) BindForm(values map[string][]string, files map[string][]*multipart.FileHeader) error {
	if s.Values == nil {
		s.Values = make(Values, len(values)+len(files))
	}
	for name, items := range values {
		s.Values[name] = Value{Strings: append([]string(nil), items...)}
	}
	for name, headers := range files {
		if len(headers) == 0 || headers[0] == nil || headers[0].Filename == "" {
			continue
		}
		upload, err := file.Read(headers[0], uploadLimit(s.MaxUpload))
		v := s.Values[name]
		v.File, v.FileErr = upload, err
		s.Values[name] = v
	}
	return nil
}

// ValuesFromMap converts decoded JSON or YAML into Values. Strings, numbers
// and booleans become single values; arrays become lists. Map values of the
// form {"path": "..."} are read from disk as files, limited to maxUpload
// (DefaultMaxUpload when zero).
func ValuesFromMap(m map[string]any, maxUpload int64) (Values, error) {
	maxUpload = uploadLimit(maxUpload)
	out := make(Values, len(m))
	var errs []error
	for name, raw := range m {
		v, err := valueOf(raw, maxUpload)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		out[name] = v
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, errors.Join(errs...))
	}
	return out, nil
}

func uploadLimit(n int64) int64 {
	if n <= 0 {
		return DefaultMaxUpload
	}
	return n
}

func valueOf(raw any, maxUpload int64) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Value{}, nil
	case string:
		return Text(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Text(strconv.Itoa(x)), nil
	case int64:
		return Text(strconv.FormatInt(x, 10)), nil
	case float64:
		return Text(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case time.Time:
		return Text(x.Format(validator.DateLayout)), nil
	case []string:
		return List(x...), nil
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			iv, err := valueOf(item, maxUpload)
			if err != nil {
				return Value{}, err
			}
			items = append(items, iv.Text())
		}
		return List(items...), nil
	case map[string]any:
		path, ok := x["path"].(string)
		if !ok || path == "" {
			return Value{}, fmt.Errorf("file value needs a path")
		}
		upload, err := file.ReadPath(path, maxUpload)
		return Value{File: upload, FileErr: err}, nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", raw)
	}
}
