package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func renderJSON(t *testing.T, resp handler.Response) (*httptest.ResponseRecorder, handler.JSONResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("data with meta and status", func(t *testing.T) {
		t.Parallel()
		rec, body := renderJSON(t, handler.JSON([]string{"a"},
			handler.WithJSONStatus(http.StatusCreated),
			handler.WithJSONMeta(map[string]any{"total": 1}),
		))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []any{"a"}, body.Data)
		assert.Equal(t, map[string]any{"total": float64(1)}, body.Meta)
		assert.Nil(t, body.Error)
	})

	t.Run("error value", func(t *testing.T) {
		t.Parallel()
		rec, body := renderJSON(t, handler.JSON(handler.ErrNotFound))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "errors.not_found", body.Error.Code)
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("validation errors carry field details", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Rule{Check: func() bool { return false }, Error: validator.ValidationError{Field: "phone", Message: "bad phone"}},
			validator.Rule{Check: func() bool { return true }, Error: validator.ValidationError{Field: "email", Message: "bad email"}},
			validator.Rule{Check: func() bool { return false }, Error: validator.ValidationError{Field: "dob", Message: "too young"}},
		)
		rec, body := renderJSON(t, handler.JSONError(fmt.Errorf("submit: %w", err)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Equal(t, map[string][]string{"phone": {"bad phone"}, "dob": {"too young"}}, body.Error.Details)
	})

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error", handler.NewHTTPError(http.StatusConflict, "errors.conflict"), http.StatusConflict, "errors.conflict"},
		{"unsupported media type", fmt.Errorf("%w: text/plain", binder.ErrUnsupportedMediaType), http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"malformed json", fmt.Errorf("%w: eof", binder.ErrFailedToParseJSON), http.StatusBadRequest, "bad_request"},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "request_too_large"},
		{"anything else", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, body := renderJSON(t, handler.JSONError(tt.err))
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "db down")
		})
	}

	t.Run("status option wins", func(t *testing.T) {
		t.Parallel()
		rec, _ := renderJSON(t, handler.JSONError(errors.New("x"), handler.WithJSONStatus(http.StatusBadGateway)))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
