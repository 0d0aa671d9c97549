package registration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestPage(t *testing.T) {
	t.Parallel()

	t.Run("default language", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		rec := app.do(httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, `<html lang="vi">`)
		assert.Contains(t, body, "Đăng ký sinh viên")
		assert.Contains(t, body, `id="registration-form"`)
		assert.Contains(t, body, `id="records-body"`)
		assert.Contains(t, body, "Chưa có bản ghi nào.")
		assert.Contains(t, body, `type="date" id="field-dob"`)
		assert.Contains(t, body, `type="radio" name="gender" value="female"`)
		assert.Contains(t, body, `type="checkbox" name="hobbies" value="travel"`)
		assert.Contains(t, body, `type="file" id="field-avatar"`)
		assert.Contains(t, body, `type="tel" id="field-phone"`)
		assert.Contains(t, body, `type="email" id="field-email"`)
		assert.Contains(t, body, `type="text" id="field-address"`)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("language from query is remembered", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		rec := app.do(httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Student registration")
		assert.Contains(t, rec.Body.String(), "Date of birth")
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "lang=en")
	})

	t.Run("accept-language", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "contact")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		rec := app.do(req)

		assert.Contains(t, rec.Body.String(), "<h1>Contact</h1>")
		assert.Contains(t, rec.Body.String(), "<textarea")
	})
}

func TestPageInputsFromRules(t *testing.T) {
	t.Parallel()
	app := newAppFromRules(t, "club", `
sets:
  club:
    fields:
      - field: message
        kind: nonempty
      - field: notes
        kind: nonempty
        input: textarea
      - field: homepage
        kind: nonempty
        input: url
`)
	body := app.do(httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()

	assert.Contains(t, body, `type="text" id="field-message"`)
	assert.NotContains(t, body, `<textarea id="field-message"`)
	assert.Contains(t, body, `<textarea id="field-notes"`)
	assert.Contains(t, body, `type="url" id="field-homepage"`)
}

func TestOptionLabelsWithCommas(t *testing.T) {
	t.Parallel()
	app := newAppFromRules(t, "club", `
sets:
  club:
    fields:
      - field: hobbies
        kind: predicate
        predicate: choice
        format: list
        options: ["music, sports", music, travel]
`)
	fields := url.Values{"hobbies": {"music, sports", "travel"}}
	require.Equal(t, http.StatusSeeOther, app.do(urlencodedRequest(fields)).Code)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/records", nil))
	var records []form.Record
	require.NoError(t, json.Unmarshal(decode(t, rec.Body.Bytes()).Data, &records))
	require.Len(t, records, 1)
	cell, ok := records[0].Cell("hobbies")
	require.True(t, ok)
	assert.Equal(t, []string{"music, sports", "travel"}, cell.Items)
	assert.Equal(t, "music, sports, Du lịch", cell.Text)
}

func TestSubmitPlain(t *testing.T) {
	t.Parallel()

	t.Run("valid submission redirects and appends one row", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		rec := app.do(multipartRequest(t, validStudentFields(), pngBytes))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		require.Equal(t, 1, app.form.Table.Len())

		page := app.do(httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
		assert.Contains(t, page, `<tr id="record-1">`)
		assert.Contains(t, page, "07/05/2000")
		assert.Contains(t, page, "an.le@example.com")
		assert.Contains(t, page, "Nam")
		assert.Contains(t, page, "Âm nhạc, Thể thao")
		assert.Contains(t, page, "data:image/png;base64,")
		assert.NotContains(t, page, "Chưa có bản ghi nào.")
	})

	t.Run("invalid submission re-renders the form with inline errors", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		fields := validStudentFields()
		fields.Set("phone", "0123456789")
		fields.Set("full_name", "le van an")
		rec := app.do(urlencodedRequest(fields))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Số điện thoại phải gồm 10 chữ số")
		assert.Contains(t, body, "Họ tên phải có ít nhất hai từ")
		assert.Contains(t, body, "Vui lòng tải lên một tệp ảnh")
		assert.Contains(t, body, `value="0123456789" aria-invalid="true"`)
		assert.Contains(t, body, `value="music" checked`)
		assert.Contains(t, body, "Vui lòng sửa các trường được đánh dấu.")
		assert.NotContains(t, body, "Email không hợp lệ.")
		assert.Equal(t, 0, app.form.Table.Len())
	})

	t.Run("unsupported content type", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("x"))
		req.Header.Set("Content-Type", "text/plain")
		rec := app.do(req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Contains(t, rec.Body.String(), "Định dạng dữ liệu không được hỗ trợ.")
		assert.Equal(t, 0, app.form.Table.Len())
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		rec := app.do(httptest.NewRequest(http.MethodGet, "/nope?lang=en", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Page not found.")
	})
}

func TestSubmitDataStar(t *testing.T) {
	t.Parallel()

	t.Run("invalid submission patches the form", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		fields := validStudentFields()
		fields.Del("agree")
		rec := app.do(asDataStar(multipartRequest(t, fields, pngBytes)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "registration-form")
		assert.Contains(t, body, "Bạn phải đồng ý với điều khoản.")
		assert.NotContains(t, body, "<html")
		assert.Equal(t, 0, app.form.Table.Len())
	})

	t.Run("valid submissions append rows", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")

		first := app.do(asDataStar(multipartRequest(t, validStudentFields(), pngBytes))).Body.String()
		assert.Contains(t, first, "#records-body")
		assert.Contains(t, first, "append")
		assert.Contains(t, first, `record-1`)
		assert.Contains(t, first, "Đã thêm bản ghi số 1.")
		assert.Contains(t, first, "#records-empty")
		assert.Contains(t, first, "remove")

		second := app.do(asDataStar(multipartRequest(t, validStudentFields(), pngBytes))).Body.String()
		assert.Contains(t, second, `record-2`)
		assert.NotContains(t, second, "#records-empty")
		assert.Equal(t, 2, app.form.Table.Len())
	})
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestRecordsAndRules(t *testing.T) {
	t.Parallel()

	app := newApp(t, "student")
	require.Equal(t, http.StatusSeeOther, app.do(multipartRequest(t, validStudentFields(), pngBytes)).Code)

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("Accept-Language", "en")
	rec := app.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec.Body.Bytes())
	assert.Equal(t, float64(1), env.Meta["total"])
	var records []form.Record
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Seq)
	cell, ok := records[0].Cell("dob")
	require.True(t, ok)
	assert.Equal(t, "Date of birth", cell.Label)
	assert.Equal(t, "07/05/2000", cell.Text)
	cell, _ = records[0].Cell("hobbies")
	assert.Equal(t, "Music, Sports", cell.Text)
	_, ok = records[0].Cell("agree")
	assert.False(t, ok)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/rules", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var rules struct {
		Name       string           `json:"name"`
		Fields     []form.FieldRule `json:"fields"`
		Predicates []string         `json:"predicates"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec.Body.Bytes()).Data, &rules))
	assert.Equal(t, "student", rules.Name)
	assert.Len(t, rules.Fields, 10)
	assert.Contains(t, rules.Predicates, "adult")

	rec = app.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"status":"ok","rule_set":"student","records":1}}`, rec.Body.String())
}

func TestAPISubmissions(t *testing.T) {
	t.Parallel()

	const validContact = `{"full_name":"Tran Thi Binh","email":"Binh@Example.com","subject":"Hello","message":"I would like to join the club."}`

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "contact")
		rec := app.do(jsonRequest(validContact))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var res struct {
			Valid  bool         `json:"valid"`
			Record *form.Record `json:"record"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec.Body.Bytes()).Data, &res))
		assert.True(t, res.Valid)
		require.NotNil(t, res.Record)
		assert.Equal(t, 1, res.Record.Seq)
		cell, _ := res.Record.Cell("email")
		assert.Equal(t, "binh@example.com", cell.Text)
	})

	t.Run("invalid reports every failing field", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "contact")
		req := jsonRequest(`{"full_name":"binh","email":"nope","phone":"0123","subject":"","message":"short"}`)
		req.Header.Set("Accept-Language", "en")
		rec := app.do(req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decode(t, rec.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_error", env.Error.Code)
		assert.Equal(t, map[string][]string{
			"full_name": {"Enter at least two words, each starting with a capital letter."},
			"email":     {"Enter a valid email address."},
			"phone":     {"Phone must be 10 digits starting with 09, 03 or 08."},
			"subject":   {"Please enter a subject."},
			"message":   {"Message must be 10 to 2000 characters."},
		}, env.Error.Details)
		assert.Equal(t, 0, app.form.Table.Len())
	})

	t.Run("file references are rejected", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "student")
		rec := app.do(jsonRequest(`{"avatar":{"path":"/etc/passwd"}}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode(t, rec.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "errors.files_not_supported", env.Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "contact")
		rec := app.do(jsonRequest(`{"full_name":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decode(t, rec.Body.Bytes()).Error.Code)
	})

	t.Run("concurrent submissions get distinct sequence numbers", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, "contact")

		const n = 20
		var wg sync.WaitGroup
		seqs := make(chan int, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				body := strings.Replace(validContact, "Hello", fmt.Sprintf("Hello %d", i), 1)
				rec := app.do(jsonRequest(body))
				if rec.Code != http.StatusCreated {
					return
				}
				var env struct {
					Data struct {
						Record form.Record `json:"record"`
					} `json:"data"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &env); err == nil {
					seqs <- env.Data.Record.Seq
				}
			}()
		}
		wg.Wait()
		close(seqs)

		seen := make(map[int]bool)
		for seq := range seqs {
			assert.False(t, seen[seq], "duplicate seq %d", seq)
			seen[seq] = true
		}
		assert.Len(t, seen, n)
		assert.Equal(t, n, app.form.Table.Len())
	})
}
