package registration_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/modules/registration"
	"github.com/dmitrymomot/formkit/pkg/form"
)

var refNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type testApp struct {
	form    *form.Context
	handler http.Handler
}

func newApp(t *testing.T, ruleSet string, opts ...registration.ServiceOption) testApp {
	t.Helper()
	return newAppWithConfig(t, registration.Config{RuleSet: ruleSet}, opts...)
}

// newAppFromRules serves ruleSet from a rules file written from src.
func newAppFromRules(t *testing.T, ruleSet, src string) testApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return newAppWithConfig(t, registration.Config{RuleSet: ruleSet, RulesFile: path})
}

func newAppWithConfig(t *testing.T, cfg registration.Config, opts ...registration.ServiceOption) testApp {
	t.Helper()
	cfg.MinAge = 18
	cfg.MaxUpload = 2 << 20
	cfg.DefaultLang = "vi"
	rules, err := registration.LoadRuleSet(cfg)
	require.NoError(t, err)
	tr, err := registration.NewTranslator(context.Background(), cfg, nil)
	require.NoError(t, err)

	fctx := registration.NewFormContext(cfg, rules, func() time.Time { return refNow })
	svc := registration.NewService(fctx, tr, opts...)
	return testApp{form: fctx, handler: registration.Router(svc)}
}

func (a testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func validStudentFields() url.Values {
	return url.Values{
		"full_name": {"Le Van An"},
		"phone":     {"0901234567"},
		"email":     {"An.Le@Example.com"},
		"dob":       {"2000-05-07"},
		"gender":    {"male"},
		"address":   {"12 Nguyễn Trãi, Hà Nội"},
		"hobbies":   {"music", "sports"},
		"agree":     {"on"},
	}
}

// multipartRequest posts fields to /submit, attaching avatar when non-nil.
func multipartRequest(t *testing.T, fields url.Values, avatar []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, items := range fields {
		for _, item := range items {
			require.NoError(t, w.WriteField(name, item))
		}
	}
	if avatar != nil {
		part, err := w.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(avatar)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/submit", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func urlencodedRequest(fields url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func asDataStar(req *http.Request) *http.Request {
	req.Header.Set(handler.DataStarHeader, "true")
	return req
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
