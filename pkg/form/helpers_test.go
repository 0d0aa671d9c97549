package form_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/file"
	"github.com/dmitrymomot/formkit/pkg/form"
)

var refNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func fixedClock() time.Time { return refNow }

func studentContext(t *testing.T, opts ...form.ContextOption) *form.Context {
	t.Helper()
	sets, err := form.DefaultRuleSets()
	require.NoError(t, err)
	set, err := form.Select(sets, form.DefaultSet)
	require.NoError(t, err)
	return form.NewContext(set, append([]form.ContextOption{form.WithClock(fixedClock)}, opts...)...)
}

func pngUpload() *file.Upload {
	return &file.Upload{
		Filename: "avatar.png",
		Size:     int64(len(pngBytes)),
		MIMEType: "image/png",
		Data:     pngBytes,
	}
}

func validStudent() form.Values {
	return form.Values{
		"full_name": form.Text("Le Van An"),
		"phone":     form.Text("0901234567"),
		"email":     form.Text("an.le@example.com"),
		"dob":       form.Text("2000-05-07"),
		"gender":    form.Text("male"),
		"address":   form.Text("12 Nguyễn Trãi, Hà Nội"),
		"hobbies":   form.List("music", "sports"),
		"avatar":    form.File(pngUpload()),
		"agree":     form.Bool(true),
	}
}
