package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/modules/registration"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func formConfig(set string) registration.Config {
	return registration.Config{RuleSet: set, MinAge: 18, DefaultLang: "vi"}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("valid contact submission", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "contact.json", []byte(`{
			"full_name": "Tran Thi Binh",
			"email": "Binh@Example.com",
			"subject": "Hello",
			"message": "I would like to join the club."
		}`))

		var out bytes.Buffer
		cmd := &checkCmd{lang: "en"}
		valid, err := cmd.check(context.Background(), &out, formConfig("contact"), path)

		require.NoError(t, err)
		assert.True(t, valid)
		assert.Contains(t, out.String(), "  ok    email\n")
		assert.Contains(t, out.String(), "  Email: binh@example.com\n")
		assert.Contains(t, out.String(), "contact: valid\n")
	})

	t.Run("invalid fields are reported in the requested language", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "contact.yaml", []byte(
			"full_name: Tran Thi Binh\nemail: binh@example.com\nphone: \"0123\"\nsubject: \"\"\nmessage: I would like to join the club.\n"))

		var out bytes.Buffer
		cmd := &checkCmd{lang: "en"}
		valid, err := cmd.check(context.Background(), &out, formConfig("contact"), path)

		require.NoError(t, err)
		assert.False(t, valid)
		assert.Contains(t, out.String(), "  FAIL  phone: Phone must be 10 digits starting with 09, 03 or 08.\n")
		assert.Contains(t, out.String(), "  FAIL  subject: Please enter a subject.\n")
		assert.Contains(t, out.String(), "contact: invalid (2 of 5 fields failed)\n")
	})

	t.Run("unquoted numbers keep their leading zeros", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "contact.yaml", []byte(
			"full_name: Tran Thi Binh\nemail: binh@example.com\nphone: 0901234567\nsubject: 2024\nmessage: I would like to join the club.\n"))

		var out bytes.Buffer
		cmd := &checkCmd{lang: "en"}
		valid, err := cmd.check(context.Background(), &out, formConfig("contact"), path)

		require.NoError(t, err)
		assert.True(t, valid, out.String())
		assert.Contains(t, out.String(), "  ok    phone\n")
		assert.Contains(t, out.String(), ": 0901234567\n")
		assert.Contains(t, out.String(), ": 2024\n")
	})

	t.Run("student submission with a relative avatar path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "avatar.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01"))
		path := writeFile(t, dir, "student.yaml", []byte(`
full_name: Le Van An
phone: "0901234567"
email: an.le@example.com
dob: "2000-05-07"
gender: female
address: 12 Nguyễn Trãi, Hà Nội
hobbies: [reading, travel]
avatar: {path: avatar.png}
agree: true
`))

		var out bytes.Buffer
		cmd := &checkCmd{format: "json", today: "2024-06-15"}
		valid, err := cmd.check(context.Background(), &out, formConfig("student"), path)

		require.NoError(t, err)
		assert.True(t, valid)

		var report checkReport
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, "student", report.RuleSet)
		assert.True(t, report.Valid)
		require.NotNil(t, report.Record)
		assert.Equal(t, 1, report.Record.Seq)
		cell, ok := report.Record.Cell("dob")
		require.True(t, ok)
		assert.Equal(t, "Ngày sinh", cell.Label)
		assert.Equal(t, "07/05/2000", cell.Text)
		cell, _ = report.Record.Cell("avatar")
		assert.Equal(t, "avatar.png", cell.Text)
		assert.Empty(t, cell.Image)
	})

	t.Run("underage on the reference date", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "student.yaml", []byte("dob: \"2010-01-01\"\n"))

		var out bytes.Buffer
		cmd := &checkCmd{today: "2024-06-15"}
		valid, err := cmd.check(context.Background(), &out, formConfig("student"), path)

		require.NoError(t, err)
		assert.False(t, valid)
		assert.Contains(t, out.String(), "  FAIL  dob: Bạn phải đủ 18 tuổi.\n")
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		cmd := &checkCmd{}

		_, err := cmd.check(context.Background(), &bytes.Buffer{}, formConfig("student"), filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)

		path := writeFile(t, dir, "bad.yaml", []byte("- just\n- a list\n"))
		_, err = cmd.check(context.Background(), &bytes.Buffer{}, formConfig("student"), path)
		assert.Error(t, err)

		_, err = cmd.check(context.Background(), &bytes.Buffer{}, formConfig("nope"), path)
		assert.Error(t, err)

		bad := &checkCmd{today: "15/06/2024"}
		_, err = bad.check(context.Background(), &bytes.Buffer{}, formConfig("student"), path)
		assert.Error(t, err)
	})
}

func TestApp(t *testing.T) {
	t.Parallel()

	app := newApp()
	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"serve", "check"}, names)
}
