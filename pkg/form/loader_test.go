package form_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestDefaultRuleSets(t *testing.T) {
	t.Parallel()
	sets, err := form.DefaultRuleSets()
	require.NoError(t, err)

	student, err := form.Select(sets, form.DefaultSet)
	require.NoError(t, err)
	assert.Equal(t, "form.student.title", student.Title())
	assert.Equal(t,
		[]string{"full_name", "phone", "email", "dob", "gender", "address", "hobbies", "nickname", "avatar", "agree"},
		student.Fields(),
	)
	yes, no := student.BoolLabels()
	assert.Equal(t, "form.yes", yes)
	assert.Equal(t, "form.no", no)

	contact, err := form.Select(sets, "contact")
	require.NoError(t, err)
	assert.Equal(t, 5, contact.Len())

	_, err = form.Select(sets, "missing")
	assert.ErrorIs(t, err, form.ErrUnknownRuleSet)
}

func TestLoadRuleSets(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		doc := `
sets:
  mini:
    title: Mini
    yes_label: Y
    no_label: N
    fields:
      - field: code
        kind: regex
        pattern: '^\d{3}$'
        message: three digits
`
		sets, err := form.LoadRuleSets(strings.NewReader(doc))
		require.NoError(t, err)
		set := sets["mini"]
		require.NotNil(t, set)
		assert.Equal(t, "Mini", set.Title())

		ctx := form.NewContext(set)
		assert.True(t, form.ValidateField(ctx, form.Text("123"), "code").Valid)
		assert.Equal(t, "three digits", form.ValidateField(ctx, form.Text("12"), "code").Message)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()
		doc := `
sets:
  mini:
    fields:
      - field: code
        kind: nonempty
        colour: red
`
		_, err := form.LoadRuleSets(strings.NewReader(doc))
		assert.ErrorIs(t, err, form.ErrFailedToLoadRules)
	})

	t.Run("no sets", func(t *testing.T) {
		t.Parallel()
		_, err := form.LoadRuleSets(strings.NewReader("sets: {}\n"))
		assert.ErrorIs(t, err, form.ErrFailedToLoadRules)
	})

	t.Run("broken rule", func(t *testing.T) {
		t.Parallel()
		doc := `
sets:
  mini:
    fields:
      - field: dob
        kind: predicate
        predicate: older_than_dirt
`
		_, err := form.LoadRuleSets(strings.NewReader(doc))
		assert.ErrorIs(t, err, form.ErrUnknownPredicate)
	})
}

func TestLoadRuleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sets:\n  one:\n    fields:\n      - field: a\n        kind: nonempty\n"), 0o600))

	sets, err := form.LoadRuleFile(path)
	require.NoError(t, err)
	assert.Contains(t, sets, "one")

	_, err = form.LoadRuleFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, form.ErrFailedToLoadRules)
}
