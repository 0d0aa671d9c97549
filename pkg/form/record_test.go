package form_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	got, err := form.FormatDate("2020-05-07")
	require.NoError(t, err)
	assert.Equal(t, "07/05/2020", got)

	got, err = form.FormatDate(" 1999-12-31 ")
	require.NoError(t, err)
	assert.Equal(t, "31/12/1999", got)

	_, err = form.FormatDate("07/05/2020")
	assert.ErrorIs(t, err, validator.ErrInvalidDate)

	_, err = form.FormatDate("2021-02-29")
	assert.ErrorIs(t, err, validator.ErrInvalidDate)
}

func TestJoinChoices(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "music, sport", form.JoinChoices([]string{"music", "sport"}))
	assert.Equal(t, "music", form.JoinChoices([]string{"music"}))
	assert.Equal(t, "", form.JoinChoices(nil))
}

func TestBuildRecord(t *testing.T) {
	t.Parallel()
	ctx := studentContext(t)

	rec, err := form.BuildRecord(ctx, validStudent(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.Seq)
	assert.Equal(t, refNow, rec.CreatedAt)

	fields := make([]string, 0, len(rec.Cells))
	for _, c := range rec.Cells {
		fields = append(fields, c.Field)
	}
	assert.Equal(t, []string{"full_name", "phone", "email", "dob", "gender", "address", "hobbies", "nickname", "avatar"}, fields)

	cell, ok := rec.Cell("dob")
	require.True(t, ok)
	assert.Equal(t, "07/05/2000", cell.Text)
	assert.Equal(t, "form.student.dob.label", cell.Label)

	cell, _ = rec.Cell("hobbies")
	assert.Equal(t, "music, sports", cell.Text)
	assert.Equal(t, []string{"music", "sports"}, cell.Items)

	cell, _ = rec.Cell("nickname")
	assert.Equal(t, "", cell.Text)

	cell, _ = rec.Cell("avatar")
	assert.Equal(t, "avatar.png", cell.Text)
	assert.True(t, strings.HasPrefix(cell.Image, "data:image/png;base64,"))

	_, ok = rec.Cell("agree")
	assert.False(t, ok, "hidden fields are not displayed")
}

func TestBuildRecordBoolLabels(t *testing.T) {
	t.Parallel()
	set, err := form.NewRuleSet("opt", []form.FieldRule{
		{Field: "news", Label: "Newsletter", Kind: form.KindPredicate, Predicate: "checked", Format: form.FormatBool, Optional: true},
	}, form.WithBoolLabels("Có", "Không"))
	require.NoError(t, err)
	ctx := form.NewContext(set)

	rec, err := form.BuildRecord(ctx, form.Values{"news": form.Bool(true)}, 1)
	require.NoError(t, err)
	assert.Equal(t, []form.Cell{{Field: "news", Label: "Newsletter", Text: "Có"}}, rec.Cells)

	rec, err = form.BuildRecord(ctx, form.Values{}, 2)
	require.NoError(t, err)
	assert.Equal(t, "Không", rec.Cells[0].Text)
}

func TestBuildRecordRejectsBadDate(t *testing.T) {
	t.Parallel()
	ctx := studentContext(t)
	values := validStudent()
	values["dob"] = form.Text("yesterday")

	_, err := form.BuildRecord(ctx, values, 1)
	assert.ErrorIs(t, err, validator.ErrInvalidDate)
}
