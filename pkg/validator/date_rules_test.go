package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

var refNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := validator.ParseDate(" 2020-05-07 ")
	require.NoError(t, err)
	assert.Equal(t, date(2020, time.May, 7), got)

	for _, v := range []string{"", "07/05/2020", "2020-13-01", "2020-02-30"} {
		_, err := validator.ParseDate(v)
		assert.ErrorIs(t, err, validator.ErrInvalidDate, v)
	}
}

func TestPastDate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.PastDate("d", date(2024, time.June, 14), refNow)))
	assert.Error(t, validator.Apply(validator.PastDate("d", date(2024, time.June, 15), refNow)))
	assert.Error(t, validator.Apply(validator.PastDate("d", date(2025, time.January, 1), refNow)))
}

func TestNotFutureDate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.NotFutureDate("d", date(2024, time.June, 15), refNow)))
	assert.Error(t, validator.Apply(validator.NotFutureDate("d", date(2024, time.June, 16), refNow)))
}

func TestAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday already passed", date(2006, time.January, 1), 18},
		{"birthday is today", date(2006, time.June, 15), 18},
		{"birthday tomorrow", date(2006, time.June, 16), 17},
		{"birthday next month", date(2006, time.July, 1), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.Age(tt.birth, refNow))
		})
	}
}

func TestMinAge(t *testing.T) {
	t.Parallel()

	t.Run("uses month and day, not only the year", func(t *testing.T) {
		// Year-only subtraction would give 18 here.
		err := validator.Apply(validator.MinAge("dob", date(2006, time.December, 31), 18, refNow))
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, "validation.min_age", verrs[0].TranslationKey)
		assert.Equal(t, 18, verrs[0].TranslationValues["min_age"])
	})

	t.Run("exact birthday passes", func(t *testing.T) {
		assert.NoError(t, validator.Apply(validator.MinAge("dob", date(2006, time.June, 15), 18, refNow)))
	})

	t.Run("future birthdate fails", func(t *testing.T) {
		assert.Error(t, validator.Apply(validator.MinAge("dob", date(2030, time.June, 15), 0, refNow)))
	})
}

func TestValidBirthdate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.ValidBirthdate("dob", date(1990, time.March, 3), refNow)))
	assert.Error(t, validator.Apply(validator.ValidBirthdate("dob", date(1850, time.March, 3), refNow)))
	assert.Error(t, validator.Apply(validator.ValidBirthdate("dob", date(2025, time.March, 3), refNow)))
}
