package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateForInput(t *testing.T) {
	got, ok := FormatDateForInput("2025-01-15T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, "2025-01-15", got)

	got, ok = FormatDateForInput("2025-03-09T14:30:00+02:00")
	require.True(t, ok)
	assert.Equal(t, "2025-03-09", got)

	got, ok = FormatDateForInput("2025-07-01")
	require.True(t, ok)
	assert.Equal(t, "2025-07-01", got)
}

func TestFormatDateForInputInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2025-13-40", "15/01/2025"} {
		_, ok := FormatDateForInput(in)
		assert.False(t, ok, in)
	}
}

func TestConvertDateInputToISO(t *testing.T) {
	got, err := ConvertDateInputToISO("2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03T00:00:00.000Z", got)
}

func TestConvertDateInputToISOInvalid(t *testing.T) {
	_, err := ConvertDateInputToISO("02/03/2025")
	assert.Error(t, err)

	_, err = ConvertDateInputToISO("")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	iso, err := ConvertDateInputToISO("2025-11-30")
	require.NoError(t, err)
	day, ok := FormatDateForInput(iso)
	require.True(t, ok)
	assert.Equal(t, "2025-11-30", day)
}
