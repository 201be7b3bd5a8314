package fechas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFechaHora_Layouts(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)

	for _, in := range []string{"2024-06-10T08:30", "2024-06-10T08:30:00", "2024-06-10 08:30:00", "2024-06-10T13:30:00Z"} {
		got, err := ParseFechaHora(in, loc)
		require.NoError(t, err, in)
		assert.Equal(t, 8, got.Hour(), in)
		assert.Equal(t, 30, got.Minute(), in)
		assert.Equal(t, loc, got.Location(), in)
	}

	_, err := ParseFechaHora("10/06/2024", loc)
	assert.ErrorIs(t, err, ErrFormato)
}

func TestParseFecha_TruncatesDateTime(t *testing.T) {
	got, err := ParseFecha("2024-06-10T15:00:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10T00:00:00", FormatFechaHora(got))
}

func TestParseHora(t *testing.T) {
	m, err := ParseHora("14:30")
	require.NoError(t, err)
	assert.Equal(t, 870, m)

	m, err = ParseHora("08:00:00")
	require.NoError(t, err)
	assert.Equal(t, 480, m)

	_, err = ParseHora("8am")
	assert.Error(t, err)
}

func TestEnRango_InclusiveByDay(t *testing.T) {
	desde := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	hasta := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.True(t, EnRango(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), &desde, &hasta))
	assert.True(t, EnRango(time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC), &desde, &hasta))
	assert.False(t, EnRango(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), &desde, &hasta))
	assert.False(t, EnRango(time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC), &desde, &hasta))
	assert.True(t, EnRango(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil))
}
