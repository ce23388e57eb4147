package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/habits-service/internal/domain"
)

func TestParseDay(t *testing.T) {
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := domain.ParseDay("2024-05-01")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = domain.ParseDay("2024-05-01T18:30:00Z")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	for _, bad := range []string{"", "yesterday", "2024-13-01", "01/05/2024"} {
		_, err := domain.ParseDay(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, bad)
	}
}

func TestDayBounds(t *testing.T) {
	start, end := domain.DayBounds(time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 1, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestParseIDs(t *testing.T) {
	ids, err := domain.ParseIDs([]string{"65f1c0a8e4b0a1b2c3d4e5f6", " 65f1c0a8e4b0a1b2c3d4e5f7 "})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = domain.ParseIDs([]string{"65f1c0a8e4b0a1b2c3d4e5f6", "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
