package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestYmd(t *testing.T) {
	// The day key always comes from UTC, whatever zone the clock is in.
	eastern := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2024, 1, 2, 3, 0, 0, 0, eastern)
	require.Equal(t, "2024-01-01", Ymd(late))

	require.True(t, IsValidYmd("2024-01-01"))
	require.False(t, IsValidYmd("2024-1-1"))
	require.False(t, IsValidYmd("01-01-2024"))
	require.False(t, IsValidYmd("yesterday"))
}
