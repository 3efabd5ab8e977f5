package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActivityStatusAt(t *testing.T) {
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.Local)
	end := time.Date(2026, 5, 1, 17, 0, 0, 0, time.Local)
	a := Activity{StartDate: start, EndDate: end}

	require.Equal(t, ActivityUpcoming, a.StatusAt(start.Add(-time.Minute)))
	require.Equal(t, ActivityOngoing, a.StatusAt(start))
	require.Equal(t, ActivityOngoing, a.StatusAt(start.Add(time.Hour)))
	require.Equal(t, ActivityOngoing, a.StatusAt(end))
	require.Equal(t, ActivityCompleted, a.StatusAt(end.Add(time.Minute)))
}

func TestActivityTypeValid(t *testing.T) {
	require.True(t, ActivityTypeStudy.Valid())
	require.True(t, ActivityTypeOther.Valid())
	require.False(t, ActivityType("Party").Valid())
}
