package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDateTime(t *testing.T) {
	dt, err := CombineDateTime("2024-05-01", "14:30")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T14:30:00Z", dt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestCombineDateTimeRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		date string
		tod  string
	}{
		{"bad time", "2024-05-01", "25:99"},
		{"bad date", "2024-13-40", "10:00"},
		{"empty time", "2024-05-01", ""},
		{"not a time", "2024-05-01", "matinee"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CombineDateTime(tc.date, tc.tod)
			require.Error(t, err)
		})
	}
}
