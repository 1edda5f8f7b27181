package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "ISO date",
			input:    "2023-03-15",
			expected: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Court date",
			input:    "15/03/2023",
			expected: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Court date with time",
			input:    "15/03/2023 14:30",
			expected: time.Date(2023, 3, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339",
			input:    "2023-03-15T10:00:00Z",
			expected: time.Date(2023, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "Surrounding spaces",
			input:    " 2023-03-15 ",
			expected: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Invalid format",
			input:   "15-03-2023",
			wantErr: true,
		},
		{
			name:    "Invalid day",
			input:   "32/01/2023",
			wantErr: true,
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expected.Equal(got), "got %s", got)
			}
		})
	}
}
