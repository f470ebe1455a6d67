package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	layouts := []string{"2006-01-02", "1/2/2006 15:04"}

	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "Formato ISO",
			input:    "2024-01-05",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Formato do dataset de exemplo",
			input:    " 2/24/2003 0:00 ",
			expected: time.Date(2003, 2, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Data vazia",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Data inválida",
			input:   "2024-13-45",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input, layouts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, "10.33", RoundWithTwoDecimalPlace(decimal.RequireFromString("10.3333")).String())
	assert.True(t, RoundWithTwoDecimalPlace(decimal.Zero).IsZero())
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 8)
	assert.Regexp(t, "^[A-Za-z0-9]+$", id)
}

func TestPrettyJson(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", PrettyJson(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"b\": true\n}", PrettyJson([]byte(`{"b":true}`)))
	assert.Equal(t, "not json", PrettyJson([]byte("not json")))
}
