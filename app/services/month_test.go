package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-05")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: 5}, m)

	for _, bad := range []string{"", "2025", "2025-13", "05-2025", "2025/05", "abcd-ef"} {
		_, err := ParseMonth(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestMonthArithmetic(t *testing.T) {
	m := Month{Year: 2025, Month: 1}
	assert.Equal(t, Month{Year: 2024, Month: 12}, m.AddMonths(-1))
	assert.Equal(t, Month{Year: 2025, Month: 2}, m.AddMonths(1))
	assert.Equal(t, Month{Year: 2024, Month: 10}, m.AddMonths(-3))

	assert.True(t, Month{Year: 2025, Month: 6}.After(Month{Year: 2025, Month: 5}))
	assert.True(t, Month{Year: 2026, Month: 1}.After(Month{Year: 2025, Month: 12}))
	assert.False(t, Month{Year: 2025, Month: 5}.After(Month{Year: 2025, Month: 5}))
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2025, Month: 5}
	assert.True(t, m.Contains(date(2025, 5, 1)))
	assert.True(t, m.Contains(date(2025, 5, 31)))
	assert.False(t, m.Contains(date(2025, 4, 30)))
	assert.False(t, m.Contains(date(2024, 5, 15)))
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "2025-05", Month{Year: 2025, Month: 5}.String())
}
