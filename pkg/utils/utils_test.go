package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "already two places", amount: "1500.00", expected: "1500"},
		{name: "half rounds up", amount: "10.005", expected: "10.01"},
		{name: "below half rounds down", amount: "10.0049", expected: "10"},
		{name: "many places", amount: "164.3835616438", expected: "164.38"},
		{name: "zero", amount: "0", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundMoney(decimal.RequireFromString(tt.amount))
			assert.True(t, result.Equal(decimal.RequireFromString(tt.expected)),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestPercent(t *testing.T) {
	result := Percent(decimal.NewFromInt(60000), decimal.NewFromFloat(2.5))
	assert.True(t, result.Equal(decimal.NewFromInt(1500)), "got %v", result)
}

func TestWholeDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		expected int64
	}{
		{name: "same instant", end: start, expected: 0},
		{name: "23 hours later", end: start.Add(23 * time.Hour), expected: 0},
		{name: "exactly one day", end: start.Add(24 * time.Hour), expected: 1},
		{name: "thirty days and a bit", end: start.AddDate(0, 0, 30).Add(5 * time.Hour), expected: 30},
		{name: "a full year", end: start.AddDate(1, 0, 0), expected: 366},
		{name: "end before start", end: start.Add(-48 * time.Hour), expected: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WholeDaysBetween(start, tt.end))
		})
	}
}

func TestIsDateAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsDateAfter(now, now.Add(time.Second)))
	assert.False(t, IsDateAfter(now, now))
	assert.False(t, IsDateAfter(now, now.Add(-time.Second)))
}

func TestIsWholeCents(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"100", true},
		{"100.5", true},
		{"100.01", true},
		{"100.500", true},
		{"100.005", false},
		{"50000.004", false},
		{"-0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWholeCents(decimal.RequireFromString(tt.amount)))
		})
	}
}
