package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(n int) *int { return &n }

func TestValidateActivity(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		location     string
		timeAndDate  string
		maxAttendees *int
		want         string
	}{
		{"valid", "T", "L", "7:00AM, 01/01/2030", intp(1), ""},
		{"blank title", " ", "L", "7:00AM, 01/01/2030", intp(1), msgMissingFields},
		{"blank location", "T", "", "7:00AM, 01/01/2030", intp(1), msgMissingFields},
		{"blank time", "T", "L", "", intp(1), msgMissingFields},
		{"absent capacity", "T", "L", "7:00AM, 01/01/2030", nil, msgMissingFields},
		{"zero capacity", "T", "L", "7:00AM, 01/01/2030", intp(0), msgInvalidMaxAttendee},
		{"negative capacity", "T", "L", "7:00AM, 01/01/2030", intp(-5), msgInvalidMaxAttendee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateActivity(tt.title, tt.location, tt.timeAndDate, tt.maxAttendees)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlank(t *testing.T) {
	assert.True(t, blank(""))
	assert.True(t, blank("  \t"))
	assert.False(t, blank(" x "))
}
