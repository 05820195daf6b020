package generative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

func TestParseResponse(t *testing.T) {
	text := `{"shifts": [
		{"employee_id": 5, "day": "fri", "start_time": "8:00", "end_time": "12:00"},
		{"employee_id": "abc-123", "day": "Saturday"}
	]}`

	shifts, err := ParseResponse(text)
	require.NoError(t, err)

	assert.Equal(t, []allocator.CandidateShift{
		{Day: model.Friday, EmployeeID: "5", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Saturday, EmployeeID: "abc-123"},
	}, shifts)
}

func TestParseResponse_CodeFences(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"json fence", "Here you go:\n```json\n{\"shifts\": [{\"employee_id\": 1, \"day\": \"mon\"}]}\n```\nEnjoy"},
		{"bare fence", "```\n{\"shifts\": [{\"employee_id\": 1, \"day\": \"mon\"}]}\n```"},
		{"leading prose", "JSON Response: {\"shifts\": [{\"employee_id\": 1, \"day\": \"mon\"}]}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shifts, err := ParseResponse(tt.text)
			require.NoError(t, err)
			require.Len(t, shifts, 1)
			assert.Equal(t, "1", shifts[0].EmployeeID)
			assert.Equal(t, model.Monday, shifts[0].Day)
		})
	}
}

func TestParseResponse_EmptyShifts(t *testing.T) {
	shifts, err := ParseResponse(`{"shifts": []}`)
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "I cannot help with that"},
		{"truncated", `{"shifts": [{"employee_id": 1, "day": "mon"`},
		{"no shifts key", `{"orders": []}`},
		{"shifts not array", `{"shifts": "none"}`},
		{"missing employee", `{"shifts": [{"day": "mon"}]}`},
		{"fractional employee", `{"shifts": [{"employee_id": 1.5, "day": "mon"}]}`},
		{"missing day", `{"shifts": [{"employee_id": 1}]}`},
		{"bare array", `[{"employee_id": 1, "day": "mon"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.text)
			assert.ErrorIs(t, err, allocator.ErrMalformedResponse)
		})
	}
}

func TestParseResponse_UnknownDayPassedThrough(t *testing.T) {
	shifts, err := ParseResponse(`{"shifts": [{"employee_id": "1", "day": "Funday", "start_time": "late", "end_time": ""}]}`)
	require.NoError(t, err)

	assert.Equal(t, model.Weekday("funday"), shifts[0].Day)
	assert.Equal(t, "late", shifts[0].StartTime)
	assert.False(t, shifts[0].Day.IsValid())
}
