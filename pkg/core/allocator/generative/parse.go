package generative

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// responseShift is one entry of the generator's "shifts" array
type responseShift struct {
	EmployeeID json.RawMessage `json:"employee_id"`
	Day        string          `json:"day"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
}

type response struct {
	Shifts *[]responseShift `json:"shifts"`
}

// encodedShift is the canonical form written by EncodeResponse
type encodedShift struct {
	EmployeeID string `json:"employee_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
}

// EncodeResponse renders shifts in the reply format ParseResponse accepts
func EncodeResponse(shifts []allocator.CandidateShift) (string, error) {
	encoded := make([]encodedShift, len(shifts))
	for i, shift := range shifts {
		encoded[i] = encodedShift{
			EmployeeID: shift.EmployeeID,
			Day:        string(shift.Day),
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
		}
	}

	data, err := json.Marshal(map[string][]encodedShift{"shifts": encoded})
	if err != nil {
		return "", fmt.Errorf("failed to encode shifts: %w", err)
	}
	return string(data), nil
}

// ParseResponse extracts candidate shifts from a generator response.
//
// The response must contain a JSON object with a "shifts" array. Markdown code fences and
// surrounding prose are tolerated. Employee IDs may be strings or integers. Day names are
// normalised to tokens where possible; anything unrecognised is passed through unchanged so
// the validator reports it. Any other deviation returns allocator.ErrMalformedResponse.
func ParseResponse(text string) ([]allocator.CandidateShift, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON object found", allocator.ErrMalformedResponse)
	}

	var parsed response
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", allocator.ErrMalformedResponse, err)
	}
	if parsed.Shifts == nil {
		return nil, fmt.Errorf("%w: missing \"shifts\" array", allocator.ErrMalformedResponse)
	}

	shifts := make([]allocator.CandidateShift, 0, len(*parsed.Shifts))
	for i, raw := range *parsed.Shifts {
		employeeID, err := parseEmployeeID(raw.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("%w: shift %d: %v", allocator.ErrMalformedResponse, i, err)
		}
		if strings.TrimSpace(raw.Day) == "" {
			return nil, fmt.Errorf("%w: shift %d: missing day", allocator.ErrMalformedResponse, i)
		}

		shifts = append(shifts, allocator.CandidateShift{
			Day:        normaliseDay(raw.Day),
			EmployeeID: employeeID,
			StartTime:  normaliseClock(raw.StartTime),
			EndTime:    normaliseClock(raw.EndTime),
		})
	}

	return shifts, nil
}

// extractJSON strips code fences and any text around the outermost JSON object
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if _, after, ok := strings.Cut(text, "```json"); ok {
		text, _, _ = strings.Cut(after, "```")
	} else if _, after, ok := strings.Cut(text, "```"); ok {
		text, _, _ = strings.Cut(after, "```")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}

func parseEmployeeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("missing employee_id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("empty employee_id")
		}
		return strings.TrimSpace(s), nil
	}

	var n json.Number
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
	}

	return "", fmt.Errorf("employee_id %s is neither a string nor an integer", string(raw))
}

func normaliseDay(s string) model.Weekday {
	if day, err := model.ParseWeekday(s); err == nil {
		return day
	}
	return model.Weekday(strings.ToLower(strings.TrimSpace(s)))
}

func normaliseClock(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if clock, err := model.ParseClock(s); err == nil {
		return clock
	}
	return strings.TrimSpace(s)
}
