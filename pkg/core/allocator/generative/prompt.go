package generative

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

var promptTemplate = template.Must(template.New("schedule").Parse(`You are a scheduling assistant for a small business. Create the employee schedule for one week.

Hard rules (a schedule that breaks any of these is rejected):
1. ONLY schedule employees on days listed in their availability
2. NEVER schedule the same employee more than once on the same day
{{- if .UsesSlots}}
3. Every shift MUST use the exact start_time and end_time of one of that day's shift slots
{{- else}}
3. Use the store hours for the day as the shift start_time and end_time
{{- end}}
4. Pair lead employees with new employees in the same shift whenever possible

Soft rules:
- Meet the required headcount for each {{if .UsesSlots}}shift slot{{else}}day{{end}}; if there are not enough staff, schedule as many as possible
- Distribute shifts evenly across employees
- Keep the schedule close to the previous schedule where it still fits the rules
{{- if .Preferences}}
- Business preferences: {{.Preferences}}
{{- end}}

Week start: {{.WeekStart}}

{{if .UsesSlots}}Shift slots:{{else}}Staffing requirements:{{end}}
{{.Demand}}

Store hours:
{{.StoreHours}}

Employees:
{{.Employees}}
{{- if .PriorSchedule}}

Previous schedule:
{{.PriorSchedule}}
{{- end}}

Return ONLY valid JSON in this exact format:
{"shifts": [{"employee_id": "1", "day": "fri", "start_time": "09:00", "end_time": "17:00"}]}

JSON Response:`))

type promptData struct {
	WeekStart     string
	UsesSlots     bool
	Preferences   string
	Demand        string
	StoreHours    string
	Employees     string
	PriorSchedule string
}

type promptSlot struct {
	Day       model.Weekday `json:"day"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Required  int           `json:"required"`
}

type promptRule struct {
	Day      model.Weekday `json:"day"`
	Required int           `json:"required"`
}

type promptEmployee struct {
	ID           string                         `json:"id"`
	Name         string                         `json:"name"`
	Tier         model.SkillTier                `json:"tier"`
	Availability []model.Weekday                `json:"availability"`
	Windows      map[model.Weekday]promptWindow `json:"time_windows,omitempty"`
}

type promptWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type promptShift struct {
	EmployeeID string        `json:"employee_id"`
	Day        model.Weekday `json:"day"`
	StartTime  string        `json:"start_time,omitempty"`
	EndTime    string        `json:"end_time,omitempty"`
}

type promptHours struct {
	Day    model.Weekday `json:"day"`
	Open   string        `json:"open_time,omitempty"`
	Close  string        `json:"close_time,omitempty"`
	Closed bool          `json:"closed"`
}

// BuildPrompt renders the generation instructions for a scheduling request
func BuildPrompt(req *allocator.Request) (string, error) {
	data := promptData{
		WeekStart:   req.WeekStart.Format(model.DateLayout),
		UsesSlots:   req.Catalog != nil && req.Catalog.UsesSlots(),
		Preferences: req.Preferences,
	}

	var demand any
	if data.UsesSlots {
		slots := make([]promptSlot, 0)
		for _, unit := range req.Demand() {
			slots = append(slots, promptSlot{Day: unit.Day, StartTime: unit.StartTime, EndTime: unit.EndTime, Required: unit.Required})
		}
		demand = slots
	} else {
		rules := make([]promptRule, 0)
		for _, unit := range req.Demand() {
			rules = append(rules, promptRule{Day: unit.Day, Required: unit.Required})
		}
		demand = rules
	}

	hours := make([]promptHours, 0, len(req.StoreHours))
	for _, day := range model.Weekdays {
		if h, ok := req.StoreHours[day]; ok {
			hours = append(hours, promptHours{Day: day, Open: h.Open, Close: h.Close, Closed: h.Closed})
		}
	}

	employees := make([]promptEmployee, 0, len(req.Pool))
	for _, emp := range req.Pool {
		pe := promptEmployee{
			ID:           emp.ID,
			Name:         emp.DisplayName,
			Tier:         emp.Tier,
			Availability: emp.Days.Sorted(),
		}
		if len(emp.Windows) > 0 {
			pe.Windows = make(map[model.Weekday]promptWindow, len(emp.Windows))
			for day, w := range emp.Windows {
				pe.Windows[day] = promptWindow{Start: w.Start, End: w.End}
			}
		}
		employees = append(employees, pe)
	}

	var prior []promptShift
	for _, shift := range req.PriorSchedule {
		prior = append(prior, promptShift{
			EmployeeID: shift.EmployeeID,
			Day:        shift.Day,
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
		})
	}

	var err error
	if data.Demand, err = indentJSON(demand); err != nil {
		return "", err
	}
	if data.StoreHours, err = indentJSON(hours); err != nil {
		return "", err
	}
	if data.Employees, err = indentJSON(employees); err != nil {
		return "", err
	}
	if len(prior) > 0 {
		if data.PriorSchedule, err = indentJSON(prior); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

func indentJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt data: %w", err)
	}
	return string(b), nil
}
