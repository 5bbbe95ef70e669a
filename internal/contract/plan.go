package contract

import (
	"bytes"
	"encoding/json"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
)

type BlockDTO struct {
	ID        string  `json:"id"`
	TaskID    *string `json:"taskId"`
	TaskTitle string  `json:"taskTitle,omitempty"`
	StartAt   string  `json:"startAt"`
	EndAt     string  `json:"endAt"`
	Minutes   int     `json:"minutes"`
}

func FromBlocks(blocks []domain.ScheduleBlock) []BlockDTO {
	out := make([]BlockDTO, len(blocks))
	for i, b := range blocks {
		out[i] = BlockDTO{
			ID:        b.ID,
			TaskID:    b.TaskID,
			TaskTitle: b.TaskTitle,
			StartAt:   FormatTime(b.Start),
			EndAt:     FormatTime(b.End),
			Minutes:   b.Minutes(),
		}
	}
	return out
}

type PlanResponse struct {
	Day    domain.PlanDay `json:"day"`
	Blocks []BlockDTO     `json:"blocks"`
}

type TodayPlanResponse struct {
	Blocks []BlockDTO `json:"blocks"`
}

// GeneratePlanRequest is the body of POST /api/plan/generate. Fields are
// kept raw so a value of the wrong type falls back to its default instead
// of rejecting the request.
type GeneratePlanRequest struct {
	Day       json.RawMessage `json:"day"`
	Focus     json.RawMessage `json:"focus"`
	StartHour json.RawMessage `json:"startHour"`
}

func (r GeneratePlanRequest) ToPlanRequest() app.PlanRequest {
	req := app.NewPlanRequest(domain.ParsePlanDay(rawString(r.Day)))
	req.FocusRaw = rawString(r.Focus)
	req.StartHour = rawNumber(r.StartHour)
	return req
}

var jsonNull = []byte("null")

// rawString returns raw when it holds a JSON string and "" otherwise.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// rawNumber returns nil for a missing, null or non-numeric value.
func rawNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}
	var h float64
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil
	}
	return &h
}

type GeneratePlanResponse struct {
	Day          domain.PlanDay `json:"day"`
	Blocks       []BlockDTO     `json:"blocks"`
	FocusLabel   *string        `json:"focusLabel"`
	FocusRaw     *string        `json:"focusRaw"`
	FocusApplied bool           `json:"focusApplied"`
	DidUpdate    bool           `json:"didUpdate"`
	HadMatches   bool           `json:"hadMatches"`
}

func FromPlanResult(r *app.PlanResult) GeneratePlanResponse {
	return GeneratePlanResponse{
		Day:          r.Day,
		Blocks:       FromBlocks(r.Blocks),
		FocusLabel:   optional(r.FocusLabel),
		FocusRaw:     optional(r.FocusRaw),
		FocusApplied: r.FocusApplied,
		DidUpdate:    r.DidUpdate,
		HadMatches:   r.HadMatches,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
