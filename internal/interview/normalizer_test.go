package interview_test

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"teachmatch-dashboard/internal/interview"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return v
}

// ── Totality ───────────────────────────────────────────────────────────────

func TestNormalize_NonObjectYieldsNil(t *testing.T) {
	inputs := []interface{}{
		nil,
		"just a string",
		42.0,
		true,
		[]interface{}{"a", "b"},
	}
	for _, in := range inputs {
		if got := interview.Normalize(in); got != nil {
			t.Errorf("Normalize(%#v) = %+v, want nil", in, got)
		}
	}
}

func TestNormalize_EmptyObjectYieldsEmptyRequest(t *testing.T) {
	req := interview.Normalize(map[string]interface{}{})
	if req == nil {
		t.Fatal("Normalize({}) = nil, want empty request")
	}
	if req.TimeSlots == nil || len(req.TimeSlots) != 0 {
		t.Errorf("TimeSlots = %#v, want empty non-nil list", req.TimeSlots)
	}
	if req.SelectedSlot != nil || req.AlternativeSlot != nil {
		t.Error("empty payload should have no selected or alternative slot")
	}
}

func TestNormalize_GarbageFieldTypesAreDropped(t *testing.T) {
	req := interview.Normalize(decode(t, `{
		"status": 17,
		"timeSlots": {"not": "a list"},
		"selectedSlot": "zero",
		"alternativeSlot": 99,
		"locationType": [],
		"duration": "long",
		"message": {"nested": true}
	}`))
	if req == nil {
		t.Fatal("Normalize returned nil for an object payload")
	}
	if req.Status != "" || req.LocationType != "" || req.Duration != 0 || req.Message != "" {
		t.Errorf("mistyped scalar fields should zero out, got %+v", req)
	}
	if len(req.TimeSlots) != 0 || req.SelectedSlot != nil || req.AlternativeSlot != nil {
		t.Errorf("mistyped slot fields should be dropped, got %+v", req)
	}
}

// ── String-encoded payloads ────────────────────────────────────────────────

func TestNormalize_TimeSlotsAsJSONString(t *testing.T) {
	req := interview.Normalize(decode(t, `{
		"status": "pending",
		"timeSlots": "[{\"date\":\"2026-09-10\",\"time\":\"14:00\",\"timezone\":\"Asia/Almaty\"},{\"date\":\"2026-09-11\",\"time\":\"09:30\"}]"
	}`))
	if req == nil {
		t.Fatal("Normalize returned nil")
	}
	if len(req.TimeSlots) != 2 {
		t.Fatalf("got %d slots, want 2", len(req.TimeSlots))
	}
	want := interview.TimeSlot{Date: "2026-09-10", Time: "14:00", Timezone: "Asia/Almaty"}
	if req.TimeSlots[0] != want {
		t.Errorf("slot[0] = %+v, want %+v", req.TimeSlots[0], want)
	}
}

func TestNormalize_AlternativeSlotAsJSONString(t *testing.T) {
	req := interview.Normalize(decode(t, `{
		"alternativeSlot": "{\"date\":\"2026-09-15\",\"time\":\"10:00\"}"
	}`))
	if req.AlternativeSlot == nil {
		t.Fatal("string-encoded alternative slot should parse")
	}
	if req.AlternativeSlot.Date != "2026-09-15" || req.AlternativeSlot.Time != "10:00" {
		t.Errorf("alternative = %+v", req.AlternativeSlot)
	}
}

func TestNormalize_UnparseableStringFieldsAreDropped(t *testing.T) {
	req := interview.Normalize(decode(t, `{
		"timeSlots": "not valid json [",
		"alternativeSlot": "{broken"
	}`))
	if len(req.TimeSlots) != 0 {
		t.Errorf("unparseable timeSlots should become empty, got %+v", req.TimeSlots)
	}
	if req.AlternativeSlot != nil {
		t.Errorf("unparseable alternativeSlot should be dropped, got %+v", req.AlternativeSlot)
	}
}

// ── Slot filtering ─────────────────────────────────────────────────────────

func TestNormalize_SlotsMissingBothDateAndTimeAreDropped(t *testing.T) {
	req := interview.Normalize(decode(t, `{
		"timeSlots": [
			{"date": "2026-09-10", "time": "14:00"},
			{"timezone": "Asia/Almaty"},
			{},
			{"date": "2026-09-11"},
			{"time": "16:00"}
		]
	}`))
	// Only the slot with neither date nor time goes; partial slots stay.
	if len(req.TimeSlots) != 3 {
		t.Fatalf("got %d slots, want 3: %+v", len(req.TimeSlots), req.TimeSlots)
	}
	if req.TimeSlots[1].Date != "2026-09-11" || req.TimeSlots[2].Time != "16:00" {
		t.Errorf("partial slots should survive in order, got %+v", req.TimeSlots)
	}
}

func TestNormalize_AlternativeNeedsBothDateAndTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing time", `{"alternativeSlot": {"date": "2026-09-15"}}`},
		{"missing date", `{"alternativeSlot": {"time": "10:00"}}`},
		{"empty object", `{"alternativeSlot": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := interview.Normalize(decode(t, tt.raw))
			if req.AlternativeSlot != nil {
				t.Errorf("incomplete alternative should be dropped, got %+v", req.AlternativeSlot)
			}
		})
	}
}

// ── Selected-slot index ────────────────────────────────────────────────────

func TestNormalize_SelectedSlotValidatedAgainstFilteredList(t *testing.T) {
	// Three raw slots, one filtered away: index 2 no longer fits.
	req := interview.Normalize(decode(t, `{
		"timeSlots": [
			{"date": "2026-09-10", "time": "14:00"},
			{},
			{"date": "2026-09-11", "time": "09:30"}
		],
		"selectedSlot": 2
	}`))
	if len(req.TimeSlots) != 2 {
		t.Fatalf("got %d slots, want 2", len(req.TimeSlots))
	}
	if req.SelectedSlot != nil {
		t.Errorf("index beyond the filtered list should be dropped, got %d", *req.SelectedSlot)
	}
}

func TestNormalize_SelectedSlotBounds(t *testing.T) {
	base := `{"timeSlots": [{"date":"2026-09-10","time":"14:00"},{"date":"2026-09-11","time":"09:30"}], "selectedSlot": %s}`
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{"zero", "0", intPtr(0)},
		{"last valid", "1", intPtr(1)},
		{"out of range", "5", nil},
		{"negative", "-1", nil},
		{"fractional", "0.5", nil},
		{"string index", `"1"`, nil},
		{"null", "null", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := interview.Normalize(decode(t, fmt.Sprintf(base, tt.raw)))
			switch {
			case tt.want == nil && req.SelectedSlot != nil:
				t.Errorf("selectedSlot = %d, want dropped", *req.SelectedSlot)
			case tt.want != nil && req.SelectedSlot == nil:
				t.Errorf("selectedSlot dropped, want %d", *tt.want)
			case tt.want != nil && *req.SelectedSlot != *tt.want:
				t.Errorf("selectedSlot = %d, want %d", *req.SelectedSlot, *tt.want)
			}
		})
	}
}

func TestNormalize_SelectedSlotNonFiniteDropped(t *testing.T) {
	req := interview.Normalize(map[string]interface{}{
		"timeSlots":    []interface{}{map[string]interface{}{"date": "2026-09-10", "time": "14:00"}},
		"selectedSlot": math.Inf(1),
	})
	if req.SelectedSlot != nil {
		t.Errorf("infinite index should be dropped, got %d", *req.SelectedSlot)
	}
}

func intPtr(n int) *int { return &n }
