package interview

import (
	"encoding/json"
	"math"
)

// Normalize turns an arbitrary decoded payload into a well-formed
// InterviewRequest. Upstream storage sometimes delivers timeSlots and
// alternativeSlot as JSON-encoded strings instead of structured values, and
// indexes that no longer fit; this boundary resolves all of it to a valid
// record instead of failing. It is total: any input yields either a
// conforming request or nil (for a non-object payload), never a panic.
//
// No downstream consumer re-validates these fields.
func Normalize(raw interface{}) *InterviewRequest {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	req := &InterviewRequest{}

	if s, ok := obj["status"].(string); ok {
		req.Status = Status(s)
	}

	req.TimeSlots = normalizeTimeSlots(obj["timeSlots"])
	req.AlternativeSlot = normalizeAlternative(obj["alternativeSlot"])
	req.SelectedSlot = normalizeSelected(obj["selectedSlot"], len(req.TimeSlots))

	if s, ok := obj["locationType"].(string); ok {
		req.LocationType = LocationType(s)
	}
	if s, ok := obj["location"].(string); ok {
		req.Location = s
	}
	if d, ok := asFiniteNumber(obj["duration"]); ok {
		req.Duration = int(d)
	}
	if s, ok := obj["message"].(string); ok {
		req.Message = s
	}

	return req
}

// normalizeTimeSlots resolves the proposed-slot list: a JSON-encoded string
// is parsed, anything that is not a sequence becomes the empty list, and
// elements missing both date and time are dropped
func normalizeTimeSlots(raw interface{}) []TimeSlot {
	raw = parseIfString(raw)

	seq, ok := raw.([]interface{})
	if !ok {
		return []TimeSlot{}
	}

	slots := make([]TimeSlot, 0, len(seq))
	for _, el := range seq {
		m, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		slot := slotFromMap(m)
		if slot.Date == "" && slot.Time == "" {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// normalizeAlternative resolves the teacher-proposed slot: a JSON-encoded
// string is parsed (an unparseable one is removed, never kept stale) and a
// slot missing either date or time is removed entirely
func normalizeAlternative(raw interface{}) *TimeSlot {
	raw = parseIfString(raw)

	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	slot := slotFromMap(m)
	if slot.Date == "" || slot.Time == "" {
		return nil
	}
	return &slot
}

// normalizeSelected drops the accepted-slot index unless it is an integral
// finite number within the filtered slot list. An index made invalid by slot
// filtering is silently dropped, not substituted.
func normalizeSelected(raw interface{}, slotCount int) *int {
	n, ok := asFiniteNumber(raw)
	if !ok {
		return nil
	}
	if n != math.Trunc(n) {
		return nil
	}
	idx := int(n)
	if idx < 0 || idx >= slotCount {
		return nil
	}
	return &idx
}

// parseIfString JSON-parses string values; a parse failure yields nil so the
// caller's shape check discards the field
func parseIfString(raw interface{}) interface{} {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil
	}
	return parsed
}

func slotFromMap(m map[string]interface{}) TimeSlot {
	slot := TimeSlot{}
	if s, ok := m["date"].(string); ok {
		slot.Date = s
	}
	if s, ok := m["time"].(string); ok {
		slot.Time = s
	}
	if s, ok := m["timezone"].(string); ok {
		slot.Timezone = s
	}
	return slot
}

func asFiniteNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
