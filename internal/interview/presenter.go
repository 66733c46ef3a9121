package interview

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var slotLayouts = []string{"2006-01-02 15:04", "2006-01-02 15:04:05"}

// parseSlotTime combines a slot's date and time in the given IANA timezone;
// an empty or unknown timezone resolves to UTC
func parseSlotTime(slot TimeSlot, timezone string) (time.Time, bool) {
	if slot.Date == "" || slot.Time == "" {
		return time.Time{}, false
	}

	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}

	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, slot.Date+" "+slot.Time, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatSlot renders a slot as a zoned display string (weekday, short month,
// day, 12-hour clock). The slot's wall-clock time is local to its own
// timezone; a caller-supplied timezone converts the instant for display, so a
// 14:00 Asia/Almaty slot viewed in UTC reads 9:00 AM. Anything that does not
// parse falls back to the raw "date time" concatenation.
func FormatSlot(slot TimeSlot, timezone string) string {
	t, ok := parseSlotTime(slot, slot.Timezone)
	if !ok {
		return strings.TrimSpace(slot.Date + " " + slot.Time)
	}
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			t = t.In(loc)
		}
	}
	return t.Format("Mon, Jan 2, 3:04 PM")
}

// ConfirmedSlot resolves the slot the negotiation settled on. An explicit
// accepted index always wins over a teacher-proposed alternative.
func ConfirmedSlot(req *InterviewRequest) *TimeSlot {
	if req == nil {
		return nil
	}
	if req.Status == StatusAccepted && req.SelectedSlot != nil {
		idx := *req.SelectedSlot
		if idx >= 0 && idx < len(req.TimeSlots) {
			slot := req.TimeSlots[idx]
			return &slot
		}
	}
	if req.AlternativeSlot != nil && req.AlternativeSlot.Date != "" && req.AlternativeSlot.Time != "" {
		slot := *req.AlternativeSlot
		return &slot
	}
	return nil
}

// CountdownLabel returns the whole-day countdown to a slot: "Today",
// "In 1 day" or "In N days". The empty string means no label (absent slot or
// unparseable date/time).
func CountdownLabel(slot *TimeSlot) string {
	return CountdownLabelAt(slot, time.Now())
}

// CountdownLabelAt is CountdownLabel against an explicit current time.
// Days are ceiling-divided by 24h, so anything up to now is "Today" and
// now + 36h is already "In 2 days".
func CountdownLabelAt(slot *TimeSlot, now time.Time) string {
	if slot == nil {
		return ""
	}
	t, ok := parseSlotTime(*slot, slot.Timezone)
	if !ok {
		return ""
	}

	days := int(math.Ceil(t.Sub(now).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "In 1 day"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}

var schemePattern = func(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for _, r := range s[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// LocationHref derives a link target from the interview location. Phone
// numbers become tel: URIs with whitespace stripped, video locations keep
// their scheme or get https:// prefixed when they look like a bare domain,
// and onsite addresses produce no link (rendered as plain text).
func LocationHref(req *InterviewRequest) (string, bool) {
	if req == nil {
		return "", false
	}

	switch req.LocationType {
	case LocationPhone:
		number := strings.Join(strings.Fields(req.Location), "")
		if number == "" {
			return "", false
		}
		return "tel:" + number, true

	case LocationVideo:
		loc := strings.TrimSpace(req.Location)
		if loc == "" {
			return "", false
		}
		if schemePattern(loc) {
			return loc, true
		}
		if strings.Contains(loc, ".") && !strings.ContainsAny(loc, " \t") {
			return "https://" + loc, true
		}
		return "", false

	default:
		return "", false
	}
}
