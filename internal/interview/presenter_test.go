package interview_test

import (
	"testing"
	"time"

	"teachmatch-dashboard/internal/interview"
)

// ── Slot formatting ────────────────────────────────────────────────────────

func TestFormatSlot(t *testing.T) {
	tests := []struct {
		name     string
		slot     interview.TimeSlot
		timezone string
		want     string
	}{
		{
			name: "slot timezone used when no override",
			slot: interview.TimeSlot{Date: "2026-09-10", Time: "14:00", Timezone: "Asia/Almaty"},
			want: "Thu, Sep 10, 2:00 PM",
		},
		{
			name:     "caller timezone converts the instant",
			slot:     interview.TimeSlot{Date: "2026-09-10", Time: "14:00", Timezone: "Asia/Almaty"},
			timezone: "UTC",
			want:     "Thu, Sep 10, 9:00 AM",
		},
		{
			name:     "conversion can shift the calendar day",
			slot:     interview.TimeSlot{Date: "2026-09-10", Time: "02:00", Timezone: "Asia/Almaty"},
			timezone: "UTC",
			want:     "Wed, Sep 9, 9:00 PM",
		},
		{
			name:     "conversion eastward",
			slot:     interview.TimeSlot{Date: "2026-09-10", Time: "14:00", Timezone: "UTC"},
			timezone: "Asia/Almaty",
			want:     "Thu, Sep 10, 7:00 PM",
		},
		{
			name:     "unknown caller timezone leaves the slot zone",
			slot:     interview.TimeSlot{Date: "2026-09-10", Time: "14:00", Timezone: "Asia/Almaty"},
			timezone: "Mars/Olympus",
			want:     "Thu, Sep 10, 2:00 PM",
		},
		{
			name: "seconds layout accepted",
			slot: interview.TimeSlot{Date: "2026-09-10", Time: "09:30:00"},
			want: "Thu, Sep 10, 9:30 AM",
		},
		{
			name: "unknown timezone falls back to UTC",
			slot: interview.TimeSlot{Date: "2026-09-10", Time: "14:00", Timezone: "Mars/Olympus"},
			want: "Thu, Sep 10, 2:00 PM",
		},
		{
			name: "unparseable time falls back to raw text",
			slot: interview.TimeSlot{Date: "next week", Time: "afternoon"},
			want: "next week afternoon",
		},
		{
			name: "missing time falls back to date alone",
			slot: interview.TimeSlot{Date: "2026-09-10"},
			want: "2026-09-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interview.FormatSlot(tt.slot, tt.timezone); got != tt.want {
				t.Errorf("FormatSlot = %q, want %q", got, tt.want)
			}
		})
	}
}

// ── Confirmed slot precedence ──────────────────────────────────────────────

func TestConfirmedSlot(t *testing.T) {
	proposed := []interview.TimeSlot{
		{Date: "2026-09-10", Time: "14:00"},
		{Date: "2026-09-11", Time: "09:30"},
	}
	alternative := &interview.TimeSlot{Date: "2026-09-15", Time: "10:00"}

	tests := []struct {
		name string
		req  *interview.InterviewRequest
		want *interview.TimeSlot
	}{
		{"nil request", nil, nil},
		{
			name: "accepted index wins over alternative",
			req: &interview.InterviewRequest{
				Status:          interview.StatusAccepted,
				TimeSlots:       proposed,
				SelectedSlot:    intPtr(1),
				AlternativeSlot: alternative,
			},
			want: &proposed[1],
		},
		{
			name: "alternative when nothing accepted",
			req: &interview.InterviewRequest{
				Status:          interview.StatusAlternativeSuggested,
				TimeSlots:       proposed,
				AlternativeSlot: alternative,
			},
			want: alternative,
		},
		{
			name: "selected index ignored while still pending",
			req: &interview.InterviewRequest{
				Status:       interview.StatusPending,
				TimeSlots:    proposed,
				SelectedSlot: intPtr(0),
			},
			want: nil,
		},
		{
			name: "out-of-range index yields nothing",
			req: &interview.InterviewRequest{
				Status:       interview.StatusAccepted,
				TimeSlots:    proposed,
				SelectedSlot: intPtr(7),
			},
			want: nil,
		},
		{
			name: "incomplete alternative yields nothing",
			req: &interview.InterviewRequest{
				Status:          interview.StatusAlternativeSuggested,
				AlternativeSlot: &interview.TimeSlot{Date: "2026-09-15"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interview.ConfirmedSlot(tt.req)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ConfirmedSlot = %+v, want nil", got)
			case tt.want != nil && got == nil:
				t.Errorf("ConfirmedSlot = nil, want %+v", tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("ConfirmedSlot = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfirmedSlot_ReturnsCopy(t *testing.T) {
	req := &interview.InterviewRequest{
		Status:       interview.StatusAccepted,
		TimeSlots:    []interview.TimeSlot{{Date: "2026-09-10", Time: "14:00"}},
		SelectedSlot: intPtr(0),
	}
	got := interview.ConfirmedSlot(req)
	got.Date = "mutated"
	if req.TimeSlots[0].Date != "2026-09-10" {
		t.Error("ConfirmedSlot must not alias the request's slot list")
	}
}

// ── Countdown labels ───────────────────────────────────────────────────────

func TestCountdownLabelAt(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	slotAt := func(t time.Time) *interview.TimeSlot {
		return &interview.TimeSlot{
			Date:     t.Format("2006-01-02"),
			Time:     t.Format("15:04"),
			Timezone: "UTC",
		}
	}

	tests := []struct {
		name string
		slot *interview.TimeSlot
		want string
	}{
		{"nil slot", nil, ""},
		{"unparseable slot", &interview.TimeSlot{Date: "soon", Time: "ish"}, ""},
		{"same moment", slotAt(now), "Today"},
		{"earlier today", slotAt(now.Add(-2 * time.Hour)), "Today"},
		{"in the past", slotAt(now.Add(-72 * time.Hour)), "Today"},
		{"exactly 24h out", slotAt(now.Add(24 * time.Hour)), "In 1 day"},
		{"36h rounds up to 2 days", slotAt(now.Add(36 * time.Hour)), "In 2 days"},
		{"one week out", slotAt(now.Add(7 * 24 * time.Hour)), "In 7 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interview.CountdownLabelAt(tt.slot, now); got != tt.want {
				t.Errorf("CountdownLabelAt = %q, want %q", got, tt.want)
			}
		})
	}
}

// ── Location links ─────────────────────────────────────────────────────────

func TestLocationHref(t *testing.T) {
	tests := []struct {
		name     string
		locType  interview.LocationType
		location string
		want     string
		wantOK   bool
	}{
		{"phone strips whitespace", interview.LocationPhone, "+7 701 555 12 34", "tel:+77015551234", true},
		{"phone empty", interview.LocationPhone, "   ", "", false},
		{"video keeps scheme", interview.LocationVideo, "https://meet.example.com/abc", "https://meet.example.com/abc", true},
		{"video zoom scheme kept", interview.LocationVideo, "zoommtg://zoom.us/join?confno=1", "zoommtg://zoom.us/join?confno=1", true},
		{"video bare domain gets https", interview.LocationVideo, "meet.example.com/abc", "https://meet.example.com/abc", true},
		{"video free text no link", interview.LocationVideo, "we will send a link", "", false},
		{"video empty", interview.LocationVideo, "", "", false},
		{"onsite never links", interview.LocationOnsite, "12 Abay Ave, Almaty", "", false},
		{"unknown type never links", interview.LocationType("carrier_pigeon"), "coop 3", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &interview.InterviewRequest{LocationType: tt.locType, Location: tt.location}
			got, ok := interview.LocationHref(req)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("LocationHref(%q, %q) = (%q, %v), want (%q, %v)",
					tt.locType, tt.location, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLocationHref_NilRequest(t *testing.T) {
	if got, ok := interview.LocationHref(nil); got != "" || ok {
		t.Errorf("LocationHref(nil) = (%q, %v), want empty", got, ok)
	}
}
