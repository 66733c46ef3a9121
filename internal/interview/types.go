// Package interview implements the scheduling negotiation between a school's
// proposed interview slots and the teacher's response.
//
// Status graph:
//
//	pending ──► accepted
//	    │
//	    └─────► alternative_suggested
//
// accepted and alternative_suggested are terminal from the teacher's side;
// the dashboard offers "view details" afterwards, not another response.
package interview

import "fmt"

// Status values mirror the interview_request status enum of the marketplace
type Status string

const (
	StatusPending              Status = "pending"
	StatusAccepted             Status = "accepted"
	StatusAlternativeSuggested Status = "alternative_suggested"
)

// validTransitions lists every allowed (from → to) pair. The table is the
// single source of truth so a future round (a school countering an
// alternative back into pending) only needs a new entry here.
var validTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusAlternativeSuggested},
	// accepted and alternative_suggested are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusAccepted, StatusAlternativeSuggested:
		return st, nil
	}
	return "", fmt.Errorf("unknown interview status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// CanRespond returns true while the teacher may still answer the request
func CanRespond(s Status) bool {
	return len(validTransitions[s]) > 0
}

// LocationType describes how the interview takes place; Location is
// interpreted accordingly (URL, phone number or address)
type LocationType string

const (
	LocationVideo  LocationType = "video"
	LocationPhone  LocationType = "phone"
	LocationOnsite LocationType = "onsite"
)

// TimeSlot is a single proposed interview date/time/timezone triple.
// Date is a calendar date (2006-01-02), Time a local wall-clock time and
// Timezone an IANA name.
type TimeSlot struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone,omitempty"`
}

// InterviewRequest is one school→teacher scheduling negotiation, keyed by
// the owning application. Instances come out of Normalize and satisfy its
// invariants: SelectedSlot, when present, indexes into TimeSlots, and
// AlternativeSlot, when present, has both date and time.
type InterviewRequest struct {
	ApplicationID   string       `json:"applicationId,omitempty"`
	Status          Status       `json:"status"`
	TimeSlots       []TimeSlot   `json:"timeSlots"`
	SelectedSlot    *int         `json:"selectedSlot,omitempty"`
	AlternativeSlot *TimeSlot    `json:"alternativeSlot,omitempty"`
	LocationType    LocationType `json:"locationType,omitempty"`
	Location        string       `json:"location,omitempty"`
	Duration        int          `json:"duration,omitempty"`
	Message         string       `json:"message,omitempty"`
}

// ResponsePayload is the body of the teacher's answer to the marketplace:
// exactly one of SelectedSlot or AlternativeSlot is set
type ResponsePayload struct {
	SelectedSlot    *int      `json:"selectedSlot,omitempty"`
	AlternativeSlot *TimeSlot `json:"alternativeSlot,omitempty"`
}
