package models

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionResponse describes the state of one search session
type SessionResponse struct {
	SessionID     string        `json:"session_id"`
	Staged        FilterPayload `json:"staged"`
	StagedSearch  string        `json:"staged_search"`
	Applied       FilterPayload `json:"applied"`
	AppliedSearch string        `json:"applied_search"`
	Query         string        `json:"query"`
	ActiveCount   int           `json:"active_count"`
	Dirty         bool          `json:"dirty"`
}

// SearchResponse is returned by commit/sync: the session state plus the
// search results the applied filters produced
type SearchResponse struct {
	Session   SessionResponse `json:"session"`
	Jobs      []Job           `json:"jobs"`
	TotalJobs int             `json:"total_jobs"`
	RequestID string          `json:"request_id"`
}

// SlotView is the presentation form of a single proposed slot
type SlotView struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Timezone  string `json:"timezone,omitempty"`
	Formatted string `json:"formatted"`
}

// InterviewResponse bundles the normalized interview request with its
// presentation fields for the dashboard
type InterviewResponse struct {
	ApplicationID string     `json:"application_id"`
	Status        string     `json:"status"`
	TimeSlots     []SlotView `json:"time_slots"`
	SelectedSlot  *int       `json:"selected_slot,omitempty"`
	Alternative   *SlotView  `json:"alternative_slot,omitempty"`
	ConfirmedSlot *SlotView  `json:"confirmed_slot,omitempty"`
	Countdown     string     `json:"countdown,omitempty"`
	LocationType  string     `json:"location_type,omitempty"`
	Location      string     `json:"location,omitempty"`
	LocationHref  string     `json:"location_href,omitempty"`
	Duration      int        `json:"duration,omitempty"`
	Respondable   bool       `json:"respondable"`
	RequestID     string     `json:"request_id"`
}
