package models

// FilterPayload is the wire form of a search-filter snapshot. Numeric bounds
// are pointers so an omitted field resolves to its default (salary_max in
// particular defaults to the top of the range, not zero).
type FilterPayload struct {
	Countries        []string `json:"countries,omitempty"`
	City             string   `json:"city,omitempty"`
	JobTypes         []string `json:"job_types,omitempty"`
	ContractLengths  []string `json:"contract_lengths,omitempty"`
	Qualifications   []string `json:"qualifications,omitempty"`
	TeachingContext  []string `json:"teaching_context,omitempty"`
	SchoolTypes      []string `json:"school_types,omitempty"`
	StudentAgeGroups []string `json:"student_age_groups,omitempty"`
	OnlineExperience bool     `json:"online_experience,omitempty"`
	SalaryMin        *int     `json:"salary_min,omitempty"`
	SalaryMax        *int     `json:"salary_max,omitempty"`
	ExperienceMin    *int     `json:"experience_min,omitempty"`
	VisaRequirement  string   `json:"visa_requirement,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	DeadlineFilter   string   `json:"deadline_filter,omitempty"`
	Sort             string   `json:"sort,omitempty"`
}

// StageFiltersRequest replaces the staged filter snapshot of a search session
type StageFiltersRequest struct {
	Filters    FilterPayload `json:"filters"`
	SearchText string        `json:"search_text"`
}

// SyncQueryRequest reconciles a session with a raw address-bar query string
// (browser back/forward navigation)
type SyncQueryRequest struct {
	Query string `json:"query"`
}

// AcceptSlotRequest accepts one of the school's proposed interview slots.
// SlotIndex is a pointer so index 0 survives required-validation.
type AcceptSlotRequest struct {
	SlotIndex *int `json:"slot_index" validate:"required"`
}

// AlternativeSlotPayload is a teacher-proposed interview slot
type AlternativeSlotPayload struct {
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Timezone string `json:"timezone,omitempty"`
}

// ProposeAlternativeRequest proposes a slot outside the school's list
type ProposeAlternativeRequest struct {
	AlternativeSlot *AlternativeSlotPayload `json:"alternative_slot" validate:"required"`
}
