package models

// Job represents a single job posting as returned by the marketplace search API.
// Fields are consumed read-only for display on the teacher dashboard.
type Job struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	SchoolName     string   `json:"school_name"`
	Country        string   `json:"country"`
	City           string   `json:"city"`
	JobType        string   `json:"job_type"`
	ContractLength string   `json:"contract_length,omitempty"`
	SalaryMin      *int     `json:"salary_min,omitempty"`
	SalaryMax      *int     `json:"salary_max,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	Deadline       string   `json:"deadline,omitempty"`
	PostedAt       string   `json:"posted_at,omitempty"`
}

// Pagination carries the result-count metadata of a search response
type Pagination struct {
	TotalJobs int `json:"totalJobs"`
	Page      int `json:"page,omitempty"`
	PerPage   int `json:"perPage,omitempty"`
}

// SearchResults is the payload of GET /jobs/search
type SearchResults struct {
	Jobs       []Job      `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

// EmptySearchResults returns the degraded empty result set used when the
// search call fails (search is soft and retryable, never a user-facing error)
func EmptySearchResults() *SearchResults {
	return &SearchResults{
		Jobs:       []Job{},
		Pagination: Pagination{TotalJobs: 0},
	}
}

// Application is the school-side application entity that owns at most one
// interview request. Consumed read-only; only display summary fields are kept.
type Application struct {
	ID         string `json:"id"`
	JobID      string `json:"job_id"`
	JobTitle   string `json:"job_title"`
	SchoolName string `json:"school_name"`
	Status     string `json:"status"`
	AppliedAt  string `json:"applied_at,omitempty"`
}
