package search

import (
	"sort"

	"teachmatch-dashboard/pkg/models"
)

// Bounds of the numeric filter fields
const (
	SalaryFloor     = 0
	SalaryCeil      = 10000
	ExperienceFloor = 0
	ExperienceCeil  = 30
)

// SortLatest is the default sort order. It is never emitted on the wire.
const SortLatest = "latest"

// FilterState is one immutable snapshot of the multi-criteria job search.
// Snapshots are replaced wholesale, never mutated in place; the With* methods
// return adjusted copies. Multi-select fields have set semantics: they are
// kept deduplicated and sorted so that Equal is a plain comparison.
type FilterState struct {
	Countries        []string `json:"countries,omitempty"`
	City             string   `json:"city,omitempty"`
	JobTypes         []string `json:"job_types,omitempty"`
	ContractLengths  []string `json:"contract_lengths,omitempty"`
	Qualifications   []string `json:"qualifications,omitempty"`
	TeachingContext  []string `json:"teaching_context,omitempty"`
	SchoolTypes      []string `json:"school_types,omitempty"`
	StudentAgeGroups []string `json:"student_age_groups,omitempty"`
	OnlineExperience bool     `json:"online_experience,omitempty"`
	SalaryMin        int      `json:"salary_min"`
	SalaryMax        int      `json:"salary_max"`
	ExperienceMin    int      `json:"experience_min"`
	VisaRequirement  string   `json:"visa_requirement,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	DeadlineFilter   string   `json:"deadline_filter,omitempty"`
	Sort             string   `json:"sort,omitempty"`
}

// DefaultFilters returns the all-defaults snapshot
func DefaultFilters() FilterState {
	return FilterState{
		SalaryMin: SalaryFloor,
		SalaryMax: SalaryCeil,
		Sort:      SortLatest,
	}
}

// normalizeTokens deduplicates and sorts a token list, dropping empties
func normalizeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// Normalize returns a copy with set semantics applied to every list field
// and numeric fields clamped into range
func (f FilterState) Normalize() FilterState {
	f.Countries = normalizeTokens(f.Countries)
	f.JobTypes = normalizeTokens(f.JobTypes)
	f.ContractLengths = normalizeTokens(f.ContractLengths)
	f.Qualifications = normalizeTokens(f.Qualifications)
	f.TeachingContext = normalizeTokens(f.TeachingContext)
	f.SchoolTypes = normalizeTokens(f.SchoolTypes)
	f.StudentAgeGroups = normalizeTokens(f.StudentAgeGroups)
	f.SalaryMin = clamp(f.SalaryMin, SalaryFloor, SalaryCeil)
	f.SalaryMax = clamp(f.SalaryMax, SalaryFloor, SalaryCeil)
	if f.SalaryMin > f.SalaryMax {
		f.SalaryMax = f.SalaryMin
	}
	f.ExperienceMin = clamp(f.ExperienceMin, ExperienceFloor, ExperienceCeil)
	if f.Sort == "" {
		f.Sort = SortLatest
	}
	return f
}

// Clone returns a deep copy of the snapshot
func (f FilterState) Clone() FilterState {
	f.Countries = append([]string(nil), f.Countries...)
	f.JobTypes = append([]string(nil), f.JobTypes...)
	f.ContractLengths = append([]string(nil), f.ContractLengths...)
	f.Qualifications = append([]string(nil), f.Qualifications...)
	f.TeachingContext = append([]string(nil), f.TeachingContext...)
	f.SchoolTypes = append([]string(nil), f.SchoolTypes...)
	f.StudentAgeGroups = append([]string(nil), f.StudentAgeGroups...)
	return f
}

// WithSalaryMin returns a copy with the lower salary bound changed. The bound
// is clamped into range and the upper bound is pushed up if needed so that
// min ≤ max always holds after the edit.
func (f FilterState) WithSalaryMin(v int) FilterState {
	out := f.Clone()
	out.SalaryMin = clamp(v, SalaryFloor, SalaryCeil)
	if out.SalaryMax < out.SalaryMin {
		out.SalaryMax = out.SalaryMin
	}
	return out
}

// WithSalaryMax returns a copy with the upper salary bound changed; the lower
// bound is pulled down if needed so the range never inverts
func (f FilterState) WithSalaryMax(v int) FilterState {
	out := f.Clone()
	out.SalaryMax = clamp(v, SalaryFloor, SalaryCeil)
	if out.SalaryMin > out.SalaryMax {
		out.SalaryMin = out.SalaryMax
	}
	return out
}

// WithExperienceMin returns a copy with the minimum-experience bound changed
func (f FilterState) WithExperienceMin(v int) FilterState {
	out := f.Clone()
	out.ExperienceMin = clamp(v, ExperienceFloor, ExperienceCeil)
	return out
}

// Equal reports semantic equality of two snapshots
func (f FilterState) Equal(o FilterState) bool {
	return equalTokens(f.Countries, o.Countries) &&
		f.City == o.City &&
		equalTokens(f.JobTypes, o.JobTypes) &&
		equalTokens(f.ContractLengths, o.ContractLengths) &&
		equalTokens(f.Qualifications, o.Qualifications) &&
		equalTokens(f.TeachingContext, o.TeachingContext) &&
		equalTokens(f.SchoolTypes, o.SchoolTypes) &&
		equalTokens(f.StudentAgeGroups, o.StudentAgeGroups) &&
		f.OnlineExperience == o.OnlineExperience &&
		f.SalaryMin == o.SalaryMin &&
		f.SalaryMax == o.SalaryMax &&
		f.ExperienceMin == o.ExperienceMin &&
		f.VisaRequirement == o.VisaRequirement &&
		f.StartDate == o.StartDate &&
		f.DeadlineFilter == o.DeadlineFilter &&
		sortOrDefault(f.Sort) == sortOrDefault(o.Sort)
}

// ActiveCount counts the active search criteria: one per member of each list
// field, one per scalar or boolean field that differs from its default, and
// one for a non-empty free-text query. Drives the "N active filters" badge.
func ActiveCount(f FilterState, searchText string) int {
	f = f.Normalize()
	count := len(f.Countries) + len(f.JobTypes) + len(f.ContractLengths) +
		len(f.Qualifications) + len(f.TeachingContext) + len(f.SchoolTypes) +
		len(f.StudentAgeGroups)
	if f.City != "" {
		count++
	}
	if f.OnlineExperience {
		count++
	}
	if f.SalaryMin != SalaryFloor {
		count++
	}
	if f.SalaryMax != SalaryCeil {
		count++
	}
	if f.ExperienceMin != ExperienceFloor {
		count++
	}
	if f.VisaRequirement != "" {
		count++
	}
	if f.StartDate != "" {
		count++
	}
	if f.DeadlineFilter != "" {
		count++
	}
	if sortOrDefault(f.Sort) != SortLatest {
		count++
	}
	if searchText != "" {
		count++
	}
	return count
}

// IsActive reports whether any criterion differs from the defaults
func IsActive(f FilterState, searchText string) bool {
	return ActiveCount(f, searchText) > 0
}

// FromPayload converts the wire form into a normalized snapshot. Absent
// numeric bounds resolve to their defaults.
func FromPayload(p models.FilterPayload) FilterState {
	f := DefaultFilters()
	f.Countries = p.Countries
	f.City = p.City
	f.JobTypes = p.JobTypes
	f.ContractLengths = p.ContractLengths
	f.Qualifications = p.Qualifications
	f.TeachingContext = p.TeachingContext
	f.SchoolTypes = p.SchoolTypes
	f.StudentAgeGroups = p.StudentAgeGroups
	f.OnlineExperience = p.OnlineExperience
	if p.SalaryMin != nil {
		f.SalaryMin = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		f.SalaryMax = *p.SalaryMax
	}
	if p.ExperienceMin != nil {
		f.ExperienceMin = *p.ExperienceMin
	}
	f.VisaRequirement = p.VisaRequirement
	f.StartDate = p.StartDate
	f.DeadlineFilter = p.DeadlineFilter
	if p.Sort != "" {
		f.Sort = p.Sort
	}
	return f.Normalize()
}

// ToPayload converts a snapshot into its wire form
func ToPayload(f FilterState) models.FilterPayload {
	f = f.Normalize()
	p := models.FilterPayload{
		Countries:        f.Countries,
		City:             f.City,
		JobTypes:         f.JobTypes,
		ContractLengths:  f.ContractLengths,
		Qualifications:   f.Qualifications,
		TeachingContext:  f.TeachingContext,
		SchoolTypes:      f.SchoolTypes,
		StudentAgeGroups: f.StudentAgeGroups,
		OnlineExperience: f.OnlineExperience,
		VisaRequirement:  f.VisaRequirement,
		StartDate:        f.StartDate,
		DeadlineFilter:   f.DeadlineFilter,
		Sort:             f.Sort,
	}
	salaryMin, salaryMax, experienceMin := f.SalaryMin, f.SalaryMax, f.ExperienceMin
	p.SalaryMin = &salaryMin
	p.SalaryMax = &salaryMax
	p.ExperienceMin = &experienceMin
	return p
}

func sortOrDefault(s string) string {
	if s == "" {
		return SortLatest
	}
	return s
}

func equalTokens(a, b []string) bool {
	a = normalizeTokens(a)
	b = normalizeTokens(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
