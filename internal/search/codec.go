package search

import (
	"net/url"
	"strconv"
)

// Query keys of the marketplace search API. List-valued fields repeat their
// key once per set member; scalar keys appear only when non-default.
const (
	keyCountry          = "country"
	keyCity             = "city"
	keyJobType          = "job_type"
	keyOnlineExperience = "online_experience"
	keySalaryMin        = "salary_min"
	keySalaryMax        = "salary_max"
	keyContractLength   = "contract_length"
	keyExperienceMin    = "experience_min"
	keyQualification    = "qualification"
	keyTeachingContext  = "teaching_context"
	keyVisaRequirement  = "visa_requirement"
	keySchoolType       = "school_type"
	keyStudentAge       = "student_age"
	keyStartDate        = "start_date"
	keyDeadline         = "deadline"
	keySort             = "sort"
	keySearch           = "search"
)

// Encode maps a filter snapshot and free-text query to the canonical query
// parameters. The all-defaults state with an empty query produces an empty
// parameter set so that "no filters" keeps the shared URL bare.
func Encode(f FilterState, searchText string) url.Values {
	f = f.Normalize()
	params := url.Values{}
	if !IsActive(f, searchText) {
		return params
	}

	for _, c := range f.Countries {
		params.Add(keyCountry, c)
	}
	if f.City != "" {
		params.Set(keyCity, f.City)
	}
	for _, t := range f.JobTypes {
		params.Add(keyJobType, t)
	}
	if f.OnlineExperience {
		params.Set(keyOnlineExperience, "true")
	}
	if f.SalaryMin != SalaryFloor {
		params.Set(keySalaryMin, strconv.Itoa(f.SalaryMin))
	}
	if f.SalaryMax != SalaryCeil {
		params.Set(keySalaryMax, strconv.Itoa(f.SalaryMax))
	}
	for _, t := range f.ContractLengths {
		params.Add(keyContractLength, t)
	}
	if f.ExperienceMin != ExperienceFloor {
		params.Set(keyExperienceMin, strconv.Itoa(f.ExperienceMin))
	}
	for _, t := range f.Qualifications {
		params.Add(keyQualification, t)
	}
	for _, t := range f.TeachingContext {
		params.Add(keyTeachingContext, t)
	}
	if f.VisaRequirement != "" {
		params.Set(keyVisaRequirement, f.VisaRequirement)
	}
	for _, t := range f.SchoolTypes {
		params.Add(keySchoolType, t)
	}
	for _, t := range f.StudentAgeGroups {
		params.Add(keyStudentAge, t)
	}
	if f.StartDate != "" {
		params.Set(keyStartDate, f.StartDate)
	}
	if f.DeadlineFilter != "" {
		params.Set(keyDeadline, f.DeadlineFilter)
	}
	if f.Sort != SortLatest {
		params.Set(keySort, f.Sort)
	}
	if searchText != "" {
		params.Set(keySearch, searchText)
	}

	return params
}

// Decode maps query parameters back to a filter snapshot and free-text query.
// Decoding is total: missing keys resolve to defaults, unknown keys are
// ignored and malformed numeric values fall back to the field default.
func Decode(params url.Values) (FilterState, string) {
	f := DefaultFilters()

	f.Countries = params[keyCountry]
	f.City = params.Get(keyCity)
	f.JobTypes = params[keyJobType]
	f.ContractLengths = params[keyContractLength]
	f.Qualifications = params[keyQualification]
	f.TeachingContext = params[keyTeachingContext]
	f.SchoolTypes = params[keySchoolType]
	f.StudentAgeGroups = params[keyStudentAge]
	f.OnlineExperience = params.Get(keyOnlineExperience) == "true"
	f.SalaryMin = decodeInt(params, keySalaryMin, SalaryFloor)
	f.SalaryMax = decodeInt(params, keySalaryMax, SalaryCeil)
	f.ExperienceMin = decodeInt(params, keyExperienceMin, ExperienceFloor)
	f.VisaRequirement = params.Get(keyVisaRequirement)
	f.StartDate = params.Get(keyStartDate)
	f.DeadlineFilter = params.Get(keyDeadline)
	if v := params.Get(keySort); v != "" {
		f.Sort = v
	}

	return f.Normalize(), params.Get(keySearch)
}

// DecodeQuery is Decode over a raw query string. Parse errors do not fail the
// call: whatever url.ParseQuery salvaged is decoded and the rest defaults.
func DecodeQuery(rawQuery string) (FilterState, string) {
	params, _ := url.ParseQuery(rawQuery)
	return Decode(params)
}

func decodeInt(params url.Values, key string, def int) int {
	v := params.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
