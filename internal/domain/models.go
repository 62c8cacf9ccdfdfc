package domain

import (
	"time"
)

// JSON field names of JobRecord that other layers refer to by name
const (
	FieldJobID    = "job_id"
	FieldPostedAt = "job_posted_at_timestamp"
)

// Highlights are the structured text groups attached to a posting
type Highlights struct {
	Qualifications   []string `json:"Qualifications,omitempty"`
	Responsibilities []string `json:"Responsibilities,omitempty"`
	Benefits         []string `json:"Benefits,omitempty"`
	NiceToHaves      []string `json:"NiceToHaves,omitempty"`
}

// JobRecord is the normalized job posting. It is immutable once stored and
// its ID is the only join key other entities use.
type JobRecord struct {
	ID              string      `json:"job_id"`
	Title           string      `json:"job_title"`
	EmployerName    string      `json:"employer_name"`
	EmployerLogoURL *string     `json:"employer_logo,omitempty"`
	City            *string     `json:"job_city,omitempty"`
	Region          *string     `json:"job_state,omitempty"`
	Country         *string     `json:"job_country,omitempty"`
	IsRemote        bool        `json:"job_is_remote"`
	EmploymentType  string      `json:"job_employment_type,omitempty"`
	Category        *string     `json:"job_category,omitempty"`
	Description     string      `json:"job_description,omitempty"`
	RequiredSkills  []string    `json:"job_required_skills,omitempty"`
	SalaryMin       *float64    `json:"job_salary_min,omitempty"`
	SalaryMax       *float64    `json:"job_salary_max,omitempty"`
	SalaryCurrency  *string     `json:"job_salary_currency,omitempty"`
	SalaryPeriod    *string     `json:"job_salary_period,omitempty"`
	PostedAt        *int64      `json:"job_posted_at_timestamp,omitempty"`
	ApplyLink       *string     `json:"job_apply_link,omitempty"`
	Highlights      *Highlights `json:"job_highlights,omitempty"`
}

// CountryOrEmpty returns the country or ""
func (j JobRecord) CountryOrEmpty() string {
	return deref(j.Country)
}

// CategoryOrEmpty returns the category or ""
func (j JobRecord) CategoryOrEmpty() string {
	return deref(j.Category)
}

// PostedAtOrZero returns the posting timestamp, 0 when unknown
func (j JobRecord) PostedAtOrZero() int64 {
	if j.PostedAt == nil {
		return 0
	}
	return *j.PostedAt
}

// SalaryMinOrZero returns the lower salary bound, 0 when unknown
func (j JobRecord) SalaryMinOrZero() float64 {
	if j.SalaryMin == nil {
		return 0
	}
	return *j.SalaryMin
}

// Company aggregates the jobs of one employer
type Company struct {
	Name     string  `json:"name"`
	Logo     *string `json:"logo"`
	JobCount int     `json:"jobCount"`
}

// CuratedJobs backs the landing page sections
type CuratedJobs struct {
	Latest   []JobRecord `json:"latest"`
	Featured []JobRecord `json:"featured"`
}

// Resume describes an uploaded resume; the file itself lives elsewhere
type Resume struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType,omitempty"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Application links a job to an applicant. Created once, never mutated.
type Application struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	JobID            string    `json:"jobId"`
	JobTitle         string    `json:"jobTitle"`
	CompanyName      string    `json:"companyName"`
	ApplicantName    string    `json:"applicantName"`
	ApplicantEmail   string    `json:"applicantEmail"`
	ApplicantPhone   string    `json:"applicantPhone"`
	PreviousJobTitle *string   `json:"previousJobTitle"`
	LinkedinURL      *string   `json:"linkedinUrl"`
	PortfolioURL     *string   `json:"portfolioUrl"`
	AdditionalInfo   *string   `json:"additionalInfo"`
	Resume           *Resume   `json:"resume,omitempty"`
	AppliedAt        time.Time `json:"appliedAt"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
