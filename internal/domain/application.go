package domain

import "time"

// ApplicationStatus labels the position of an application in the review
// workflow. The set is open: reviewers may assign labels beyond the named
// constants, matching the behavior of the review endpoints.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "Pending"
	StatusUnderReview ApplicationStatus = "Under Review"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

// Application is a job seeker's submission against a posting.
//
// ApplicantID is the short human-facing identifier and is unique across all
// applications, which also guarantees at most one application per
// (applicant_id, job_id) pair. The composite index exists for pair lookups.
// All submitted fields are immutable after creation; only Status,
// UpdatedDate, and ReviewedDate change afterwards, and the two resume
// columns are filled in once if the attachment is stored.
type Application struct {
	ID          string `gorm:"type:text;primaryKey" json:"id"`
	ApplicantID string `gorm:"type:text;not null;uniqueIndex:idx_applications_applicant;index:idx_applications_pair" json:"applicantId"`
	JobID       string `gorm:"type:text;not null;index:idx_applications_pair;index:idx_applications_job" json:"jobId"`

	FullName        string `gorm:"type:text;not null" json:"fullName"`
	Email           string `gorm:"type:text;not null" json:"email"`
	Phone           string `gorm:"type:text" json:"phone"`
	CoverLetter     string `gorm:"type:text" json:"coverLetter"`
	Experience      string `gorm:"type:text" json:"experience"`
	CurrentCompany  string `gorm:"type:text" json:"currentCompany"`
	CurrentJobTitle string `gorm:"type:text" json:"currentJobTitle"`
	Education       string `gorm:"type:text" json:"education"`
	LinkedinURL     string `gorm:"type:text" json:"linkedinUrl"`
	PortfolioURL    string `gorm:"type:text" json:"portfolioUrl"`

	Status       ApplicationStatus `gorm:"type:text;index:idx_applications_status;default:Pending" json:"status"`
	AppliedDate  time.Time         `json:"appliedDate"`
	UpdatedDate  time.Time         `json:"updatedDate"`
	ReviewedDate *time.Time        `json:"reviewedDate,omitempty"`

	ResumeBlobRef  string `gorm:"type:text" json:"resumeBlobRef,omitempty"`
	ResumeFileName string `gorm:"type:text" json:"resumeFileName,omitempty"`
}

// TableName returns the database table name for Application.
func (Application) TableName() string {
	return "applications"
}

// HasResume reports whether a stored resume is attached to the application.
func (a *Application) HasResume() bool {
	return a.ResumeBlobRef != ""
}
