package domain

import "time"

// JobStatus represents the lifecycle status of a job posting.
// Only Active jobs accept submissions.
type JobStatus string

const (
	JobStatusActive JobStatus = "Active"
	JobStatusClosed JobStatus = "Closed"
	JobStatusDraft  JobStatus = "Draft"
)

// Job is the read model of a posting owned by the job-management side.
// The application pipeline only filters on Status and bumps Applicants;
// everything else is carried for display.
type Job struct {
	ID           string    `gorm:"type:text;primaryKey" json:"id"`
	JobID        string    `gorm:"type:text;not null;uniqueIndex:idx_jobs_job_id" json:"jobId"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Company      string    `gorm:"type:text" json:"company"`
	CompanyEmail string    `gorm:"type:text;index:idx_jobs_company_email" json:"companyEmail"`
	Location     string    `gorm:"type:text" json:"location"`
	Description  string    `gorm:"type:text" json:"description"`
	Status       JobStatus `gorm:"type:text;index:idx_jobs_status;default:Active" json:"status"`
	Applicants   int64     `gorm:"default:0" json:"applicants"`
	PostedDate   time.Time `json:"postedDate"`
	UpdatedDate  time.Time `json:"updatedDate"`
}

// TableName returns the database table name for Job.
func (Job) TableName() string {
	return "jobs"
}
