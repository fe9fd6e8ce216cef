package repository

import (
	"context"

	"github.com/nithin2k5/Arbeit/internal/domain"
	"gorm.io/gorm"
)

// JobRepository is the read-only gateway onto job postings the submission
// pipeline needs: active-status lookups and the applicant counter. Posting
// CRUD belongs to the job-management side and is not exposed here.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a job posting. Exists for seeding and tests; the pipeline
// itself never creates jobs.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindActiveByJobID retrieves a job by its external identifier, restricted
// to Active status. Inactive and unknown jobs are indistinguishable to the
// caller, both return gorm.ErrRecordNotFound.
func (r *JobRepository) FindActiveByJobID(ctx context.Context, jobID string) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).
		First(&job, "job_id = ? AND status = ?", jobID, domain.JobStatusActive).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// IncrementApplicantCount bumps the denormalized applicant counter by one
// in a single atomic update at the storage layer.
func (r *JobRepository) IncrementApplicantCount(ctx context.Context, jobID string) error {
	res := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("job_id = ?", jobID).
		UpdateColumn("applicants", gorm.Expr("applicants + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
