package repository

import (
	"context"

	"github.com/nithin2k5/Arbeit/internal/domain"
	"gorm.io/gorm"
)

// ApplicationRepository handles application record persistence. Its query
// shapes are the contract the submission and review services depend on.
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ApplicationRepository: repository instance bound to db.
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application record. The unique index on applicant_id
// makes the insert an atomic identifier reservation: a colliding allocation
// fails with gorm.ErrDuplicatedKey instead of silently double-booking.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// Save persists all fields of an existing application record.
func (r *ApplicationRepository) Save(ctx context.Context, app *domain.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// SetResume fills the two resume columns of a stored record in one update.
// Used exactly once per application, after the blob write succeeds.
func (r *ApplicationRepository) SetResume(ctx context.Context, id, blobRef, fileName string) error {
	return r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resume_blob_ref":  blobRef,
			"resume_file_name": fileName,
		}).Error
}

// GetByID retrieves an application by its record ID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByApplicantAndJob retrieves the single application for an
// (applicantID, jobID) pair.
func (r *ApplicationRepository) GetByApplicantAndJob(ctx context.Context, applicantID, jobID string) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.WithContext(ctx).
		First(&app, "applicant_id = ? AND job_id = ?", applicantID, jobID).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ExistsByApplicantAndJob checks whether an application exists for the pair.
func (r *ApplicationRepository) ExistsByApplicantAndJob(ctx context.Context, applicantID, jobID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByJob retrieves all applications submitted against a job.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_date DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByApplicant retrieves all applications for an applicant identifier.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByStatus retrieves applications in a given review status.
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListAll retrieves every application, newest submission first.
func (r *ApplicationRepository) ListAll(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.WithContext(ctx).
		Order("applied_date DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// CountByJob counts applications submitted against a job.
func (r *ApplicationRepository) CountByJob(ctx context.Context, jobID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts applications in a given review status.
func (r *ApplicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
