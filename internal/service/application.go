package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nithin2k5/Arbeit/internal/domain"
	"github.com/nithin2k5/Arbeit/internal/logger"
	"github.com/nithin2k5/Arbeit/internal/repository"
	"gorm.io/gorm"
)

const (
	// applicantIDMin and applicantIDMax bound the 3-digit identifier space.
	applicantIDMin = 100
	applicantIDMax = 999

	// maxAllocateAttempts caps identifier allocation. The space holds 900
	// values; hitting the cap means it is effectively exhausted.
	maxAllocateAttempts = 5000

	// storageRetries bounds the retry loops around counter updates and
	// resume blob writes.
	storageRetries    = 3
	storageRetryDelay = 100 * time.Millisecond
)

// ApplicationService owns the submission pipeline and the review state
// machine: it validates against job state, reserves an applicant identity,
// persists the record and optional resume, and governs status transitions.
type ApplicationService struct {
	apps    *repository.ApplicationRepository
	jobs    *repository.JobRepository
	resumes *ResumeService
	logger  *logger.Logger

	// newApplicantID mints candidate identifiers; injectable for tests.
	newApplicantID func() string
}

// NewApplicationService creates a new application service.
// Parameters:
//   - apps: application record repository.
//   - jobs: job lookup gateway.
//   - resumes: resume blob service.
//   - log: base logger.
// Returns:
//   - *ApplicationService: initialized service.
func NewApplicationService(
	apps *repository.ApplicationRepository,
	jobs *repository.JobRepository,
	resumes *ResumeService,
	log *logger.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:    apps,
		jobs:    jobs,
		resumes: resumes,
		logger:  log,
		newApplicantID: func() string {
			return strconv.Itoa(applicantIDMin + rand.Intn(applicantIDMax-applicantIDMin+1))
		},
	}
}

// log returns a logger from context if one was attached, otherwise the
// service's own injected logger.
func (s *ApplicationService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContextOrNil(ctx); l != nil {
		return l
	}
	return s.logger
}

// SubmitRequest carries the applicant-supplied fields of a submission.
type SubmitRequest struct {
	JobID string

	FullName        string
	Email           string
	Phone           string
	CoverLetter     string
	Experience      string
	CurrentCompany  string
	CurrentJobTitle string
	Education       string
	LinkedinURL     string
	PortfolioURL    string

	Resume            []byte
	ResumeFileName    string
	ResumeContentType string
}

// SubmitResult is the outcome of a submission. ResumeStored and ResumeError
// make resume-storage failure a typed partial success instead of a silent
// drop: the application itself succeeded either way.
type SubmitResult struct {
	Application  *domain.Application `json:"application"`
	ResumeStored bool                `json:"resumeStored"`
	ResumeError  string              `json:"resumeError,omitempty"`
}

// Submit runs the full submission pipeline.
//
// The record insert doubles as the applicant-identity reservation: the
// unique index on applicant_id rejects a colliding allocation and the loop
// re-allocates, so no check-then-act window exists between picking an
// identifier and claiming it. The applicant counter is bumped only after the
// record is durable; a terminal increment failure leaves the counter behind
// the true count until reconciled out of band.
//
// Returns ErrJobNotAvailable for caller-correctable failures; any other
// error is an internal fault. The one-application-per-(applicant, job)
// invariant is enforced by the identifier's unique index, never by
// rejecting a submission whose server-minted candidate happens to collide.
func (s *ApplicationService) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	job, err := s.jobs.FindActiveByJobID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotAvailable
		}
		return nil, fmt.Errorf("failed to look up job: %w", err)
	}

	app, err := s.createWithFreshIdentity(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Application: app}

	if len(req.Resume) > 0 {
		if err := s.attachResume(ctx, app, req); err != nil {
			result.ResumeError = err.Error()
			s.log(ctx).WithFields(logger.Fields{
				logger.FieldApplicationID: app.ID,
				logger.FieldApplicantID:   app.ApplicantID,
			}).WithError(err).Warn("submission accepted without resume")
		} else {
			result.ResumeStored = true
		}
	}

	if err := s.incrementApplicantCount(ctx, job.JobID); err != nil {
		// The submission already succeeded; the counter is now behind the
		// true application count until a repair pass runs.
		s.log(ctx).WithFields(logger.Fields{
			logger.FieldJobID: job.JobID,
		}).WithError(err).Error("failed to increment applicant count")
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldApplicationID: app.ID,
		logger.FieldApplicantID:   app.ApplicantID,
		logger.FieldJobID:         app.JobID,
	}).Info("application submitted")

	return result, nil
}

// createWithFreshIdentity constructs the application record and inserts it
// under a newly allocated applicant identifier, retrying on identifier
// collisions.
func (s *ApplicationService) createWithFreshIdentity(ctx context.Context, req *SubmitRequest) (*domain.Application, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := s.newApplicantID()

		// Identifiers are minted fresh per submission, so a candidate
		// already holding an application for this job is a collision, not a
		// returning applicant. Skip it before burning an insert on the
		// unique index.
		exists, err := s.apps.ExistsByApplicantAndJob(ctx, candidate, req.JobID)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing application: %w", err)
		}
		if exists {
			continue
		}

		now := time.Now()
		app := &domain.Application{
			ID:              uuid.New().String(),
			ApplicantID:     candidate,
			JobID:           req.JobID,
			FullName:        req.FullName,
			Email:           req.Email,
			Phone:           req.Phone,
			CoverLetter:     req.CoverLetter,
			Experience:      req.Experience,
			CurrentCompany:  req.CurrentCompany,
			CurrentJobTitle: req.CurrentJobTitle,
			Education:       req.Education,
			LinkedinURL:     req.LinkedinURL,
			PortfolioURL:    req.PortfolioURL,
			Status:          domain.StatusPending,
			AppliedDate:     now,
			UpdatedDate:     now,
		}

		err = s.apps.Create(ctx, app)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the identifier to a concurrent submission; re-allocate.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist application: %w", err)
		}
		return app, nil
	}

	return nil, fmt.Errorf("applicant identifier space exhausted after %d attempts", maxAllocateAttempts)
}

// attachResume validates, stores, and links the resume attachment. Any
// returned error is reported to the caller as a partial success.
func (s *ApplicationService) attachResume(ctx context.Context, app *domain.Application, req *SubmitRequest) error {
	if !s.resumes.IsAllowedContentType(req.ResumeContentType) {
		return ErrInvalidResumeType
	}
	if !s.resumes.WithinSizeLimit(int64(len(req.Resume))) {
		return ErrResumeTooLarge
	}

	var blobRef string
	err := withRetry(ctx, storageRetries, storageRetryDelay, func() error {
		var storeErr error
		blobRef, storeErr = s.resumes.Store(ctx, req.Resume, app.ApplicantID, req.ResumeFileName, req.ResumeContentType)
		return storeErr
	})
	if err != nil {
		return err
	}

	fileName := app.ApplicantID + "_resume_" + req.ResumeFileName
	if err := s.apps.SetResume(ctx, app.ID, blobRef, fileName); err != nil {
		// The record stays resume-less; the orphaned blob is removed so the
		// store never holds unreferenced payloads.
		if delErr := s.resumes.Delete(ctx, blobRef); delErr != nil {
			s.log(ctx).WithField(logger.FieldBlobRef, blobRef).
				WithError(delErr).Error("failed to roll back orphaned resume blob")
		}
		return fmt.Errorf("failed to link resume to application: %w", err)
	}

	app.ResumeBlobRef = blobRef
	app.ResumeFileName = fileName
	return nil
}

func (s *ApplicationService) incrementApplicantCount(ctx context.Context, jobID string) error {
	return withRetry(ctx, storageRetries, storageRetryDelay, func() error {
		return s.jobs.IncrementApplicantCount(ctx, jobID)
	})
}

// withRetry runs fn up to attempts times, sleeping delay between tries.
func withRetry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

// SetStatus transitions an application to a new review status.
//
// updatedDate is bumped on every transition. reviewedDate is set exactly
// once, the first time the status becomes Under Review, and is never
// overwritten afterwards. The status label itself is open: reviewers may
// supply values beyond the named constants.
func (s *ApplicationService) SetStatus(ctx context.Context, recordID string, status domain.ApplicationStatus) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	now := time.Now()
	app.Status = status
	app.UpdatedDate = now

	if status == domain.StatusUnderReview && app.ReviewedDate == nil {
		app.ReviewedDate = &now
	}

	if err := s.apps.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldApplicationID: app.ID,
		logger.FieldStatus:        string(status),
	}).Info("application status updated")

	return app, nil
}

// GetByID retrieves a single application record.
func (s *ApplicationService) GetByID(ctx context.Context, recordID string) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return app, nil
}

// ListAll returns every application, newest submission first.
func (s *ApplicationService) ListAll(ctx context.Context) ([]domain.Application, error) {
	return s.apps.ListAll(ctx)
}

// ListByJob returns the applications submitted against a job.
func (s *ApplicationService) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	return s.apps.ListByJob(ctx, jobID)
}

// ListByApplicant returns the applications for an applicant identifier.
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return s.apps.ListByApplicant(ctx, applicantID)
}

// ListByStatus returns the applications sitting in a given review status.
func (s *ApplicationService) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	return s.apps.ListByStatus(ctx, status)
}

// ResumeDownload carries a retrieved resume payload and its download
// attributes.
type ResumeDownload struct {
	Data        []byte
	FileName    string
	ContentType string
}

// GetResume returns the stored resume for an application.
func (s *ApplicationService) GetResume(ctx context.Context, recordID string) (*ResumeDownload, error) {
	app, err := s.apps.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	if !app.HasResume() {
		return nil, ErrResumeNotFound
	}

	data, meta, err := s.resumes.Read(ctx, app.ResumeBlobRef)
	if err != nil {
		// The reference is best-effort: a missing blob reads as not found
		// rather than an internal fault.
		exists, existsErr := s.resumes.Exists(ctx, app.ResumeBlobRef)
		if existsErr == nil && !exists {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	return &ResumeDownload{
		Data:        data,
		FileName:    app.ResumeFileName,
		ContentType: meta.ContentType,
	}, nil
}
