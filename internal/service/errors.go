package service

import "errors"

// Validation faults are caller-attributable and map to 4xx responses at the
// boundary. Anything else escaping the service layer is an internal fault.
var (
	// ErrJobNotAvailable means the job does not exist or is not accepting
	// applications.
	ErrJobNotAvailable = errors.New("job not found or not active")

	// ErrDuplicateApplication means the applicant already applied for the job.
	ErrDuplicateApplication = errors.New("you have already applied for this job")

	// ErrApplicationNotFound means the application record ID did not resolve.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrResumeNotFound means the application has no stored resume.
	ErrResumeNotFound = errors.New("resume not found")

	// ErrInvalidResumeType means the declared content type is not an
	// accepted resume format.
	ErrInvalidResumeType = errors.New("resume must be a PDF or Word document")

	// ErrResumeTooLarge means the resume exceeds the configured size limit.
	ErrResumeTooLarge = errors.New("resume exceeds the maximum allowed size")

	// ErrResumeNotAnalyzable means text extraction is not supported for the
	// stored resume's format.
	ErrResumeNotAnalyzable = errors.New("only PDF resumes can be analyzed")
)
