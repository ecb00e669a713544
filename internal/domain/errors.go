package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrValidation         = errors.New("validation failed")
	ErrFileTooLarge       = errors.New("image exceeds maximum allowed size")

	ErrImageInputRequired = errors.New("title and image file are required")
	ErrTitleTooLong       = errors.New("title must be at most 128 characters")
	ErrProcessingBusy     = errors.New("image processing capacity exhausted, retry later")
	ErrStoreUnavailable   = errors.New("object storage unavailable")
)

// Pipeline stage tags used in StageError messages.
const (
	StageProcessing = "image processing failed"
	StageUpload     = "object storage upload failed"
)

// StageError reports the pipeline stage a server-side failure happened in.
// Its message is "<stage>: <underlying message>".
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the given stage tag.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
