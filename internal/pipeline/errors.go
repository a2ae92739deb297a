package pipeline

import "errors"

var (
	// ErrResumeUnavailable wraps resume failures under the Abort policy.
	ErrResumeUnavailable = errors.New("resume unavailable")
	// ErrProfileUnavailable wraps profile failures under the Abort policy.
	ErrProfileUnavailable = errors.New("profile unavailable")
	// ErrAssessment wraps failures of the assessment call.
	ErrAssessment = errors.New("assessment failed")
)
