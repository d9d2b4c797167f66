package scraper

import "errors"

// Sentinel failures of a live attempt. The orchestrator matches on these to
// decide how to label the fallback.
var (
	// ErrChallengeDetected means the court site presented a CAPTCHA or
	// similar verification step and the attempt was abandoned.
	ErrChallengeDetected = errors.New("verification challenge detected")

	// ErrAutomationSetup means a browser session could not be acquired.
	ErrAutomationSetup = errors.New("browser automation unavailable")
)

// ValidationError rejects a malformed CaseQuery. Its message is safe to
// return to API clients verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
