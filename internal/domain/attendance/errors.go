package attendance

import "errors"

// Attendance domain errors
var (
	// ErrSessionExpired means the scrape agent was redirected to a login
	// page. Surfaced distinctly so the caller can prompt re-authentication
	// instead of retrying silently.
	ErrSessionExpired = errors.New("source session expired")

	// ErrFetchFailed is a generic network or timeout failure from the
	// scrape agent.
	ErrFetchFailed = errors.New("snapshot fetch failed")

	// ErrNoReportData means no completed day and no working time today:
	// there is no meaningful overtime report and callers must suppress
	// display entirely rather than show zeros.
	ErrNoReportData = errors.New("no reportable work this month")
)
