package holiday

import "context"

// Lookup is the external holiday-lookup delegate boundary.
type Lookup interface {
	FetchHolidayMap(ctx context.Context) (map[string]string, error)
}

// Service serves the holiday calendar inside a 24-hour freshness window.
// Calendar never fails the caller: refresh failures fall back to the
// last-known mapping, or the empty calendar if nothing was ever fetched.
type Service interface {
	Calendar(ctx context.Context) Calendar
}
