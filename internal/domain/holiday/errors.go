package holiday

import "errors"

// ErrFetchFailed indicates the holiday lookup could not be reached or
// returned an unusable response. Callers keep serving the last-known
// mapping when this occurs.
var ErrFetchFailed = errors.New("holiday lookup failed")
