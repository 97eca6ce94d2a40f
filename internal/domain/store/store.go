package store

import "context"

// Well-known keys used by the services.
const (
	KeySnapshot        = "monthly_snapshot"
	KeyHolidayCalendar = "holiday_calendar"
)

// KVStore is the injected key-value persistence boundary, used only to stash
// the last-known snapshot and holiday calendar across restarts. Opaque
// storage, not a database.
type KVStore interface {
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, entries map[string][]byte) error
	Remove(ctx context.Context, keys ...string) error
}
