package holiday

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/cache"
)

type HolidayServiceImpl struct {
	cache *cache.Cache[holiday.Calendar]
	kv    store.KVStore
}

// NewHolidayService builds the calendar service. The cache is hydrated from
// the key-value store so a restart does not immediately re-hit the lookup.
func NewHolidayService(ctx context.Context, lookup holiday.Lookup, kv store.KVStore, refreshInterval time.Duration) holiday.Service {
	s := &HolidayServiceImpl{kv: kv}

	s.cache = cache.New(refreshInterval, func(ctx context.Context) (holiday.Calendar, error) {
		days, err := lookup.FetchHolidayMap(ctx)
		if err != nil {
			return holiday.Calendar{}, err
		}
		cal := holiday.Calendar{FetchedAt: time.Now(), Days: days}
		s.persist(ctx, cal)
		return cal, nil
	})

	s.hydrate(ctx)
	return s
}

// Calendar implements holiday.Service. A refresh failure falls back to the
// last-known mapping rather than failing the caller; with nothing ever
// fetched the empty calendar is returned.
func (s *HolidayServiceImpl) Calendar(ctx context.Context) holiday.Calendar {
	cal, err := s.cache.Get(ctx)
	if err == nil {
		return cal
	}

	stale, fetchedAt, ok := s.cache.Peek()
	if ok {
		slog.Warn("holiday lookup failed, serving stale calendar",
			"error", err, "fetched_at", fetchedAt)
		return stale
	}

	slog.Warn("holiday lookup failed with no cached calendar", "error", err)
	return holiday.Calendar{}
}

func (s *HolidayServiceImpl) persist(ctx context.Context, cal holiday.Calendar) {
	data, err := json.Marshal(cal)
	if err != nil {
		slog.Error("failed to marshal holiday calendar", "error", err)
		return
	}
	if err := s.kv.Set(ctx, map[string][]byte{store.KeyHolidayCalendar: data}); err != nil {
		slog.Error("failed to persist holiday calendar", "error", err)
	}
}

func (s *HolidayServiceImpl) hydrate(ctx context.Context) {
	entries, err := s.kv.Get(ctx, store.KeyHolidayCalendar)
	if err != nil {
		slog.Error("failed to load persisted holiday calendar", "error", err)
		return
	}
	data, ok := entries[store.KeyHolidayCalendar]
	if !ok {
		return
	}

	var cal holiday.Calendar
	if err := json.Unmarshal(data, &cal); err != nil {
		slog.Error("failed to unmarshal persisted holiday calendar", "error", err)
		return
	}
	s.cache.Seed(cal, cal.FetchedAt)
	slog.Info("holiday calendar hydrated from storage",
		"fetched_at", cal.FetchedAt, "holidays", len(cal.Days))
}
