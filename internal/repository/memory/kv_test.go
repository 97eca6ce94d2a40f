package memory

import (
	"context"
	"testing"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	var kv store.KVStore = NewKVRepository()

	err := kv.Set(ctx, map[string][]byte{
		store.KeySnapshot:        []byte(`{"year":2024}`),
		store.KeyHolidayCalendar: []byte(`{"days":{}}`),
	})
	require.NoError(t, err)

	got, err := kv.Get(ctx, store.KeySnapshot, store.KeyHolidayCalendar, "missing")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []byte(`{"year":2024}`), got[store.KeySnapshot])

	err = kv.Remove(ctx, store.KeySnapshot, "missing")
	require.NoError(t, err)

	got, err = kv.Get(ctx, store.KeySnapshot)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKVRepository_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	kv := NewKVRepository()

	require.NoError(t, kv.Set(ctx, map[string][]byte{"k": []byte("v1")}))
	require.NoError(t, kv.Set(ctx, map[string][]byte{"k": []byte("v2")}))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got["k"])
}
