package entitycache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	loaded map[string]map[string]string
	saved  map[string]map[string]string
	errOn  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		loaded: map[string]map[string]string{},
		saved:  map[string]map[string]string{},
	}
}

func (s *fakeStore) LoadCache(_ context.Context, kind string) (map[string]string, error) {
	if s.errOn == kind {
		return nil, errors.New("load failed")
	}
	out := map[string]string{}
	for k, v := range s.loaded[kind] {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) SaveCache(_ context.Context, kind string, entries map[string]string) error {
	s.saved[kind] = entries
	return nil
}

func TestFill(t *testing.T) {
	store := newFakeStore()
	store.loaded["staff_name"] = map[string]string{"tm1": "Alex"}

	cache, err := Load(context.Background(), store, "staff_name")
	require.NoError(t, err)

	var resolved []string
	cache.Fill(context.Background(), []string{"tm1", "tm2", "tm3", ""}, func(_ context.Context, id string) (string, error) {
		resolved = append(resolved, id)
		if id == "tm2" {
			return "Dana", nil
		}
		return "", nil
	})

	// cached and empty ids are not resolved again
	assert.Equal(t, []string{"tm2", "tm3"}, resolved)

	v, ok := cache.Get("tm2")
	assert.True(t, ok)
	assert.Equal(t, "Dana", v)

	// found-nothing sentinel is cached
	v, ok = cache.Get("tm3")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestFillResolverError(t *testing.T) {
	store := newFakeStore()
	cache, err := Load(context.Background(), store, "booking_staff")
	require.NoError(t, err)

	cache.Fill(context.Background(), []string{"b1"}, func(_ context.Context, _ string) (string, error) {
		return "", errors.New("lookup failed")
	})

	// a failed lookup is not cached, so the next run retries it
	_, ok := cache.Get("b1")
	assert.False(t, ok)
}

func TestFillBatch(t *testing.T) {
	store := newFakeStore()
	store.loaded["customer_name"] = map[string]string{"c1": "Bob"}

	cache, err := Load(context.Background(), store, "customer_name")
	require.NoError(t, err)

	cache.FillBatch(context.Background(), []string{"c1", "c2", "c3"}, func(_ context.Context, ids []string) (map[string]string, error) {
		assert.ElementsMatch(t, []string{"c2", "c3"}, ids)
		return map[string]string{"c2": "Jane Doe"}, nil
	})

	v, _ := cache.Get("c2")
	assert.Equal(t, "Jane Doe", v)

	// id missing from the batch answer gets the sentinel
	v, ok := cache.Get("c3")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestFlushOnlyDirty(t *testing.T) {
	store := newFakeStore()
	store.loaded["staff_name"] = map[string]string{"tm1": "Alex"}

	cache, err := Load(context.Background(), store, "staff_name")
	require.NoError(t, err)

	cache.Put("tm2", "Dana")
	cache.Put("tm1", "Alex") // unchanged, must not be rewritten

	require.NoError(t, cache.Flush(context.Background(), store))
	assert.Equal(t, map[string]string{"tm2": "Dana"}, store.saved["staff_name"])
}
