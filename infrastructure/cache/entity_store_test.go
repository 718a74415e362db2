package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"transcript-app/domain/model"
	"transcript-app/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*cache.EntityStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewInMemoryEntityStore().WithClock(clock.Now)
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func sampleInfo(id string) model.VideoInfo {
	return model.VideoInfo{VideoID: id, Title: "Title " + id, Author: "Someone", LengthSeconds: 212}
}

func TestEntityStore_VideoRoundTrip(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()
	transcript := []model.Segment{{Text: "hello", Offset: 0, Duration: 1500}, {Text: "world", Offset: 1500, Duration: 900}}

	require.NoError(t, store.CacheVideo(ctx, "dQw4w9WgXcQ", sampleInfo("dQw4w9WgXcQ"), transcript))

	record, err := store.GetVideo(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "dQw4w9WgXcQ", record.VideoID)
	assert.Equal(t, "Title dQw4w9WgXcQ", record.VideoInfo.Title)
	assert.Equal(t, transcript, record.Transcript)
	assert.Equal(t, clock.Now().UnixMilli(), record.Timestamp)
	assert.Equal(t, cache.RecordVersion, record.Version)
}

func TestEntityStore_GetVideoMissing(t *testing.T) {
	store, _ := newTestStore(t)

	record, err := store.GetVideo(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestEntityStore_RejectsEmptyKey(t *testing.T) {
	store, _ := newTestStore(t)

	assert.ErrorIs(t, store.CacheVideo(context.Background(), "", model.VideoInfo{}, nil), cache.ErrEmptyKey)
	assert.ErrorIs(t, store.CacheChannel(context.Background(), "", model.ChannelData{}), cache.ErrEmptyKey)
}

func TestEntityStore_VideoExpiry(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CacheVideo(ctx, "aaaaaaaaaaa", sampleInfo("aaaaaaaaaaa"), nil))

	clock.Advance(23 * time.Hour)
	record, err := store.GetVideo(ctx, "aaaaaaaaaaa")
	require.NoError(t, err)
	require.NotNil(t, record, "23h old record is still fresh")

	clock.Advance(2 * time.Hour)
	info, err := store.GetCacheInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.VideoCount, "expired record counted until read")

	record, err = store.GetVideo(ctx, "aaaaaaaaaaa")
	require.NoError(t, err)
	assert.Nil(t, record)

	info, err = store.GetCacheInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, info.VideoCount, "expired record removed on read")
}

func TestEntityStore_ChannelExpiryIsHalfOfVideo(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()
	data := model.ChannelData{ChannelName: "Chan", Videos: []model.ChannelVideo{{VideoID: "bbbbbbbbbbb", Title: "One"}}}
	url := "https://www.youtube.com/@chan"

	require.NoError(t, store.CacheChannel(ctx, url, data))

	clock.Advance(11 * time.Hour)
	record, err := store.GetChannel(ctx, url)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, data, record.ChannelData)
	assert.Equal(t, url, record.ChannelURL)

	clock.Advance(2 * time.Hour)
	record, err = store.GetChannel(ctx, url)
	require.NoError(t, err)
	assert.Nil(t, record, "13h old channel listing is stale")
}

func TestEntityStore_OverwriteRefreshesTimestamp(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CacheVideo(ctx, "ccccccccccc", sampleInfo("ccccccccccc"), nil))

	clock.Advance(20 * time.Hour)
	updated := sampleInfo("ccccccccccc")
	updated.Title = "Renamed"
	require.NoError(t, store.CacheVideo(ctx, "ccccccccccc", updated, nil))

	clock.Advance(20 * time.Hour)
	record, err := store.GetVideo(ctx, "ccccccccccc")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Renamed", record.VideoInfo.Title)

	recent, err := store.RecentVideos(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1, "overwrite leaves a single index entry")
}

func TestEntityStore_DeleteAndClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CacheVideo(ctx, "ddddddddddd", sampleInfo("ddddddddddd"), nil))
	require.NoError(t, store.CacheVideo(ctx, "eeeeeeeeeee", sampleInfo("eeeeeeeeeee"), nil))
	require.NoError(t, store.CacheChannel(ctx, "https://www.youtube.com/channel/UC1", model.ChannelData{ChannelName: "x"}))

	require.NoError(t, store.DeleteVideo(ctx, "ddddddddddd"))
	require.NoError(t, store.DeleteVideo(ctx, "never-stored"))
	require.NoError(t, store.DeleteChannel(ctx, "never-stored"))

	info, err := store.GetCacheInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CacheInfo{VideoCount: 1, ChannelCount: 1}, info)

	require.NoError(t, store.ClearAll(ctx))
	info, err = store.GetCacheInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CacheInfo{}, info)

	recent, err := store.RecentVideos(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestEntityStore_RecentVideosNewestFirst(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"first000000", "second00000", "third000000"} {
		require.NoError(t, store.CacheVideo(ctx, id, sampleInfo(id), nil))
		clock.Advance(time.Minute)
	}

	recent, err := store.RecentVideos(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third000000", recent[0].VideoID)
	assert.Equal(t, "second00000", recent[1].VideoID)
}

func TestEntityStore_FailedOpenIsRetried(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store")
	require.NoError(t, os.WriteFile(path, []byte("not a directory"), 0o600))

	store := cache.NewEntityStore(path)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	_, err := store.GetVideo(ctx, "fffffffffff")
	require.Error(t, err)

	require.NoError(t, os.Remove(path))
	require.NoError(t, store.CacheVideo(ctx, "fffffffffff", sampleInfo("fffffffffff"), nil))
	record, err := store.GetVideo(ctx, "fffffffffff")
	require.NoError(t, err)
	assert.NotNil(t, record)
}

func TestEntityStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := cache.NewEntityStore(dir)
	require.NoError(t, store.CacheVideo(ctx, "ggggggggggg", sampleInfo("ggggggggggg"), nil))
	require.NoError(t, store.Close())

	reopened := cache.NewEntityStore(dir)
	t.Cleanup(func() { _ = reopened.Close() })
	record, err := reopened.GetVideo(ctx, "ggggggggggg")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "ggggggggggg", record.VideoID)
}

func TestEntityStore_CanceledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetCacheInfo(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
