package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"transcript-app/domain/model"
	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	// VideoTTL is how long a cached video stays fresh.
	VideoTTL = 24 * time.Hour
	// ChannelTTL is how long a cached channel listing stays fresh.
	ChannelTTL = VideoTTL / 2

	// RecordVersion is stamped on every entity record; it is not used for migration.
	RecordVersion = "v1"
)

var (
	videos   = collection{name: "videos", ttl: VideoTTL}
	channels = collection{name: "channels", ttl: ChannelTTL}

	// ErrEmptyKey is returned when a record is written without an identifier.
	ErrEmptyKey = errors.New("cache key must not be empty")
)

// collection maps a logical object store onto a key prefix plus a timestamp index.
type collection struct {
	name string
	ttl  time.Duration
}

func (c collection) key(id string) []byte {
	return []byte(c.name + ":" + id)
}

func (c collection) prefix() []byte {
	return []byte(c.name + ":")
}

func (c collection) indexPrefix() []byte {
	return []byte(c.name + "_ts:")
}

func (c collection) indexKey(ts int64, id string) []byte {
	return []byte(fmt.Sprintf("%s_ts:%020d:%s", c.name, ts, id))
}

// stamp reads only the timestamp of a stored record.
type stamp struct {
	Timestamp int64 `json:"timestamp"`
}

// EntityStore is the embedded, persistent cache for videos and channel listings.
// The underlying badger database is opened on first use.
type EntityStore struct {
	opts badger.Options

	mu sync.Mutex
	db *badger.DB

	now func() time.Time
}

// NewEntityStore returns a store persisted under dir.
func NewEntityStore(dir string) *EntityStore {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return &EntityStore{opts: opts, now: time.Now}
}

// NewInMemoryEntityStore returns a store that keeps everything in memory.
func NewInMemoryEntityStore() *EntityStore {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return &EntityStore{opts: opts, now: time.Now}
}

// WithClock replaces the clock used for timestamps and expiry checks.
func (s *EntityStore) WithClock(now func() time.Time) *EntityStore {
	s.now = now
	return s
}

var _ repository.IEntityCache = (*EntityStore)(nil)

// handle opens the database once. A failed open is reported and attempted again on the next call.
func (s *EntityStore) handle(ctx context.Context) (*badger.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	db, err := badger.Open(s.opts)
	if err != nil {
		return nil, fmt.Errorf("open cache store: %w", err)
	}
	s.db = db
	return db, nil
}

// Close releases the database. The store can be reopened by using it again.
func (s *EntityStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *EntityStore) CacheVideo(ctx context.Context, videoID string, info model.VideoInfo, transcript []model.Segment) error {
	if videoID == "" {
		return ErrEmptyKey
	}
	record := model.CachedVideoRecord{
		VideoID:    videoID,
		VideoInfo:  info,
		Transcript: transcript,
		Timestamp:  s.now().UnixMilli(),
		Version:    RecordVersion,
	}
	return s.put(ctx, videos, videoID, record.Timestamp, record)
}

func (s *EntityStore) GetVideo(ctx context.Context, videoID string) (*model.CachedVideoRecord, error) {
	var record model.CachedVideoRecord
	found, err := s.get(ctx, videos, videoID, &record, func() int64 { return record.Timestamp })
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

func (s *EntityStore) DeleteVideo(ctx context.Context, videoID string) error {
	return s.remove(ctx, videos, videoID)
}

func (s *EntityStore) CacheChannel(ctx context.Context, channelURL string, data model.ChannelData) error {
	if channelURL == "" {
		return ErrEmptyKey
	}
	record := model.CachedChannelRecord{
		ChannelURL:  channelURL,
		ChannelData: data,
		Timestamp:   s.now().UnixMilli(),
		Version:     RecordVersion,
	}
	return s.put(ctx, channels, channelURL, record.Timestamp, record)
}

func (s *EntityStore) GetChannel(ctx context.Context, channelURL string) (*model.CachedChannelRecord, error) {
	var record model.CachedChannelRecord
	found, err := s.get(ctx, channels, channelURL, &record, func() int64 { return record.Timestamp })
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

func (s *EntityStore) DeleteChannel(ctx context.Context, channelURL string) error {
	return s.remove(ctx, channels, channelURL)
}

// ClearAll drops every video and channel record together with their indexes.
func (s *EntityStore) ClearAll(ctx context.Context) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.DropPrefix(videos.prefix(), videos.indexPrefix(), channels.prefix(), channels.indexPrefix()); err != nil {
		return fmt.Errorf("clear cache store: %w", err)
	}
	return nil
}

// GetCacheInfo counts stored records, including expired ones that have not been read since.
func (s *EntityStore) GetCacheInfo(ctx context.Context) (model.CacheInfo, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return model.CacheInfo{}, err
	}
	var info model.CacheInfo
	err = db.View(func(txn *badger.Txn) error {
		info.VideoCount = countPrefix(txn, videos.prefix())
		info.ChannelCount = countPrefix(txn, channels.prefix())
		return nil
	})
	if err != nil {
		return model.CacheInfo{}, fmt.Errorf("count cache records: %w", err)
	}
	return info, nil
}

// RecentVideos returns up to limit fresh videos, most recently cached first.
// Expired records met on the way are purged like any other read.
func (s *EntityStore) RecentVideos(ctx context.Context, limit int) ([]model.CachedVideoRecord, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := videos.indexPrefix()
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			rest := bytes.TrimPrefix(it.Item().Key(), prefix)
			if sep := bytes.IndexByte(rest, ':'); sep >= 0 {
				ids = append(ids, string(rest[sep+1:]))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan video index: %w", err)
	}

	records := make([]model.CachedVideoRecord, 0, len(ids))
	for _, id := range ids {
		if limit > 0 && len(records) >= limit {
			break
		}
		record, err := s.GetVideo(ctx, id)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (s *EntityStore) put(ctx context.Context, c collection, id string, ts int64, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", c.name, err)
	}
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	return db.Update(func(txn *badger.Txn) error {
		if err := dropIndexEntry(txn, c, id); err != nil {
			return err
		}
		if err := txn.Set(c.key(id), data); err != nil {
			return fmt.Errorf("set %s record: %w", c.name, err)
		}
		if err := txn.Set(c.indexKey(ts, id), []byte(id)); err != nil {
			return fmt.Errorf("set %s index: %w", c.name, err)
		}
		return nil
	})
}

// get decodes the record into dst. Corrupt or expired records are deleted and reported as absent.
func (s *EntityStore) get(ctx context.Context, c collection, id string, dst interface{}, timestamp func() int64) (bool, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return false, err
	}
	var raw []byte
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("get %s record: %w", c.name, err)
	}
	if raw == nil {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", id).Warn("Removing unreadable cache record")
		return false, s.remove(ctx, c, id)
	}
	if s.now().UnixMilli()-timestamp() > c.ttl.Milliseconds() {
		return false, s.remove(ctx, c, id)
	}
	return true, nil
}

func (s *EntityStore) remove(ctx context.Context, c collection, id string) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	return db.Update(func(txn *badger.Txn) error {
		if err := dropIndexEntry(txn, c, id); err != nil {
			return err
		}
		if err := txn.Delete(c.key(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete %s record: %w", c.name, err)
		}
		return nil
	})
}

// dropIndexEntry removes the timestamp index entry of an existing record, if any.
func dropIndexEntry(txn *badger.Txn, c collection, id string) error {
	item, err := txn.Get(c.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s record: %w", c.name, err)
	}
	var st stamp
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &st)
	})
	if err != nil {
		// unreadable record: its index entry cannot be located, leave it to ClearAll
		return nil
	}
	if err := txn.Delete(c.indexKey(st.Timestamp, id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete %s index: %w", c.name, err)
	}
	return nil
}

func countPrefix(txn *badger.Txn, prefix []byte) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
		n++
	}
	return n
}

