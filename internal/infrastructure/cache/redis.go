package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubegate/internal/domain/model"
	"github.com/hszk-dev/tubegate/internal/infrastructure/metrics"
)

const (
	// metadataKeyPrefix is the prefix for metadata cache keys in Redis.
	metadataKeyPrefix = "meta:"
)

// RedisCache implements MetadataCache using Redis as the backing store.
// Expiry is enforced server-side through the key TTL, so stale entries are
// evicted rather than merely skipped. Note that a shared Redis survives
// process restarts; deployments wanting strictly volatile state should use
// MemoryCache instead.
type RedisCache struct {
	client *redis.Client
}

// Compile-time verification that RedisCache implements MetadataCache.
var _ MetadataCache = (*RedisCache)(nil)

// NewRedisCache creates a Redis-backed metadata cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get retrieves metadata from Redis.
// Returns nil, nil on cache miss.
func (c *RedisCache) Get(ctx context.Context, url string) (*model.VideoMetadata, error) {
	data, err := c.client.Get(ctx, c.buildKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
			return nil, nil
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	meta, err := deserialize(data)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("deserialize metadata: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeRedis).Inc()
	return meta, nil
}

// Set stores metadata in Redis with the specified TTL.
func (c *RedisCache) Set(ctx context.Context, url string, meta *model.VideoMetadata, ttl time.Duration) error {
	data, err := serialize(meta)
	if err != nil {
		return fmt.Errorf("serialize metadata: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(url), data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

// Delete removes the entry for a URL from Redis.
func (c *RedisCache) Delete(ctx context.Context, url string) error {
	if err := c.client.Del(ctx, c.buildKey(url)).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

func (c *RedisCache) buildKey(url string) string {
	return metadataKeyPrefix + url
}

// metadataJSON is the JSON representation of VideoMetadata for caching.
// Using an explicit struct keeps the wire format stable and decoupled from
// the domain model.
type metadataJSON struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Thumbnail   string              `json:"thumbnail"`
	DurationSec float64             `json:"duration_sec"`
	Kind        string              `json:"kind"`
	Progressive []groupJSON         `json:"progressive"`
	Chapters    []chapterJSON       `json:"chapters"`
	Manual      map[string][]track  `json:"subtitles_manual"`
	Automatic   map[string][]track  `json:"subtitles_auto"`
	Views       *int64              `json:"views"`
	Likes       *int64              `json:"likes"`
	Comments    *int64              `json:"comments"`
	Channel     string              `json:"channel"`
	ChannelURL  string              `json:"channel_url"`
	Subscribers *int64              `json:"subscribers"`
}

type groupJSON struct {
	Resolution string       `json:"resolution"`
	Formats    []formatJSON `json:"formats"`
}

type formatJSON struct {
	Resolution string  `json:"resolution"`
	Height     int     `json:"height"`
	Ext        string  `json:"ext"`
	HasVideo   bool    `json:"has_video"`
	HasAudio   bool    `json:"has_audio"`
	ABR        float64 `json:"abr"`
	URL        string  `json:"url"`
}

type chapterJSON struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type track struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

// serialize converts VideoMetadata to JSON bytes.
func serialize(meta *model.VideoMetadata) ([]byte, error) {
	v := metadataJSON{
		Title:       meta.Title,
		Description: meta.Description,
		Tags:        meta.Tags,
		Thumbnail:   meta.Thumbnail,
		DurationSec: meta.Duration.Seconds(),
		Kind:        string(meta.Kind),
		Manual:      tracksToJSON(meta.Subtitles.Manual),
		Automatic:   tracksToJSON(meta.Subtitles.Automatic),
		Views:       meta.Stats.Views,
		Likes:       meta.Stats.Likes,
		Comments:    meta.Stats.Comments,
		Channel:     meta.Creator.Channel,
		ChannelURL:  meta.Creator.ChannelURL,
		Subscribers: meta.Creator.Subscribers,
	}

	for _, g := range meta.Progressive {
		group := groupJSON{Resolution: g.Resolution}
		for _, f := range g.Formats {
			group.Formats = append(group.Formats, formatJSON(f))
		}
		v.Progressive = append(v.Progressive, group)
	}

	for _, c := range meta.Chapters {
		v.Chapters = append(v.Chapters, chapterJSON(c))
	}

	return json.Marshal(v)
}

// deserialize converts JSON bytes back to VideoMetadata.
func deserialize(data []byte) (*model.VideoMetadata, error) {
	var v metadataJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	meta := &model.VideoMetadata{
		Title:       v.Title,
		Description: v.Description,
		Tags:        v.Tags,
		Thumbnail:   v.Thumbnail,
		Duration:    time.Duration(v.DurationSec * float64(time.Second)),
		Kind:        model.VideoKind(v.Kind),
		Subtitles: model.Subtitles{
			Manual:    tracksFromJSON(v.Manual),
			Automatic: tracksFromJSON(v.Automatic),
		},
		Stats: model.Stats{
			Views:    v.Views,
			Likes:    v.Likes,
			Comments: v.Comments,
		},
		Creator: model.Creator{
			Channel:     v.Channel,
			ChannelURL:  v.ChannelURL,
			Subscribers: v.Subscribers,
		},
	}

	for _, g := range v.Progressive {
		group := model.StreamGroup{Resolution: g.Resolution}
		for _, f := range g.Formats {
			group.Formats = append(group.Formats, model.StreamFormat(f))
		}
		meta.Progressive = append(meta.Progressive, group)
	}

	for _, c := range v.Chapters {
		meta.Chapters = append(meta.Chapters, model.Chapter(c))
	}

	return meta, nil
}

func tracksToJSON(m map[string][]model.SubtitleTrack) map[string][]track {
	out := make(map[string][]track, len(m))
	for lang, list := range m {
		converted := make([]track, 0, len(list))
		for _, t := range list {
			converted = append(converted, track(t))
		}
		out[lang] = converted
	}
	return out
}

func tracksFromJSON(m map[string][]track) map[string][]model.SubtitleTrack {
	out := make(map[string][]model.SubtitleTrack, len(m))
	for lang, list := range m {
		converted := make([]model.SubtitleTrack, 0, len(list))
		for _, t := range list {
			converted = append(converted, model.SubtitleTrack(t))
		}
		out[lang] = converted
	}
	return out
}
