package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"earnings-analyzer/internal/analysis"
)

// InsightCache keeps generated topics and summaries in one redis hash per
// transcript, so deleting a transcript drops all of them at once.
type InsightCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewInsightCache(client *redisv9.Client, ttl time.Duration) *InsightCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &InsightCache{client: client, ttl: ttl}
}

func (c *InsightCache) GetTopics(ctx context.Context, transcriptID uint, section string) ([]analysis.Topic, bool, error) {
	raw, err := c.client.HGet(ctx, transcriptKey(transcriptID), topicsField(section)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get topics failed: %w", err)
	}

	var topics []analysis.Topic
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached topics failed: %w", err)
	}
	return topics, true, nil
}

func (c *InsightCache) SetTopics(ctx context.Context, transcriptID uint, section string, topics []analysis.Topic) error {
	payload, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("marshal topics cache failed: %w", err)
	}
	return c.set(ctx, transcriptID, topicsField(section), string(payload))
}

func (c *InsightCache) GetSummary(ctx context.Context, transcriptID uint, section, topic string) (string, bool, error) {
	summary, err := c.client.HGet(ctx, transcriptKey(transcriptID), summaryField(section, topic)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get summary failed: %w", err)
	}
	return summary, true, nil
}

func (c *InsightCache) SetSummary(ctx context.Context, transcriptID uint, section, topic, summary string) error {
	return c.set(ctx, transcriptID, summaryField(section, topic), summary)
}

func (c *InsightCache) DeleteTranscript(ctx context.Context, transcriptID uint) error {
	if err := c.client.Del(ctx, transcriptKey(transcriptID)).Err(); err != nil {
		return fmt.Errorf("redis delete insights failed: %w", err)
	}
	return nil
}

func (c *InsightCache) set(ctx context.Context, transcriptID uint, field, value string) error {
	key := transcriptKey(transcriptID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, field, value)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set insight failed: %w", err)
	}
	return nil
}

func transcriptKey(transcriptID uint) string {
	return fmt.Sprintf("transcript:insights:%d", transcriptID)
}

func topicsField(section string) string {
	return "topics:" + section
}

func summaryField(section, topic string) string {
	return "summary:" + section + ":" + strings.ToLower(strings.TrimSpace(topic))
}
