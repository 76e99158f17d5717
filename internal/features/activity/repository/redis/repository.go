package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/repository"
	redisplatform "github.com/FBSocial/subway2-team-activities/internal/platform/redis"
)

const (
	keyPrefixSnapshot    = "subway2:snapshot:"
	keyPrefixGiftRecords = "subway2:gift_records:"
)

type redisCache struct {
	client        *redisplatform.Client
	snapshotTTL   time.Duration
	giftRecordTTL time.Duration
}

func NewSnapshotCache(client *redisplatform.Client, snapshotTTL, giftRecordTTL time.Duration) repository.SnapshotCache {
	return &redisCache{
		client:        client,
		snapshotTTL:   snapshotTTL,
		giftRecordTTL: giftRecordTTL,
	}
}

func makeSnapshotKey(viewerKey string) string {
	return keyPrefixSnapshot + viewerKey
}

func makeGiftRecordsKey(viewerKey string) string {
	return keyPrefixGiftRecords + viewerKey
}

func (r *redisCache) GetSnapshot(ctx context.Context, viewerKey string) (*models.Activity, error) {
	data, err := r.client.Get(ctx, makeSnapshotKey(viewerKey)).Bytes()
	if err == goredis.Nil {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var activity models.Activity
	if err := json.Unmarshal(data, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *redisCache) SetSnapshot(ctx context.Context, viewerKey string, activity *models.Activity) error {
	data, err := json.Marshal(activity)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, makeSnapshotKey(viewerKey), data, r.snapshotTTL).Err()
}

func (r *redisCache) DeleteSnapshot(ctx context.Context, viewerKey string) error {
	err := r.client.Del(ctx, makeSnapshotKey(viewerKey), makeGiftRecordsKey(viewerKey)).Err()
	if err == goredis.Nil {
		return nil
	}
	return err
}

func (r *redisCache) GetGiftRecords(ctx context.Context, viewerKey string) ([]models.GiftRecord, error) {
	data, err := r.client.Get(ctx, makeGiftRecordsKey(viewerKey)).Bytes()
	if err == goredis.Nil {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var records []models.GiftRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *redisCache) SetGiftRecords(ctx context.Context, viewerKey string, records []models.GiftRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, makeGiftRecordsKey(viewerKey), data, r.giftRecordTTL).Err()
}

func (r *redisCache) SnapshotViewerKeys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := r.client.Scan(ctx, cursor, keyPrefixSnapshot+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, keyPrefixSnapshot))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
