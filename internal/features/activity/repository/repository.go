package repository

import (
	"context"
	"errors"

	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
)

var (
	// ErrCacheMiss marks an absent cache entry; callers fall through to
	// the campaign platform.
	ErrCacheMiss = errors.New("snapshot not cached")
)

// SnapshotCache stores per-viewer activity snapshots and gift records.
// Entries are written wholesale: a fresh snapshot always replaces the
// previous one, never merges with it.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, viewerKey string) (*models.Activity, error)
	SetSnapshot(ctx context.Context, viewerKey string, activity *models.Activity) error
	DeleteSnapshot(ctx context.Context, viewerKey string) error

	GetGiftRecords(ctx context.Context, viewerKey string) ([]models.GiftRecord, error)
	SetGiftRecords(ctx context.Context, viewerKey string, records []models.GiftRecord) error

	// SnapshotViewerKeys lists viewers with a live snapshot entry, for
	// the background refresher.
	SnapshotViewerKeys(ctx context.Context) ([]string, error)
}
