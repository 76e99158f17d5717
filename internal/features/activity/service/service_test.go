package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FBSocial/subway2-team-activities/internal/common/config"
	"github.com/FBSocial/subway2-team-activities/internal/common/errors"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/repository"
	"github.com/FBSocial/subway2-team-activities/internal/platform/fanbook"
)

const activityPayload = `{
	"status": true,
	"data": {
		"title": "subway2 team-up",
		"start_time": 100,
		"end_time": 200,
		"invite": "https://fb.example/act/h5/ABC?x=1",
		"gifts": [{"gift_id": 1, "name": "tier one"}],
		"tasks": [{"task_id": 10, "type": 1, "gift_id": 1}],
		"user": {
			"user_id": 7,
			"step": 1,
			"tasks": [
				{"task_id": 10, "type": 1, "gift_id": 1, "status": 1},
				{"task_id": 11, "type": 4, "extra_data": {"invite_num": 2}, "status": 0}
			]
		}
	}
}`

type fakePlatform struct {
	payload     []byte
	fetches     int
	raiseResult string
	acceptErr   error
	records     []models.GiftRecord
	recordCalls int
}

func (f *fakePlatform) GetActivityRaw(ctx context.Context, token, extra string) ([]byte, error) {
	f.fetches++
	return f.payload, nil
}

func (f *fakePlatform) AcceptInvite(ctx context.Context, token, code string) (*fanbook.AcceptInviteResult, error) {
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	return &fanbook.AcceptInviteResult{Status: 1}, nil
}

func (f *fakePlatform) RaiseTeam(ctx context.Context, token string) (string, error) {
	return f.raiseResult, nil
}

func (f *fakePlatform) ReceiveTaskReward(ctx context.Context, token string, taskID int) error {
	return nil
}

func (f *fakePlatform) GiftRecords(ctx context.Context, token string) ([]models.GiftRecord, error) {
	f.recordCalls++
	return f.records, nil
}

func (f *fakePlatform) InvitedInfo(ctx context.Context, code string) (*fanbook.InvitedInfo, error) {
	return &fanbook.InvitedInfo{Code: code}, nil
}

type fakeCache struct {
	snapshots map[string]*models.Activity
	records   map[string][]models.GiftRecord
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		snapshots: make(map[string]*models.Activity),
		records:   make(map[string][]models.GiftRecord),
	}
}

func (f *fakeCache) GetSnapshot(ctx context.Context, viewerKey string) (*models.Activity, error) {
	a, ok := f.snapshots[viewerKey]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	// Redis-кэш отдаёт каждый раз свежую копию
	clone := *a
	if a.User != nil {
		user := *a.User
		user.Tasks = append([]models.Task(nil), a.User.Tasks...)
		clone.User = &user
	}
	return &clone, nil
}

func (f *fakeCache) SetSnapshot(ctx context.Context, viewerKey string, activity *models.Activity) error {
	f.snapshots[viewerKey] = activity
	return nil
}

func (f *fakeCache) DeleteSnapshot(ctx context.Context, viewerKey string) error {
	delete(f.snapshots, viewerKey)
	delete(f.records, viewerKey)
	return nil
}

func (f *fakeCache) GetGiftRecords(ctx context.Context, viewerKey string) ([]models.GiftRecord, error) {
	r, ok := f.records[viewerKey]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return r, nil
}

func (f *fakeCache) SetGiftRecords(ctx context.Context, viewerKey string, records []models.GiftRecord) error {
	f.records[viewerKey] = records
	return nil
}

func (f *fakeCache) SnapshotViewerKeys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(f.snapshots))
	for k := range f.snapshots {
		keys = append(keys, k)
	}
	return keys, nil
}

func newTestService(platform *fakePlatform, cache *fakeCache) *activityService {
	cfg := &config.Config{}
	cfg.Share.Origin = "https://fb.example"
	cfg.Share.BasePath = "subway2"

	svc := NewActivityService(platform, cache, cfg).(*activityService)
	svc.now = func() int64 { return 150 }
	return svc
}

func TestSummaryUsesCache(t *testing.T) {
	platform := &fakePlatform{payload: []byte(activityPayload)}
	svc := newTestService(platform, newFakeCache())
	ctx := context.Background()

	state, err := svc.Summary(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "subway2 team-up", state.ActivityTitle)
	assert.True(t, state.ActivityStatus.IsActivityInProgress)
	assert.Equal(t, 1, platform.fetches)

	// Second read is served from the snapshot cache.
	_, err = svc.Summary(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, platform.fetches)
}

func TestReceiveRewardOverlay(t *testing.T) {
	platform := &fakePlatform{payload: []byte(activityPayload)}
	cache := newFakeCache()
	svc := newTestService(platform, cache)
	ctx := context.Background()

	_, err := svc.Summary(ctx, "tok")
	require.NoError(t, err)

	require.NoError(t, svc.ReceiveReward(ctx, "tok", 10))

	// Cached snapshot still says Finished; the overlay renders Received.
	state, err := svc.Summary(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, state.UserTasksStatusList, 2)
	assert.Equal(t, models.TaskStatusReceived, state.UserTasksStatusList[0])
	assert.True(t, state.IsRewardReceived)
	assert.Equal(t, 1, platform.fetches)

	// Наложение не трогает сам кэш
	cached, err := cache.GetSnapshot(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusFinished, cached.User.Tasks[0].Status)
}

func TestFreshFetchDropsOverlay(t *testing.T) {
	platform := &fakePlatform{payload: []byte(activityPayload)}
	svc := newTestService(platform, newFakeCache())
	ctx := context.Background()

	_, err := svc.Summary(ctx, "tok")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveReward(ctx, "tok", 10))

	// A forced refresh replaces the snapshot wholesale: upstream truth
	// supersedes the optimistic bump.
	require.NoError(t, svc.Refresh(ctx, "tok"))

	state, err := svc.Summary(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusFinished, state.UserTasksStatusList[0])
	assert.False(t, state.IsRewardReceived)
}

func TestOverlayConcurrentBumpAndApply(t *testing.T) {
	// A reward claim can land while a summary render is applying the
	// overlay for the same viewer; the two must not touch the viewer
	// map unsynchronized. Run with the race detector on.
	overlay := newStatusOverlay()

	activity := &models.Activity{User: &models.UserState{Tasks: []models.Task{
		{TaskID: 0, Status: models.TaskStatusNone},
	}}}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			overlay.bump("tok", i, models.TaskStatusReceived)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			overlay.apply("tok", activity)
		}
	}()
	wg.Wait()

	assert.Equal(t, models.TaskStatusReceived, activity.User.Tasks[0].Status)
}

func TestOverlayIsMonotonic(t *testing.T) {
	overlay := newStatusOverlay()

	overlay.bump("tok", 1, models.TaskStatusReceived)
	overlay.bump("tok", 1, models.TaskStatusFinished) // must not regress

	activity := &models.Activity{User: &models.UserState{Tasks: []models.Task{
		{TaskID: 1, Status: models.TaskStatusNone},
	}}}
	overlay.apply("tok", activity)
	assert.Equal(t, models.TaskStatusReceived, activity.User.Tasks[0].Status)
}

func TestAcceptInviteInvalidatesSnapshot(t *testing.T) {
	platform := &fakePlatform{payload: []byte(activityPayload)}
	svc := newTestService(platform, newFakeCache())
	ctx := context.Background()

	_, err := svc.Summary(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, platform.fetches)

	_, err = svc.AcceptInvite(ctx, "tok", "ABC")
	require.NoError(t, err)

	_, err = svc.Summary(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, platform.fetches)
}

func TestAcceptInviteBusinessRejection(t *testing.T) {
	rejection, _ := errors.FromUpstreamCode(60014, "already joined")
	platform := &fakePlatform{payload: []byte(activityPayload), acceptErr: rejection}
	svc := newTestService(platform, newFakeCache())

	_, err := svc.AcceptInvite(context.Background(), "tok", "ABC")
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAlreadyJoined, appErr.Code)
	assert.True(t, appErr.IsBusinessRejection())
}

func TestRaiseTeam(t *testing.T) {
	tests := []struct {
		name   string
		result string
	}{
		{"bare code", "CODE42"},
		{"full link", "https://fb.example/act/h5/CODE42?from=raise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := &fakePlatform{payload: []byte(activityPayload), raiseResult: tt.result}
			svc := newTestService(platform, newFakeCache())

			result, err := svc.RaiseTeam(context.Background(), "tok")
			require.NoError(t, err)
			assert.Equal(t, "CODE42", result.InviteCode)
			assert.Equal(t, "https://fb.example/subway2/invite/CODE42", result.ShareLink)
		})
	}
}

func TestCdKey(t *testing.T) {
	platform := &fakePlatform{
		payload: []byte(activityPayload),
		records: []models.GiftRecord{
			{GiftID: 1, ExtraData: models.GiftRecordExtra{CdKey: "AAA-111"}},
		},
	}
	svc := newTestService(platform, newFakeCache())
	ctx := context.Background()

	key, err := svc.CdKey(ctx, "tok", 1)
	require.NoError(t, err)
	assert.Equal(t, "AAA-111", key)

	// Second lookup hits the record cache.
	_, err = svc.CdKey(ctx, "tok", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, platform.recordCalls)

	_, err = svc.CdKey(ctx, "tok", 99)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}
