package service

import (
	"context"
	"sync"
	"time"

	"github.com/FBSocial/subway2-team-activities/internal/common/config"
	"github.com/FBSocial/subway2-team-activities/internal/common/errors"
	"github.com/FBSocial/subway2-team-activities/internal/common/logger"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/parser"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/repository"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/resolver"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/summary"
	"github.com/FBSocial/subway2-team-activities/internal/features/invite"
	"github.com/FBSocial/subway2-team-activities/internal/platform/fanbook"
)

// extraFields are the optional snapshot sections requested from the
// platform on every fetch.
const extraFields = "my_invite,invite_joined"

// statusOverlay holds optimistic per-viewer task status bumps. A bump
// is applied at render time only; it never touches the cached snapshot
// and is discarded wholesale when a fresh snapshot arrives.
type statusOverlay struct {
	mu    sync.Mutex
	bumps map[string]map[int]models.TaskStatus
}

func newStatusOverlay() *statusOverlay {
	return &statusOverlay{bumps: make(map[string]map[int]models.TaskStatus)}
}

// bump records a status advance for one task. Statuses only move
// forward: None < Finished < Received.
func (o *statusOverlay) bump(viewerKey string, taskID int, status models.TaskStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	viewer := o.bumps[viewerKey]
	if viewer == nil {
		viewer = make(map[int]models.TaskStatus)
		o.bumps[viewerKey] = viewer
	}
	if status > viewer[taskID] {
		viewer[taskID] = status
	}
}

// apply mutates the personal task copies of a just-loaded snapshot.
// Safe because every cache read unmarshals a private copy. The viewer
// map is copied under the lock: bump may insert into it concurrently.
func (o *statusOverlay) apply(viewerKey string, activity *models.Activity) {
	if activity == nil || activity.User == nil {
		return
	}
	o.mu.Lock()
	viewer := make(map[int]models.TaskStatus, len(o.bumps[viewerKey]))
	for taskID, status := range o.bumps[viewerKey] {
		viewer[taskID] = status
	}
	o.mu.Unlock()
	if len(viewer) == 0 {
		return
	}
	for i := range activity.User.Tasks {
		task := &activity.User.Tasks[i]
		if status, ok := viewer[task.TaskID]; ok && status > task.Status {
			task.Status = status
		}
	}
}

func (o *statusOverlay) drop(viewerKey string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.bumps, viewerKey)
}

type activityService struct {
	client  PlatformClient
	cache   repository.SnapshotCache
	config  *config.Config
	overlay *statusOverlay
	now     func() int64
}

func NewActivityService(client PlatformClient, cache repository.SnapshotCache, config *config.Config) ActivityService {
	return &activityService{
		client:  client,
		cache:   cache,
		config:  config,
		overlay: newStatusOverlay(),
		now:     func() int64 { return time.Now().Unix() },
	}
}

// Summary returns the derived page state for one viewer, from the
// cached snapshot when present, otherwise from a fresh upstream fetch.
func (s *activityService) Summary(ctx context.Context, token string) (*models.DerivedState, error) {
	activity, err := s.cache.GetSnapshot(ctx, token)
	if err == repository.ErrCacheMiss {
		activity, err = s.fetchFresh(ctx, token)
	} else if err != nil {
		logger.Warn().Err(err).Msg("snapshot cache read failed, falling back to upstream")
		activity, err = s.fetchFresh(ctx, token)
	} else {
		s.overlay.apply(token, activity)
	}
	if err != nil {
		return nil, err
	}

	state := summary.Summarize(activity, s.now())
	return &state, nil
}

// Refresh forces a fresh snapshot for one viewer, replacing the cached
// one and discarding any optimistic overlay.
func (s *activityService) Refresh(ctx context.Context, token string) error {
	_, err := s.fetchFresh(ctx, token)
	return err
}

// fetchFresh pulls the snapshot from the platform, caches it and drops
// the viewer's overlay: fresh upstream state supersedes local bumps.
func (s *activityService) fetchFresh(ctx context.Context, token string) (*models.Activity, error) {
	payload, err := s.client.GetActivityRaw(ctx, token, extraFields)
	if err != nil {
		return nil, err
	}

	activity, err := parser.Parse(payload)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSnapshot(ctx, token, activity); err != nil {
		logger.Warn().Err(err).Msg("snapshot cache write failed")
	}
	s.overlay.drop(token)
	return activity, nil
}

func (s *activityService) AcceptInvite(ctx context.Context, token, code string) (*fanbook.AcceptInviteResult, error) {
	result, err := s.client.AcceptInvite(ctx, token, code)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, token)
	return result, nil
}

// RaiseTeam starts the viewer's own team and returns the share link
// for recruiting members.
func (s *activityService) RaiseTeam(ctx context.Context, token string) (*RaiseTeamResult, error) {
	raw, err := s.client.RaiseTeam(ctx, token)
	if err != nil {
		return nil, err
	}
	// Платформа возвращает либо голый код, либо полную ссылку
	code := invite.ExtractCode(raw)
	if code == "" {
		return nil, ErrNoInviteCode
	}
	s.invalidate(ctx, token)

	return &RaiseTeamResult{
		InviteCode: code,
		ShareLink:  invite.BuildShareLink(s.config.Share.Origin, s.config.Share.BasePath, code),
	}, nil
}

// ReceiveReward claims a task reward upstream and bumps the task to
// Received in the overlay so the next render shows it immediately.
func (s *activityService) ReceiveReward(ctx context.Context, token string, taskID int) error {
	if err := s.client.ReceiveTaskReward(ctx, token, taskID); err != nil {
		return err
	}
	s.overlay.bump(token, taskID, models.TaskStatusReceived)
	// Записи о подарках устарели сразу после получения награды
	if err := s.cache.SetGiftRecords(ctx, token, nil); err != nil {
		logger.Warn().Err(err).Msg("gift record cache reset failed")
	}
	return nil
}

func (s *activityService) GiftRecords(ctx context.Context, token string) ([]models.GiftRecord, error) {
	records, err := s.cache.GetGiftRecords(ctx, token)
	if err == nil && len(records) > 0 {
		return records, nil
	}

	records, err = s.client.GiftRecords(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetGiftRecords(ctx, token, records); err != nil {
		logger.Warn().Err(err).Msg("gift record cache write failed")
	}
	return records, nil
}

// CdKey resolves the redemption key for one gift from the viewer's
// gift records.
func (s *activityService) CdKey(ctx context.Context, token string, giftID int) (string, error) {
	records, err := s.GiftRecords(ctx, token)
	if err != nil {
		return "", err
	}
	key, ok := resolver.CdKeyForGift(records, giftID)
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, ErrCdKeyNotFound.Error()).
			WithDetail("gift_id", giftID)
	}
	return key, nil
}

// InvitedInfo returns the public invited-page payload for one code.
// No viewer token is involved; the page renders before login.
func (s *activityService) InvitedInfo(ctx context.Context, code string) (*fanbook.InvitedInfo, error) {
	return s.client.InvitedInfo(ctx, code)
}

// ClearViewer forgets everything cached for one viewer. Used on
// logout: the next page load starts from scratch.
func (s *activityService) ClearViewer(ctx context.Context, token string) {
	s.invalidate(ctx, token)
}

func (s *activityService) invalidate(ctx context.Context, token string) {
	if err := s.cache.DeleteSnapshot(ctx, token); err != nil {
		logger.Warn().Err(err).Msg("snapshot invalidation failed")
	}
	s.overlay.drop(token)
}
