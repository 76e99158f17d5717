package service

import (
	"context"

	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
	"github.com/FBSocial/subway2-team-activities/internal/platform/fanbook"
)

// PlatformClient is the subset of the campaign platform API the
// activity service consumes. The production implementation is
// *fanbook.Client; tests substitute a fake.
type PlatformClient interface {
	GetActivityRaw(ctx context.Context, token, extra string) ([]byte, error)
	AcceptInvite(ctx context.Context, token, code string) (*fanbook.AcceptInviteResult, error)
	RaiseTeam(ctx context.Context, token string) (string, error)
	ReceiveTaskReward(ctx context.Context, token string, taskID int) error
	GiftRecords(ctx context.Context, token string) ([]models.GiftRecord, error)
	InvitedInfo(ctx context.Context, code string) (*fanbook.InvitedInfo, error)
}

// RaiseTeamResult carries the freshly raised team's invite code plus
// the ready-to-share link built from it.
type RaiseTeamResult struct {
	InviteCode string `json:"invite_code"`
	ShareLink  string `json:"share_link"`
}

// ActivityService defines the interface for campaign state operations.
// All reads go through Summary, which derives the full page state from
// a snapshot; writes go upstream and then invalidate the snapshot so
// the next Summary re-fetches.
type ActivityService interface {
	Summary(ctx context.Context, token string) (*models.DerivedState, error)
	Refresh(ctx context.Context, token string) error
	AcceptInvite(ctx context.Context, token, code string) (*fanbook.AcceptInviteResult, error)
	RaiseTeam(ctx context.Context, token string) (*RaiseTeamResult, error)
	ReceiveReward(ctx context.Context, token string, taskID int) error
	GiftRecords(ctx context.Context, token string) ([]models.GiftRecord, error)
	CdKey(ctx context.Context, token string, giftID int) (string, error)
	InvitedInfo(ctx context.Context, code string) (*fanbook.InvitedInfo, error)
	ClearViewer(ctx context.Context, token string)
}
