// Package fanbook is the HTTP client for the upstream campaign
// platform. Every mutating call is a plain request/response pair; the
// client performs no queueing, retries beyond transport level, or
// partial-result handling.
package fanbook

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/FBSocial/subway2-team-activities/internal/common/errors"
	"github.com/FBSocial/subway2-team-activities/internal/common/logger"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
)

// Envelope is the platform's response wrapper. Data stays raw so the
// snapshot parser owns its decoding rules.
type Envelope struct {
	Status    bool            `json:"status"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Desc      string          `json:"desc"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

// AcceptInviteResult is the business outcome of joining a team.
type AcceptInviteResult struct {
	Status  int    `json:"status"`
	URL     string `json:"url"`
	Desc    string `json:"desc"`
	Message string `json:"message"`
}

// InvitedInfo is the public invited-page payload for one invite code.
type InvitedInfo struct {
	Activity     *models.Activity       `json:"activity"`
	User         *models.InviteeRecord  `json:"user"`
	InviteJoined []models.InviteeRecord `json:"invite_joined,omitempty"`
	Code         string                 `json:"code"`
}

// Client talks to the campaign platform with signed headers.
type Client struct {
	http       *resty.Client
	appKey     string
	appSecret  string
	platform   string
	activityID int
}

func NewClient(baseURL, appKey, appSecret, platform string, activityID int) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(1 * time.Second)
	client.SetHeaders(map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	})

	return &Client{
		http:       client,
		appKey:     appKey,
		appSecret:  appSecret,
		platform:   platform,
		activityID: activityID,
	}
}

// post sends a signed POST and returns the decoded envelope along
// with the raw response body.
func (c *Client) post(ctx context.Context, endpoint, token string, body interface{}) (*Envelope, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal request body")
	}

	fields := signatureFields{
		Nonce:         uuid.New().String(),
		Timestamp:     strconv.FormatInt(time.Now().UnixMilli(), 10),
		Authorization: token,
		AppKey:        c.appKey,
		RequestBody:   string(payload),
		Platform:      c.platform,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Nonce":         fields.Nonce,
			"Timestamp":     fields.Timestamp,
			"Authorization": fields.Authorization,
			"AppKey":        fields.AppKey,
			"Platform":      fields.Platform,
			"signature":     signature(fields, c.appSecret),
		}).
		SetBody(json.RawMessage(payload)).
		Post(endpoint)
	if err != nil {
		return nil, nil, errors.NewUpstreamError(endpoint, err)
	}
	if resp.StatusCode() >= 500 {
		return nil, nil, errors.NewUpstreamError(endpoint, fmt.Errorf("status %d", resp.StatusCode()))
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, nil, errors.NewUpstreamError(endpoint, err)
	}

	logger.Debug().
		Str("endpoint", endpoint).
		Int("code", env.Code).
		Bool("status", env.Status).
		Msg("Platform response")

	return &env, resp.Body(), nil
}

// GetActivityRaw fetches the raw activity envelope for one viewer.
// extra selects the invite lists to embed
// ("my_invite", "invite_joined" or both, comma separated).
func (c *Client) GetActivityRaw(ctx context.Context, token, extra string) ([]byte, error) {
	const endpoint = "/api/activity/act/get"

	_, body, err := c.post(ctx, endpoint, token, map[string]interface{}{
		"activity_id": c.activityID,
		"extra":       extra,
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// AcceptInvite joins the team behind the invite code. Business
// rejections (not eligible, team full, already joined, own team) come
// back as typed AppErrors; the delivery layer routes on them.
func (c *Client) AcceptInvite(ctx context.Context, token, code string) (*AcceptInviteResult, error) {
	const endpoint = "/api/activity/invite/accept"

	env, _, err := c.post(ctx, endpoint, token, map[string]interface{}{"code": code})
	if err != nil {
		return nil, err
	}
	if !env.Status {
		if appErr, ok := errors.FromUpstreamCode(env.Code, env.Desc); ok {
			return nil, appErr
		}
		return nil, errors.New(errors.ErrCodeUpstreamError, env.Desc).
			WithDetail("upstream_code", env.Code)
	}

	var result AcceptInviteResult
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result); err != nil {
			return nil, errors.NewUpstreamError(endpoint, err)
		}
	}
	return &result, nil
}

// RaiseTeam starts team-raising for the viewer and returns the fresh
// invite code.
func (c *Client) RaiseTeam(ctx context.Context, token string) (string, error) {
	const endpoint = "/api/activity/invite/do"

	env, _, err := c.post(ctx, endpoint, token, map[string]interface{}{
		"activity_id": c.activityID,
	})
	if err != nil {
		return "", err
	}
	if len(env.Data) == 0 {
		return "", errors.NewMissingDataError(endpoint)
	}

	var result struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return "", errors.NewUpstreamError(endpoint, err)
	}
	return result.Code, nil
}

// ReceiveTaskReward claims the reward of a finished task.
func (c *Client) ReceiveTaskReward(ctx context.Context, token string, taskID int) error {
	const endpoint = "/api/activity/act/reward"

	env, _, err := c.post(ctx, endpoint, token, map[string]interface{}{
		"activity_id": c.activityID,
		"task_id":     taskID,
	})
	if err != nil {
		return err
	}
	if !env.Status {
		if appErr, ok := errors.FromUpstreamCode(env.Code, env.Desc); ok {
			return appErr
		}
		return errors.New(errors.ErrCodeUpstreamError, env.Desc).
			WithDetail("upstream_code", env.Code)
	}
	return nil
}

// GiftRecords fetches the viewer's flat claimed-gift list.
func (c *Client) GiftRecords(ctx context.Context, token string) ([]models.GiftRecord, error) {
	const endpoint = "/api/activity/user/giftRecords"

	env, _, err := c.post(ctx, endpoint, token, map[string]interface{}{
		"activity_id": c.activityID,
		"page":        1,
		"page_size":   50,
	})
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, errors.NewMissingDataError(endpoint)
	}

	var result struct {
		Lists []models.GiftRecord `json:"lists"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, errors.NewUpstreamError(endpoint, err)
	}
	if result.Lists == nil {
		result.Lists = []models.GiftRecord{}
	}
	return result.Lists, nil
}

// InvitedInfo fetches the public invited-page payload for an invite
// code. This endpoint is unsigned: it renders before any login.
func (c *Client) InvitedInfo(ctx context.Context, code string) (*InvitedInfo, error) {
	endpoint := "/api/actCode/h5Page"

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"code":  code,
			"extra": "invite_joined",
		}).
		Get(endpoint)
	if err != nil {
		return nil, errors.NewUpstreamError(endpoint, err)
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, errors.NewUpstreamError(endpoint, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.NewMissingDataError(endpoint)
	}

	var info InvitedInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return nil, errors.NewUpstreamError(endpoint, err)
	}
	return &info, nil
}
