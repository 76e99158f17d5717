// Package parser normalizes the raw campaign-platform response into a
// typed activity snapshot. All shape tolerance lives here, at the
// boundary: downstream code never branches on runtime shapes again.
package parser

import (
	"encoding/json"

	"github.com/FBSocial/subway2-team-activities/internal/common/errors"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
)

type envelope struct {
	Status    bool            `json:"status"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Desc      string          `json:"desc"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

// Parse decodes a raw activity response body into an Activity.
//
// Per-task extra_data anomalies (string-encoded JSON, bad JSON, a
// missing invite_num) degrade that single task to {invite_num: 0} and
// never fail the parse. The only hard failure is a response with no
// data payload at all, reported as a MISSING_DATA error.
func Parse(payload []byte) (*models.Activity, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamError, "undecodable activity response")
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.NewMissingDataError("/api/activity/act/get")
	}

	var activity models.Activity
	if err := json.Unmarshal(env.Data, &activity); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamError, "malformed activity payload")
	}

	if activity.Tasks == nil {
		activity.Tasks = []models.Task{}
	}
	if activity.Gifts == nil {
		activity.Gifts = []models.Reward{}
	}

	return &activity, nil
}
