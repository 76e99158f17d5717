package models

import "encoding/json"

// TaskType represents the kind of a campaign task
type TaskType int

const (
	TaskTypeGlobal TaskType = 1  // single non-tiered task ("join once")
	TaskTypeInvite TaskType = 4  // invite-tier task, threshold in extra_data
	TaskTypeSub    TaskType = 11 // sub-type task
)

// TaskStatus represents the per-user progress of a task.
// The order is meaningful: None < Finished < Received.
type TaskStatus int

const (
	TaskStatusNone     TaskStatus = 0 // not completed
	TaskStatusFinished TaskStatus = 1 // completed, reward not claimed
	TaskStatusReceived TaskStatus = 2 // reward claimed
)

// TaskExtraData is the canonical decoded shape of a task's extra_data.
// For invite-tier tasks invite_num is the number of invitees required
// to unlock the associated reward.
type TaskExtraData struct {
	InviteNum int `json:"invite_num"`
}

// Task represents one campaign task, either activity-level or from the
// user's personalized copy.
type Task struct {
	TaskID       int           `json:"task_id"`
	ActivityID   int           `json:"activity_id"`
	Name         string        `json:"name"`
	Type         TaskType      `json:"type"`
	SubType      int           `json:"sub_type"`
	IsOnce       bool          `json:"is_once"`
	IsAutoReward bool          `json:"is_auto_reward"`
	GiftID       int           `json:"gift_id"`
	GiftNum      int           `json:"gift_num"`
	ExtraData    TaskExtraData `json:"extra_data"`
	Status       TaskStatus    `json:"status"`
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Task) UnmarshalJSON(data []byte) error {
	// Сначала пробуем обычную структуру без ExtraData
	type RawTask struct {
		TaskID       int        `json:"task_id"`
		ActivityID   int        `json:"activity_id"`
		Name         string     `json:"name"`
		Type         TaskType   `json:"type"`
		SubType      int        `json:"sub_type"`
		IsOnce       bool       `json:"is_once"`
		IsAutoReward bool       `json:"is_auto_reward"`
		GiftID       int        `json:"gift_id"`
		GiftNum      int        `json:"gift_num"`
		Status       TaskStatus `json:"status"`
	}

	raw := &RawTask{}
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}

	t.TaskID = raw.TaskID
	t.ActivityID = raw.ActivityID
	t.Name = raw.Name
	t.Type = raw.Type
	t.SubType = raw.SubType
	t.IsOnce = raw.IsOnce
	t.IsAutoReward = raw.IsAutoReward
	t.GiftID = raw.GiftID
	t.GiftNum = raw.GiftNum
	t.Status = raw.Status

	// Теперь пробуем получить extra_data из разных возможных форматов
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	extraRaw, ok := rawMap["extra_data"]
	if !ok {
		t.ExtraData = TaskExtraData{}
		return nil
	}

	t.ExtraData = decodeExtraData(extraRaw)
	return nil
}

// decodeExtraData normalizes the two shapes extra_data arrives in: a
// plain JSON object or a JSON string holding encoded JSON. A failed
// decode, or a payload without a numeric invite_num, degrades to
// {invite_num: 0} so one malformed task never fails the pipeline.
func decodeExtraData(raw json.RawMessage) TaskExtraData {
	payload := []byte(raw)

	// Если пришла строка, внутри закодированный JSON
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		payload = []byte(encoded)
	}

	var probe struct {
		InviteNum *json.Number `json:"invite_num"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.InviteNum == nil {
		return TaskExtraData{InviteNum: 0}
	}

	n, err := probe.InviteNum.Int64()
	if err != nil {
		return TaskExtraData{InviteNum: 0}
	}
	return TaskExtraData{InviteNum: int(n)}
}
