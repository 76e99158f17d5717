package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUnmarshalExtraData(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		inviteNum int
	}{
		{
			name:      "plain object",
			payload:   `{"task_id":1,"type":4,"extra_data":{"invite_num":5}}`,
			inviteNum: 5,
		},
		{
			name:      "string-encoded object",
			payload:   `{"task_id":1,"type":4,"extra_data":"{\"invite_num\":7}"}`,
			inviteNum: 7,
		},
		{
			name:      "string-encoded empty object",
			payload:   `{"task_id":1,"type":4,"extra_data":"{}"}`,
			inviteNum: 0,
		},
		{
			name:      "string with broken json",
			payload:   `{"task_id":1,"type":4,"extra_data":"not json at all"}`,
			inviteNum: 0,
		},
		{
			name:      "missing extra_data",
			payload:   `{"task_id":1,"type":4}`,
			inviteNum: 0,
		},
		{
			name:      "null extra_data",
			payload:   `{"task_id":1,"type":4,"extra_data":null}`,
			inviteNum: 0,
		},
		{
			name:      "object without invite_num",
			payload:   `{"task_id":1,"type":4,"extra_data":{"other":true}}`,
			inviteNum: 0,
		},
		{
			name:      "invite_num as quoted string",
			payload:   `{"task_id":1,"type":4,"extra_data":{"invite_num":"9"}}`,
			inviteNum: 0,
		},
		{
			name:      "extra_data as array",
			payload:   `{"task_id":1,"type":4,"extra_data":[1,2,3]}`,
			inviteNum: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &task))
			assert.Equal(t, tt.inviteNum, task.ExtraData.InviteNum)
			assert.Equal(t, 1, task.TaskID)
			assert.Equal(t, TaskTypeInvite, task.Type)
		})
	}
}

func TestTaskUnmarshalKeepsSiblingFields(t *testing.T) {
	payload := `{
		"task_id": 42,
		"activity_id": 7,
		"name": "invite three friends",
		"type": 4,
		"sub_type": 11,
		"is_once": true,
		"is_auto_reward": false,
		"gift_id": 3,
		"gift_num": 1,
		"extra_data": "garbage",
		"status": 1
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(payload), &task))

	assert.Equal(t, 42, task.TaskID)
	assert.Equal(t, 7, task.ActivityID)
	assert.Equal(t, "invite three friends", task.Name)
	assert.Equal(t, TaskTypeInvite, task.Type)
	assert.Equal(t, 11, task.SubType)
	assert.True(t, task.IsOnce)
	assert.False(t, task.IsAutoReward)
	assert.Equal(t, 3, task.GiftID)
	assert.Equal(t, TaskStatusFinished, task.Status)
	// Деградация только для extra_data, остальное не трогаем
	assert.Equal(t, 0, task.ExtraData.InviteNum)
}

func TestTaskUnmarshalInsideList(t *testing.T) {
	// One malformed task must not poison the rest of the list.
	payload := `[
		{"task_id":1,"type":4,"extra_data":{"invite_num":2}},
		{"task_id":2,"type":4,"extra_data":"{broken"},
		{"task_id":3,"type":4,"extra_data":{"invite_num":6}}
	]`

	var tasks []Task
	require.NoError(t, json.Unmarshal([]byte(payload), &tasks))
	require.Len(t, tasks, 3)
	assert.Equal(t, 2, tasks[0].ExtraData.InviteNum)
	assert.Equal(t, 0, tasks[1].ExtraData.InviteNum)
	assert.Equal(t, 6, tasks[2].ExtraData.InviteNum)
}
