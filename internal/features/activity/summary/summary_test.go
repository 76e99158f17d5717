package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
)

func inviteTask(id, inviteNum int, name string) models.Task {
	return models.Task{
		TaskID:    id,
		Name:      name,
		Type:      models.TaskTypeInvite,
		ExtraData: models.TaskExtraData{InviteNum: inviteNum},
	}
}

func TestProcessUserInviteTasksStableSort(t *testing.T) {
	activity := &models.Activity{User: &models.UserState{Tasks: []models.Task{
		inviteTask(1, 5, "five-a"),
		inviteTask(2, 1, "one"),
		inviteTask(3, 5, "five-b"),
		inviteTask(4, 3, "three"),
		{TaskID: 5, Type: models.TaskTypeGlobal, Name: "join"},
	}}}

	sorted := ProcessUserInviteTasks(activity)
	require.Len(t, sorted, 4)

	// Восходящая сортировка по порогу, статус-кво при равенстве
	assert.Equal(t, []int{2, 4, 1, 3}, []int{
		sorted[0].TaskID, sorted[1].TaskID, sorted[2].TaskID, sorted[3].TaskID,
	})
	assert.Equal(t, "five-a", sorted[2].Name)
	assert.Equal(t, "five-b", sorted[3].Name)
}

func TestProcessUserInviteTasksNilSafety(t *testing.T) {
	assert.Empty(t, ProcessUserInviteTasks(nil))
	assert.Empty(t, ProcessUserInviteTasks(&models.Activity{}))
	assert.Empty(t, ProcessUserInviteTasks(&models.Activity{User: &models.UserState{}}))
}

func testActivity() *models.Activity {
	return &models.Activity{
		Title:       "subway2 team-up",
		Description: "invite friends, win gifts",
		StartTime:   100,
		EndTime:     200,
		Invite:      "https://fb.example/act/h5/ABC123?from=share",
		Gifts: []models.Reward{
			{GiftID: 1, Name: "tier one"},
			{GiftID: 2, Name: "tier two"},
			{GiftID: 9, Name: "grand"},
		},
		Tasks: []models.Task{
			{TaskID: 100, Type: models.TaskTypeGlobal, GiftID: 9},
		},
		User: &models.UserState{
			UserID: 77,
			Step:   1,
			Tasks: []models.Task{
				{TaskID: 100, Type: models.TaskTypeGlobal, GiftID: 9, Status: models.TaskStatusFinished},
				inviteTask(102, 3, "invite three"),
				inviteTask(101, 1, "invite one"),
			},
		},
		MyInvite: []models.InviteeRecord{
			{UserID: 1, Nickname: "alice"},
			{UserID: 2, Nickname: "bob"},
		},
		InviteJoined: []models.InviteeRecord{{UserID: 3, Nickname: "carol"}},
	}
}

func TestSummarize(t *testing.T) {
	activity := testActivity()
	activity.User.Tasks[1].GiftID = 1 // invite three -> tier one
	activity.User.Tasks[2].GiftID = 2 // invite one -> tier two

	state := Summarize(activity, 150)

	assert.Equal(t, "subway2 team-up", state.ActivityTitle)
	assert.True(t, state.ActivityStatus.IsActivityInProgress)
	assert.Equal(t, "ABC123", state.InviteCode)
	assert.True(t, state.IsUserGroupStarted)

	// Invite tasks come back tier-sorted; names follow that order.
	require.Len(t, state.UserInviteTasks, 2)
	assert.Equal(t, 101, state.UserInviteTasks[0].TaskID)
	assert.Equal(t, 102, state.UserInviteTasks[1].TaskID)
	assert.Equal(t, []string{"invite one", "invite three"}, state.UserTasksNameList)

	// Statuses stay aligned with the FULL unsorted personal task set.
	require.Len(t, state.UserTasksStatusList, 3)
	assert.Equal(t, models.TaskStatusFinished, state.UserTasksStatusList[0])

	// Rewards resolved from the sorted invite tasks.
	require.Len(t, state.UserRewards, 2)
	assert.Equal(t, "tier two", state.UserRewards[0].Name)
	assert.Equal(t, "tier one", state.UserRewards[1].Name)

	require.NotNil(t, state.UserGlobalTask)
	assert.Equal(t, 100, state.UserGlobalTask.TaskID)
	require.NotNil(t, state.GlobalTask)
	require.NotNil(t, state.InviteReward)
	assert.Equal(t, "grand", state.InviteReward.Name)
	assert.False(t, state.IsRewardReceived)

	// Two invitees vs two resolvable rewards: exact match.
	assert.True(t, state.InvitationsMatchRewards)
}

func TestSummarizeInvitationsMatchIsEquality(t *testing.T) {
	activity := testActivity()
	activity.User.Tasks[1].GiftID = 1
	activity.User.Tasks[2].GiftID = 2

	// 2 приглашённых, 2 награды
	assert.True(t, Summarize(activity, 150).InvitationsMatchRewards)

	// More invitees than rewards is NOT a match.
	activity.MyInvite = append(activity.MyInvite, models.InviteeRecord{UserID: 4})
	assert.False(t, Summarize(activity, 150).InvitationsMatchRewards)

	// Fewer invitees than rewards is not a match either.
	activity.MyInvite = activity.MyInvite[:1]
	assert.False(t, Summarize(activity, 150).InvitationsMatchRewards)

	// An orphaned gift_id shrinks the reward side of the comparison.
	activity.MyInvite = activity.MyInvite[:1]
	activity.User.Tasks[1].GiftID = 99
	assert.True(t, Summarize(activity, 150).InvitationsMatchRewards)
}

func TestSummarizeEmptyViewer(t *testing.T) {
	activity := &models.Activity{Title: "bare", StartTime: 100, EndTime: 200}

	state := Summarize(activity, 50)

	assert.NotNil(t, state.UserTasks)
	assert.Empty(t, state.UserTasks)
	assert.Empty(t, state.UserInviteTasks)
	assert.Empty(t, state.UserTasksNameList)
	assert.Empty(t, state.UserTasksStatusList)
	assert.Empty(t, state.InviteUserList)
	assert.Empty(t, state.InviteJoined)
	assert.Empty(t, state.UserRewards)
	assert.Nil(t, state.UserGlobalTask)
	assert.Nil(t, state.GlobalTask)
	assert.Nil(t, state.InviteReward)
	assert.Equal(t, "", state.InviteCode)
	assert.False(t, state.IsUserGroupStarted)
	assert.False(t, state.IsRewardReceived)
	assert.True(t, state.ActivityStatus.IsActivityNotStartedOrEnded)

	// Пустые списки совпадают по длине
	assert.True(t, state.InvitationsMatchRewards)
}

func TestSummarizeIsPure(t *testing.T) {
	activity := testActivity()

	first := Summarize(activity, 150)
	second := Summarize(activity, 150)

	assert.Equal(t, first, second)
}

func TestSummarizeRewardReceived(t *testing.T) {
	activity := testActivity()
	activity.User.Tasks[0].Status = models.TaskStatusReceived

	state := Summarize(activity, 150)
	assert.True(t, state.IsRewardReceived)
}
