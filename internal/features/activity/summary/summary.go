// Package summary composes the lifecycle, resolver and progress rules
// into the single derived-state object every page consumes.
package summary

import (
	"sort"

	"github.com/FBSocial/subway2-team-activities/internal/features/activity/lifecycle"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/resolver"
	"github.com/FBSocial/subway2-team-activities/internal/features/invite"
)

// ProcessUserInviteTasks extracts the viewer's invite-tier tasks and
// sorts them ascending by invite_num. The sort is stable: tasks with an
// equal threshold keep their original relative order, which is
// observable in the tier labels shown to the user.
func ProcessUserInviteTasks(activity *models.Activity) []models.Task {
	if activity == nil || activity.User == nil || activity.User.Tasks == nil {
		return []models.Task{}
	}

	tasks := resolver.InviteTasks(activity.User.Tasks)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ExtraData.InviteNum < tasks[j].ExtraData.InviteNum
	})
	return tasks
}

// Summarize derives the full activity state for one snapshot at the
// given time (epoch seconds). It is pure: identical input and now
// produce deep-equal output, it reads no shared state, and it never
// fails, missing optional data degrades to empty defaults.
func Summarize(activity *models.Activity, now int64) models.DerivedState {
	status := lifecycle.Evaluate(activity, now)

	var userTasks []models.Task
	if activity.User != nil && activity.User.Tasks != nil {
		userTasks = activity.User.Tasks
	} else {
		userTasks = []models.Task{}
	}

	userInviteTasks := ProcessUserInviteTasks(activity)

	// Tier-ordered labels, aligned with userInviteTasks.
	nameList := make([]string, 0, len(userInviteTasks))
	for _, t := range userInviteTasks {
		nameList = append(nameList, t.Name)
	}

	// Statuses over the FULL unsorted task set, aligned with userTasks.
	// Not the same index space as nameList; see DerivedState docs.
	statusList := make([]models.TaskStatus, 0, len(userTasks))
	for _, t := range userTasks {
		statusList = append(statusList, t.Status)
	}

	userRewards := resolver.RewardsForTasks(activity.Gifts, userInviteTasks)

	inviteUserList := activity.MyInvite
	if inviteUserList == nil {
		inviteUserList = []models.InviteeRecord{}
	}
	inviteJoined := activity.InviteJoined
	if inviteJoined == nil {
		inviteJoined = []models.InviteeRecord{}
	}

	userGlobalTask := resolver.UserGlobalTask(userTasks)

	var step int
	if activity.User != nil {
		step = activity.User.Step
	}

	return models.DerivedState{
		ActivityTitle:           activity.Title,
		ActivityDescription:     activity.Description,
		ActivityStartTime:       activity.StartTime,
		ActivityEndTime:         activity.EndTime,
		ActivityStatus:          status,
		Gifts:                   activity.Gifts,
		UserTasks:               userTasks,
		UserInviteTasks:         userInviteTasks,
		UserTasksNameList:       nameList,
		UserTasksStatusList:     statusList,
		UserGlobalTask:          userGlobalTask,
		GlobalTask:              resolver.GlobalTask(activity),
		InviteReward:            resolver.InviteReward(activity),
		InviteCode:              invite.ExtractCode(activity.Invite),
		InviteJoined:            inviteJoined,
		InviteUserList:          inviteUserList,
		UserRewards:             userRewards,
		InvitationsMatchRewards: len(inviteUserList) == len(userRewards),
		IsUserGroupStarted:      step > 0,
		IsRewardReceived:        resolver.IsTaskRewardReceived(userGlobalTask),
	}
}
