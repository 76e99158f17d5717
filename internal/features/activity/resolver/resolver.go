// Package resolver maps tasks to their rewards and filters tasks by
// type. These are stable filter/map primitives: order is preserved and
// nothing here sorts; tier ordering is the aggregator's job.
package resolver

import "github.com/FBSocial/subway2-team-activities/internal/features/activity/models"

// RewardsForTasks maps each task to its reward via gift_id, preserving
// task order. Tasks whose gift_id has no matching reward are dropped
// silently.
func RewardsForTasks(gifts []models.Reward, tasks []models.Task) []models.Reward {
	byGiftID := make(map[int]models.Reward, len(gifts))
	for _, g := range gifts {
		byGiftID[g.GiftID] = g
	}

	rewards := make([]models.Reward, 0, len(tasks))
	for _, t := range tasks {
		if g, ok := byGiftID[t.GiftID]; ok {
			rewards = append(rewards, g)
		}
	}
	return rewards
}

// GlobalTask returns the first activity-level task of the global type,
// or nil if there is none.
func GlobalTask(activity *models.Activity) *models.Task {
	if activity == nil {
		return nil
	}
	return findGlobalTask(activity.Tasks)
}

// UserGlobalTask returns the first global-type task from the user's
// personal task list.
func UserGlobalTask(tasks []models.Task) *models.Task {
	return findGlobalTask(tasks)
}

func findGlobalTask(tasks []models.Task) *models.Task {
	for i := range tasks {
		if tasks[i].Type == models.TaskTypeGlobal {
			return &tasks[i]
		}
	}
	return nil
}

// InviteTasks filters invite-type tasks, keeping original order.
func InviteTasks(tasks []models.Task) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Type == models.TaskTypeInvite {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// InviteReward returns the reward tied to the activity's global task,
// or nil if there is no global task or no matching gift.
func InviteReward(activity *models.Activity) *models.Reward {
	gt := GlobalTask(activity)
	if gt == nil || activity == nil {
		return nil
	}
	for i := range activity.Gifts {
		if activity.Gifts[i].GiftID == gt.GiftID {
			return &activity.Gifts[i]
		}
	}
	return nil
}

// IsTaskRewardReceived reports whether the task's reward has been
// claimed. Nil-safe for absent tasks.
func IsTaskRewardReceived(task *models.Task) bool {
	return task != nil && task.Status == models.TaskStatusReceived
}

// CdKeyForGift scans the flat gift-record list for the given gift_id
// and returns its redeem code. The second result is false when no
// record matches or the record carries no code.
func CdKeyForGift(records []models.GiftRecord, giftID int) (string, bool) {
	for _, r := range records {
		if r.GiftID != giftID {
			continue
		}
		if r.ExtraData.CdKey == "" {
			return "", false
		}
		return r.ExtraData.CdKey, true
	}
	return "", false
}
