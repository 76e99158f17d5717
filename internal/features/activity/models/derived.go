package models

// ActivityStatus bundles the four lifecycle flags. Presentation code
// branches on combinations of them independently, so the algebra must
// hold exactly: InProgress == Started && !Ended, and
// NotStartedOrEnded == !InProgress.
type ActivityStatus struct {
	IsActivityStarted           bool `json:"is_activity_started"`
	IsActivityEnded             bool `json:"is_activity_ended"`
	IsActivityInProgress        bool `json:"is_activity_in_progress"`
	IsActivityNotStartedOrEnded bool `json:"is_activity_not_started_or_ended"`
}

// DerivedState is the read-only summary every page consumes. It is
// re-derived from a fresh snapshot on each fetch; all fields are
// present even when upstream data is partial (empty slices, nil
// pointers), never an error.
//
// UserTasksStatusList is positionally aligned with UserTasks (the
// full, unsorted personal task set). UserTasksNameList is positionally
// aligned with UserInviteTasks (invite-only, tier-sorted). The two
// lists intentionally do NOT share an index space; consumers index
// them by different keys. Do not unify them.
type DerivedState struct {
	ActivityTitle       string          `json:"activity_title"`
	ActivityDescription string          `json:"activity_description"`
	ActivityStartTime   int64           `json:"activity_start_time"`
	ActivityEndTime     int64           `json:"activity_end_time"`
	ActivityStatus      ActivityStatus  `json:"activity_status"`
	Gifts               []Reward        `json:"gifts"`
	UserTasks           []Task          `json:"user_tasks"`
	UserInviteTasks     []Task          `json:"user_invite_tasks"`
	UserTasksNameList   []string        `json:"user_tasks_name_list"`
	UserTasksStatusList []TaskStatus    `json:"user_tasks_status_list"`
	UserGlobalTask      *Task           `json:"user_global_task,omitempty"`
	GlobalTask          *Task           `json:"global_task,omitempty"`
	InviteReward        *Reward         `json:"invite_reward,omitempty"`
	InviteCode          string          `json:"invite_code"`
	InviteJoined        []InviteeRecord `json:"invite_joined"`
	InviteUserList      []InviteeRecord `json:"invite_user_list"`
	UserRewards         []Reward        `json:"user_rewards"`
	// InvitationsMatchRewards is true exactly when the viewer's invite
	// count equals the number of resolvable invite-tier rewards, i.e.
	// every tier is unlocked. Equality, not >=.
	InvitationsMatchRewards bool `json:"invitations_match_rewards"`
	IsUserGroupStarted      bool `json:"is_user_group_started"`
	IsRewardReceived        bool `json:"is_reward_received"`
}
