package models

// ActivityConfig holds display configuration for the campaign pages.
// The derivation engine only checks presence; fields are passed through
// to the front-end untouched.
type ActivityConfig struct {
	Backgrounds                 []string `json:"backgrounds"`
	RewardIllustration          string   `json:"reward_illustration"`
	RewardModalInnerTextContent string   `json:"reward_modal_inner_text_content"`
	RewardModalOuterTextContent string   `json:"reward_modal_outer_text_content"`
}

// InviteeRecord represents one person on an invite list: either someone
// the viewer invited (my_invite) or a team the viewer joined
// (invite_joined).
type InviteeRecord struct {
	UserID     int    `json:"user_id"`
	MemberID   string `json:"member_id"`
	InviteID   int    `json:"invite_id"`
	InviterID  string `json:"inviter_id"`
	ActivityID int    `json:"activity_id"`
	Nickname   string `json:"nickname"`
	Avatar     string `json:"avatar"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// UserState is the viewer's personalized slice of the activity. A nil
// UserState means the viewer is unauthenticated in this context.
type UserState struct {
	UserID   int    `json:"user_id"`
	Step     int    `json:"step"` // 0 = team-raising not started, >0 = current UI step
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Tasks    []Task `json:"tasks"`
}

// Activity is the root snapshot of one promotional campaign instance,
// fetched fresh from the campaign platform on every page mount or
// explicit reload. It is immutable once obtained.
type Activity struct {
	GuildID     string          `json:"guild_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Config      *ActivityConfig `json:"config"`
	Gifts       []Reward        `json:"gifts"`
	Tasks       []Task          `json:"tasks"`
	User        *UserState      `json:"user"`
	// Invite is the raw invite link; the invite code is its last path
	// segment before the query string.
	Invite       string          `json:"invite"`
	MyInvite     []InviteeRecord `json:"my_invite,omitempty"`
	InviteJoined []InviteeRecord `json:"invite_joined,omitempty"`
	StartTime    int64           `json:"start_time"`
	EndTime      int64           `json:"end_time"`
}
