package models

// RewardPrize is one prize line inside a Reward. Opaque to the
// derivation engine, forwarded to the front-end as-is.
type RewardPrize struct {
	ID      int `json:"id"`
	PrizeID int `json:"prize_id"`
	Prize   struct {
		PrizeID int    `json:"prize_id"`
		Name    string `json:"name"`
		Type    int    `json:"type"`
	} `json:"prize"`
	PrizeNum int `json:"prize_num"`
}

// Reward represents one gift tier of the activity, keyed by GiftID.
type Reward struct {
	GiftID     int           `json:"gift_id"`
	ActivityID int           `json:"activity_id"`
	Name       string        `json:"name"`
	Img        string        `json:"img"`
	Type       int           `json:"type"`
	Prizes     []RewardPrize `json:"prizes"`
}

// GiftRecordExtra carries the redeem code of a claimed gift.
type GiftRecordExtra struct {
	CdKey string `json:"cdkey"`
}

// GiftRecord is one row of the viewer's claimed-gift history, returned
// by the giftRecords endpoint as a flat list.
type GiftRecord struct {
	GiftID    int             `json:"gift_id"`
	ExtraData GiftRecordExtra `json:"extra_data"`
	Gift      struct {
		Name string `json:"name"`
		Img  string `json:"img"`
		Num  int    `json:"num"`
	} `json:"gift"`
	SourceData struct {
		Type TaskType `json:"type"`
	} `json:"source_data"`
}
