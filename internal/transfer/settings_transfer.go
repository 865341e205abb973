package transfer

type SettingsUpdate struct {
	Frequency   string   `json:"frequency"`
	Channels    []string `json:"channels"`
	PostingTime string   `json:"posting_time"`
}
