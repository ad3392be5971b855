package model

type Action struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Points   uint64 `json:"points"`
	Cooldown string `json:"cooldown"`
	Category string `json:"category"`
	Platform string `json:"platform,omitempty"`
	URL      string `json:"url,omitempty"`
}

type ClaimActionRequest struct {
	Action   string `json:"action"`
	TweetURL string `json:"tweet_url"`
}

type ClaimActionResponse struct {
	PointsAwarded uint64 `json:"points_awarded"`
	TotalPoints   uint64 `json:"total_points"`
}

type ActionStatus struct {
	Action

	Available      bool   `json:"available"`
	Completed      bool   `json:"completed"`
	CooldownEndsAt string `json:"cooldown_ends_at,omitempty"`
}

type GetMyActionsRequest struct{}

type GetMyActionsResponse struct {
	Actions []ActionStatus `json:"actions"`
}
