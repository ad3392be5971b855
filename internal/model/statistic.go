package model

type LeaderBoardEntry struct {
	UserID            string `json:"user_id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Points            uint64 `json:"points"`
	Rank              uint64 `json:"rank"`
}

type GetLeaderBoardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []LeaderBoardEntry `json:"leaderboard"`
	Total       uint64             `json:"total"`
}

type GetRankRequest struct{}

type GetRankResponse struct {
	Rank           uint64 `json:"rank"`
	Points         uint64 `json:"points"`
	RewardTier     string `json:"reward_tier"`
	LotteryTickets uint64 `json:"lottery_tickets"`
}

type GetCutoffRequest struct{}

type GetCutoffResponse struct {
	Top100Cutoff uint64 `json:"top100_cutoff"`
	Top500Cutoff uint64 `json:"top500_cutoff"`
	TotalUsers   uint64 `json:"total_users"`
}
