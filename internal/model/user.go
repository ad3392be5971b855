package model

type User struct {
	ID                string `json:"id"`
	SocialID          string `json:"social_id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	WalletAddress     string `json:"wallet_address,omitempty"`
	Points            uint64 `json:"points"`
	ReferralCode      string `json:"referral_code"`
	ReferralCount     uint64 `json:"referral_count"`
}

type RegisterUserRequest struct {
	// IdentityToken proves who is registering. The account is keyed by the
	// subject inside it, never by the profile fields below.
	IdentityToken string `json:"identity_token"`

	TwitterID         string `json:"twitter_id"`
	FarcasterFid      int64  `json:"farcaster_fid"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
	ReferralCode      string `json:"referral_code"`
}

type RegisterUserResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	Created     bool   `json:"created"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User           User   `json:"user"`
	Rank           uint64 `json:"rank"`
	RewardTier     string `json:"reward_tier"`
	LotteryTickets uint64 `json:"lottery_tickets"`
	LastCheckInAt  string `json:"last_check_in_at,omitempty"`

	// Capability flags tell the client which verifications this deployment
	// runs, so it knows when to ask the user for a tweet link.
	TwitterVerificationEnabled      bool `json:"twitter_verification_enabled"`
	TwitterTweetVerificationEnabled bool `json:"twitter_tweet_verification_enabled"`
}

type UpdateWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
}

type UpdateWalletResponse struct{}

type GetReferralRequest struct {
	Code string `json:"code"`
}

type GetReferralResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}
