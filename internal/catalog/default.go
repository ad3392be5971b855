package catalog

// defaultActions is the built-in action set. Order matters for clients which
// group once actions before recurring ones.
var defaultActions = []Action{
	{
		Key:      "follow_twitter",
		Label:    "Follow @abc on Twitter",
		Points:   250,
		Cooldown: Once,
		Category: SocialOnce,
		Platform: "twitter",
		URL:      "https://twitter.com/intent/follow?screen_name=abc",
		Verify:   VerifyFollow,
	},
	{
		Key:      "follow_farcaster",
		Label:    "Follow @abc on Farcaster",
		Points:   250,
		Cooldown: Once,
		Category: SocialOnce,
		Platform: "farcaster",
		URL:      "https://warpcast.com/abc",
		Verify:   VerifyNone,
	},
	{
		Key:      "join_discord",
		Label:    "Join Discord",
		Points:   250,
		Cooldown: Once,
		Category: SocialOnce,
		Platform: "discord",
		URL:      "https://discord.gg/placeholder",
		Verify:   VerifyNone,
	},
	{
		Key:      "join_tg",
		Label:    "Join Telegram",
		Points:   250,
		Cooldown: Once,
		Category: SocialOnce,
		Platform: "telegram",
		URL:      "https://t.me/placeholder",
		Verify:   VerifyNone,
	},
	{
		Key:      "qt_twitter",
		Label:    "Quote Tweet",
		Points:   200,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "twitter",
		Verify:   VerifyQuote,
	},
	{
		Key:      "qt_farcaster",
		Label:    "Quote Cast",
		Points:   200,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "farcaster",
		Verify:   VerifyNone,
	},
	{
		Key:      "post_twitter",
		Label:    "Post tagging @abc on Twitter",
		Points:   300,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "twitter",
		Verify:   VerifyMention,
	},
	{
		Key:      "post_farcaster",
		Label:    "Post tagging @abc on Farcaster",
		Points:   300,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "farcaster",
		Verify:   VerifyNone,
	},
	{
		Key:      "rt_twitter",
		Label:    "Retweet",
		Points:   150,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "twitter",
		Verify:   VerifyRetweet,
	},
	{
		Key:      "rt_farcaster",
		Label:    "Recast",
		Points:   150,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "farcaster",
		Verify:   VerifyNone,
	},
	{
		Key:      "comment_twitter",
		Label:    "Comment on Twitter",
		Points:   100,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "twitter",
		Verify:   VerifyReply,
	},
	{
		Key:      "comment_farcaster",
		Label:    "Comment on Farcaster",
		Points:   100,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "farcaster",
		Verify:   VerifyNone,
	},
	{
		Key:      "like_twitter",
		Label:    "Like on Twitter",
		Points:   50,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "twitter",
		Verify:   VerifyNone,
	},
	{
		Key:      "like_farcaster",
		Label:    "Like on Farcaster",
		Points:   50,
		Cooldown: Recurring24h,
		Category: SocialRecurring,
		Platform: "farcaster",
		Verify:   VerifyNone,
	},
	{
		Key:      "daily_checkin",
		Label:    "Daily Check-in",
		Points:   50,
		Cooldown: Recurring24h,
		Category: Daily,
		Verify:   VerifyNone,
	},
	{
		Key:      "daily_post_twitter",
		Label:    "Daily Post on Twitter",
		Points:   250,
		Cooldown: Recurring24h,
		Category: Daily,
		Platform: "twitter",
		Verify:   VerifyMention,
	},
	{
		Key:      "daily_post_farcaster",
		Label:    "Daily Post on Farcaster",
		Points:   250,
		Cooldown: Recurring24h,
		Category: Daily,
		Platform: "farcaster",
		Verify:   VerifyNone,
	},
}

func Default() *Catalog {
	c, err := New(defaultActions)
	if err != nil {
		panic(err)
	}

	return c
}
