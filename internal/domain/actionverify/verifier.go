// Package actionverify gates action claims behind external social checks.
// Every check degrades to a structured claim failure, a broken upstream never
// turns into a fatal error.
package actionverify

import (
	"context"
	"errors"
	"strings"

	"github.com/pointpass/backend/config"
	"github.com/pointpass/backend/internal/catalog"
	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/pkg/api/twitter"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

type Verifier struct {
	caps           config.VerificationCapabilities
	officialHandle string
	endpoint       twitter.IEndpoint

	// Follows do not get un-verified, so positive results are kept to avoid
	// re-walking the follower list on every retry.
	verifiedFollows *xsync.MapOf[string, bool]
}

func New(
	caps config.VerificationCapabilities, officialHandle string, endpoint twitter.IEndpoint,
) *Verifier {
	return &Verifier{
		caps:            caps,
		officialHandle:  strings.TrimPrefix(officialHandle, "@"),
		endpoint:        endpoint,
		verifiedFollows: xsync.NewMapOf[bool](),
	}
}

// Verify runs the check the action declares. It returns nil when the claim may
// proceed, either because the check passed or because the deployment has no
// credentials for it.
func (v *Verifier) Verify(
	ctx context.Context, user *entity.User, action catalog.Action, tweetURL string,
) error {
	switch action.Verify {
	case catalog.VerifyFollow:
		return v.verifyFollow(ctx, user)

	case catalog.VerifyQuote, catalog.VerifyRetweet, catalog.VerifyReply, catalog.VerifyMention:
		return v.verifyTweet(ctx, user, action, tweetURL)
	}

	return nil
}

func (v *Verifier) verifyFollow(ctx context.Context, user *entity.User) error {
	if !v.caps.FollowCheck {
		return nil
	}

	if _, ok := v.verifiedFollows.Load(user.SocialID); ok {
		return nil
	}

	follows, err := v.endpoint.CheckFollowing(ctx, user.SocialID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check the follow of %s: %v", user.SocialID, err)
		return errorx.New(errorx.FollowNotVerified, "Follow our X account first, then try again.")
	}

	if !follows {
		return errorx.New(errorx.FollowNotVerified, "Follow our X account first, then try again.")
	}

	v.verifiedFollows.Store(user.SocialID, true)
	return nil
}

func (v *Verifier) verifyTweet(
	ctx context.Context, user *entity.User, action catalog.Action, tweetURL string,
) error {
	if !v.caps.PostCheck {
		return nil
	}

	tweetURL = strings.TrimSpace(tweetURL)
	if tweetURL == "" {
		return errorx.New(errorx.LinkRequired, "Paste your tweet link to verify.")
	}

	tweetID, ok := ParseTweetURL(tweetURL)
	if !ok {
		return errorx.New(errorx.LinkInvalid,
			"Invalid tweet link. Use a link like https://x.com/username/status/123...")
	}

	tweet, err := v.endpoint.GetTweet(ctx, tweetID)
	if err != nil {
		if !errors.Is(err, twitter.ErrTweetNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot fetch tweet %s: %v", tweetID, err)
		}

		return errorx.New(errorx.ContentUnavailable,
			"Could not load that tweet. Check the link or try again later.")
	}

	if tweet.AuthorID != user.SocialID {
		return errorx.New(errorx.AuthorMismatch, "That tweet was not posted by your account.")
	}

	switch action.Verify {
	case catalog.VerifyQuote:
		if !tweet.IsQuote {
			return errorx.New(errorx.RequirementNotMet, "That tweet is not a Quote Tweet.")
		}

	case catalog.VerifyRetweet:
		if !tweet.IsRetweet {
			return errorx.New(errorx.RequirementNotMet, "That tweet is not a Retweet.")
		}

	case catalog.VerifyReply:
		if !tweet.IsReply {
			return errorx.New(errorx.RequirementNotMet, "That tweet is not a reply/comment.")
		}

	case catalog.VerifyMention:
		if !tweet.MentionsHandle(v.officialHandle) {
			return errorx.New(errorx.RequirementNotMet,
				"Your post must mention @%s.", v.officialHandle)
		}
	}

	return nil
}
