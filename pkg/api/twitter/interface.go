package twitter

import (
	"context"
	"errors"
)

// ErrTweetNotFound reports that a tweet id resolved to nothing, as opposed
// to the endpoint being unreachable.
var ErrTweetNotFound = errors.New("tweet not found")

type IEndpoint interface {
	// CheckFollowing reports whether the user follows the configured
	// official account.
	CheckFollowing(ctx context.Context, userID string) (bool, error)

	// GetTweet fetches a single tweet by id. It returns ErrTweetNotFound
	// when the tweet does not exist.
	GetTweet(ctx context.Context, tweetID string) (Tweet, error)
}
