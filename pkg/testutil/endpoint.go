package testutil

import (
	"context"
	"errors"

	"github.com/pointpass/backend/pkg/api/twitter"
)

type MockTwitterEndpoint struct {
	CheckFollowingFunc func(context.Context, string) (bool, error)
	GetTweetFunc       func(context.Context, string) (twitter.Tweet, error)
}

func (e *MockTwitterEndpoint) CheckFollowing(ctx context.Context, userID string) (bool, error) {
	if e.CheckFollowingFunc != nil {
		return e.CheckFollowingFunc(ctx, userID)
	}

	return false, errors.New("not implemented")
}

func (e *MockTwitterEndpoint) GetTweet(ctx context.Context, tweetID string) (twitter.Tweet, error) {
	if e.GetTweetFunc != nil {
		return e.GetTweetFunc(ctx, tweetID)
	}

	return twitter.Tweet{}, errors.New("not implemented")
}
