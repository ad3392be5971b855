package twitter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pointpass/backend/config"
	"github.com/pointpass/backend/pkg/api"
	"github.com/pointpass/backend/pkg/xcontext"
)

const (
	followersPageSize = 1000
	followersMaxPages = 20
)

type Endpoint struct {
	cfg config.TwitterConfigs

	official api.Generator
	ioapi    api.Generator
}

func New(cfg config.TwitterConfigs) *Endpoint {
	return &Endpoint{
		cfg:      cfg,
		official: api.NewGenerator(cfg.APIEndpoint),
		ioapi:    api.NewGenerator(cfg.IOAPIEndpoint),
	}
}

// CheckFollowing scans the follower list of the official account for the
// given user id. The official API has no direct "does A follow B" call, so
// the list is paginated until the user is found or followersMaxPages pages
// are exhausted.
func (e *Endpoint) CheckFollowing(ctx context.Context, userID string) (bool, error) {
	nextToken := ""
	for page := 0; page < followersMaxPages; page++ {
		query := api.Parameter{
			"max_results": strconv.Itoa(followersPageSize),
			"user.fields": "id",
		}
		if nextToken != "" {
			query["pagination_token"] = nextToken
		}

		resp, err := e.official.New("/users/%s/followers", e.cfg.AccountID).
			Header("Authorization", "Bearer "+e.cfg.BearerToken).
			Query(query).
			GET(ctx)
		if err != nil {
			return false, err
		}

		if resp.Code != 200 {
			xcontext.Logger(ctx).Warnf("Invalid followers response code %d: %s", resp.Code, resp.RawBody)
			return false, fmt.Errorf("invalid status code %d", resp.Code)
		}

		body, err := resp.JSON()
		if err != nil {
			return false, err
		}

		followers, err := body.GetArray("data")
		if err != nil {
			return false, err
		}

		for _, follower := range followers {
			id, err := follower.GetString("id")
			if err != nil {
				continue
			}

			if id == userID {
				return true, nil
			}
		}

		meta, err := body.GetJSON("meta")
		if err != nil || meta == nil {
			break
		}

		nextToken, _ = meta.GetString("next_token")
		if nextToken == "" {
			break
		}
	}

	return false, nil
}

func (e *Endpoint) GetTweet(ctx context.Context, tweetID string) (Tweet, error) {
	if e.cfg.IOAPIKey != "" {
		return e.getTweetFromIOAPI(ctx, tweetID)
	}

	return e.getTweetFromOfficialAPI(ctx, tweetID)
}

// getTweetFromIOAPI uses twitterapi.io, which returns the referenced tweets
// as inline objects rather than a referenced_tweets list.
func (e *Endpoint) getTweetFromIOAPI(ctx context.Context, tweetID string) (Tweet, error) {
	resp, err := e.ioapi.New("/twitter/tweets").
		Header("X-API-Key", e.cfg.IOAPIKey).
		Query(api.Parameter{"tweet_ids": tweetID}).
		GET(ctx)
	if err != nil {
		return Tweet{}, err
	}

	if resp.Code == 404 {
		return Tweet{}, ErrTweetNotFound
	}

	if resp.Code != 200 {
		xcontext.Logger(ctx).Warnf("Invalid tweet response code %d: %s", resp.Code, resp.RawBody)
		return Tweet{}, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, err := resp.JSON()
	if err != nil {
		return Tweet{}, err
	}

	if status, err := body.GetString("status"); err == nil && status == "error" {
		return Tweet{}, ErrTweetNotFound
	}

	tweets, err := body.GetArray("tweets")
	if err != nil || len(tweets) == 0 {
		return Tweet{}, ErrTweetNotFound
	}

	raw := tweets[0]
	author, err := raw.GetJSON("author")
	if err != nil || author == nil {
		return Tweet{}, ErrTweetNotFound
	}

	authorID, err := author.GetString("id")
	if err != nil {
		return Tweet{}, ErrTweetNotFound
	}

	text, _ := raw.GetString("text")
	isReply, _ := raw.GetBool("isReply")
	_, hasQuote := raw["quoted_tweet"]
	_, hasRetweet := raw["retweeted_tweet"]

	return Tweet{
		ID:        tweetID,
		AuthorID:  authorID,
		Text:      text,
		IsQuote:   hasQuote && raw["quoted_tweet"] != nil,
		IsRetweet: hasRetweet && raw["retweeted_tweet"] != nil,
		IsReply:   isReply,
	}, nil
}

func (e *Endpoint) getTweetFromOfficialAPI(ctx context.Context, tweetID string) (Tweet, error) {
	resp, err := e.official.New("/tweets/%s", tweetID).
		Header("Authorization", "Bearer "+e.cfg.BearerToken).
		Query(api.Parameter{
			"tweet.fields": "author_id,created_at,referenced_tweets",
			"expansions":   "author_id",
		}).
		GET(ctx)
	if err != nil {
		return Tweet{}, err
	}

	if resp.Code == 404 {
		return Tweet{}, ErrTweetNotFound
	}

	if resp.Code != 200 {
		xcontext.Logger(ctx).Warnf("Invalid tweet response code %d: %s", resp.Code, resp.RawBody)
		return Tweet{}, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, err := resp.JSON()
	if err != nil {
		return Tweet{}, err
	}

	data, err := body.GetJSON("data")
	if err != nil || data == nil {
		return Tweet{}, ErrTweetNotFound
	}

	authorID, err := data.GetString("author_id")
	if err != nil {
		return Tweet{}, ErrTweetNotFound
	}

	text, _ := data.GetString("text")
	tweet := Tweet{ID: tweetID, AuthorID: authorID, Text: text}

	references, err := data.GetArray("referenced_tweets")
	if err == nil {
		for _, ref := range references {
			refType, err := ref.GetString("type")
			if err != nil {
				continue
			}

			switch refType {
			case "quoted":
				tweet.IsQuote = true
			case "retweeted":
				tweet.IsRetweet = true
			case "replied_to":
				tweet.IsReply = true
			}
		}
	}

	return tweet, nil
}
