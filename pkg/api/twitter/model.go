package twitter

import "strings"

type Tweet struct {
	ID       string
	AuthorID string
	Text     string

	IsQuote   bool
	IsRetweet bool
	IsReply   bool
}

// MentionsHandle reports whether the tweet text mentions @handle. The
// leading @ of handle is optional.
func (t Tweet) MentionsHandle(handle string) bool {
	h := strings.ToLower(strings.TrimPrefix(handle, "@"))
	return strings.Contains(strings.ToLower(t.Text), "@"+h)
}
