package actionverify

import "regexp"

var tweetURLRegexp = regexp.MustCompile(`(?i)(?:twitter\.com|x\.com)/[^/]+/status/(\d+)`)

// ParseTweetURL extracts the tweet id from a twitter.com or x.com status link.
func ParseTweetURL(rawURL string) (string, bool) {
	match := tweetURLRegexp.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}

	return match[1], true
}
