package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Default(t *testing.T) {
	c := Default()
	require.Equal(t, 17, c.Len())

	follow, ok := c.Get("follow_twitter")
	require.True(t, ok)
	require.Equal(t, uint64(250), follow.Points)
	require.Equal(t, Once, follow.Cooldown)
	require.Equal(t, VerifyFollow, follow.Verify)
	require.True(t, follow.IsOnce())
	require.False(t, follow.NeedsTweetLink())

	quote, ok := c.Get("qt_twitter")
	require.True(t, ok)
	require.Equal(t, uint64(200), quote.Points)
	require.Equal(t, Recurring24h, quote.Cooldown)
	require.True(t, quote.NeedsTweetLink())

	_, ok = c.Get("no_such_action")
	require.False(t, ok)

	// Iteration keeps declaration order, once actions first.
	actions := c.Actions()
	require.Equal(t, "follow_twitter", actions[0].Key)
	require.Equal(t, "daily_post_farcaster", actions[len(actions)-1].Key)
}

func Test_New_invalidActions(t *testing.T) {
	_, err := New([]Action{
		{Key: "a", Label: "A", Points: 10, Cooldown: Once, Category: SocialOnce},
		{Key: "a", Label: "A again", Points: 10, Cooldown: Once, Category: SocialOnce},
	})
	require.ErrorContains(t, err, "duplicated action key")

	_, err = New([]Action{
		{Key: "b", Label: "B", Cooldown: Once, Category: SocialOnce},
	})
	require.ErrorContains(t, err, "no point value")

	_, err = New([]Action{
		{Key: "c", Label: "C", Points: 10, Cooldown: "weekly", Category: SocialOnce},
	})
	require.ErrorContains(t, err, "invalid cooldown")

	_, err = New([]Action{
		{Key: "d", Label: "D", Points: 10, Cooldown: Once, Category: SocialOnce, Verify: "likes"},
	})
	require.ErrorContains(t, err, "invalid verify rule")
}

func Test_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[actions]]
key = "daily_checkin"
label = "Daily Check-in"
points = 75
cooldown = "24h"
category = "daily"

[[actions]]
key = "join_lens"
label = "Follow on Lens"
points = 250
cooldown = "once"
category = "social_once"
platform = "lens"
url = "https://lens.xyz/abc"
`), 0600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 18, c.Len())

	checkin, ok := c.Get("daily_checkin")
	require.True(t, ok)
	require.Equal(t, uint64(75), checkin.Points)

	lens, ok := c.Get("join_lens")
	require.True(t, ok)
	require.Equal(t, Once, lens.Cooldown)

	// Untouched actions keep their built-in definition.
	follow, ok := c.Get("follow_twitter")
	require.True(t, ok)
	require.Equal(t, uint64(250), follow.Points)
	require.Equal(t, VerifyFollow, follow.Verify)
}
