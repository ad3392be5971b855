// Package catalog holds the static set of claimable actions. The catalog is
// immutable after construction and is injected into domains, so tests can run
// against an alternate set of actions.
package catalog

import (
	"fmt"

	"github.com/pointpass/backend/pkg/enum"
)

type CooldownClass string

var (
	Once         = enum.New(CooldownClass("once"))
	Recurring24h = enum.New(CooldownClass("24h"))
)

type Category string

var (
	SocialOnce      = enum.New(Category("social_once"))
	SocialRecurring = enum.New(Category("social_recurring"))
	Daily           = enum.New(Category("daily"))
)

// VerifyRule names the structural check a claimed post must satisfy. It only
// takes effect when the matching verification capability is configured.
type VerifyRule string

var (
	VerifyNone    = enum.New(VerifyRule("none"))
	VerifyFollow  = enum.New(VerifyRule("follow"))
	VerifyQuote   = enum.New(VerifyRule("quote"))
	VerifyRetweet = enum.New(VerifyRule("retweet"))
	VerifyReply   = enum.New(VerifyRule("reply"))
	VerifyMention = enum.New(VerifyRule("mention"))
)

type Action struct {
	Key      string        `toml:"key" json:"key"`
	Label    string        `toml:"label" json:"label"`
	Points   uint64        `toml:"points" json:"points"`
	Cooldown CooldownClass `toml:"cooldown" json:"cooldown"`
	Category Category      `toml:"category" json:"category"`
	Platform string        `toml:"platform" json:"platform,omitempty"`
	URL      string        `toml:"url" json:"url,omitempty"`
	Verify   VerifyRule    `toml:"verify" json:"-"`
}

func (a Action) IsOnce() bool {
	return a.Cooldown == Once
}

// NeedsTweetLink reports whether claiming this action requires the user to
// submit a link to their post.
func (a Action) NeedsTweetLink() bool {
	switch a.Verify {
	case VerifyQuote, VerifyRetweet, VerifyReply, VerifyMention:
		return true
	}

	return false
}

// Catalog is an ordered action set with O(1) lookup by key. Iteration order
// always matches declaration order.
type Catalog struct {
	actions []Action
	byKey   map[string]Action
}

func New(actions []Action) (*Catalog, error) {
	c := &Catalog{
		actions: make([]Action, 0, len(actions)),
		byKey:   make(map[string]Action, len(actions)),
	}

	for _, a := range actions {
		if a.Key == "" {
			return nil, fmt.Errorf("action with an empty key")
		}

		if _, ok := c.byKey[a.Key]; ok {
			return nil, fmt.Errorf("duplicated action key %s", a.Key)
		}

		if a.Points == 0 {
			return nil, fmt.Errorf("action %s has no point value", a.Key)
		}

		if _, err := enum.ToEnum[CooldownClass](string(a.Cooldown)); err != nil {
			return nil, fmt.Errorf("action %s has an invalid cooldown %s", a.Key, a.Cooldown)
		}

		if _, err := enum.ToEnum[Category](string(a.Category)); err != nil {
			return nil, fmt.Errorf("action %s has an invalid category %s", a.Key, a.Category)
		}

		if a.Verify == "" {
			a.Verify = VerifyNone
		} else if _, err := enum.ToEnum[VerifyRule](string(a.Verify)); err != nil {
			return nil, fmt.Errorf("action %s has an invalid verify rule %s", a.Key, a.Verify)
		}

		c.actions = append(c.actions, a)
		c.byKey[a.Key] = a
	}

	return c, nil
}

func (c *Catalog) Get(key string) (Action, bool) {
	a, ok := c.byKey[key]
	return a, ok
}

func (c *Catalog) Actions() []Action {
	actions := make([]Action, len(c.actions))
	copy(actions, c.actions)
	return actions
}

func (c *Catalog) Len() int {
	return len(c.actions)
}
