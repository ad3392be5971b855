package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Twitter   TwitterConfigs
	Catalog   CatalogConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	DefaultLimit int
	MaxLimit     int
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	AccessToken TokenConfigs

	// IdentityToken verifies the tokens the social-login provider issues.
	// Registration only trusts subjects carried by a valid identity token.
	IdentityToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

// TwitterConfigs holds the credentials of the social verification
// collaborator. Which checks are possible depends on which credentials are
// configured, not on a per-action code branch.
type TwitterConfigs struct {
	// BearerToken authorizes the official API v2. It enables the follow
	// check (together with AccountID) and the tweet fetch.
	BearerToken string

	// AccountID is the numeric id of the official account whose followers
	// are scanned by the follow check.
	AccountID string

	// OfficialHandle is the handle (without @) that daily posts must
	// mention.
	OfficialHandle string

	// IOAPIKey authorizes twitterapi.io, a cheaper tweet-fetch source that
	// is preferred over the official API when both are configured.
	IOAPIKey string

	APIEndpoint   string
	IOAPIEndpoint string
}

// VerificationCapabilities tells the claim engine which external checks the
// deployment can actually run. Tests inject alternate values to exercise
// both enabled and disabled paths.
type VerificationCapabilities struct {
	FollowCheck bool
	PostCheck   bool
}

func (c TwitterConfigs) Capabilities() VerificationCapabilities {
	return VerificationCapabilities{
		FollowCheck: c.BearerToken != "" && c.AccountID != "",
		PostCheck:   c.IOAPIKey != "" || c.BearerToken != "",
	}
}

type CatalogConfigs struct {
	// File optionally points to a TOML file overriding the built-in action
	// catalog.
	File string
}
