package entity

import "database/sql"

type User struct {
	Base

	// AuthSubject is the login provider's stable subject for the person,
	// taken from a verified identity token.
	AuthSubject string `gorm:"unique"`

	// SocialID identifies the connected social account, a twitter user id
	// or farcaster_<fid>.
	SocialID string `gorm:"unique"`

	Username          string
	ProfilePictureURL string

	WalletAddress sql.NullString

	Points uint64

	ReferralCode  string `gorm:"unique"`
	ReferredBy    sql.NullString
	ReferralCount uint64

	LastCheckInAt sql.NullTime

	// LastDailyPost keys the most recent daily-post claim time by platform.
	LastDailyPost Map
}
