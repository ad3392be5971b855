package entity

import "time"

// CompletedAction marks a one-time action as done for a user. The composite
// primary key lets concurrent claims race on the insert instead of on a
// read-then-write.
type CompletedAction struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	ActionKey string `gorm:"primaryKey"`

	CreatedAt time.Time
}
