package entity

type ActionLog struct {
	Base

	UserID string `gorm:"index:idx_action_logs_user_action"`
	User   User   `gorm:"foreignKey:UserID"`

	ActionKey string `gorm:"index:idx_action_logs_user_action"`
	Points    uint64
}
