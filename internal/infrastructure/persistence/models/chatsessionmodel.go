package models

import "time"

// ChatSessionModel is the persistence model for conversation sessions. All
// scheduler coordination happens through guarded updates on this table; the
// row is the single source of truth for a session's state.
type ChatSessionModel struct {
	ID              uint       `gorm:"primarykey"`
	SID             string     `gorm:"column:sid;size:32;uniqueIndex;not null"`
	Token           string     `gorm:"size:128;uniqueIndex;not null"`
	Status          string     `gorm:"size:16;not null;index"`
	QueuePosition   *int       `gorm:"index"`
	Email           string     `gorm:"size:255"`
	UserAgent       string     `gorm:"size:512"`
	Referrer        string     `gorm:"size:512"`
	TotalCost       float64    `gorm:"not null;default:0"`
	TotalTokensUsed int64      `gorm:"not null;default:0"`
	CreatedAt       time.Time  `gorm:"not null"`
	ActivatedAt     *time.Time
	LastActivityAt  *time.Time `gorm:"index"`
	ExpiresAt       time.Time  `gorm:"not null;index"`
	EndedAt         *time.Time
}

// TableName specifies the table name for GORM
func (ChatSessionModel) TableName() string {
	return "chat_sessions"
}
