package models

import "time"

// FCMToken is one registered push-notification endpoint for a user. A user may
// have several devices; the (UserID, Token) pair is the identity. Rows are
// upserted on registration and deleted on logout or when the provider reports
// the token as permanently invalid.
type FCMToken struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Token      string    `gorm:"primaryKey;size:512" json:"-"`
	DeviceInfo string    `json:"device_info"`
	UpdatedAt  time.Time `json:"updated_at"`
}
