package models

import (
	"time"

	"gorm.io/datatypes"
)

type OwnerType string

const (
	OwnerStudent OwnerType = "student"
	OwnerAdmin   OwnerType = "admin"
)

// OTP is created per verification attempt. Codes are single-use: verify
// marks the row used instead of deleting it, so the trail survives.
type OTP struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"not null;index;size:255" validate:"required,email"`
	PhoneNumber *string   `json:"phone_number" gorm:"size:20"`
	Code        string    `json:"-" gorm:"not null;size:10"`
	Reference   string    `json:"reference" gorm:"size:64;index"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"not null"`
	Used        bool      `json:"used" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
}

func (OTP) TableName() string {
	return "otps"
}

// PushSubscriptionKeys are the browser-supplied encryption keys for a
// push endpoint.
type PushSubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type PushSubscription struct {
	ID        uint                                     `json:"id" gorm:"primaryKey"`
	Endpoint  string                                   `json:"endpoint" gorm:"uniqueIndex;not null;size:500" validate:"required,url"`
	Keys      datatypes.JSONType[PushSubscriptionKeys] `json:"keys" gorm:"type:jsonb"`
	OwnerID   uint                                     `json:"owner_id" gorm:"not null;index" validate:"required"`
	OwnerType OwnerType                                `json:"owner_type" gorm:"not null;size:20" validate:"required,owner_type"`
	IsActive  bool                                     `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PushSubscription) TableName() string {
	return "push_subscriptions"
}

// PushNotification is a log entry for a sent broadcast. Delivery status
// per endpoint is not tracked here; delivery is an external concern.
type PushNotification struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Body     string `json:"body" gorm:"type:text" validate:"required,min=1"`
	Audience string `json:"audience" gorm:"size:20;default:all"`

	CreatedBy uint      `json:"created_by" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (PushNotification) TableName() string {
	return "push_notifications"
}

// AdSettings is the single global toggle row, upserted in place.
type AdSettings struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Enabled   bool      `json:"enabled" gorm:"not null;default:false"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdSettings) TableName() string {
	return "ad_settings"
}
