package models

import (
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// Influencer is the persistence model for influencer profiles. Structured
// fields (tags, links, commission, bank details, extra info) are stored as
// JSON text.
type Influencer struct {
	ID                 string `gorm:"primaryKey"`
	Name               string
	NameLower          string `gorm:"index"`
	Email              string
	EmailLower         string `gorm:"index"`
	Username           string
	UsernameLower      string `gorm:"index"`
	Phone              null.String
	ReferralCode       null.String
	ProfileImageURL    null.String `gorm:"column:profile_image_url"`
	Tags               null.String
	Commission         null.String
	AdminNotes         null.String
	Status             string
	Bio                null.String
	SocialLinks        null.String
	Address            null.String
	PayoutMethod       null.String
	BankDetails        null.String
	UpiID              null.String `gorm:"column:upi_id"`
	Pan                null.String
	TotalEarnings      float64
	PendingPayout      float64
	Followers          int64
	EngagementRate     float64
	PreferredContact   null.String
	VerificationStatus string
	AdditionalInfo     null.String
	AuthUID            string `gorm:"column:auth_uid"`
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Influencer) TableName() string {
	return "influencers"
}
