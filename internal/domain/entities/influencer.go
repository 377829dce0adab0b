package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// InfluencerStatus represents the account status mirrored into the identity service
type InfluencerStatus string

const (
	InfluencerStatusActive   InfluencerStatus = "active"
	InfluencerStatusInactive InfluencerStatus = "inactive"
)

// VerificationStatus represents profile verification progress
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// CommissionKind represents how a custom commission is computed
type CommissionKind string

const (
	CommissionFixed   CommissionKind = "fixed"
	CommissionPercent CommissionKind = "percent"
)

// PayoutMethod represents how an influencer is paid out
type PayoutMethod string

const (
	PayoutBank PayoutMethod = "bank"
	PayoutUPI  PayoutMethod = "upi"
)

// ContactMethod represents the preferred way to reach an influencer
type ContactMethod string

const (
	ContactEmail    ContactMethod = "email"
	ContactPhone    ContactMethod = "phone"
	ContactWhatsApp ContactMethod = "whatsapp"
)

// CommissionConfig holds a custom commission override
type CommissionConfig struct {
	Kind   CommissionKind `json:"kind"`
	Amount float64        `json:"amount"`
	Cap    null.Float64   `json:"cap,omitempty"`
}

// BankDetails holds payout bank account data
type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
}

// Influencer represents an influencer partner profile. AuthUID links the
// profile to its identity-service account and never changes once set.
type Influencer struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	NameLower          string             `json:"-"`
	Email              string             `json:"email"`
	EmailLower         string             `json:"-"`
	Username           string             `json:"username"`
	UsernameLower      string             `json:"-"`
	Phone              null.String        `json:"phone,omitempty"`
	ReferralCode       null.String        `json:"referralCode,omitempty"`
	ProfileImageURL    null.String        `json:"profileImageUrl,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
	Commission         *CommissionConfig  `json:"customCommission,omitempty"`
	AdminNotes         null.String        `json:"adminNotes,omitempty"`
	Status             InfluencerStatus   `json:"status"`
	Bio                null.String        `json:"bio,omitempty"`
	SocialLinks        map[string]string  `json:"socialLinks,omitempty"`
	Address            null.String        `json:"address,omitempty"`
	PayoutMethod       null.String        `json:"payoutMethod,omitempty"`
	BankDetails        *BankDetails       `json:"bankDetails,omitempty"`
	UpiID              null.String        `json:"upiId,omitempty"`
	Pan                null.String        `json:"pan,omitempty"`
	TotalEarnings      float64            `json:"totalEarnings"`
	PendingPayout      float64            `json:"pendingPayout"`
	Followers          int64              `json:"followers"`
	EngagementRate     float64            `json:"engagementRate"`
	PreferredContact   null.String        `json:"preferredContactMethod,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	AdditionalInfo     map[string]string  `json:"additionalInfo,omitempty"`
	AuthUID            string             `json:"authUid"`
	Version            int64              `json:"-"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          null.Time          `json:"-"`
}

// MaskedClone returns a copy safe for API responses: the bank account
// number is reduced to its last four digits.
func (i *Influencer) MaskedClone() *Influencer {
	out := *i
	if i.BankDetails != nil {
		bd := *i.BankDetails
		bd.AccountNumber = MaskAccountNumber(bd.AccountNumber)
		out.BankDetails = &bd
	}
	return &out
}

// MaskAccountNumber reduces an account number to "****" plus the last four
// digits. Shorter values are masked entirely.
func MaskAccountNumber(n string) string {
	if n == "" {
		return ""
	}
	if len(n) <= 4 {
		return "****"
	}
	return "****" + n[len(n)-4:]
}

// InfluencerUpdateInput is the PATCH body. Every field is optional;
// anything outside this whitelist (id, authUid, timestamps, version) is
// dropped during decoding rather than rejected.
type InfluencerUpdateInput struct {
	Name               *string            `json:"name"`
	Email              *string            `json:"email"`
	Username           *string            `json:"username"`
	Phone              *string            `json:"phone"`
	ReferralCode       *string            `json:"referralCode"`
	ProfileImageURL    *string            `json:"profileImageUrl"`
	Tags               *[]string          `json:"tags"`
	Commission         *CommissionInput   `json:"customCommission"`
	AdminNotes         *string            `json:"adminNotes"`
	Status             *string            `json:"status"`
	Bio                *string            `json:"bio"`
	SocialLinks        *map[string]string `json:"socialLinks"`
	Address            *string            `json:"address"`
	PayoutMethod       *string            `json:"payoutMethod"`
	BankDetails        *BankDetailsInput  `json:"bankDetails"`
	UpiID              *string            `json:"upiId"`
	Pan                *string            `json:"pan"`
	TotalEarnings      *float64           `json:"totalEarnings"`
	PendingPayout      *float64           `json:"pendingPayout"`
	Followers          *int64             `json:"followers"`
	EngagementRate     *float64           `json:"engagementRate"`
	PreferredContact   *string            `json:"preferredContactMethod"`
	VerificationStatus *string            `json:"verificationStatus"`
	AdditionalInfo     *map[string]string `json:"additionalInfo"`
}

// CommissionInput is the PATCH shape of a commission override
type CommissionInput struct {
	Kind   string   `json:"kind"`
	Amount float64  `json:"amount"`
	Cap    *float64 `json:"cap"`
}

// BankDetailsInput is the PATCH shape of bank details
type BankDetailsInput struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
}

// IsEmpty reports whether the update carries no effective field.
func (in *InfluencerUpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Email == nil && in.Username == nil &&
		in.Phone == nil && in.ReferralCode == nil && in.ProfileImageURL == nil &&
		in.Tags == nil && in.Commission == nil && in.AdminNotes == nil &&
		in.Status == nil && in.Bio == nil && in.SocialLinks == nil &&
		in.Address == nil && in.PayoutMethod == nil && in.BankDetails == nil &&
		in.UpiID == nil && in.Pan == nil && in.TotalEarnings == nil &&
		in.PendingPayout == nil && in.Followers == nil && in.EngagementRate == nil &&
		in.PreferredContact == nil && in.VerificationStatus == nil &&
		in.AdditionalInfo == nil
}

// FieldNames lists the fields present in the update, for logging. Values
// are never logged.
func (in *InfluencerUpdateInput) FieldNames() []string {
	var names []string
	add := func(ok bool, name string) {
		if ok {
			names = append(names, name)
		}
	}
	add(in.Name != nil, "name")
	add(in.Email != nil, "email")
	add(in.Username != nil, "username")
	add(in.Phone != nil, "phone")
	add(in.ReferralCode != nil, "referralCode")
	add(in.ProfileImageURL != nil, "profileImageUrl")
	add(in.Tags != nil, "tags")
	add(in.Commission != nil, "customCommission")
	add(in.AdminNotes != nil, "adminNotes")
	add(in.Status != nil, "status")
	add(in.Bio != nil, "bio")
	add(in.SocialLinks != nil, "socialLinks")
	add(in.Address != nil, "address")
	add(in.PayoutMethod != nil, "payoutMethod")
	add(in.BankDetails != nil, "bankDetails")
	add(in.UpiID != nil, "upiId")
	add(in.Pan != nil, "pan")
	add(in.TotalEarnings != nil, "totalEarnings")
	add(in.PendingPayout != nil, "pendingPayout")
	add(in.Followers != nil, "followers")
	add(in.EngagementRate != nil, "engagementRate")
	add(in.PreferredContact != nil, "preferredContactMethod")
	add(in.VerificationStatus != nil, "verificationStatus")
	add(in.AdditionalInfo != nil, "additionalInfo")
	return names
}

// InfluencerUpdateResult is what the update workflow hands back on success
type InfluencerUpdateResult struct {
	Influencer        *Influencer
	AuthFieldsChanged []string
}

// SuccessMessage renders the operator-facing summary, naming any
// identity-mirrored fields that changed.
func (r *InfluencerUpdateResult) SuccessMessage() string {
	msg := "Influencer updated successfully"
	if len(r.AuthFieldsChanged) > 0 {
		msg += ". Auth fields updated: " + strings.Join(r.AuthFieldsChanged, ", ")
	}
	return msg
}
