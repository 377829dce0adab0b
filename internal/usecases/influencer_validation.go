package usecases

import (
	"fmt"
	"regexp"
	"strings"

	"firmdesk.backend/internal/domain/entities"
)

// influencerRules is the immutable validation configuration for influencer
// updates. It is built once per usecase and never mutated afterwards.
type influencerRules struct {
	idPattern       *regexp.Regexp
	emailPattern    *regexp.Regexp
	usernamePattern *regexp.Regexp
	phonePattern    *regexp.Regexp
	referralPattern *regexp.Regexp
	accountPattern  *regexp.Regexp
	ifscPattern     *regexp.Regexp
	upiPattern      *regexp.Regexp
	panPattern      *regexp.Regexp
}

func newInfluencerRules() *influencerRules {
	return &influencerRules{
		idPattern:       regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`),
		emailPattern:    regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
		usernamePattern: regexp.MustCompile(`^[A-Za-z0-9_.]{3,30}$`),
		phonePattern:    regexp.MustCompile(`^\+?[0-9]{7,15}$`),
		referralPattern: regexp.MustCompile(`^[A-Za-z0-9_-]{4,20}$`),
		accountPattern:  regexp.MustCompile(`^[0-9]{6,20}$`),
		ifscPattern:     regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`),
		upiPattern:      regexp.MustCompile(`^[A-Za-z0-9._-]{2,}@[A-Za-z]{2,}$`),
		panPattern:      regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`),
	}
}

// validate checks every present field against its constraint and returns
// the full list of violations. It is a pure check with no side effects.
func (r *influencerRules) validate(in *entities.InfluencerUpdateInput) []string {
	var details []string
	fail := func(format string, args ...interface{}) {
		details = append(details, fmt.Sprintf(format, args...))
	}

	if in.Name != nil {
		if n := strings.TrimSpace(*in.Name); len(n) < 2 || len(n) > 100 {
			fail("name must be between 2 and 100 characters")
		}
	}
	if in.Email != nil && !r.emailPattern.MatchString(*in.Email) {
		fail("email must be a valid email address")
	}
	if in.Username != nil && !r.usernamePattern.MatchString(*in.Username) {
		fail("username must be 3-30 characters of letters, digits, underscore or dot")
	}
	if in.Phone != nil && *in.Phone != "" && !r.phonePattern.MatchString(*in.Phone) {
		fail("phone must be 7-15 digits with an optional leading +")
	}
	if in.ReferralCode != nil && *in.ReferralCode != "" && !r.referralPattern.MatchString(*in.ReferralCode) {
		fail("referralCode must be 4-20 characters of letters, digits, underscore or hyphen")
	}
	if in.ProfileImageURL != nil && *in.ProfileImageURL != "" &&
		!strings.HasPrefix(*in.ProfileImageURL, "http://") &&
		!strings.HasPrefix(*in.ProfileImageURL, "https://") {
		fail("profileImageUrl must be an http(s) URL")
	}
	if in.Tags != nil {
		if len(*in.Tags) > 20 {
			fail("tags cannot exceed 20 entries")
		}
		for _, t := range *in.Tags {
			if t == "" || len(t) > 30 {
				fail("each tag must be between 1 and 30 characters")
				break
			}
		}
	}
	if in.Commission != nil {
		switch entities.CommissionKind(in.Commission.Kind) {
		case entities.CommissionFixed:
			if in.Commission.Amount < 0 {
				fail("customCommission.amount must not be negative")
			}
		case entities.CommissionPercent:
			if in.Commission.Amount < 0 || in.Commission.Amount > 100 {
				fail("customCommission.amount must be between 0 and 100 for percent commissions")
			}
		default:
			fail("customCommission.kind must be one of: fixed, percent")
		}
		if in.Commission.Cap != nil && *in.Commission.Cap < 0 {
			fail("customCommission.cap must not be negative")
		}
	}
	if in.AdminNotes != nil && len(*in.AdminNotes) > 2000 {
		fail("adminNotes cannot exceed 2000 characters")
	}
	if in.Status != nil {
		switch entities.InfluencerStatus(*in.Status) {
		case entities.InfluencerStatusActive, entities.InfluencerStatusInactive:
		default:
			fail("status must be one of: active, inactive")
		}
	}
	if in.Bio != nil && len(*in.Bio) > 1000 {
		fail("bio cannot exceed 1000 characters")
	}
	if in.SocialLinks != nil {
		if len(*in.SocialLinks) > 10 {
			fail("socialLinks cannot exceed 10 entries")
		}
		for k, v := range *in.SocialLinks {
			if k == "" || v == "" || len(v) > 200 {
				fail("each social link needs a platform and a value up to 200 characters")
				break
			}
		}
	}
	if in.Address != nil && len(*in.Address) > 500 {
		fail("address cannot exceed 500 characters")
	}
	if in.PayoutMethod != nil && *in.PayoutMethod != "" {
		switch entities.PayoutMethod(*in.PayoutMethod) {
		case entities.PayoutBank, entities.PayoutUPI:
		default:
			fail("payoutMethod must be one of: bank, upi")
		}
	}
	if in.BankDetails != nil {
		bd := in.BankDetails
		if n := strings.TrimSpace(bd.AccountHolder); len(n) < 2 || len(n) > 100 {
			fail("bankDetails.accountHolder must be between 2 and 100 characters")
		}
		if !r.accountPattern.MatchString(bd.AccountNumber) {
			fail("bankDetails.accountNumber must be 6-20 digits")
		}
		if !r.ifscPattern.MatchString(bd.IFSC) {
			fail("bankDetails.ifsc must be a valid IFSC code")
		}
	}
	if in.UpiID != nil && *in.UpiID != "" && !r.upiPattern.MatchString(*in.UpiID) {
		fail("upiId must look like handle@provider")
	}
	if in.Pan != nil && *in.Pan != "" && !r.panPattern.MatchString(*in.Pan) {
		fail("pan must be a valid PAN (AAAAA9999A)")
	}
	if in.TotalEarnings != nil && *in.TotalEarnings < 0 {
		fail("totalEarnings must not be negative")
	}
	if in.PendingPayout != nil && *in.PendingPayout < 0 {
		fail("pendingPayout must not be negative")
	}
	if in.Followers != nil && *in.Followers < 0 {
		fail("followers must not be negative")
	}
	if in.EngagementRate != nil && (*in.EngagementRate < 0 || *in.EngagementRate > 100) {
		fail("engagementRate must be between 0 and 100")
	}
	if in.PreferredContact != nil && *in.PreferredContact != "" {
		switch entities.ContactMethod(*in.PreferredContact) {
		case entities.ContactEmail, entities.ContactPhone, entities.ContactWhatsApp:
		default:
			fail("preferredContactMethod must be one of: email, phone, whatsapp")
		}
	}
	if in.VerificationStatus != nil {
		switch entities.VerificationStatus(*in.VerificationStatus) {
		case entities.VerificationPending, entities.VerificationVerified, entities.VerificationRejected:
		default:
			fail("verificationStatus must be one of: pending, verified, rejected")
		}
	}
	if in.AdditionalInfo != nil && len(*in.AdditionalInfo) > 20 {
		fail("additionalInfo cannot exceed 20 entries")
	}

	return details
}
