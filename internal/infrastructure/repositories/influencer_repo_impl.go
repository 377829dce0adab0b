package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// InfluencerRepositoryImpl implements influencer data operations
type InfluencerRepositoryImpl struct {
	db *gorm.DB
}

// NewInfluencerRepository creates a new influencer repository
func NewInfluencerRepository(db *gorm.DB) *InfluencerRepositoryImpl {
	return &InfluencerRepositoryImpl{db: db}
}

// GetByID gets an influencer by ID
func (r *InfluencerRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Influencer, error) {
	var m models.Influencer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toInfluencerEntity(&m), nil
}

// FindOtherByEmail finds a different record holding the given email
func (r *InfluencerRepositoryImpl) FindOtherByEmail(ctx context.Context, email string, excludeID string) (*entities.Influencer, error) {
	var m models.Influencer
	err := r.db.WithContext(ctx).
		Where("email_lower = ? AND id <> ?", strings.ToLower(email), excludeID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toInfluencerEntity(&m), nil
}

// List lists influencers with optional search over the lowercase mirrors
func (r *InfluencerRepositoryImpl) List(ctx context.Context, search string, limit, offset int) ([]*entities.Influencer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Influencer{})

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("name_lower LIKE ? OR email_lower LIKE ? OR username_lower LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.Influencer
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Influencer, 0, len(rows))
	for i := range rows {
		out = append(out, toInfluencerEntity(&rows[i]))
	}
	return out, total, nil
}

// ApplyUpdate writes all mutable columns in one statement, guarded by the
// version the caller read. The id, created_at and auth_uid columns are
// never part of the update.
func (r *InfluencerRepositoryImpl) ApplyUpdate(ctx context.Context, inf *entities.Influencer, expectedVersion int64) error {
	updates := map[string]interface{}{
		"name":                inf.Name,
		"name_lower":          strings.ToLower(inf.Name),
		"email":               inf.Email,
		"email_lower":         strings.ToLower(inf.Email),
		"username":            inf.Username,
		"username_lower":      strings.ToLower(inf.Username),
		"phone":               inf.Phone,
		"referral_code":       inf.ReferralCode,
		"profile_image_url":   inf.ProfileImageURL,
		"tags":                marshalNullJSON(inf.Tags),
		"commission":          marshalNullJSON(inf.Commission),
		"admin_notes":         inf.AdminNotes,
		"status":              string(inf.Status),
		"bio":                 inf.Bio,
		"social_links":        marshalNullJSON(inf.SocialLinks),
		"address":             inf.Address,
		"payout_method":       inf.PayoutMethod,
		"bank_details":        marshalNullJSON(inf.BankDetails),
		"upi_id":              inf.UpiID,
		"pan":                 inf.Pan,
		"total_earnings":      inf.TotalEarnings,
		"pending_payout":      inf.PendingPayout,
		"followers":           inf.Followers,
		"engagement_rate":     inf.EngagementRate,
		"preferred_contact":   inf.PreferredContact,
		"verification_status": string(inf.VerificationStatus),
		"additional_info":     marshalNullJSON(inf.AdditionalInfo),
		"updated_at":          time.Now(),
		"version":             gorm.Expr("version + 1"),
	}

	result := r.db.WithContext(ctx).
		Model(&models.Influencer{}).
		Where("id = ? AND version = ?", inf.ID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStaleRecord
	}
	return nil
}

func toInfluencerEntity(m *models.Influencer) *entities.Influencer {
	e := &entities.Influencer{
		ID:                 m.ID,
		Name:               m.Name,
		NameLower:          m.NameLower,
		Email:              m.Email,
		EmailLower:         m.EmailLower,
		Username:           m.Username,
		UsernameLower:      m.UsernameLower,
		Phone:              m.Phone,
		ReferralCode:       m.ReferralCode,
		ProfileImageURL:    m.ProfileImageURL,
		AdminNotes:         m.AdminNotes,
		Status:             entities.InfluencerStatus(m.Status),
		Bio:                m.Bio,
		Address:            m.Address,
		PayoutMethod:       m.PayoutMethod,
		UpiID:              m.UpiID,
		Pan:                m.Pan,
		TotalEarnings:      m.TotalEarnings,
		PendingPayout:      m.PendingPayout,
		Followers:          m.Followers,
		EngagementRate:     m.EngagementRate,
		PreferredContact:   m.PreferredContact,
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		AuthUID:            m.AuthUID,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		e.DeletedAt = null.TimeFrom(m.DeletedAt.Time)
	}

	// These columns are only ever written by this package, so decoding
	// failures are treated as absent values.
	if m.Tags.Valid {
		_ = json.Unmarshal([]byte(m.Tags.String), &e.Tags)
	}
	if m.Commission.Valid {
		var cc entities.CommissionConfig
		if json.Unmarshal([]byte(m.Commission.String), &cc) == nil {
			e.Commission = &cc
		}
	}
	if m.SocialLinks.Valid {
		_ = json.Unmarshal([]byte(m.SocialLinks.String), &e.SocialLinks)
	}
	if m.BankDetails.Valid {
		var bd entities.BankDetails
		if json.Unmarshal([]byte(m.BankDetails.String), &bd) == nil {
			e.BankDetails = &bd
		}
	}
	if m.AdditionalInfo.Valid {
		_ = json.Unmarshal([]byte(m.AdditionalInfo.String), &e.AdditionalInfo)
	}
	return e
}

// marshalNullJSON serializes v, mapping nil (or empty collections) to NULL
func marshalNullJSON(v interface{}) null.String {
	switch t := v.(type) {
	case nil:
		return null.String{}
	case []string:
		if len(t) == 0 {
			return null.String{}
		}
	case map[string]string:
		if len(t) == 0 {
			return null.String{}
		}
	case *entities.CommissionConfig:
		if t == nil {
			return null.String{}
		}
	case *entities.BankDetails:
		if t == nil {
			return null.String{}
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return null.String{}
	}
	return null.StringFrom(string(raw))
}
