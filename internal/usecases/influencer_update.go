package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/pkg/logger"
	"firmdesk.backend/pkg/metrics"
)

// ledgerEntry records the pre-change value of one identity attribute. It
// is appended before the corresponding identity call goes out, and marked
// applied once that call succeeds, so compensation only replays changes
// that actually landed.
type ledgerEntry struct {
	attribute string
	prior     repositories.IdentityUpdate
	applied   bool
}

// UpdateInfluencer applies a partial update across the identity service
// and the profile store. Conflict checks complete before any write; the
// identity service is written first because its changes are reversible;
// a profile-store failure after that triggers best-effort compensation
// from the ledger. Every failure is terminal for the request.
func (uc *InfluencerUsecase) UpdateInfluencer(ctx context.Context, id string, input *entities.InfluencerUpdateInput) (result *entities.InfluencerUpdateResult, err error) {
	var (
		ledger  []*ledgerEntry
		authUID string
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "influencer update panicked",
				zap.String("influencer_id", id),
				zap.String("auth_uid", authUID),
				zap.Strings("fields", input.FieldNames()),
				zap.Any("panic", r),
			)
			uc.compensate(ctx, authUID, ledger)
			metrics.InfluencerUpdateOutcomes.WithLabelValues(outcomeFor(ledger)).Inc()
			result = nil
			err = domainerrors.InternalError(fmt.Errorf("panic: %v", r))
		}
	}()

	// Validating
	if !uc.rules.idPattern.MatchString(id) {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidInfluencerID, "invalid influencer id")
	}
	if input.IsEmpty() {
		return nil, domainerrors.Validation([]string{"at least one updatable field is required"})
	}
	if details := uc.rules.validate(input); len(details) > 0 {
		return nil, domainerrors.Validation(details)
	}

	// ConflictChecking
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeInfluencerNotFound, "influencer not found")
		}
		return nil, classifyStoreError(err)
	}
	if current.AuthUID == "" {
		// Data-integrity precondition: the profile is unlinked from its
		// identity account and cannot be updated safely.
		logger.Error(ctx, "influencer record has no auth uid", zap.String("influencer_id", id))
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeMissingAuthUID, "influencer record is missing its auth account link", nil)
	}
	authUID = current.AuthUID

	account, err := uc.identity.GetUser(ctx, authUID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrIdentityUserNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeAuthUserNotFound, "auth account not found for influencer")
		}
		return nil, classifyIdentityError(err)
	}

	if input.Email != nil && !strings.EqualFold(*input.Email, current.Email) {
		if _, err := uc.repo.FindOtherByEmail(ctx, *input.Email, id); err == nil {
			return nil, domainerrors.Conflict(domainerrors.CodeDuplicateValues, "email already belongs to another influencer")
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, classifyStoreError(err)
		}

		// A missing account means the email is free, not an error
		other, err := uc.identity.GetUserByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, domainerrors.ErrIdentityUserNotFound) {
			return nil, classifyIdentityError(err)
		}
		if other != nil && other.UID != authUID {
			return nil, domainerrors.Conflict(domainerrors.CodeEmailInUse, "email already registered to a different auth account")
		}
	}

	updated := applyInfluencerInput(current, input)

	// UpdatingIdentity: one call per changed attribute, each separately
	// ledgered, so a failure mid-way leaves earlier attributes compensable.
	var authFieldsChanged []string

	if input.Email != nil && *input.Email != current.Email {
		entry := &ledgerEntry{attribute: "email", prior: repositories.IdentityUpdate{Email: strPtr(account.Email)}}
		ledger = append(ledger, entry)
		if err := uc.identity.UpdateUser(ctx, authUID, repositories.IdentityUpdate{Email: input.Email}); err != nil {
			return nil, uc.failIdentityUpdate(ctx, id, authUID, ledger, err)
		}
		entry.applied = true
		authFieldsChanged = append(authFieldsChanged, "email")
	}

	if input.Status != nil && entities.InfluencerStatus(*input.Status) != current.Status {
		disabled := entities.InfluencerStatus(*input.Status) == entities.InfluencerStatusInactive
		entry := &ledgerEntry{attribute: "disabled", prior: repositories.IdentityUpdate{Disabled: boolPtr(account.Disabled)}}
		ledger = append(ledger, entry)
		if err := uc.identity.UpdateUser(ctx, authUID, repositories.IdentityUpdate{Disabled: &disabled}); err != nil {
			return nil, uc.failIdentityUpdate(ctx, id, authUID, ledger, err)
		}
		entry.applied = true
		authFieldsChanged = append(authFieldsChanged, "status")
	}

	// UpdatingDocument
	if err := uc.repo.ApplyUpdate(ctx, updated, current.Version); err != nil {
		logger.Error(ctx, "influencer store update failed",
			zap.String("influencer_id", id),
			zap.String("auth_uid", authUID),
			zap.Strings("fields", input.FieldNames()),
			zap.Error(err),
		)
		uc.compensate(ctx, authUID, ledger)
		metrics.InfluencerUpdateOutcomes.WithLabelValues(outcomeFor(ledger)).Inc()

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domainerrors.NewAppError(http.StatusGatewayTimeout,
				domainerrors.CodeDatabaseTimeout, "database timed out while updating the influencer record", err)
		}
		msg := "failed to update influencer record"
		if anyApplied(ledger) {
			msg += "; auth changes were rolled back"
		}
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeStoreUpdateFailed, msg, err)
	}

	// Read-after-write so the response carries server-computed fields
	fresh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		logger.Warn(ctx, "re-read after update failed", zap.String("influencer_id", id), zap.Error(err))
		fresh = updated
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, id); err != nil {
			logger.Warn(ctx, "profile cache invalidation failed", zap.String("influencer_id", id), zap.Error(err))
		}
	}

	metrics.InfluencerUpdateOutcomes.WithLabelValues("succeeded").Inc()
	logger.Info(ctx, "influencer updated",
		zap.String("influencer_id", id),
		zap.Strings("fields", input.FieldNames()),
		zap.Strings("auth_fields", authFieldsChanged),
	)
	return &entities.InfluencerUpdateResult{Influencer: fresh, AuthFieldsChanged: authFieldsChanged}, nil
}

// failIdentityUpdate handles an identity-service write failure: earlier
// applied attributes are rolled back, and the error is mapped onto the
// wire taxonomy.
func (uc *InfluencerUsecase) failIdentityUpdate(ctx context.Context, id, authUID string, ledger []*ledgerEntry, err error) error {
	logger.Error(ctx, "identity update failed",
		zap.String("influencer_id", id),
		zap.String("auth_uid", authUID),
		zap.Error(err),
	)
	uc.compensate(ctx, authUID, ledger)
	metrics.InfluencerUpdateOutcomes.WithLabelValues(outcomeFor(ledger)).Inc()

	switch {
	case errors.Is(err, domainerrors.ErrIdentityEmailExists):
		return domainerrors.Conflict(domainerrors.CodeEmailInUse, "email already registered to a different auth account")
	case errors.Is(err, domainerrors.ErrIdentityInvalidEmail):
		return domainerrors.BadRequest(domainerrors.CodeInvalidEmail, "identity service rejected the email format")
	case errors.Is(err, domainerrors.ErrIdentityUnavailable):
		return domainerrors.NewAppError(http.StatusServiceUnavailable,
			domainerrors.CodeDatabaseUnavailable, "identity service unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		return domainerrors.NewAppError(http.StatusGatewayTimeout,
			domainerrors.CodeDatabaseTimeout, "identity service timed out", err)
	default:
		return domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeAuthUpdateFailed, "failed to update auth account", err)
	}
}

// compensate replays the prior value of every applied ledger entry
// concurrently with all-settled semantics. It never returns an error;
// each attempt's outcome is logged and counted. Compensation is not
// retried: a failed attempt leaves the systems diverged until manually
// reconciled.
func (uc *InfluencerUsecase) compensate(ctx context.Context, authUID string, ledger []*ledgerEntry) {
	if authUID == "" || !anyApplied(ledger) {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for _, entry := range ledger {
		if !entry.applied {
			continue
		}
		wg.Add(1)
		go func(e *ledgerEntry) {
			defer wg.Done()
			if err := uc.identity.UpdateUser(ctx, authUID, e.prior); err != nil {
				metrics.AuthCompensationAttempts.WithLabelValues("failed").Inc()
				logger.Error(ctx, "auth compensation failed",
					zap.String("auth_uid", authUID),
					zap.String("attribute", e.attribute),
					zap.Error(err),
				)
				return
			}
			metrics.AuthCompensationAttempts.WithLabelValues("restored").Inc()
			logger.Info(ctx, "auth compensation restored",
				zap.String("auth_uid", authUID),
				zap.String("attribute", e.attribute),
			)
		}(entry)
	}
	wg.Wait()
}

func anyApplied(ledger []*ledgerEntry) bool {
	for _, e := range ledger {
		if e.applied {
			return true
		}
	}
	return false
}

func outcomeFor(ledger []*ledgerEntry) string {
	if anyApplied(ledger) {
		return "compensating_then_failed"
	}
	return "failed"
}

// classifyStoreError maps database failures onto the wire taxonomy
func classifyStoreError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domainerrors.NewAppError(http.StatusGatewayTimeout,
			domainerrors.CodeDatabaseTimeout, "database timed out", err)
	default:
		return domainerrors.InternalError(err)
	}
}

// classifyIdentityError maps identity-service read failures onto the
// wire taxonomy
func classifyIdentityError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domainerrors.NewAppError(http.StatusGatewayTimeout,
			domainerrors.CodeDatabaseTimeout, "identity service timed out", err)
	case errors.Is(err, domainerrors.ErrIdentityUnavailable):
		return domainerrors.NewAppError(http.StatusServiceUnavailable,
			domainerrors.CodeDatabaseUnavailable, "identity service unavailable", err)
	default:
		return domainerrors.InternalError(err)
	}
}

// applyInfluencerInput folds the present fields of the input into a copy
// of the current record. Identifier, authUid, version and creation
// timestamp are never touched.
func applyInfluencerInput(current *entities.Influencer, in *entities.InfluencerUpdateInput) *entities.Influencer {
	out := *current

	if in.Name != nil {
		out.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		out.Email = *in.Email
	}
	if in.Username != nil {
		out.Username = *in.Username
	}
	if in.Phone != nil {
		out.Phone = optString(*in.Phone)
	}
	if in.ReferralCode != nil {
		out.ReferralCode = optString(*in.ReferralCode)
	}
	if in.ProfileImageURL != nil {
		out.ProfileImageURL = optString(*in.ProfileImageURL)
	}
	if in.Tags != nil {
		out.Tags = *in.Tags
	}
	if in.Commission != nil {
		cc := &entities.CommissionConfig{
			Kind:   entities.CommissionKind(in.Commission.Kind),
			Amount: in.Commission.Amount,
		}
		if in.Commission.Cap != nil {
			cc.Cap = null.Float64From(*in.Commission.Cap)
		}
		out.Commission = cc
	}
	if in.AdminNotes != nil {
		out.AdminNotes = optString(*in.AdminNotes)
	}
	if in.Status != nil {
		out.Status = entities.InfluencerStatus(*in.Status)
	}
	if in.Bio != nil {
		out.Bio = optString(*in.Bio)
	}
	if in.SocialLinks != nil {
		out.SocialLinks = *in.SocialLinks
	}
	if in.Address != nil {
		out.Address = optString(*in.Address)
	}
	if in.PayoutMethod != nil {
		out.PayoutMethod = optString(*in.PayoutMethod)
	}
	if in.BankDetails != nil {
		out.BankDetails = &entities.BankDetails{
			AccountHolder: in.BankDetails.AccountHolder,
			AccountNumber: in.BankDetails.AccountNumber,
			IFSC:          in.BankDetails.IFSC,
		}
	}
	if in.UpiID != nil {
		out.UpiID = optString(*in.UpiID)
	}
	if in.Pan != nil {
		out.Pan = optString(*in.Pan)
	}
	if in.TotalEarnings != nil {
		out.TotalEarnings = *in.TotalEarnings
	}
	if in.PendingPayout != nil {
		out.PendingPayout = *in.PendingPayout
	}
	if in.Followers != nil {
		out.Followers = *in.Followers
	}
	if in.EngagementRate != nil {
		out.EngagementRate = *in.EngagementRate
	}
	if in.PreferredContact != nil {
		out.PreferredContact = optString(*in.PreferredContact)
	}
	if in.VerificationStatus != nil {
		out.VerificationStatus = entities.VerificationStatus(*in.VerificationStatus)
	}
	if in.AdditionalInfo != nil {
		out.AdditionalInfo = *in.AdditionalInfo
	}
	return &out
}

// optString maps an empty value to null so a caller can clear a field
func optString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
