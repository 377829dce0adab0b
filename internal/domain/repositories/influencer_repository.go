package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
)

// InfluencerRepository defines influencer profile data operations.
type InfluencerRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Influencer, error)
	// FindOtherByEmail returns a different record already holding the
	// email, or ErrNotFound when the email is free.
	FindOtherByEmail(ctx context.Context, email string, excludeID string) (*entities.Influencer, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entities.Influencer, int64, error)
	// ApplyUpdate writes the mutable fields of inf in one statement,
	// guarded by expectedVersion. A concurrent writer bumps the version
	// and the write reports ErrStaleRecord. Identifier, creation
	// timestamp and auth linkage columns are never written.
	ApplyUpdate(ctx context.Context, inf *entities.Influencer, expectedVersion int64) error
}
