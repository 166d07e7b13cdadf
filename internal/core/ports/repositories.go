package ports

import (
	"context"

	"github.com/ndavault/nda-vault/internal/core/domain"
)

// UserRepository defines persistence operations for users (C6).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// ProcessRepository defines persistence operations for processes (C6).
type ProcessRepository interface {
	Create(ctx context.Context, p *domain.Process) error
	// ListByOwner returns processes newest created_at first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Process, error)
	FindByID(ctx context.Context, id string) (*domain.Process, error)
}

// ShareRepository defines persistence operations for shares (C6).
type ShareRepository interface {
	Create(ctx context.Context, s *domain.Share) error
	ExistsShare(ctx context.Context, processID, partnerPublicKey string) (bool, error)
}

// AccessRepository defines persistence operations for accesses (C6).
type AccessRepository interface {
	Create(ctx context.Context, a *domain.Access) error
	// ListByOwner returns the owner's audit projection (§4.9), newest
	// accessed_at first, via a single outer-join query.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.AccessNotification, error)
}
