package redis

import (
	"context"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

// CachedProcessRepository wraps a ports.ProcessRepository with a read-through
// ProcessCache in front of FindByID. Writes invalidate rather than populate,
// since ShareProcess and AccessProcess never change Process fields the cache
// would need to refresh.
type CachedProcessRepository struct {
	inner ports.ProcessRepository
	cache *ProcessCache
}

// NewCachedProcessRepository wraps inner with cache.
func NewCachedProcessRepository(inner ports.ProcessRepository, cache *ProcessCache) *CachedProcessRepository {
	return &CachedProcessRepository{inner: inner, cache: cache}
}

var _ ports.ProcessRepository = (*CachedProcessRepository)(nil)

// Create persists p and invalidates any stale cache entry at its id.
func (r *CachedProcessRepository) Create(ctx context.Context, p *domain.Process) error {
	if err := r.inner.Create(ctx, p); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, p.ID)
	return nil
}

// ListByOwner bypasses the cache: it is not keyed by a single process id.
func (r *CachedProcessRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Process, error) {
	return r.inner.ListByOwner(ctx, ownerID)
}

// FindByID serves from cache on a hit; on a miss it loads from inner and
// populates the cache for the next lookup.
func (r *CachedProcessRepository) FindByID(ctx context.Context, id string) (*domain.Process, error) {
	if cached, ok := r.cache.Get(ctx, id); ok {
		return cached, nil
	}

	p, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, p)
	return p, nil
}
