package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

// AuditService composes per-owner access notifications (C9) from a single
// outer-join query against the access repository; no N+1 lookups are
// performed at this layer or below.
type AuditService struct {
	accesses ports.AccessRepository
	log      zerolog.Logger
}

// NewAuditService wires the audit service's dependencies.
func NewAuditService(accesses ports.AccessRepository, log zerolog.Logger) *AuditService {
	return &AuditService{accesses: accesses, log: log}
}

var _ ports.AuditService = (*AuditService)(nil)

// ListAccesses returns the owner's access notifications, newest
// accessed_at first.
func (s *AuditService) ListAccesses(ctx context.Context, claims domain.TokenClaims, ownerID string) ([]domain.AccessNotification, error) {
	if claims.Subject != ownerID {
		return nil, domain.ErrForbidden
	}
	return s.accesses.ListByOwner(ctx, ownerID)
}
