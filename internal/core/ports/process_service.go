package ports

import (
	"context"
	"time"

	"github.com/ndavault/nda-vault/internal/core/domain"
)

// CreateProcessInput carries the data needed to create a new process (§4.8.1).
type CreateProcessInput struct {
	OwnerID          string
	Title            string
	Description      string
	ConfidentialBody string
}

// ShareProcessInput carries the data needed to share a process (§4.8.3).
type ShareProcessInput struct {
	OwnerUsername    string
	ProcessID        string
	PartnerPublicKey string
}

// AccessProcessInput carries the data needed to access a shared process (§4.8.4).
type AccessProcessInput struct {
	ProcessID        string
	PartnerUsername  string
	PartnerPublicKey string
}

// AccessResult is returned by a successful AccessProcess.
type AccessResult struct {
	ProcessID   string
	Title       string
	Description string
	Body        string
	AccessedAt  time.Time
}

// ProcessService implements creation, listing, sharing, and authorized
// access of confidential processes (C8). Every operation is called with
// the requester's bearer claims, extracted upstream by the request
// boundary (C10); role and ownership checks are the service's own
// responsibility (§4.10).
type ProcessService interface {
	CreateProcess(ctx context.Context, claims domain.TokenClaims, in CreateProcessInput) (domain.ProcessProjection, error)
	ListProcesses(ctx context.Context, claims domain.TokenClaims, ownerID string) ([]domain.ProcessProjection, error)
	ShareProcess(ctx context.Context, claims domain.TokenClaims, in ShareProcessInput) (*domain.Share, error)
	AccessProcess(ctx context.Context, claims domain.TokenClaims, in AccessProcessInput) (*AccessResult, error)
}

// AuditService composes per-owner access notifications (C9).
type AuditService interface {
	ListAccesses(ctx context.Context, claims domain.TokenClaims, ownerID string) ([]domain.AccessNotification, error)
}
