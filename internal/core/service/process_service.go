package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndavault/nda-vault/internal/api/metrics"
	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
	"github.com/ndavault/nda-vault/internal/ledger"
)

// Cipher is the subset of internal/crypto.Cipher the process service
// depends on.
type Cipher interface {
	GenerateKey() ([]byte, error)
	Seal(plaintext, key []byte) (string, error)
	Open(sealed string, key []byte) ([]byte, error)
}

// ProcessService implements creation, listing, sharing, and authorized
// access of confidential processes (C8), generalized from the teacher's
// ShipmentService's create/find/list shape onto the sealed-body domain.
type ProcessService struct {
	processes ports.ProcessRepository
	shares    ports.ShareRepository
	accesses  ports.AccessRepository
	users     ports.UserRepository
	ledger    ports.LedgerClient
	cipher    Cipher
	log       zerolog.Logger
}

// NewProcessService wires the process service's dependencies.
func NewProcessService(
	processes ports.ProcessRepository,
	shares ports.ShareRepository,
	accesses ports.AccessRepository,
	users ports.UserRepository,
	ledger ports.LedgerClient,
	cipher Cipher,
	log zerolog.Logger,
) *ProcessService {
	return &ProcessService{
		processes: processes,
		shares:    shares,
		accesses:  accesses,
		users:     users,
		ledger:    ledger,
		cipher:    cipher,
		log:       log,
	}
}

var _ ports.ProcessService = (*ProcessService)(nil)

// CreateProcess seals the confidential body under a fresh per-process key
// and persists the result. The plaintext body and the content key are
// never returned to the caller (invariant I2).
func (s *ProcessService) CreateProcess(ctx context.Context, claims domain.TokenClaims, in ports.CreateProcessInput) (domain.ProcessProjection, error) {
	if claims.Subject != in.OwnerID || !claims.HasRole(domain.RoleClient) {
		return domain.ProcessProjection{}, domain.ErrForbidden
	}

	key, err := s.cipher.GenerateKey()
	if err != nil {
		return domain.ProcessProjection{}, fmt.Errorf("process: generate content key: %w", err)
	}
	sealed, err := s.cipher.Seal([]byte(in.ConfidentialBody), key)
	if err != nil {
		return domain.ProcessProjection{}, fmt.Errorf("process: seal body: %w", err)
	}

	process := &domain.Process{
		ID:          domain.NewProcessID(),
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		SealedBody:  sealed,
		ContentKey:  encodeKey(key),
		Status:      domain.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.processes.Create(ctx, process); err != nil {
		return domain.ProcessProjection{}, err
	}
	metrics.ProcessesCreatedTotal.Inc()
	return process.Project(), nil
}

// ListProcesses returns the owner's processes, newest created_at first.
func (s *ProcessService) ListProcesses(ctx context.Context, claims domain.TokenClaims, ownerID string) ([]domain.ProcessProjection, error) {
	if claims.Subject != ownerID {
		return nil, domain.ErrForbidden
	}

	processes, err := s.processes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	projections := make([]domain.ProcessProjection, len(processes))
	for i, p := range processes {
		projections[i] = p.Project()
	}
	return projections, nil
}

// ShareProcess anchors a sharing grant on the ledger and, only on success,
// persists the local Share record. A failed ledger submission leaves no
// partial state: no Share is written.
func (s *ProcessService) ShareProcess(ctx context.Context, claims domain.TokenClaims, in ports.ShareProcessInput) (*domain.Share, error) {
	process, err := s.processes.FindByID(ctx, in.ProcessID)
	if err != nil {
		return nil, domain.ErrProcessNotFound
	}

	owner, err := s.users.FindByUsername(ctx, in.OwnerUsername)
	if err != nil {
		return nil, domain.ErrForbidden
	}
	if owner.ID != claims.Subject || !owner.HasRole(domain.RoleClient) || owner.ID != process.OwnerID {
		return nil, domain.ErrForbidden
	}

	memo := ledger.BuildShareMemo(process.ID)
	started := time.Now()
	txnHash, err := s.ledger.AnchorShare(ctx, owner.LedgerSecretKey, in.PartnerPublicKey, memo)
	metrics.LedgerCallDuration.WithLabelValues("anchor_share").Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIntegration, err)
	}

	share := &domain.Share{
		ID:               domain.NewEntityID(),
		ProcessID:        process.ID,
		PartnerPublicKey: in.PartnerPublicKey,
		LedgerTxnHash:    txnHash,
		SharedAt:         time.Now().UTC(),
	}
	if err := s.shares.Create(ctx, share); err != nil {
		return nil, err
	}
	metrics.SharesAnchoredTotal.Inc()
	return share, nil
}

// AccessProcess verifies the caller's identity, role, and share grant, in
// order, decrypts the process body, and appends an audit Access row. The
// precondition sequence is ordered: the first failing check determines the
// error returned (§4.8.4).
func (s *ProcessService) AccessProcess(ctx context.Context, claims domain.TokenClaims, in ports.AccessProcessInput) (*ports.AccessResult, error) {
	process, err := s.processes.FindByID(ctx, in.ProcessID)
	if err != nil {
		return nil, domain.ErrProcessNotFound
	}

	user, err := s.users.FindByUsername(ctx, in.PartnerUsername)
	if err != nil || in.PartnerUsername != claims.Username {
		return nil, domain.ErrUnauthorized
	}

	if !user.HasRole(domain.RolePartner) {
		metrics.AccessesTotal.WithLabelValues("forbidden").Inc()
		return nil, domain.ErrForbidden
	}

	shared, err := s.shares.ExistsShare(ctx, in.ProcessID, in.PartnerPublicKey)
	if err != nil {
		return nil, err
	}
	if !shared {
		metrics.AccessesTotal.WithLabelValues("not_shared").Inc()
		return nil, domain.ErrNotShared
	}

	key, err := decodeKey(process.ContentKey)
	if err != nil {
		metrics.AccessesTotal.WithLabelValues("integrity_failure").Inc()
		return nil, fmt.Errorf("%w: decode content key: %v", domain.ErrIntegrity, err)
	}
	plaintext, err := s.cipher.Open(process.SealedBody, key)
	if err != nil {
		metrics.AccessesTotal.WithLabelValues("integrity_failure").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrIntegrity, err)
	}

	accessedAt := time.Now().UTC()
	access := &domain.Access{
		ID:         domain.NewEntityID(),
		ProcessID:  process.ID,
		PartnerID:  user.ID,
		AccessedAt: accessedAt,
	}
	if err := s.accesses.Create(ctx, access); err != nil {
		return nil, err
	}
	metrics.AccessesTotal.WithLabelValues("granted").Inc()

	return &ports.AccessResult{
		ProcessID:   process.ID,
		Title:       process.Title,
		Description: process.Description,
		Body:        string(plaintext),
		AccessedAt:  accessedAt,
	}, nil
}

// encodeKey/decodeKey round-trip a raw AES-256 key through Process.ContentKey,
// which is a string field for straightforward BSON storage.
func encodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

func decodeKey(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}
