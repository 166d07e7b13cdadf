package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// FakeTransport is an in-memory Transport for tests and for local
// development under ledger-network=mock. It mirrors
// original_source/nda-backend/src/stellar.rs's mock client: funding always
// succeeds and a transaction hash of the form "mock_tx_<hex>" (8 random
// bytes) is returned without any network call.
type FakeTransport struct {
	mu      sync.Mutex
	funded  map[string]bool
	submits []paymentEnvelope
}

// NewFakeTransport returns a ready-to-use FakeTransport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{funded: make(map[string]bool)}
}

var _ Transport = (*FakeTransport)(nil)

// FundAccount always succeeds, recording the account as funded.
func (t *FakeTransport) FundAccount(_ context.Context, publicKey string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.funded[publicKey] = true
	return nil
}

// IsFunded reports whether FundAccount has been called for publicKey.
func (t *FakeTransport) IsFunded(publicKey string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.funded[publicKey]
}

// SubmitPayment returns a deterministic-looking mock transaction hash
// without performing any network I/O.
func (t *FakeTransport) SubmitPayment(_ context.Context, senderSecret, recipientPublic, memo string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw := make([]byte, 8)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("ledger: fake transport: %w", err)
	}
	hash := "mock_tx_" + hex.EncodeToString(raw)

	t.submits = append(t.submits, paymentEnvelope{
		Sender:    senderSecret,
		Recipient: recipientPublic,
		Memo:      memo,
		Signature: hash,
	})
	return hash, nil
}

// Submits returns the payments submitted so far, for test assertions.
func (t *FakeTransport) Submits() []paymentEnvelope {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]paymentEnvelope, len(t.submits))
	copy(out, t.submits)
	return out
}
