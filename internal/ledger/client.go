package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ndavault/nda-vault/internal/core/ports"
)

// defaultTimeout bounds every ledger call (§5, §6.4 ledger-network), matching
// the teacher's db/mongo and db/redis Connect timeout pattern.
const defaultTimeout = 30 * time.Second

// Transport abstracts the wire protocol with the remote ledger node
// (out of scope per SPEC_FULL.md §1; this is the seam HorizonTransport and
// FakeTransport both satisfy).
type Transport interface {
	FundAccount(ctx context.Context, publicKey string) error
	SubmitPayment(ctx context.Context, senderSecret, recipientPublic, memo string) (txnHash string, err error)
}

// Client implements ports.LedgerClient (C3) over a pluggable Transport.
type Client struct {
	transport Transport
	timeout   time.Duration
}

// New returns a ledger Client. timeout <= 0 uses defaultTimeout (30s).
func New(transport Transport, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{transport: transport, timeout: timeout}
}

var _ ports.LedgerClient = (*Client)(nil)

// NewAccount generates an Ed25519-class keypair rendered in strkey form.
func (c *Client) NewAccount() (ports.Keypair, error) {
	pub, sec, err := GenerateKeypair()
	if err != nil {
		return ports.Keypair{}, err
	}
	return ports.Keypair{PublicKey: pub, SecretKey: sec}, nil
}

// FundTestAccount requests test-network funding. Idempotent; transient
// failures are fatal to the caller (identity service registration aborts).
func (c *Client) FundTestAccount(ctx context.Context, publicKey string) error {
	if !ValidatePublicKey(publicKey) {
		return fmt.Errorf("ledger: %w: invalid public key format", ErrRejected)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.transport.FundAccount(ctx, publicKey); err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

// AnchorShare constructs a minimal memo-bearing payment, signs it with
// senderSecret, submits it, and returns the hex transaction hash once the
// ledger has accepted it.
func (c *Client) AnchorShare(ctx context.Context, senderSecret, recipientPublic, memo string) (string, error) {
	if len(memo) > maxMemoBytes {
		return "", fmt.Errorf("%w: memo exceeds %d bytes", ErrRejected, maxMemoBytes)
	}
	if !ValidatePublicKey(recipientPublic) {
		return "", fmt.Errorf("%w: invalid recipient public key", ErrRejected)
	}
	if _, err := DecodeSeed(senderSecret); err != nil {
		return "", fmt.Errorf("%w: invalid sender secret key", ErrRejected)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hash, err := c.transport.SubmitPayment(ctx, senderSecret, recipientPublic, memo)
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return hash, nil
}

// maxMemoBytes is the ledger's ASCII text-memo budget (§6.3).
const maxMemoBytes = 28

// BuildShareMemo renders the canonical memo for anchoring a share of
// processID: "NDA_SHARE:" + the process id's 16 hex characters = 26 bytes,
// safely under maxMemoBytes.
func BuildShareMemo(processID string) string {
	return "NDA_SHARE:" + processID
}
