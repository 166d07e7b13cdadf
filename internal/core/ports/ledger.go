package ports

import "context"

// Keypair is a ledger-compatible Ed25519 keypair: a 56-character public
// address and a 56-character secret signing key.
type Keypair struct {
	PublicKey string
	SecretKey string
}

// LedgerClient abstracts the external distributed ledger (C3): creating a
// funded test account for a new user, and submitting a memo-bearing payment
// that anchors a sharing event. No verification of an anchor is performed
// online at access time — the local Share record is authoritative.
type LedgerClient interface {
	NewAccount() (Keypair, error)
	// FundTestAccount requests test-network funding for the given public
	// key. Idempotent; failure here is fatal to registration.
	FundTestAccount(ctx context.Context, publicKey string) error
	// AnchorShare constructs and submits a minimal, memo-bearing payment
	// from senderSecret to recipientPublic, and returns the hex
	// transaction hash once the ledger has accepted it.
	AnchorShare(ctx context.Context, senderSecret, recipientPublic, memo string) (txnHash string, err error)
}
