package ledger

import (
	"context"
	"strings"
	"testing"
)

func TestClient_NewAccount(t *testing.T) {
	c := New(NewFakeTransport(), 0)

	kp, err := c.NewAccount()
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	if !strings.HasPrefix(kp.PublicKey, "G") || len(kp.PublicKey) != 56 {
		t.Fatalf("unexpected public key shape: %q", kp.PublicKey)
	}
	if !strings.HasPrefix(kp.SecretKey, "S") || len(kp.SecretKey) != 56 {
		t.Fatalf("unexpected secret key shape: %q", kp.SecretKey)
	}
	if !ValidatePublicKey(kp.PublicKey) {
		t.Fatalf("generated public key failed validation")
	}
}

func TestClient_FundTestAccount(t *testing.T) {
	transport := NewFakeTransport()
	c := New(transport, 0)

	kp, err := c.NewAccount()
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	if err := c.FundTestAccount(context.Background(), kp.PublicKey); err != nil {
		t.Fatalf("FundTestAccount: %v", err)
	}
	if !transport.IsFunded(kp.PublicKey) {
		t.Fatalf("expected account to be marked funded")
	}
}

func TestClient_FundTestAccount_RejectsMalformedKey(t *testing.T) {
	c := New(NewFakeTransport(), 0)
	if err := c.FundTestAccount(context.Background(), "not-a-valid-key"); err == nil {
		t.Fatalf("expected error for malformed public key")
	}
}

func TestClient_AnchorShare(t *testing.T) {
	c := New(NewFakeTransport(), 0)

	sender, err := c.NewAccount()
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	recipient, err := c.NewAccount()
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}

	hash, err := c.AnchorShare(context.Background(), sender.SecretKey, recipient.PublicKey, BuildShareMemo("0123456789abcdef"))
	if err != nil {
		t.Fatalf("AnchorShare: %v", err)
	}
	if !strings.HasPrefix(hash, "mock_tx_") {
		t.Fatalf("unexpected transaction hash: %q", hash)
	}
}

func TestClient_AnchorShare_RejectsOversizedMemo(t *testing.T) {
	c := New(NewFakeTransport(), 0)

	sender, _ := c.NewAccount()
	recipient, _ := c.NewAccount()

	_, err := c.AnchorShare(context.Background(), sender.SecretKey, recipient.PublicKey, strings.Repeat("x", 40))
	if err == nil {
		t.Fatalf("expected error for oversized memo")
	}
}

func TestBuildShareMemo_FitsLedgerBudget(t *testing.T) {
	memo := BuildShareMemo("0123456789abcdef")
	if len(memo) > maxMemoBytes {
		t.Fatalf("memo %q exceeds %d bytes (%d)", memo, maxMemoBytes, len(memo))
	}
}
