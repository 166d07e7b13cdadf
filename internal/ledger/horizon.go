package ledger

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HorizonTransport submits requests to a Horizon-class endpoint over plain
// HTTP. Building and submitting a fully XDR-encoded Stellar transaction
// envelope is the concrete wire protocol with a remote ledger node, which
// SPEC_FULL.md §1 places out of scope for this core; this transport signs a
// canonical payment payload with the sender's Ed25519 key and posts it to
// the configured endpoint, which is sufficient to exercise the client/
// transport seam end-to-end against a compatible test double.
type HorizonTransport struct {
	baseURL string
	client  *http.Client
}

// NewHorizonTransport returns a HorizonTransport pointed at baseURL (e.g.
// "https://horizon-testnet.stellar.org"). The router passes the configured
// ledger-network value through as baseURL unchanged.
func NewHorizonTransport(baseURL string, client *http.Client) *HorizonTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HorizonTransport{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

var _ Transport = (*HorizonTransport)(nil)

// FundAccount requests test-network ("friendbot") funding for publicKey.
func (t *HorizonTransport) FundAccount(ctx context.Context, publicKey string) error {
	u := fmt.Sprintf("%s/friendbot?addr=%s", t.baseURL, url.QueryEscape(publicKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("horizon: friendbot returned status %d", resp.StatusCode)
	}
	return nil
}

type paymentEnvelope struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Memo      string `json:"memo"`
	Signature string `json:"signature"`
}

// SubmitPayment signs {sender, recipient, memo} with the sender's Ed25519
// key and posts it to the Horizon-class endpoint's /transactions resource,
// returning the accepted transaction's hex hash.
func (t *HorizonTransport) SubmitPayment(ctx context.Context, senderSecret, recipientPublic, memo string) (string, error) {
	priv, err := DecodeSeed(senderSecret)
	if err != nil {
		return "", err
	}

	payload := recipientPublic + "|" + memo
	sig := ed25519.Sign(priv, []byte(payload))

	envelope := paymentEnvelope{
		Sender:    EncodePublicKey(priv.Public().(ed25519.PublicKey)),
		Recipient: recipientPublic,
		Memo:      memo,
		Signature: hex.EncodeToString(sig),
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/transactions", strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("horizon: submit returned status %d", resp.StatusCode)
	}

	var result struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("horizon: decode response: %w", err)
	}
	return result.Hash, nil
}
