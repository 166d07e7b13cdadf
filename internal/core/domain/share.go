package domain

import "time"

// Share is a grant from a process owner to a partner, anchored on the
// ledger. Uniqueness is not enforced on (process_id, partner_public_key):
// repeated shares re-anchor and are allowed (SPEC_FULL.md §3, open question 2).
type Share struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	ProcessID        string    `json:"process_id" bson:"process_id"`
	PartnerPublicKey string    `json:"partner_public_key" bson:"partner_public_key"`
	LedgerTxnHash    string    `json:"ledger_txn_hash" bson:"ledger_txn_hash"`
	SharedAt         time.Time `json:"shared_at" bson:"shared_at"`
}
