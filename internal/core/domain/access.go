package domain

import "time"

// Access is an append-only audit event recording a successful decryption by
// a partner. Never deleted (SPEC_FULL.md §3).
type Access struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ProcessID  string    `json:"process_id" bson:"process_id"`
	PartnerID  string    `json:"partner_id" bson:"partner_id"`
	AccessedAt time.Time `json:"accessed_at" bson:"accessed_at"`
}

// AccessNotification is the flattened, owner-scoped projection produced by
// the audit service (§4.9): one row per (process_id, access_id), plus one
// row per process with no accesses yet (access-side fields null), plus
// tolerance for a partner that has since been removed (PartnerUsername null).
type AccessNotification struct {
	AccessID           *string       `json:"access_id,omitempty"`
	ProcessID          string        `json:"process_id"`
	PartnerID          *string       `json:"partner_id,omitempty"`
	AccessedAt         *time.Time    `json:"accessed_at,omitempty"`
	ProcessTitle       string        `json:"process_title"`
	ProcessDescription string        `json:"process_description"`
	ProcessStatus      ProcessStatus `json:"process_status"`
	PartnerUsername    *string       `json:"partner_username,omitempty"`
}
