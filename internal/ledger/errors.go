package ledger

import "errors"

// Failure kinds for ledger calls (§4.3).
var (
	ErrNetwork  = errors.New("ledger: network error")
	ErrRejected = errors.New("ledger: transaction rejected")
	ErrTimeout  = errors.New("ledger: call timed out")
)
