package models

import "time"

// GatewayOutcome is the tri-state result of a gateway call. Unknown is
// a first-class case: retries exhausted or the circuit open means the
// charge may still have succeeded on the provider side.
type GatewayOutcome string

const (
	OutcomeApproved GatewayOutcome = "APPROVED"
	OutcomeDeclined GatewayOutcome = "DECLINED"
	OutcomeUnknown  GatewayOutcome = "UNKNOWN"
)

// GatewayResult carries the outcome of an authorize/capture/refund/void
// call or a reconciliation status inquiry.
type GatewayResult struct {
	Outcome   GatewayOutcome `json:"outcome"`
	Reference string         `json:"reference,omitempty"`
	Code      string         `json:"code,omitempty"`
	Message   string         `json:"message,omitempty"`

	// State is the provider-side transaction lifecycle state from a
	// status inquiry, distinct from the decline/approval code.
	State       string    `json:"state,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}
