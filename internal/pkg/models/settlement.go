package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Settlement event processing statuses, recorded durably so dedup and
// requeue survive restarts.
const (
	EventPending    = "PENDING"
	EventProcessing = "PROCESSING"
	EventCompleted  = "COMPLETED"
	EventUnmatched  = "UNMATCHED"
)

// SettlementEvent is an external fact reported by the gateway about a
// previously submitted transaction. The same logical event may be
// delivered more than once; Checksum is the dedup identity.
type SettlementEvent struct {
	EventID        string           `json:"event_id" db:"event_id"`
	GatewayRef     string           `json:"gateway_ref" db:"gateway_ref"`
	ReportedStatus TransactionState `json:"reported_status" db:"reported_status"`
	Checksum       string           `json:"checksum" db:"checksum"`
	Payload        []byte           `json:"-" db:"payload"`
	OccurredAt     time.Time        `json:"occurred_at" db:"occurred_at"`
	ReceivedAt     time.Time        `json:"received_at" db:"received_at"`
}

// ComputeChecksum fills Checksum from the raw payload when the
// transport did not supply one.
func (e *SettlementEvent) ComputeChecksum() {
	if e.Checksum != "" {
		return
	}
	sum := sha256.Sum256(append([]byte(e.EventID+"|"+e.GatewayRef+"|"), e.Payload...))
	e.Checksum = hex.EncodeToString(sum[:])
}
