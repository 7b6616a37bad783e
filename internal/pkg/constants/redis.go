package constants

// Redis key formats
const (
	// Idempotency Store
	KeyIdempotencyOutcome = "idempotency:outcome:%s" // Format: idempotency:outcome:{key}

	// Settlement event dedup fast path
	KeySettlementChecksum = "settlement:checksum:%s" // Format: settlement:checksum:{checksum}
)
