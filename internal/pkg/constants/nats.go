package constants

// NATS Subjects
const (
	// Inbound settlement callbacks from the gateway ingress
	SubjectSettlementEvents = "gateway.settlement.events"

	// Outbound transaction lifecycle events
	SubjectTransactionUpdated = "payments.transaction.updated"
	SubjectTransactionReview  = "payments.transaction.review"
)

// Queue groups
const (
	QueueGroupSettlement = "payments-settlement"
)
