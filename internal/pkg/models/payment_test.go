package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseIntent() *PaymentIntent {
	return &PaymentIntent{
		MerchantID:         "merchant-001",
		AmountMinor:        12999,
		Currency:           "usd",
		PaymentMethodToken: "tok_visa_4242",
		Metadata:           map[string]string{"order_id": "ord-1", "channel": "web"},
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := baseIntent()
	b := baseIntent()

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_CurrencyCaseInsensitive(t *testing.T) {
	a := baseIntent()
	b := baseIntent()
	b.Currency = "USD"

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_ChangesWithIntent(t *testing.T) {
	base := baseIntent().Fingerprint()

	amount := baseIntent()
	amount.AmountMinor = 13000
	assert.NotEqual(t, base, amount.Fingerprint())

	token := baseIntent()
	token.PaymentMethodToken = "tok_mc_5555"
	assert.NotEqual(t, base, token.Fingerprint())

	meta := baseIntent()
	meta.Metadata["order_id"] = "ord-2"
	assert.NotEqual(t, base, meta.Fingerprint())
}

func TestFingerprint_MetadataOrderIndependent(t *testing.T) {
	a := baseIntent()
	a.Metadata = map[string]string{"k1": "v1", "k2": "v2", "k3": "v3"}
	b := baseIntent()
	b.Metadata = map[string]string{"k3": "v3", "k1": "v1", "k2": "v2"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestComputeChecksum(t *testing.T) {
	a := &SettlementEvent{EventID: "evt-1", GatewayRef: "ref-1", Payload: []byte(`{"a":1}`)}
	b := &SettlementEvent{EventID: "evt-1", GatewayRef: "ref-1", Payload: []byte(`{"a":1}`)}
	a.ComputeChecksum()
	b.ComputeChecksum()
	assert.Equal(t, a.Checksum, b.Checksum)

	c := &SettlementEvent{EventID: "evt-2", GatewayRef: "ref-1", Payload: []byte(`{"a":1}`)}
	c.ComputeChecksum()
	assert.NotEqual(t, a.Checksum, c.Checksum)

	// A supplied checksum is authoritative and never recomputed.
	d := &SettlementEvent{EventID: "evt-1", Checksum: "given"}
	d.ComputeChecksum()
	assert.Equal(t, "given", d.Checksum)
}
