package amqp

import (
	"encoding/json"
	"time"
)

// Ledger change operations carried on the wire.
const (
	OpCreated = "created"
	OpDeleted = "deleted"
)

// LedgerChangeMessage announces a single ledger mutation. It carries only
// the id and operation; the worker fetches the full row from the store.
type LedgerChangeMessage struct {
	TransactionID string    `json:"transaction_id"`
	Op            string    `json:"op"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewLedgerChangeMessage(transactionID, op string) *LedgerChangeMessage {
	return &LedgerChangeMessage{
		TransactionID: transactionID,
		Op:            op,
		Timestamp:     time.Now(),
	}
}

func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
