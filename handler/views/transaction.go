package views

import (
	"encoding/json"
	"time"

	"ledger/core"
)

var transactionStatus = map[core.TransactionStatus]string{
	core.TransactionStatusInit:     "init",
	core.TransactionStatusComplete: "complete",
	core.TransactionStatusAbort:    "abort",
}

// Transaction journal entry view
type Transaction struct {
	ID        int64           `json:"id"`
	TraceID   string          `json:"trace_id"`
	Action    string          `json:"action"`
	UserID    string          `json:"user_id"`
	AssetID   string          `json:"asset_id"`
	Amount    string          `json:"amount"`
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// TransactionView render the transaction
func TransactionView(t *core.Transaction) Transaction {
	view := Transaction{
		ID:        t.ID,
		TraceID:   t.TraceID,
		Action:    t.Action.String(),
		UserID:    t.UserID,
		AssetID:   t.AssetID,
		Amount:    t.Amount.String(),
		Status:    transactionStatus[t.Status],
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	if len(t.Data) > 0 {
		view.Data = json.RawMessage(t.Data)
	}

	return view
}

// TransactionViews render transactions
func TransactionViews(transactions []*core.Transaction) []Transaction {
	views := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, TransactionView(t))
	}

	return views
}
