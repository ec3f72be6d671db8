package payment

import (
	"context"

	"sokoni/models"
)

// TransactionStatus is the verified state of a gateway transaction.
type TransactionStatus string

const (
	StatusApproved TransactionStatus = "approved"
	StatusPending  TransactionStatus = "pending"
	StatusDeclined TransactionStatus = "declined"
)

// TransactionRequest describes a payment to collect.
type TransactionRequest struct {
	Amount        float64
	Currency      string
	Description   string
	CustomerEmail string
	CustomerName  string
	CallbackURL   string
	Reference     string
}

// Transaction is the gateway's record of a created payment.
type Transaction struct {
	ID            string
	RedirectToken string
	PaymentURL    string
}

// Transfer is the gateway's record of a created outbound payout.
type Transfer struct {
	ID string
}

// Gateway is the payment gateway collaborator. Callback payloads are never
// trusted; VerifyTransaction is the single source of truth for a
// transaction's outcome.
type Gateway interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*Transaction, error)
	VerifyTransaction(ctx context.Context, transactionID string) (TransactionStatus, error)
	CreateTransfer(ctx context.Context, amount float64, bank models.BankInfo, description, currency string) (*Transfer, error)
}
