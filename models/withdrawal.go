package models

import "time"

// Withdrawal statuses. completed, failed and cancelled are terminal.
const (
	WithdrawalPending    = "pending"
	WithdrawalProcessing = "processing"
	WithdrawalCompleted  = "completed"
	WithdrawalFailed     = "failed"
	WithdrawalCancelled  = "cancelled"
)

// BankInfo is the payout destination for a withdrawal.
type BankInfo struct {
	AccountName   string `bson:"accountName" json:"accountName"`
	AccountNumber string `bson:"accountNumber" json:"accountNumber"`
	BankName      string `bson:"bankName" json:"bankName"`
	Country       string `bson:"country,omitempty" json:"country,omitempty"`
}

// Withdrawal is a seller payout request. Moving it into processing triggers
// exactly one outbound transfer at the payment gateway.
type Withdrawal struct {
	ID         string    `bson:"id" json:"id"`
	SellerID   string    `bson:"sellerId" json:"sellerId"`
	UserID     string    `bson:"userId" json:"userId"`
	Amount     float64   `bson:"amount" json:"amount"`
	Currency   string    `bson:"currency" json:"currency"`
	BankInfo   BankInfo  `bson:"bankInfo" json:"bankInfo"`
	Status     string    `bson:"status" json:"status"`
	TransferID string    `bson:"transferId,omitempty" json:"transferId,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminalWithdrawalStatus reports whether status permits no further
// transitions.
func IsTerminalWithdrawalStatus(status string) bool {
	switch status {
	case WithdrawalCompleted, WithdrawalFailed, WithdrawalCancelled:
		return true
	}
	return false
}

// IsValidWithdrawalStatus reports whether status is a known withdrawal state.
func IsValidWithdrawalStatus(status string) bool {
	switch status {
	case WithdrawalPending, WithdrawalProcessing, WithdrawalCompleted,
		WithdrawalFailed, WithdrawalCancelled:
		return true
	}
	return false
}
