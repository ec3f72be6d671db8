package models

// Email template names.
const (
	EmailTemplateRequestReceived    = "seller_request_received"
	EmailTemplateRequestApproved    = "seller_request_approved"
	EmailTemplateRequestRejected    = "seller_request_rejected"
	EmailTemplateSubscriptionActive = "subscription_active"
	EmailTemplateWithdrawalStatus   = "withdrawal_status"
)

// EmailMessage is the payload carried by the async mail queue. Context keys
// are interpolated into the named template.
type EmailMessage struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Context  map[string]string `json:"context,omitempty"`
}

// PushMessage is the payload carried by the async push queue.
type PushMessage struct {
	UserID string            `json:"userId"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}
