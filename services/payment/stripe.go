package payment

import (
	"context"
	"fmt"

	"sokoni/models"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway over Stripe Checkout. A hosted checkout
// session provides the redirect payment URL; session lookup provides
// independent verification; transfers provide outbound payouts.
type StripeGateway struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeGateway creates a gateway bound to the given secret key.
func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, logger: logger}
}

// CreateTransaction opens a checkout session and returns its hosted payment
// URL. The session id is the external transaction reference persisted on the
// subscription.
func (g *StripeGateway) CreateTransaction(ctx context.Context, req TransactionRequest) (*Transaction, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.CallbackURL),
		CancelURL:         stripe.String(req.CallbackURL),
		CustomerEmail:     stripe.String(req.CustomerEmail),
		ClientReferenceID: stripe.String(req.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("reference", req.Reference)
	params.AddMetadata("customerName", req.CustomerName)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	g.logger.Info("created gateway transaction",
		zap.String("transactionId", sess.ID),
		zap.String("reference", req.Reference),
	)

	return &Transaction{
		ID:            sess.ID,
		RedirectToken: sess.ClientSecret,
		PaymentURL:    sess.URL,
	}, nil
}

// VerifyTransaction fetches the session from Stripe and maps its payment
// state. Anything neither paid nor expired is still pending.
func (g *StripeGateway) VerifyTransaction(ctx context.Context, transactionID string) (TransactionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(transactionID, params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to fetch checkout session %s: %w", transactionID, err)
	}

	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return StatusApproved, nil
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		return StatusDeclined, nil
	default:
		return StatusPending, nil
	}
}

// CreateTransfer creates an outbound payout. The bank account number doubles
// as the connected destination account reference.
func (g *StripeGateway) CreateTransfer(ctx context.Context, amount float64, bank models.BankInfo, description, currency string) (*Transfer, error) {
	params := &stripe.TransferParams{
		Amount:      stripe.Int64(toMinorUnits(amount)),
		Currency:    stripe.String(currency),
		Destination: stripe.String(bank.AccountNumber),
		Description: stripe.String(description),
	}
	params.Context = ctx

	tr, err := g.api.Transfers.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create transfer: %w", err)
	}

	g.logger.Info("created gateway transfer",
		zap.String("transferId", tr.ID),
		zap.Float64("amount", amount),
	)

	return &Transfer{ID: tr.ID}, nil
}

// toMinorUnits converts a decimal amount to the gateway's integer minor
// units (cents).
func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
