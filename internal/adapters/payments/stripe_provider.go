package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// metadata keys carried on the checkout session so the webhook can route
// the completed payment back to the right invoice.
const (
	metaInvoiceID = "invoice_id"
	metaCompanyID = "company_id"
	metaFeeCents  = "fee_cents"
)

// StripeProvider creates hosted checkout sessions and verifies webhook
// events using the stripe-go client.
type StripeProvider struct {
	webhookSecret string
}

// NewStripeProvider configures the stripe client with the platform secret
// key and remembers the webhook signing secret.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{webhookSecret: webhookSecret}
}

var _ portssvc.CheckoutProvider = (*StripeProvider)(nil)

func (p *StripeProvider) CreateSession(ctx context.Context, params portssvc.CheckoutParams) (*portssvc.CheckoutSession, error) {
	lineItems := []*stripe.CheckoutSessionLineItemParams{
		{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String("Invoice " + params.InvoiceNumber),
					Description: stripe.String(params.Description),
				},
				UnitAmount: stripe.Int64(params.AmountCents),
			},
			Quantity: stripe.Int64(1),
		},
	}
	if params.FeeCents > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Card processing fee"),
				},
				UnitAmount: stripe.Int64(params.FeeCents),
			},
			Quantity: stripe.Int64(1),
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Metadata = map[string]string{
		metaInvoiceID: params.InvoiceID,
		metaCompanyID: params.CompanyID,
		metaFeeCents:  strconv.FormatInt(params.FeeCents, 10),
	}
	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	if params.StripeAccount != "" {
		sessionParams.SetStripeAccount(params.StripeAccount)
	}
	sessionParams.Context = ctx

	sess, err := session.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &portssvc.CheckoutSession{SessionID: sess.ID, CheckoutURL: sess.URL}, nil
}

// VerifyEvent checks the webhook signature and extracts completed
// checkout sessions. Other event types are acknowledged with (nil, nil).
func (p *StripeProvider) VerifyEvent(payload []byte, signature string) (*portssvc.CompletedCheckout, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session event: %w", err)
	}

	feeCents, _ := strconv.ParseInt(sess.Metadata[metaFeeCents], 10, 64)
	completed := &portssvc.CompletedCheckout{
		InvoiceID:   sess.Metadata[metaInvoiceID],
		CompanyID:   sess.Metadata[metaCompanyID],
		AmountCents: sess.AmountTotal - feeCents,
		FeeCents:    feeCents,
	}
	if sess.PaymentIntent != nil {
		completed.PaymentIntentID = sess.PaymentIntent.ID
	}
	if completed.InvoiceID == "" || completed.CompanyID == "" {
		return nil, fmt.Errorf("checkout session %s is missing invoice metadata", sess.ID)
	}
	return completed, nil
}

// PassThroughFeeCents computes the fee to add so the company nets the
// invoice amount after the processor takes 2.9% + 30c:
//
//	fee = ceil((amount + 30) / (1 - 0.029)) - amount
func PassThroughFeeCents(amountCents int64) int64 {
	grossed := float64(amountCents+30) / (1 - 0.029)
	fee := int64(grossed) - amountCents
	if float64(int64(grossed)) < grossed {
		fee++
	}
	return fee
}
