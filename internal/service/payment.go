package service

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"samedayramps-backend/internal/logger"
)

type stripePaymentLinkService struct {
	api *client.API
}

func NewStripePaymentLinkService(secretKey string) PaymentLinkService {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripePaymentLinkService{api: api}
}

// CreatePaymentLink creates a one-time price and a hosted payment link for
// it, redirecting to redirectURL after checkout.
func (s *stripePaymentLinkService) CreatePaymentLink(ctx context.Context, amountCents int64, description, redirectURL string) (string, error) {
	priceParams := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		UnitAmount: stripe.Int64(amountCents),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(description),
		},
	}
	logger.ExternalServiceCall("stripe", "create_price", "amount_cents", amountCents)
	price, err := s.api.Prices.New(priceParams)
	if err != nil {
		logger.ExternalServiceResult("stripe", "create_price", err)
		return "", fmt.Errorf("failed to create price: %w", err)
	}

	linkParams := &stripe.PaymentLinkParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{
				Price:    stripe.String(price.ID),
				Quantity: stripe.Int64(1),
			},
		},
		AfterCompletion: &stripe.PaymentLinkAfterCompletionParams{
			Type: stripe.String("redirect"),
			Redirect: &stripe.PaymentLinkAfterCompletionRedirectParams{
				URL: stripe.String(redirectURL),
			},
		},
	}
	link, err := s.api.PaymentLinks.New(linkParams)
	if err != nil {
		logger.ExternalServiceResult("stripe", "create_payment_link", err)
		return "", fmt.Errorf("failed to create payment link: %w", err)
	}
	logger.ExternalServiceResult("stripe", "create_payment_link", nil, "payment_link_id", link.ID)
	return link.URL, nil
}
