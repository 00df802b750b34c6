package services

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/account"
)

// BillingService provisions Stripe Express accounts so coaches can receive
// payouts. The rest of the payment flow lives in Stripe-hosted surfaces.
type BillingService struct {
	configured bool
}

func NewBillingService(secretKey string) *BillingService {
	if secretKey == "" {
		return &BillingService{}
	}
	stripe.Key = secretKey
	return &BillingService{configured: true}
}

func (s *BillingService) Configured() bool {
	return s.configured
}

// CreateConnectAccount creates an Express connect account and returns its id.
func (s *BillingService) CreateConnectAccount() (string, error) {
	params := &stripe.AccountParams{
		Type: stripe.String(string(stripe.AccountTypeExpress)),
	}

	acct, err := account.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe express account: %w", err)
	}
	return acct.ID, nil
}
