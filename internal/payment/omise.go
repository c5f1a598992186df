package payment

import (
	"context"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// OmiseProvider places authorization holds as uncaptured Omise charges and
// releases them with charge reversals.
type OmiseProvider struct {
	client *omise.Client
}

// NewOmiseProvider creates an OmiseProvider with the given API keys.
func NewOmiseProvider(publicKey, secretKey string) (*OmiseProvider, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create omise client: %w", err)
	}
	return &OmiseProvider{client: client}, nil
}

// Name identifies the provider in authorization records.
func (p *OmiseProvider) Name() string { return "omise" }

// Authorize creates an uncaptured charge, holding the funds without settling.
func (p *OmiseProvider) Authorize(ctx context.Context, req AuthorizeRequest) (AuthResult, error) {
	charge := &omise.Charge{}
	err := p.client.Do(charge, &operations.CreateCharge{
		Amount:      req.AmountCents,
		Currency:    req.Currency,
		DontCapture: true,
		Customer:    req.BookingID,
		Description: fmt.Sprintf("authorization hold for booking %s", req.BookingNumber),
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("omise create charge: %w", err)
	}

	result := AuthResult{
		TransactionID: charge.ID,
		Authorized:    charge.Authorized,
	}
	if !charge.Authorized {
		result.FailureReason = string(charge.Status)
		if charge.FailureMessage != nil {
			result.FailureReason = *charge.FailureMessage
		}
	}
	return result, nil
}

// Void reverses an uncaptured charge, releasing the hold.
func (p *OmiseProvider) Void(ctx context.Context, transactionID string) error {
	charge := &omise.Charge{}
	if err := p.client.Do(charge, &operations.ReverseCharge{ChargeID: transactionID}); err != nil {
		return fmt.Errorf("omise reverse charge %s: %w", transactionID, err)
	}
	return nil
}
