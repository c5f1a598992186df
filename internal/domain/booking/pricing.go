package booking

import "fmt"

// ServiceType identifies the kind of appointment being booked.
type ServiceType string

const (
	ServiceMakeup     ServiceType = "makeup"
	ServiceHair       ServiceType = "hair"
	ServiceBridal     ServiceType = "bridal"
	ServicePhotoshoot ServiceType = "photoshoot"
)

// IsValid returns true if the service type is recognized.
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceMakeup, ServiceHair, ServiceBridal, ServicePhotoshoot:
		return true
	}
	return false
}

// PricingStrategy defines the interface for quoting booking prices.
type PricingStrategy interface {
	// Quote returns the price in cents for the given parameters.
	Quote(params PricingParams) (int64, error)
}

// PricingParams holds the inputs for a price quote.
type PricingParams struct {
	ServiceType ServiceType
	Occasion    string
}

// StandardPricingStrategy implements the default rate card.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Quote computes the price in cents (sen for MYR).
//
// Rate card:
//   - Base rate per service type
//   - Occasion surcharge for weddings and engagements
func (s *StandardPricingStrategy) Quote(params PricingParams) (int64, error) {
	base, err := serviceBaseRate(params.ServiceType)
	if err != nil {
		return 0, err
	}
	return base + occasionSurcharge(params.Occasion), nil
}

// serviceBaseRate returns the base rate in cents for the service type.
func serviceBaseRate(serviceType ServiceType) (int64, error) {
	switch serviceType {
	case ServiceMakeup:
		return 15000, nil // MYR 150.00
	case ServiceHair:
		return 12000, nil // MYR 120.00
	case ServiceBridal:
		return 80000, nil // MYR 800.00
	case ServicePhotoshoot:
		return 25000, nil // MYR 250.00
	default:
		return 0, fmt.Errorf("unknown service type for pricing: %s", serviceType)
	}
}

// occasionSurcharge returns the surcharge in cents for high-demand occasions.
func occasionSurcharge(occasion string) int64 {
	switch occasion {
	case "wedding":
		return 20000 // MYR 200.00
	case "engagement":
		return 10000 // MYR 100.00
	default:
		return 0
	}
}
