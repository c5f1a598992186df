package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPricingStrategy_Quote(t *testing.T) {
	strategy := NewStandardPricingStrategy()

	tests := []struct {
		name        string
		serviceType ServiceType
		occasion    string
		want        int64
	}{
		{"makeup base rate", ServiceMakeup, "", 15000},
		{"hair base rate", ServiceHair, "", 12000},
		{"bridal base rate", ServiceBridal, "", 80000},
		{"photoshoot base rate", ServicePhotoshoot, "", 25000},
		{"makeup with wedding surcharge", ServiceMakeup, "wedding", 35000},
		{"bridal with wedding surcharge", ServiceBridal, "wedding", 100000},
		{"hair with engagement surcharge", ServiceHair, "engagement", 22000},
		{"unknown occasion has no surcharge", ServiceMakeup, "birthday", 15000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strategy.Quote(PricingParams{ServiceType: tt.serviceType, Occasion: tt.occasion})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandardPricingStrategy_UnknownServiceType(t *testing.T) {
	strategy := NewStandardPricingStrategy()

	_, err := strategy.Quote(PricingParams{ServiceType: ServiceType("tattoo")})
	assert.Error(t, err)
}
