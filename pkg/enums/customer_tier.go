package enums

import "fmt"

// CustomerTier distinguishes walk-in customers from VIP accounts.
type CustomerTier string

const (
	CustomerTierRegular CustomerTier = "regular"
	CustomerTierVIP     CustomerTier = "vip"
)

var validCustomerTiers = []CustomerTier{
	CustomerTierRegular,
	CustomerTierVIP,
}

// IsValid reports whether the value matches the canonical customer tier enum.
func (c CustomerTier) IsValid() bool {
	for _, candidate := range validCustomerTiers {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerTier converts the raw string to CustomerTier.
func ParseCustomerTier(value string) (CustomerTier, error) {
	for _, candidate := range validCustomerTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer tier %q", value)
}
