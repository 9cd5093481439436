package types

import (
	"fmt"
)

// Params holds the module configuration. Both values are owner-controlled
// and must be nonzero.
type Params struct {
	// MaxPriceAge is the maximum allowed age of a stored price, in seconds,
	// before reads consider it stale.
	MaxPriceAge uint64 `json:"max_price_age"`

	// MaxDeviationBps is the maximum allowed relative change, in basis
	// points, between consecutive accepted prices for the same feed.
	MaxDeviationBps uint64 `json:"max_deviation_bps"`
}

// DefaultParams returns default pricefeed parameters
func DefaultParams() Params {
	return Params{
		MaxPriceAge:     300,  // 5 minutes
		MaxDeviationBps: 1000, // 10%
	}
}

// NewParams creates a new Params instance
func NewParams(maxPriceAge, maxDeviationBps uint64) Params {
	return Params{
		MaxPriceAge:     maxPriceAge,
		MaxDeviationBps: maxDeviationBps,
	}
}

// Validate validates the parameter set
func (p Params) Validate() error {
	if p.MaxPriceAge == 0 {
		return fmt.Errorf("max price age must be positive")
	}
	if p.MaxDeviationBps == 0 {
		return fmt.Errorf("max deviation must be positive")
	}
	return nil
}
