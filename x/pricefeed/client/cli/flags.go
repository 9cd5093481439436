package cli

// Flag names for pricefeed transaction commands
const (
	// FlagPayment is the fee payment attached to a price update submission
	FlagPayment = "payment"
)
