package types

const (
	// ModuleName defines the module name
	ModuleName = "pricefeed"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// UnitScaleDecimals is the number of decimals in the fixed-point price
// representation. Every stored Value is the real price multiplied by 10^18.
const UnitScaleDecimals = 18

// BpsDenominator converts a ratio into basis points (1 bps = 0.01%).
const BpsDenominator = 10_000
