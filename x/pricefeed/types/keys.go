package types

var (
	// ModuleNamespace is the namespace byte for the pricefeed module (0x07)
	ModuleNamespace = byte(0x07)

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x07, 0x01}

	// OwnerKey is the key for the configuration owner address
	OwnerKey = []byte{0x07, 0x02}

	// PriceRecordKeyPrefix is the prefix for price record store keys
	PriceRecordKeyPrefix = []byte{0x07, 0x03}
)

// GetPriceRecordKey returns the store key for a feed's price record
func GetPriceRecordKey(feedID string) []byte {
	return append(PriceRecordKeyPrefix, []byte(feedID)...)
}
