package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState holds the pricefeed module's genesis state
type GenesisState struct {
	Params Params `json:"params"`
	// Owner is the account allowed to mutate module configuration. An empty
	// owner freezes the configuration until set by a chain upgrade.
	Owner   string        `json:"owner"`
	Records []PriceRecord `json:"records"`
}

// DefaultGenesis returns the default genesis state for the pricefeed module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:  DefaultParams(),
		Owner:   "",
		Records: []PriceRecord{},
	}
}

// NewGenesisState creates a new genesis state instance
func NewGenesisState(params Params, owner string, records []PriceRecord) *GenesisState {
	return &GenesisState{
		Params:  params,
		Owner:   owner,
		Records: records,
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	if gs.Owner != "" {
		if _, err := sdk.AccAddressFromBech32(gs.Owner); err != nil {
			return fmt.Errorf("invalid owner address: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(gs.Records))
	for _, record := range gs.Records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("invalid price record for feed %q: %w", record.FeedId, err)
		}
		if _, dup := seen[record.FeedId]; dup {
			return fmt.Errorf("duplicate price record for feed %q", record.FeedId)
		}
		seen[record.FeedId] = struct{}{}
	}

	return nil
}

// proto.Message stubs, see msgs.go.

func (gs *GenesisState) Reset()         { *gs = GenesisState{} }
func (gs *GenesisState) String() string { return fmt.Sprintf("%+v", *gs) }
func (*GenesisState) ProtoMessage()     {}
