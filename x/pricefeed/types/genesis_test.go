package types

import (
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestGenesisStateValidate(t *testing.T) {
	owner := sdk.AccAddress([]byte("genesis_test_owner__")).String()
	now := time.Now().Unix()

	tests := []struct {
		name     string
		genState *GenesisState
		wantErr  string
	}{
		{
			name:     "default genesis is valid",
			genState: DefaultGenesis(),
		},
		{
			name: "genesis with owner and records",
			genState: NewGenesisState(DefaultParams(), owner, []PriceRecord{
				NewPriceRecord("BTC/USD", scaled(45000), now, 10),
				NewPriceRecord("ETH/USD", scaled(2500), now, 10),
			}),
		},
		{
			name:     "invalid params",
			genState: NewGenesisState(NewParams(0, 1000), owner, nil),
			wantErr:  "max price age must be positive",
		},
		{
			name:     "invalid owner address",
			genState: NewGenesisState(DefaultParams(), "not-bech32", nil),
			wantErr:  "invalid owner address",
		},
		{
			name: "malformed record",
			genState: NewGenesisState(DefaultParams(), owner, []PriceRecord{
				{FeedId: "", Value: scaled(1), Timestamp: now},
			}),
			wantErr: "invalid price record",
		},
		{
			name: "duplicate feed",
			genState: NewGenesisState(DefaultParams(), owner, []PriceRecord{
				NewPriceRecord("BTC/USD", scaled(45000), now, 1),
				NewPriceRecord("BTC/USD", scaled(46000), now, 2),
			}),
			wantErr: "duplicate price record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.genState.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
