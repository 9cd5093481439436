package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the necessary x/pricefeed concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON
// serialization and for the module's state codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgSubmitPriceUpdate{}, "feedgate/pricefeed/MsgSubmitPriceUpdate", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "feedgate/pricefeed/MsgUpdateParams", nil)
	cdc.RegisterConcrete(&MsgTransferOwnership{}, "feedgate/pricefeed/MsgTransferOwnership", nil)
}

// RegisterInterfaces registers the x/pricefeed message types with the
// interface registry
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgSubmitPriceUpdate{},
		&MsgUpdateParams{},
		&MsgTransferOwnership{},
	)
}

// ModuleCdc references the x/pricefeed module codec. The module keeps its
// hand-written state and message types on the amino codec.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	sdk.RegisterLegacyAminoCodec(ModuleCdc)
}
