package types

import (
	"context"
)

// MsgServer is the server API for the pricefeed message service. The module
// hand-writes its message types, so the interface is declared here instead
// of being generated.
type MsgServer interface {
	// SubmitPriceUpdate submits a signed oracle update payload and applies
	// it to the price store for the requested feeds.
	SubmitPriceUpdate(context.Context, *MsgSubmitPriceUpdate) (*MsgSubmitPriceUpdateResponse, error)

	// UpdateParams replaces the module configuration. Owner only.
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)

	// TransferOwnership hands configuration authority to a new owner.
	TransferOwnership(context.Context, *MsgTransferOwnership) (*MsgTransferOwnershipResponse, error)
}
