package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the pricefeed MsgServer
// interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// SubmitPriceUpdate handles oracle price update submissions
func (ms msgServer) SubmitPriceUpdate(goCtx context.Context, msg *types.MsgSubmitPriceUpdate) (*types.MsgSubmitPriceUpdateResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	refund, err := ms.Keeper.SubmitPriceUpdate(ctx, sender, msg.Payload, msg.FeedIds, msg.Payment)
	if err != nil {
		return nil, err
	}

	return &types.MsgSubmitPriceUpdateResponse{Refund: refund}, nil
}

// UpdateParams handles configuration updates from the owner
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := ms.assertOwner(ctx, msg.Owner); err != nil {
		return nil, err
	}

	if err := msg.Params.Validate(); err != nil {
		return nil, types.ErrInvalidConfig.Wrap(err.Error())
	}

	if err := ms.SetParams(ctx, msg.Params); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdated,
			sdk.NewAttribute(types.AttributeKeyMaxPriceAge, fmt.Sprintf("%d", msg.Params.MaxPriceAge)),
			sdk.NewAttribute(types.AttributeKeyMaxDeviation, fmt.Sprintf("%d", msg.Params.MaxDeviationBps)),
		),
	)

	ms.Logger(ctx).Info("module parameters updated",
		"max_price_age", msg.Params.MaxPriceAge,
		"max_deviation_bps", msg.Params.MaxDeviationBps,
	)

	return &types.MsgUpdateParamsResponse{}, nil
}

// TransferOwnership hands configuration authority to a new owner
func (ms msgServer) TransferOwnership(goCtx context.Context, msg *types.MsgTransferOwnership) (*types.MsgTransferOwnershipResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := ms.assertOwner(ctx, msg.Owner); err != nil {
		return nil, err
	}

	previous := ms.GetOwner(ctx)
	ms.SetOwner(ctx, msg.NewOwner)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOwnershipTransferred,
			sdk.NewAttribute(types.AttributeKeyPreviousOwner, previous),
			sdk.NewAttribute(types.AttributeKeyNewOwner, msg.NewOwner),
		),
	)

	return &types.MsgTransferOwnershipResponse{}, nil
}
