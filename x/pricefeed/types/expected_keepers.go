package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the expected bank keeper used for fee collection and
// excess payment refunds.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// QuoteVerifier authenticates an opaque oracle update payload and extracts
// the verified feed tuples it carries, together with the fee the oracle
// network requires for the update.
//
// Verification is all-or-nothing: either every tuple in the payload is
// authentic, or the whole payload is rejected. The keeper never inspects the
// payload itself.
type QuoteVerifier interface {
	VerifyUpdate(ctx context.Context, payload []byte) ([]VerifiedFeedValue, sdk.Coin, error)
}
