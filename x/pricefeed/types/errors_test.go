package types

import (
	"testing"

	sdkerrors "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorDefinitions(t *testing.T) {
	tests := []struct {
		name string
		err  *sdkerrors.Error
		code uint32
		msg  string
	}{
		{"ErrInvalidFeed", ErrInvalidFeed, 2, "invalid feed id"},
		{"ErrInvalidPrice", ErrInvalidPrice, 3, "invalid price value"},
		{"ErrInvalidPayload", ErrInvalidPayload, 4, "invalid update payload"},
		{"ErrPriceNotFound", ErrPriceNotFound, 5, "price not found"},
		{"ErrPriceTooOld", ErrPriceTooOld, 6, "price data too old"},
		{"ErrPriceDeviationTooHigh", ErrPriceDeviationTooHigh, 7, "price deviation too high"},
		{"ErrInsufficientFee", ErrInsufficientFee, 8, "insufficient update fee"},
		{"ErrFeedNotInUpdate", ErrFeedNotInUpdate, 9, "feed not present in verified update"},
		{"ErrStaleUpdate", ErrStaleUpdate, 10, "update older than stored record"},
		{"ErrUnauthorized", ErrUnauthorized, 11, "unauthorized"},
		{"ErrInvalidConfig", ErrInvalidConfig, 12, "invalid module configuration"},
	}

	seenCodes := make(map[uint32]string, len(tests))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, ModuleName, tt.err.Codespace())
			require.Equal(t, tt.code, tt.err.ABCICode())
			require.Contains(t, tt.err.Error(), tt.msg)

			prev, dup := seenCodes[tt.code]
			require.Falsef(t, dup, "code %d reused by %s and %s", tt.code, prev, tt.name)
			seenCodes[tt.code] = tt.name
		})
	}
}

func TestErrorWrappingPreservesIdentity(t *testing.T) {
	wrapped := ErrPriceDeviationTooHigh.Wrapf("feed %s: deviation %d bps exceeds maximum %d bps", "BTC/USD", 900, 500)
	require.ErrorIs(t, wrapped, ErrPriceDeviationTooHigh)
	require.Contains(t, wrapped.Error(), "900")
	require.Contains(t, wrapped.Error(), "500")
}
