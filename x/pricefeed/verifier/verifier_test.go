package verifier_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
	"github.com/feedgate-labs/feedgate/x/pricefeed/verifier"
)

func oracleSet(t *testing.T, n int) ([]cryptotypes.PrivKey, []cryptotypes.PubKey) {
	t.Helper()
	privs := make([]cryptotypes.PrivKey, n)
	pubs := make([]cryptotypes.PubKey, n)
	for i := range privs {
		privs[i] = secp256k1.GenPrivKey()
		pubs[i] = privs[i].PubKey()
	}
	return privs, pubs
}

func testValues() []types.VerifiedFeedValue {
	now := time.Unix(1_700_000_000, 0).Unix()
	return []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: math.NewIntWithDecimal(45000, 18), Timestamp: now, Slot: 7},
		{FeedId: "ETH/USD", Value: math.NewIntWithDecimal(2500, 18), Timestamp: now, Slot: 7},
	}
}

func TestNewValidation(t *testing.T) {
	_, pubs := oracleSet(t, 3)
	fee := sdk.NewInt64Coin("ufeed", 10)

	_, err := verifier.New(nil, 1, fee)
	require.ErrorContains(t, err, "oracle set cannot be empty")

	_, err = verifier.New(pubs, 0, fee)
	require.ErrorContains(t, err, "min signatures")

	_, err = verifier.New(pubs, 4, fee)
	require.ErrorContains(t, err, "min signatures")

	_, err = verifier.New(pubs, 2, sdk.Coin{Denom: "!", Amount: math.NewInt(1)})
	require.ErrorContains(t, err, "invalid fee")

	v, err := verifier.New(pubs, 2, fee)
	require.NoError(t, err)
	require.NotNil(t, v)
}

func TestVerifyUpdateQuorum(t *testing.T) {
	privs, pubs := oracleSet(t, 3)
	v, err := verifier.New(pubs, 2, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)

	values := testValues()

	tests := []struct {
		name    string
		signers []cryptotypes.PrivKey
		wantErr string
	}{
		{"all three oracles", privs, ""},
		{"exact quorum", privs[:2], ""},
		{"one signature short", privs[:1], "insufficient oracle quorum"},
		{"no signatures", nil, "insufficient oracle quorum"},
		{"unknown signer does not count", []cryptotypes.PrivKey{privs[0], secp256k1.GenPrivKey()}, "insufficient oracle quorum"},
		{"same oracle twice counts once", []cryptotypes.PrivKey{privs[0], privs[0]}, "insufficient oracle quorum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := verifier.Seal(values, tt.signers)
			require.NoError(t, err)

			verified, fee, err := v.VerifyUpdate(context.Background(), payload)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, values, verified)
			// Fee scales with the number of values in the envelope.
			require.Equal(t, sdk.NewInt64Coin("ufeed", 20), fee)
		})
	}
}

func TestVerifyUpdateRejectsTamperedValues(t *testing.T) {
	privs, pubs := oracleSet(t, 3)
	v, err := verifier.New(pubs, 2, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)

	values := testValues()
	payload, err := verifier.Seal(values, privs[:2])
	require.NoError(t, err)

	// Re-seal different values with the old signatures.
	tampered := testValues()
	tampered[0].Value = math.NewIntWithDecimal(50000, 18)
	forged, err := verifier.Seal(tampered, nil)
	require.NoError(t, err)

	var good, bad verifier.QuoteEnvelope
	require.NoError(t, json.Unmarshal(payload, &good))
	require.NoError(t, json.Unmarshal(forged, &bad))
	bad.Signatures = good.Signatures

	forgedPayload, err := json.Marshal(bad)
	require.NoError(t, err)

	_, _, err = v.VerifyUpdate(context.Background(), forgedPayload)
	require.ErrorContains(t, err, "insufficient oracle quorum")
}

func TestVerifyUpdateMalformedEnvelope(t *testing.T) {
	privs, pubs := oracleSet(t, 3)
	v, err := verifier.New(pubs, 2, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)

	_, _, err = v.VerifyUpdate(context.Background(), []byte("not json"))
	require.ErrorContains(t, err, "malformed envelope")

	empty, err := verifier.Seal(nil, privs[:2])
	require.NoError(t, err)
	_, _, err = v.VerifyUpdate(context.Background(), empty)
	require.ErrorContains(t, err, "no feed values")

	invalid := []types.VerifiedFeedValue{{FeedId: "", Value: math.NewInt(1), Timestamp: 1}}
	payload, err := verifier.Seal(invalid, privs[:2])
	require.NoError(t, err)
	_, _, err = v.VerifyUpdate(context.Background(), payload)
	require.ErrorContains(t, err, "invalid feed value")
}

func TestRequiredFee(t *testing.T) {
	_, pubs := oracleSet(t, 3)
	v, err := verifier.New(pubs, 2, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)

	require.Equal(t, sdk.NewInt64Coin("ufeed", 0), v.RequiredFee(0))
	require.Equal(t, sdk.NewInt64Coin("ufeed", 10), v.RequiredFee(1))
	require.Equal(t, sdk.NewInt64Coin("ufeed", 50), v.RequiredFee(5))
}

func TestValueDigestIsOrderInsensitive(t *testing.T) {
	values := testValues()
	a, err := verifier.ValueDigest(values)
	require.NoError(t, err)

	// Same content, same digest.
	b, err := verifier.ValueDigest(testValues())
	require.NoError(t, err)
	require.Equal(t, a, b)

	// Different content, different digest.
	changed := testValues()
	changed[0].Slot = 8
	c, err := verifier.ValueDigest(changed)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}
