// Package verifier provides a reference quote verifier for the pricefeed
// module: an M-of-N secp256k1 signature check over a canonical update
// envelope. The keeper only depends on the types.QuoteVerifier interface,
// any production deployment can swap this for the oracle network's own
// verification program.
package verifier

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// QuoteEnvelope is the wire form of an oracle update payload: the feed
// values plus one signature per participating oracle over the value digest.
type QuoteEnvelope struct {
	Values     []types.VerifiedFeedValue `json:"values"`
	Signatures [][]byte                  `json:"signatures"`
}

// Verifier authenticates quote envelopes against a fixed oracle set.
type Verifier struct {
	oracles       []cryptotypes.PubKey
	minSignatures int
	feePerFeed    sdk.Coin
}

var _ types.QuoteVerifier = (*Verifier)(nil)

// New creates a Verifier. minSignatures distinct oracles from the given set
// must have signed an envelope for it to verify.
func New(oracles []cryptotypes.PubKey, minSignatures int, feePerFeed sdk.Coin) (*Verifier, error) {
	if len(oracles) == 0 {
		return nil, fmt.Errorf("oracle set cannot be empty")
	}
	if minSignatures <= 0 || minSignatures > len(oracles) {
		return nil, fmt.Errorf("min signatures must be in [1, %d], got %d", len(oracles), minSignatures)
	}
	if err := feePerFeed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fee: %w", err)
	}

	return &Verifier{
		oracles:       oracles,
		minSignatures: minSignatures,
		feePerFeed:    feePerFeed,
	}, nil
}

// VerifyUpdate implements types.QuoteVerifier. Verification is
// all-or-nothing: a malformed envelope or an insufficient oracle quorum
// rejects the whole payload.
func (v *Verifier) VerifyUpdate(_ context.Context, payload []byte) ([]types.VerifiedFeedValue, sdk.Coin, error) {
	var envelope QuoteEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, sdk.Coin{}, fmt.Errorf("malformed envelope: %w", err)
	}

	if len(envelope.Values) == 0 {
		return nil, sdk.Coin{}, fmt.Errorf("envelope carries no feed values")
	}

	for _, value := range envelope.Values {
		if err := value.Validate(); err != nil {
			return nil, sdk.Coin{}, fmt.Errorf("invalid feed value: %w", err)
		}
	}

	digest, err := ValueDigest(envelope.Values)
	if err != nil {
		return nil, sdk.Coin{}, err
	}

	// Count distinct oracles with a valid signature over the digest. The
	// same oracle signing twice counts once.
	signed := make(map[int]struct{})
	for _, sig := range envelope.Signatures {
		for i, oracle := range v.oracles {
			if _, done := signed[i]; done {
				continue
			}
			if oracle.VerifySignature(digest, sig) {
				signed[i] = struct{}{}
				break
			}
		}
	}

	if len(signed) < v.minSignatures {
		return nil, sdk.Coin{}, fmt.Errorf(
			"insufficient oracle quorum: %d of %d required signatures", len(signed), v.minSignatures,
		)
	}

	fee := sdk.NewCoin(v.feePerFeed.Denom, v.feePerFeed.Amount.MulRaw(int64(len(envelope.Values))))
	return envelope.Values, fee, nil
}

// RequiredFee returns the fee the verifier charges for an update carrying
// the given number of feed values.
func (v *Verifier) RequiredFee(numValues int) sdk.Coin {
	return sdk.NewCoin(v.feePerFeed.Denom, v.feePerFeed.Amount.MulRaw(int64(numValues)))
}

// ValueDigest returns the canonical signing digest for a set of feed
// values: sha256 over their sorted JSON encoding.
func ValueDigest(values []types.VerifiedFeedValue) ([]byte, error) {
	bz, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode values: %w", err)
	}
	digest := sha256.Sum256(sdk.MustSortJSON(bz))
	return digest[:], nil
}

// Seal builds a signed quote envelope. Used by tests and the simulation
// harness, a real oracle network produces envelopes out of band.
func Seal(values []types.VerifiedFeedValue, signers []cryptotypes.PrivKey) ([]byte, error) {
	digest, err := ValueDigest(values)
	if err != nil {
		return nil, err
	}

	sigs := make([][]byte, 0, len(signers))
	for _, signer := range signers {
		sig, err := signer.Sign(digest)
		if err != nil {
			return nil, fmt.Errorf("failed to sign digest: %w", err)
		}
		sigs = append(sigs, sig)
	}

	return json.Marshal(QuoteEnvelope{Values: values, Signatures: sigs})
}
