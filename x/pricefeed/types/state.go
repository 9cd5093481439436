package types

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
)

// PriceRecord is the last accepted price for a feed. Value is the signed
// price scaled by 10^18. Slot is the sequence marker from the oracle source
// chain and carries no correctness semantics, it is kept for lineage only.
type PriceRecord struct {
	FeedId    string   `json:"feed_id"`
	Value     math.Int `json:"value"`
	Timestamp int64    `json:"timestamp"`
	Slot      uint64   `json:"slot"`
}

// NewPriceRecord creates a new price record
func NewPriceRecord(feedID string, value math.Int, timestamp int64, slot uint64) PriceRecord {
	return PriceRecord{
		FeedId:    feedID,
		Value:     value,
		Timestamp: timestamp,
		Slot:      slot,
	}
}

// Validate validates the price record
func (p PriceRecord) Validate() error {
	if p.FeedId == "" {
		return fmt.Errorf("feed id cannot be empty")
	}
	if p.Value.IsNil() {
		return fmt.Errorf("price value cannot be nil")
	}
	if p.Timestamp <= 0 {
		return fmt.Errorf("timestamp must be positive")
	}
	return nil
}

// Age returns how long ago the record was observed. Negative ages (record
// timestamped in the future) clamp to zero.
func (p PriceRecord) Age(currentTime time.Time) time.Duration {
	age := currentTime.Sub(time.Unix(p.Timestamp, 0))
	if age < 0 {
		return 0
	}
	return age
}

// IsStale checks whether the record is older than the allowed age window
func (p PriceRecord) IsStale(currentTime time.Time, maxPriceAge uint64) bool {
	return p.Age(currentTime) > time.Duration(maxPriceAge)*time.Second
}

// VerifiedFeedValue is a single feed tuple extracted from an authenticated
// oracle update payload by the quote verifier.
type VerifiedFeedValue struct {
	FeedId    string   `json:"feed_id"`
	Value     math.Int `json:"value"`
	Timestamp int64    `json:"timestamp"`
	Slot      uint64   `json:"slot"`
}

// Validate validates the verified feed value
func (v VerifiedFeedValue) Validate() error {
	if v.FeedId == "" {
		return fmt.Errorf("feed id cannot be empty")
	}
	if v.Value.IsNil() {
		return fmt.Errorf("value cannot be nil")
	}
	if v.Timestamp <= 0 {
		return fmt.Errorf("timestamp must be positive")
	}
	return nil
}
