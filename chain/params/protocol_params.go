package params

import (
	"math"
	"math/big"
)

const (
	// DefaultMaxOwnedAssets is the capacity of one account's owned asset list
	DefaultMaxOwnedAssets = 100
	// DefaultMaxAssetCount is the largest value the asset counter can hold
	DefaultMaxAssetCount = uint32(math.MaxUint32)
	// MaxTxDataLength bounds the payload of a transaction
	MaxTxDataLength = 1024
)

var (
	// MaxOwnedAssets can be overridden by config.json before any store is created
	MaxOwnedAssets = DefaultMaxOwnedAssets
	// MaxAssetCount can be lowered by tests to exercise counter overflow
	MaxAssetCount = DefaultMaxAssetCount
	// MinimumBalance is the least balance an account must keep after paying for an asset
	MinimumBalance = big.NewInt(0)
)
