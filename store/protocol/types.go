package protocol

import (
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
)

// AssetReader loads the committed asset ledger
type AssetReader interface {
	GetAsset(id common.Hash) (*types.Asset, error)
	GetOwned(owner common.Address) ([]common.Hash, error)
	GetAssetCount() (uint32, error)
}

// AssetWriter stages asset ledger changes
type AssetWriter interface {
	SetAsset(asset *types.Asset) error
	SetOwned(owner common.Address, ids []common.Hash) error
	SetAssetCount(count uint32) error
}

type BalanceReader interface {
	GetBalance(addr common.Address) (*big.Int, error)
}

type BalanceWriter interface {
	SetBalance(addr common.Address, balance *big.Int) error
}

// Batch collects the changes of a block and writes them atomically
type Batch interface {
	AssetWriter
	BalanceWriter
	SetBlock(block *types.Block, receipts types.Receipts) error
	Write() error
}

type ChainDB interface {
	AssetReader
	BalanceReader

	GetCurrentBlock() (*types.Block, error)
	GetBlockByHash(hash common.Hash) (*types.Block, error)
	GetBlockByHeight(height uint32) (*types.Block, error)
	GetReceipts(hash common.Hash) (types.Receipts, error)

	IterateAssets(fn func(*types.Asset) error) error
	IterateOwned(fn func(common.Address, []common.Hash) error) error
	IterateBalances(fn func(common.Address, *big.Int) error) error

	NewBatch() Batch
	Close()
}
