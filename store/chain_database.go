package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"path/filepath"
	"time"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/store/leveldb"
	"github.com/LemoFoundationLtd/lemochain-nft/store/protocol"
)

const metricsRefresh = 3 * time.Second

// ChainDatabase stores the blocks, the asset ledger and the balances in one LevelDB
type ChainDatabase struct {
	LevelDB *leveldb.LevelDBDatabase
}

// NewChainDatabase opens the chain data in the home directory
func NewChainDatabase(home string) (*ChainDatabase, error) {
	if err := checkHome(home); err != nil {
		return nil, fmt.Errorf("check home %s fail: %v", home, err)
	}
	ldb, err := leveldb.NewLevelDBDatabase(filepath.Join(home, "chaindata"), 16, 16)
	if err != nil {
		return nil, err
	}
	ldb.Meter(metricsRefresh)
	return &ChainDatabase{LevelDB: ldb}, nil
}

// NewMemChainDatabase creates a ChainDatabase which never touches the disk
func NewMemChainDatabase() *ChainDatabase {
	return &ChainDatabase{LevelDB: leveldb.NewMemDatabase()}
}

func (database *ChainDatabase) Close() {
	database.LevelDB.Close()
}

func (database *ChainDatabase) getJSON(flg uint32, key []byte, out interface{}) error {
	val, err := leveldb.Get(database.LevelDB, flg, key)
	if err != nil {
		return err
	}
	if len(val) == 0 {
		return ErrNotExist
	}
	if err := json.Unmarshal(val, out); err != nil {
		return fmt.Errorf("decode item %x fail: %v", key, err)
	}
	return nil
}

// GetAsset returns ErrNotExist if the asset has never been saved
func (database *ChainDatabase) GetAsset(id common.Hash) (*types.Asset, error) {
	asset := new(types.Asset)
	if err := database.getJSON(leveldb.ItemFlagAsset, id.Bytes(), asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// GetOwned returns an empty list for an account which owns nothing
func (database *ChainDatabase) GetOwned(owner common.Address) ([]common.Hash, error) {
	ids := make([]common.Hash, 0)
	err := database.getJSON(leveldb.ItemFlagOwned, owner.Bytes(), &ids)
	if err == ErrNotExist {
		return make([]common.Hash, 0), nil
	}
	return ids, err
}

func (database *ChainDatabase) GetAssetCount() (uint32, error) {
	return leveldb.GetAssetCount(database.LevelDB)
}

// GetBalance returns zero for an account which has never been saved
func (database *ChainDatabase) GetBalance(addr common.Address) (*big.Int, error) {
	val, err := leveldb.Get(database.LevelDB, leveldb.ItemFlagBalance, addr.Bytes())
	if err != nil {
		return nil, err
	}
	return decodeBalance(val)
}

func decodeBalance(val []byte) (*big.Int, error) {
	if len(val) == 0 {
		return new(big.Int), nil
	}
	var balance hexutil.Big10
	if err := balance.UnmarshalText(val); err != nil {
		return nil, fmt.Errorf("decode balance fail: %v", err)
	}
	return new(big.Int).Set(balance.ToInt()), nil
}

// GetCurrentBlock returns the newest committed block, or ErrNotExist before the first commit
func (database *ChainDatabase) GetCurrentBlock() (*types.Block, error) {
	hash, err := leveldb.GetCurrentBlock(database.LevelDB)
	if err != nil {
		return nil, err
	}
	if hash == (common.Hash{}) {
		return nil, ErrNotExist
	}
	return database.GetBlockByHash(hash)
}

func (database *ChainDatabase) GetBlockByHash(hash common.Hash) (*types.Block, error) {
	block := new(types.Block)
	if err := database.getJSON(leveldb.ItemFlagBlock, hash.Bytes(), block); err != nil {
		return nil, err
	}
	return block, nil
}

func (database *ChainDatabase) GetBlockByHeight(height uint32) (*types.Block, error) {
	val, err := leveldb.Get(database.LevelDB, leveldb.ItemFlagBlockHeight, leveldb.EncodeNumber(height))
	if err != nil {
		return nil, err
	}
	if len(val) == 0 {
		return nil, ErrNotExist
	}
	return database.GetBlockByHash(common.BytesToHash(val))
}

func (database *ChainDatabase) GetReceipts(hash common.Hash) (types.Receipts, error) {
	receipts := make(types.Receipts, 0)
	if err := database.getJSON(leveldb.ItemFlagReceipts, hash.Bytes(), &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// iterate walks the items of one kind. Keys of other kinds sharing the prefix are skipped by their length
func (database *ChainDatabase) iterate(prefix, suffix []byte, keyLen int, fn func(key, val []byte) error) error {
	it := database.LevelDB.NewIteratorWithPrefix(prefix)
	defer it.Release()
	for it.Next() {
		key := it.Key()
		if len(key) != len(prefix)+keyLen+len(suffix) || !bytes.HasSuffix(key, suffix) {
			continue
		}
		if err := fn(key[len(prefix):len(prefix)+keyLen], it.Value()); err != nil {
			return err
		}
	}
	return it.Error()
}

// IterateAssets calls fn for every saved asset in id order
func (database *ChainDatabase) IterateAssets(fn func(*types.Asset) error) error {
	return database.iterate(leveldb.AssetPrefix, leveldb.AssetSuffix, common.HashLength, func(key, val []byte) error {
		asset := new(types.Asset)
		if err := json.Unmarshal(val, asset); err != nil {
			return fmt.Errorf("decode asset %x fail: %v", key, err)
		}
		return fn(asset)
	})
}

// IterateOwned calls fn for every saved owned asset list in address order
func (database *ChainDatabase) IterateOwned(fn func(common.Address, []common.Hash) error) error {
	return database.iterate(leveldb.OwnedPrefix, leveldb.OwnedSuffix, common.AddressLength, func(key, val []byte) error {
		ids := make([]common.Hash, 0)
		if err := json.Unmarshal(val, &ids); err != nil {
			return fmt.Errorf("decode owned list of %x fail: %v", key, err)
		}
		return fn(common.BytesToAddress(key), ids)
	})
}

// IterateBalances calls fn for every saved balance in address order
func (database *ChainDatabase) IterateBalances(fn func(common.Address, *big.Int) error) error {
	return database.iterate(leveldb.BalancePrefix, leveldb.BalanceSuffix, common.AddressLength, func(key, val []byte) error {
		balance, err := decodeBalance(val)
		if err != nil {
			return err
		}
		return fn(common.BytesToAddress(key), balance)
	})
}

func (database *ChainDatabase) NewBatch() protocol.Batch {
	return &ChainBatch{batch: database.LevelDB.NewBatch()}
}

// ChainBatch stages a block and the state changed by it
type ChainBatch struct {
	batch leveldb.Batch
}

func (b *ChainBatch) putJSON(flg uint32, key []byte, v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return leveldb.Set(b.batch, flg, key, buf)
}

func (b *ChainBatch) SetAsset(asset *types.Asset) error {
	if asset == nil {
		return ErrArgInvalid
	}
	return b.putJSON(leveldb.ItemFlagAsset, asset.Id.Bytes(), asset)
}

// SetOwned saves the owned id list. An empty list removes the record
func (b *ChainBatch) SetOwned(owner common.Address, ids []common.Hash) error {
	if len(ids) == 0 {
		return leveldb.Del(b.batch, leveldb.ItemFlagOwned, owner.Bytes())
	}
	return b.putJSON(leveldb.ItemFlagOwned, owner.Bytes(), ids)
}

func (b *ChainBatch) SetAssetCount(count uint32) error {
	return leveldb.SetAssetCount(b.batch, count)
}

func (b *ChainBatch) SetBalance(addr common.Address, balance *big.Int) error {
	if balance == nil || balance.Sign() < 0 {
		return ErrArgInvalid
	}
	text, _ := (*hexutil.Big10)(balance).MarshalText()
	return leveldb.Set(b.batch, leveldb.ItemFlagBalance, addr.Bytes(), text)
}

// SetBlock saves the block with its receipts and makes it the current block
func (b *ChainBatch) SetBlock(block *types.Block, receipts types.Receipts) error {
	if block == nil || block.Header == nil {
		return ErrArgInvalid
	}
	hash := block.Hash()
	if err := b.putJSON(leveldb.ItemFlagBlock, hash.Bytes(), block); err != nil {
		return err
	}
	if err := leveldb.Set(b.batch, leveldb.ItemFlagBlockHeight, leveldb.EncodeNumber(block.Height()), hash.Bytes()); err != nil {
		return err
	}
	if receipts == nil {
		receipts = make(types.Receipts, 0)
	}
	if err := b.putJSON(leveldb.ItemFlagReceipts, hash.Bytes(), receipts); err != nil {
		return err
	}
	return leveldb.SetCurrentBlock(b.batch, hash)
}

func (b *ChainBatch) Write() error {
	if err := b.batch.Write(); err != nil {
		log.Errorf("write batch to db fail: %v", err)
		return err
	}
	b.batch.Reset()
	return nil
}
