package leveldb

import (
	"encoding/binary"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
)

type DatabasePutter interface {
	Put(key []byte, value []byte) error
}

type DatabaseReader interface {
	Get(key []byte) (value []byte, err error)
}

type DatabaseDeleter interface {
	Delete(key []byte) error
}

var (
	ItemFlagStart       = uint32(0)
	ItemFlagBlock       = uint32(1)
	ItemFlagBlockHeight = uint32(2)
	ItemFlagReceipts    = uint32(3)
	ItemFlagAsset       = uint32(4)
	ItemFlagOwned       = uint32(5)
	ItemFlagBalance     = uint32(6)
	ItemFlagStop        = uint32(7)
)

var (
	BlockPrefix = []byte("B")
	BlockSuffix = []byte("b")

	BlockHeightPrefix = []byte("BH")
	BlockHeightSuffix = []byte("bh") // BlockHeightPrefix + height (uint32 big endian) + BlockHeightSuffix -> hash

	ReceiptsPrefix = []byte("RC")
	ReceiptsSuffix = []byte("rc")

	AssetPrefix = []byte("AS")
	AssetSuffix = []byte("as")

	OwnedPrefix = []byte("OW")
	OwnedSuffix = []byte("ow")

	BalancePrefix = []byte("BA")
	BalanceSuffix = []byte("ba")

	AssetCountKey   = []byte("LEMO-NFT-ASSET-COUNT")
	CurrentBlockKey = []byte("LEMO-CURRENT-BLOCK")
)

func CheckItemFlag(flg uint32) bool {
	return flg > ItemFlagStart && flg < ItemFlagStop
}

// Key builds the database key of an item. The prefix is copied so the shared prefix never gets modified
func Key(flag uint32, key []byte) []byte {
	if len(key) <= 0 {
		return nil
	}

	var prefix, suffix []byte
	switch flag {
	case ItemFlagBlock:
		prefix, suffix = BlockPrefix, BlockSuffix
	case ItemFlagBlockHeight:
		prefix, suffix = BlockHeightPrefix, BlockHeightSuffix
	case ItemFlagReceipts:
		prefix, suffix = ReceiptsPrefix, ReceiptsSuffix
	case ItemFlagAsset:
		prefix, suffix = AssetPrefix, AssetSuffix
	case ItemFlagOwned:
		prefix, suffix = OwnedPrefix, OwnedSuffix
	case ItemFlagBalance:
		prefix, suffix = BalancePrefix, BalanceSuffix
	default:
		return key
	}
	result := make([]byte, 0, len(prefix)+len(key)+len(suffix))
	result = append(result, prefix...)
	result = append(result, key...)
	return append(result, suffix...)
}

func EncodeNumber(height uint32) []byte {
	enc := make([]byte, 4)
	binary.BigEndian.PutUint32(enc, height)
	return enc
}

func DecodeNumber(enc []byte) uint32 {
	if len(enc) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(enc)
}

func GetCurrentBlock(db DatabaseReader) (common.Hash, error) {
	val, err := db.Get(CurrentBlockKey)
	if err != nil {
		return common.Hash{}, err
	}

	if len(val) <= 0 {
		return common.Hash{}, nil
	}

	return common.BytesToHash(val), nil
}

func SetCurrentBlock(db DatabasePutter, hash common.Hash) error {
	return db.Put(CurrentBlockKey, hash.Bytes())
}

func GetAssetCount(db DatabaseReader) (uint32, error) {
	val, err := db.Get(AssetCountKey)
	if err != nil {
		return 0, err
	}
	return DecodeNumber(val), nil
}

func SetAssetCount(db DatabasePutter, count uint32) error {
	return db.Put(AssetCountKey, EncodeNumber(count))
}

func Set(db DatabasePutter, flg uint32, key []byte, val []byte) error {
	return db.Put(Key(flg, key), val)
}

func Get(db DatabaseReader, flg uint32, key []byte) ([]byte, error) {
	return db.Get(Key(flg, key))
}

func Del(db DatabaseDeleter, flg uint32, key []byte) error {
	return db.Delete(Key(flg, key))
}
