package leveldb

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/metrics"
	"github.com/stretchr/testify/assert"
)

func TestLevelDBDatabase_PutGet(t *testing.T) {
	db := NewMemDatabase()
	defer db.Close()
	assert.Equal(t, "memory", db.Path())

	val, err := db.Get([]byte("missing"))
	assert.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, db.Put([]byte("k"), []byte("v")))
	val, err = db.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
	has, err := db.Has([]byte("k"))
	assert.NoError(t, err)
	assert.True(t, has)

	assert.NoError(t, db.Delete([]byte("k")))
	has, err = db.Has([]byte("k"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestLevelDBDatabase_Batch(t *testing.T) {
	db := NewMemDatabase()
	defer db.Close()
	assert.NoError(t, db.Put([]byte("old"), []byte("1")))

	batch := db.NewBatch()
	assert.NoError(t, batch.Put([]byte("a"), []byte("12")))
	assert.NoError(t, batch.Put([]byte("b"), []byte("345")))
	assert.NoError(t, batch.Delete([]byte("old")))
	assert.Equal(t, 6, batch.ValueSize())

	// nothing is visible before write
	val, _ := db.Get([]byte("a"))
	assert.Nil(t, val)

	assert.NoError(t, batch.Write())
	val, _ = db.Get([]byte("a"))
	assert.Equal(t, []byte("12"), val)
	val, _ = db.Get([]byte("old"))
	assert.Nil(t, val)

	batch.Reset()
	assert.Equal(t, 0, batch.ValueSize())
}

func TestLevelDBDatabase_Iterator(t *testing.T) {
	db := NewMemDatabase()
	defer db.Close()
	assert.NoError(t, Set(db, ItemFlagAsset, []byte{1}, []byte("x")))
	assert.NoError(t, Set(db, ItemFlagAsset, []byte{2}, []byte("y")))
	assert.NoError(t, Set(db, ItemFlagOwned, []byte{1}, []byte("z")))

	it := db.NewIteratorWithPrefix(AssetPrefix)
	defer it.Release()
	count := 0
	for it.Next() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestNewLevelDBDatabase_File(t *testing.T) {
	dir, err := ioutil.TempDir("", "nft-leveldb")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	metrics.Enabled = true
	defer func() { metrics.Enabled = false }()

	path := filepath.Join(dir, "chaindata")
	db, err := NewLevelDBDatabase(path, 0, 0)
	assert.NoError(t, err)
	db.Meter(10 * time.Millisecond)
	assert.NoError(t, SetCurrentBlock(db, common.HexToHash("0x01")))
	db.Close()

	// reopen
	db, err = NewLevelDBDatabase(path, 16, 16)
	assert.NoError(t, err)
	defer db.Close()
	hash, err := GetCurrentBlock(db)
	assert.NoError(t, err)
	assert.Equal(t, common.HexToHash("0x01"), hash)
}

func TestKey(t *testing.T) {
	assert.Nil(t, Key(ItemFlagAsset, nil))
	assert.Equal(t, []byte("AS\x01as"), Key(ItemFlagAsset, []byte{1}))
	assert.Equal(t, []byte("OW\x01ow"), Key(ItemFlagOwned, []byte{1}))
	assert.Equal(t, []byte("BA\x01ba"), Key(ItemFlagBalance, []byte{1}))
	assert.Equal(t, []byte{9}, Key(100, []byte{9}))
	// the shared prefix is not modified by building keys
	_ = Key(ItemFlagBlock, []byte{1, 2, 3})
	assert.Equal(t, []byte("B"), BlockPrefix)

	assert.True(t, CheckItemFlag(ItemFlagBalance))
	assert.False(t, CheckItemFlag(ItemFlagStart))
	assert.False(t, CheckItemFlag(ItemFlagStop))
}

func TestAssetCount(t *testing.T) {
	db := NewMemDatabase()
	defer db.Close()

	count, err := GetAssetCount(db)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), count)

	assert.NoError(t, SetAssetCount(db, 1<<31+5))
	count, err = GetAssetCount(db)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1<<31+5), count)

	hash, err := GetCurrentBlock(db)
	assert.NoError(t, err)
	assert.Equal(t, common.Hash{}, hash)
}
