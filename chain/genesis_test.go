package chain

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/stretchr/testify/assert"
)

func TestSetupGenesisBlock(t *testing.T) {
	db := store.NewMemChainDatabase()
	defer db.Close()

	block, err := SetupGenesisBlock(db, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), block.Height())
	assert.Equal(t, common.Hash{}, block.ParentHash())

	current, err := db.GetCurrentBlock()
	assert.NoError(t, err)
	assert.Equal(t, block.Hash(), current.Hash())
	balance, err := db.GetBalance(common.HexToAddress("0x015780F8456F9c1532645087a19DcF9a7e0c7F97"))
	assert.NoError(t, err)
	assert.Equal(t, "1600000000000000000000000000", balance.String())
	count, err := db.GetAssetCount()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), count)

	_, err = SetupGenesisBlock(db, nil)
	assert.Equal(t, ErrGenesisExist, err)
}

func TestGenesis_UnmarshalJSON(t *testing.T) {
	var genesis Genesis
	err := json.Unmarshal([]byte(`{"alloc":{"0x0000000000000000000000000000000000000001":"100"}}`), &genesis)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), genesis.Alloc[common.HexToAddress("0x01")].ToInt().Int64())

	db := store.NewMemChainDatabase()
	defer db.Close()
	genesis.Alloc[common.HexToAddress("0x02")] = nil
	genesis.Alloc[common.HexToAddress("0x03")] = (*hexutil.Big10)(big.NewInt(5))
	_, err = SetupGenesisBlock(db, &genesis)
	assert.NoError(t, err)
	balance, err := db.GetBalance(common.HexToAddress("0x03"))
	assert.NoError(t, err)
	assert.Equal(t, "5", balance.String())
}
