package account

import (
	"math/big"
	"testing"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/journal"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/stretchr/testify/assert"
)

var (
	addr1 = common.HexToAddress("0x0000000000000000000000000000000000000001")
	addr2 = common.HexToAddress("0x0000000000000000000000000000000000000002")
)

func newTestManager(t *testing.T) (*Manager, *journal.Journal, *store.ChainDatabase) {
	db := store.NewMemChainDatabase()
	batch := db.NewBatch()
	assert.NoError(t, batch.SetBalance(addr1, big.NewInt(1000)))
	assert.NoError(t, batch.Write())
	j := journal.New()
	return NewManager(db, j), j, db
}

func TestManager_GetAccount(t *testing.T) {
	am, _, db := newTestManager(t)
	defer db.Close()

	assert.Equal(t, "1000", am.GetBalance(addr1).String())
	assert.Equal(t, 0, am.GetBalance(addr2).Sign())
	// cached
	assert.True(t, am.GetAccount(addr1) == am.GetAccount(addr1))
	assert.Equal(t, 0, len(am.GetChangedAccounts()))

	assert.Panics(t, func() { NewManager(nil, journal.New()) })
}

func TestManager_Transfer(t *testing.T) {
	am, _, db := newTestManager(t)
	defer db.Close()

	assert.Equal(t, ErrNegativeAmount, am.Transfer(addr1, addr2, big.NewInt(-1)))
	assert.Equal(t, ErrNegativeAmount, am.Transfer(addr1, addr2, nil))
	assert.Equal(t, ErrInsufficientBalance, am.Transfer(addr1, addr2, big.NewInt(1001)))
	assert.Equal(t, ErrInsufficientBalance, am.Transfer(addr2, addr1, big.NewInt(1)))
	assert.Equal(t, 0, len(am.GetChangedAccounts()))

	assert.NoError(t, am.Transfer(addr1, addr2, big.NewInt(300)))
	assert.Equal(t, "700", am.GetBalance(addr1).String())
	assert.Equal(t, "300", am.GetBalance(addr2).String())
	assert.Equal(t, 2, len(am.GetChangedAccounts()))

	// nothing changes
	assert.NoError(t, am.Transfer(addr1, addr1, big.NewInt(700)))
	assert.NoError(t, am.Transfer(addr2, addr1, big.NewInt(0)))
	assert.Equal(t, "700", am.GetBalance(addr1).String())
}

func TestManager_MinimumBalance(t *testing.T) {
	am, _, db := newTestManager(t)
	defer db.Close()

	am.minimumBalance = big.NewInt(100)
	assert.Equal(t, ErrBelowMinimumBalance, am.CanTransfer(addr1, big.NewInt(901)))
	assert.NoError(t, am.CanTransfer(addr1, big.NewInt(900)))
	assert.Equal(t, ErrBelowMinimumBalance, am.Transfer(addr1, addr2, big.NewInt(901)))
	assert.Equal(t, "1000", am.GetBalance(addr1).String())
}

func TestManager_RevertAndSave(t *testing.T) {
	am, j, db := newTestManager(t)
	defer db.Close()

	assert.NoError(t, am.AddBalance(addr2, big.NewInt(50)))
	assert.Equal(t, ErrNegativeAmount, am.AddBalance(addr2, big.NewInt(-50)))
	snapshot := j.Snapshot()
	assert.NoError(t, am.Transfer(addr1, addr2, big.NewInt(500)))
	j.RevertToSnapshot(snapshot)
	assert.Equal(t, "1000", am.GetBalance(addr1).String())
	assert.Equal(t, "50", am.GetBalance(addr2).String())
	assert.Equal(t, 1, len(am.GetChangedAccounts()))

	batch := db.NewBatch()
	assert.NoError(t, am.Save(batch))
	assert.NoError(t, batch.Write())
	am.Reset()
	j.Clear()

	balance, err := db.GetBalance(addr2)
	assert.NoError(t, err)
	assert.Equal(t, "50", balance.String())
	assert.Equal(t, "50", am.GetBalance(addr2).String())
	assert.Equal(t, 0, len(am.GetChangedAccounts()))
}
