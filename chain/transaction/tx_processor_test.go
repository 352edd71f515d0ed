package transaction

import (
	"math/big"
	"testing"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/account"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/nft"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"
)

const testChainID uint16 = 100

var (
	keyA, _ = crypto.HexToPrivateKey("c21b6b2fbf230f665b936194d14da67187732bf9d28768aef1a3cbb26608f8aa")
	keyB, _ = crypto.HexToPrivateKey("9c3c4a327ce214f0a1bf9cfa756fbf74f1c7322399ffff925efd8c15c49953eb")
	keyC, _ = crypto.HexToPrivateKey("ba9b51e59ec57d66b30b9b868c76d6f4d386ce148d9c6c1520360d92ef0f27ae")
	signerA = crypto.PubkeyToAddress(keyA.PubKey())
	signerB = crypto.PubkeyToAddress(keyB.PubKey())
	signerC = crypto.PubkeyToAddress(keyC.PubKey())
)

func sign(t *testing.T, tx *types.Transaction, key *btcec.PrivateKey) *types.Transaction {
	tx, err := types.SignTx(tx, types.MakeSigner(testChainID), key)
	assert.NoError(t, err)
	return tx
}

func newTestProcessor(t *testing.T) (*TxProcessor, *store.ChainDatabase) {
	db := store.NewMemChainDatabase()
	batch := db.NewBatch()
	assert.NoError(t, batch.SetBalance(signerC, big.NewInt(1000)))
	assert.NoError(t, batch.Write())
	return NewTxProcessor(testChainID, db), db
}

func TestTxProcessor_Scenario(t *testing.T) {
	p, db := newTestProcessor(t)
	defer db.Close()
	ch := make(chan []*types.Event, 2)
	sub := p.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	// block 1: A mints
	header1 := &types.Header{ParentHash: common.HexToHash("0x01"), Height: 1}
	txs1 := types.Transactions{sign(t, types.NewCreateAssetTx(testChainID), keyA)}
	receipts := p.Process(header1, txs1)
	assert.Equal(t, 1, len(receipts))
	assert.True(t, receipts[0].Success)
	assert.Equal(t, signerA, receipts[0].From)
	id := nft.GenerateAssetId(nft.IdContext{ParentHash: header1.ParentHash, Height: 1, TxIndex: 0, Count: 0})
	assert.Equal(t, []*types.Event{{Type: types.EventCreated, Owner: &signerA, AssetId: id, TxHash: txs1[0].Hash()}}, receipts[0].Events)

	block1, err := p.Commit(header1, txs1, receipts)
	assert.NoError(t, err)
	assert.Equal(t, types.DeriveTxsRoot(txs1), block1.Header.TxRoot)
	assert.NotEqual(t, common.Hash{}, block1.Header.AssetRoot)
	events := <-ch
	assert.Equal(t, 1, len(events))
	current, err := db.GetCurrentBlock()
	assert.NoError(t, err)
	assert.Equal(t, block1.Hash(), current.Hash())

	// block 2: A -> B, B lists at 100, C buys with 100, C buys again, an unsigned tx
	header2 := &types.Header{ParentHash: block1.Hash(), Height: 2}
	txs2 := types.Transactions{
		sign(t, types.NewTransferAssetTx(testChainID, signerB, id), keyA),
		sign(t, types.NewSetAssetPriceTx(testChainID, id, (*hexutil.Big10)(big.NewInt(100))), keyB),
		sign(t, types.NewBuyAssetTx(testChainID, id, (*hexutil.Big10)(big.NewInt(100))), keyC),
		sign(t, types.NewBuyAssetTx(testChainID, id, (*hexutil.Big10)(big.NewInt(100))), keyC),
		types.NewCreateAssetTx(testChainID),
	}
	receipts = p.Process(header2, txs2)
	assert.Equal(t, 5, len(receipts))
	assert.True(t, receipts[0].Success)
	assert.Equal(t, types.EventTransferred, receipts[0].Events[0].Type)
	assert.True(t, receipts[1].Success)
	assert.Equal(t, types.EventPriceSet, receipts[1].Events[0].Type)
	assert.True(t, receipts[2].Success)
	assert.Equal(t, 2, len(receipts[2].Events))
	assert.Equal(t, types.EventSold, receipts[2].Events[1].Type)
	assert.Equal(t, int64(100), receipts[2].Events[1].Price.Int64())
	// the listing is cleared by the sale
	assert.False(t, receipts[3].Success)
	assert.Equal(t, types.ErrNotForSale.Error(), receipts[3].Error)
	assert.Equal(t, 0, len(receipts[3].Events))
	assert.False(t, receipts[4].Success)
	assert.Equal(t, types.ErrInvalidSig.Error(), receipts[4].Error)

	// uncommitted state is visible through the processor only
	assert.Equal(t, "900", p.Balances().GetBalance(signerC).String())
	balance, err := db.GetBalance(signerC)
	assert.NoError(t, err)
	assert.Equal(t, "1000", balance.String())

	block2, err := p.Commit(header2, txs2, receipts)
	assert.NoError(t, err)
	events = <-ch
	assert.Equal(t, 4, len(events))

	// reload from db
	asset, err := db.GetAsset(id)
	assert.NoError(t, err)
	assert.Equal(t, signerC, asset.Owner)
	assert.Nil(t, asset.Price)
	owned, err := db.GetOwned(signerC)
	assert.NoError(t, err)
	assert.Equal(t, []common.Hash{id}, owned)
	owned, err = db.GetOwned(signerB)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(owned))
	balance, err = db.GetBalance(signerB)
	assert.NoError(t, err)
	assert.Equal(t, "100", balance.String())
	balance, err = db.GetBalance(signerC)
	assert.NoError(t, err)
	assert.Equal(t, "900", balance.String())
	saved, err := db.GetReceipts(block2.Hash())
	assert.NoError(t, err)
	assert.Equal(t, 5, len(saved))
	assert.NoError(t, nft.VerifyLedger(db, 100))
}

func TestTxProcessor_FailedTx(t *testing.T) {
	p, db := newTestProcessor(t)
	defer db.Close()

	header := &types.Header{Height: 1}
	txs := types.Transactions{
		sign(t, types.NewCreateAssetTx(testChainID), keyA),
		sign(t, types.NewSetAssetPriceTx(testChainID, common.Hash{}, nil), keyA),
		sign(t, types.NewCreateAssetTx(testChainID), keyB),
	}
	receipts := p.Process(header, txs)
	assert.True(t, receipts[0].Success)
	assert.Equal(t, types.ErrAssetNotFound.Error(), receipts[1].Error)
	assert.True(t, receipts[2].Success)
	// a mint in tx 2 gets a different id because the count and the index differ
	assert.NotEqual(t, receipts[0].Events[0].AssetId, receipts[2].Events[0].AssetId)

	// B has no money to buy it
	id := receipts[0].Events[0].AssetId
	txs = append(txs,
		sign(t, types.NewSetAssetPriceTx(testChainID, id, (*hexutil.Big10)(big.NewInt(5))), keyA),
		sign(t, types.NewBuyAssetTx(testChainID, id, (*hexutil.Big10)(big.NewInt(5))), keyB),
	)
	receipts = p.Process(header, txs)
	assert.True(t, receipts[3].Success)
	assert.Equal(t, account.ErrInsufficientBalance.Error(), receipts[4].Error)
	assert.Equal(t, 0, len(receipts[4].Events))
	asset, err := p.Ledger().GetAsset(id)
	assert.NoError(t, err)
	assert.Equal(t, signerA, asset.Owner)
	assert.Equal(t, uint32(2), p.Ledger().Count())

	// bad payload and wrong chain
	bad := types.Transactions{
		sign(t, types.NewTransaction(3, testChainID, []byte("{")), keyA),
		sign(t, types.NewTransaction(9, testChainID, nil), keyA),
		sign(t, types.NewCreateAssetTx(testChainID+1), keyA),
	}
	receipts = p.Process(header, bad)
	for _, receipt := range receipts {
		assert.False(t, receipt.Success)
	}
	assert.Equal(t, types.ErrTxType.Error(), receipts[1].Error)
	assert.Equal(t, types.ErrTxChainID.Error(), receipts[2].Error)

	p.Discard()
	assert.Equal(t, uint32(0), p.Ledger().Count())
	assert.Panics(t, func() { p.Process(&types.Header{Height: 0}, nil) })
}

type reverterCurrency struct {
	*testCurrency
	snapshots int
	reverts   []int
}

func (c *reverterCurrency) Snapshot() int {
	c.snapshots++
	return c.snapshots
}

func (c *reverterCurrency) RevertToSnapshot(revid int) {
	c.reverts = append(c.reverts, revid)
}

func TestTxProcessor_Reverter(t *testing.T) {
	db := store.NewMemChainDatabase()
	defer db.Close()
	currency := &reverterCurrency{testCurrency: newTestCurrency()}
	p := NewTxProcessorWith(testChainID, db, NewSignatureVerifier(testChainID), currency)

	header := &types.Header{Height: 1}
	txs := types.Transactions{
		sign(t, types.NewCreateAssetTx(testChainID), keyA),
		sign(t, types.NewTransferAssetTx(testChainID, signerA, common.Hash{}), keyA),
	}
	receipts := p.Process(header, txs)
	assert.True(t, receipts[0].Success)
	assert.False(t, receipts[1].Success)
	assert.Equal(t, 2, currency.snapshots)
	assert.Equal(t, []int{2}, currency.reverts)
}
