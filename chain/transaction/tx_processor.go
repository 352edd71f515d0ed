package transaction

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/account"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/journal"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/nft"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/notify"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/common/subscribe"
	"github.com/LemoFoundationLtd/lemochain-nft/metrics"
	"github.com/LemoFoundationLtd/lemochain-nft/store/protocol"
)

var (
	ErrInvalidGenesis = errors.New("can't process genesis block")
)

var (
	verifyFailedMeter  = metrics.NewMeter(metrics.VerifyFailedTx_meterName)
	failedTxMeter      = metrics.NewMeter(metrics.FailedTx_meterName)
	createAssetMeter   = metrics.NewMeter(metrics.CreateAssetTx_meterName)
	transferAssetMeter = metrics.NewMeter(metrics.TransferAssetTx_meterName)
	setPriceMeter      = metrics.NewMeter(metrics.SetPriceTx_meterName)
	buyAssetMeter      = metrics.NewMeter(metrics.BuyAssetTx_meterName)
	processTimer       = metrics.NewTimer(metrics.BlockProcess_timerName)
	commitTimer        = metrics.NewTimer(metrics.BlockCommit_timerName)
	assetCountGauge    = metrics.NewGauge(metrics.AssetCount_gaugeName)
)

// TxProcessor executes the transactions of a block on top of the committed state. All changes of
// one transaction are recorded in a journal, so a failed transaction is rolled back and doesn't
// affect the others.
type TxProcessor struct {
	ChainID  uint16
	db       protocol.ChainDB
	journal  *journal.Journal
	ledger   *nft.Manager
	am       *account.Manager
	recorder *notify.Recorder
	verifier CallerVerifier
	env      *RunNftEnv
	// collaborators with their own undo log
	reverters []Reverter

	lock sync.Mutex
}

// NewTxProcessor creates a processor which authenticates callers by signature and pays with the balances in db
func NewTxProcessor(chainID uint16, db protocol.ChainDB) *TxProcessor {
	return NewTxProcessorWith(chainID, db, NewSignatureVerifier(chainID), nil)
}

// NewTxProcessorWith creates a processor with custom collaborators. If currency is nil, the balances in db are used
func NewTxProcessorWith(chainID uint16, db protocol.ChainDB, verifier CallerVerifier, currency Currency) *TxProcessor {
	if db == nil {
		panic("transaction.NewTxProcessor is called without a database")
	}
	j := journal.New()
	p := &TxProcessor{
		ChainID:   chainID,
		db:        db,
		journal:   j,
		ledger:    nft.NewManager(db, j),
		am:        account.NewManager(db, j),
		recorder:  notify.NewRecorder(j),
		verifier:  verifier,
		reverters: make([]Reverter, 0),
	}
	if currency == nil {
		currency = p.am
	}
	if reverter, ok := currency.(Reverter); ok {
		p.reverters = append(p.reverters, reverter)
	}
	p.env = NewRunNftEnv(p.ledger, currency, p.recorder)
	return p
}

// Ledger gives read access to the assets including the uncommitted changes
func (p *TxProcessor) Ledger() *nft.Manager {
	return p.ledger
}

// Balances gives read access to the balances including the uncommitted changes
func (p *TxProcessor) Balances() *account.Manager {
	return p.am
}

// SubscribeEvents registers a channel which receives the events of every committed block
func (p *TxProcessor) SubscribeEvents(ch chan<- []*types.Event) subscribe.Subscription {
	return p.recorder.Subscribe(ch)
}

// Process processes all transactions in a block. A failed transaction is reverted and its error is put into its receipt
func (p *TxProcessor) Process(header *types.Header, txs types.Transactions) types.Receipts {
	p.lock.Lock()
	defer p.lock.Unlock()
	defer processTimer.UpdateSince(time.Now())

	// Process genesis block. It's a develop error
	if header.Height == 0 {
		log.Warn("It is not necessary to process genesis block.")
		panic(ErrInvalidGenesis)
	}
	p.reset()

	receipts := make(types.Receipts, len(txs))
	failed := 0
	for i, tx := range txs {
		receipts[i] = p.applyTx(header, tx, uint32(i))
		if !receipts[i].Success {
			failed++
		}
	}
	if len(txs) > 0 {
		log.Infof("Process %d transactions, %d failed", len(txs), failed)
	}
	return receipts
}

func (p *TxProcessor) applyTx(header *types.Header, tx *types.Transaction, index uint32) *types.Receipt {
	receipt := &types.Receipt{
		TxHash:  tx.Hash(),
		TxIndex: index,
		Events:  make([]*types.Event, 0),
	}
	from, err := p.verifier.VerifyCaller(tx)
	if err != nil {
		verifyFailedMeter.Mark(1)
		log.Info("Invalid transaction", "hash", tx.Hash().Prefix(), "err", err)
		receipt.Error = err.Error()
		return receipt
	}
	receipt.From = from

	snapshot := p.journal.Snapshot()
	revisions := make([]int, len(p.reverters))
	for i, reverter := range p.reverters {
		revisions[i] = reverter.Snapshot()
	}
	eventStart := len(p.recorder.Events())
	p.recorder.SetTxContext(tx.Hash())

	if err = p.runTx(header, tx, index, from); err != nil {
		for i := len(p.reverters) - 1; i >= 0; i-- {
			p.reverters[i].RevertToSnapshot(revisions[i])
		}
		p.journal.RevertToSnapshot(snapshot)
		failedTxMeter.Mark(1)
		log.Info("Transaction failed", "hash", tx.Hash().Prefix(), "type", tx.Type(), "from", from.Hex(), "err", err)
		receipt.Error = err.Error()
		return receipt
	}
	receipt.Success = true
	receipt.Events = append(receipt.Events, p.recorder.Events()[eventStart:]...)
	return receipt
}

func (p *TxProcessor) runTx(header *types.Header, tx *types.Transaction, index uint32, from common.Address) error {
	switch tx.Type() {
	case params.CreateAsset_tx:
		ctx := nft.IdContext{ParentHash: header.ParentHash, Height: header.Height, TxIndex: index}
		if _, err := p.env.CreateAssetTx(from, ctx); err != nil {
			return err
		}
		createAssetMeter.Mark(1)
	case params.TransferAsset_tx:
		payload, err := types.GetTransferAsset(tx.Data())
		if err != nil {
			return err
		}
		if err := p.env.TransferTx(from, payload.To, payload.AssetId); err != nil {
			return err
		}
		transferAssetMeter.Mark(1)
	case params.SetAssetPrice_tx:
		payload, err := types.GetSetAssetPrice(tx.Data())
		if err != nil {
			return err
		}
		var price *big.Int
		if payload.Price != nil {
			price = payload.Price.ToInt()
		}
		if err := p.env.SetPriceTx(from, payload.AssetId, price); err != nil {
			return err
		}
		setPriceMeter.Mark(1)
	case params.BuyAsset_tx:
		payload, err := types.GetBuyAsset(tx.Data())
		if err != nil {
			return err
		}
		if err := p.env.BuyTx(from, payload.AssetId, payload.MaxPrice.ToInt()); err != nil {
			return err
		}
		buyAssetMeter.Mark(1)
	default:
		return types.ErrTxType
	}
	return nil
}

// Commit saves the changes made by Process as the block of header, then publishes the events.
// The header's roots are filled here
func (p *TxProcessor) Commit(header *types.Header, txs types.Transactions, receipts types.Receipts) (*types.Block, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	defer commitTimer.UpdateSince(time.Now())

	header.TxRoot = types.DeriveTxsRoot(txs)
	header.AssetRoot = p.ledger.Root()
	block := types.NewBlock(header, txs)

	batch := p.db.NewBatch()
	err := p.ledger.Save(batch)
	if err == nil {
		err = p.am.Save(batch)
	}
	if err == nil {
		err = batch.SetBlock(block, receipts)
	}
	if err == nil {
		err = batch.Write()
	}
	if err != nil {
		p.reset()
		return nil, fmt.Errorf("commit block %d fail: %v", header.Height, err)
	}
	assetCountGauge.Update(int64(p.ledger.Count()))
	log.Info("Block committed", "height", header.Height, "hash", block.Hash().Prefix(), "txs", len(txs))

	p.journal.Clear()
	p.ledger.Reset()
	p.am.Reset()
	p.recorder.Publish()
	return block, nil
}

// Discard drops the changes made by Process
func (p *TxProcessor) Discard() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.reset()
}

func (p *TxProcessor) reset() {
	p.journal.Clear()
	p.ledger.Reset()
	p.am.Reset()
	p.recorder.Reset()
}
