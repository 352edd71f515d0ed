package chain

import (
	"sync"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/transaction"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/common/subscribe"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/LemoFoundationLtd/lemochain-nft/store/protocol"
)

// BlockChain appends blocks of transactions on top of the current block. Blocks are applied one by one
type BlockChain struct {
	chainID      uint16
	db           protocol.ChainDB
	processor    *transaction.TxProcessor
	currentBlock *types.Block

	lock sync.Mutex
}

func NewBlockChain(chainID uint16, db protocol.ChainDB) (*BlockChain, error) {
	current, err := db.GetCurrentBlock()
	if err == store.ErrNotExist {
		return nil, ErrNoGenesis
	}
	if err != nil {
		log.Errorf("Can't load last state: %v", err)
		return nil, ErrLoadBlock
	}
	bc := &BlockChain{
		chainID:      chainID,
		db:           db,
		processor:    transaction.NewTxProcessor(chainID, db),
		currentBlock: current,
	}
	log.Debug("BlockChain is ready", "currentHeight", current.Height(), "currentHash", current.Hash().Prefix())
	return bc, nil
}

func (bc *BlockChain) ChainID() uint16 {
	return bc.chainID
}

func (bc *BlockChain) CurrentBlock() *types.Block {
	bc.lock.Lock()
	defer bc.lock.Unlock()
	return bc.currentBlock
}

// SubscribeEvents registers a channel which receives the events of every applied block
func (bc *BlockChain) SubscribeEvents(ch chan<- []*types.Event) subscribe.Subscription {
	return bc.processor.SubscribeEvents(ch)
}

// ApplyTxs executes txs in a new block on top of the current block and saves it. Failed transactions
// are kept in the block with their errors in receipts
func (bc *BlockChain) ApplyTxs(txs types.Transactions) (*types.Block, types.Receipts, error) {
	if len(txs) == 0 {
		return nil, nil, ErrNoTxs
	}
	bc.lock.Lock()
	defer bc.lock.Unlock()

	parent := bc.currentBlock
	header := &types.Header{
		ParentHash: parent.Hash(),
		Height:     parent.Height() + 1,
	}
	receipts := bc.processor.Process(header, txs)
	block, err := bc.processor.Commit(header, txs, receipts)
	if err != nil {
		return nil, nil, err
	}
	bc.currentBlock = block
	return block, receipts, nil
}
