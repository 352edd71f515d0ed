package chain

import (
	"fmt"
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/account"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/journal"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/LemoFoundationLtd/lemochain-nft/store/protocol"
)

// Genesis is the initial state: no asset, and some accounts with balance
type Genesis struct {
	ParentHash common.Hash                       `json:"parentHash"`
	Alloc      map[common.Address]*hexutil.Big10 `json:"alloc"`
}

// DefaultGenesisBlock gives 1600000000 LEMO to the founder
func DefaultGenesisBlock() *Genesis {
	total := new(big.Int).Mul(big.NewInt(1600000000), common.OneLEMO)
	return &Genesis{
		Alloc: map[common.Address]*hexutil.Big10{
			common.HexToAddress("0x015780F8456F9c1532645087a19DcF9a7e0c7F97"): (*hexutil.Big10)(total),
		},
	}
}

// ToBlock builds the block at height 0. It has no transaction
func (g *Genesis) ToBlock() *types.Block {
	head := &types.Header{
		ParentHash: g.ParentHash,
		Height:     0,
		TxRoot:     types.DeriveTxsRoot(nil),
	}
	return types.NewBlock(head, nil)
}

func (g *Genesis) setBalance(am *account.Manager) error {
	for addr, balance := range g.Alloc {
		if balance == nil {
			continue
		}
		if err := am.AddBalance(addr, balance.ToInt()); err != nil {
			return fmt.Errorf("invalid balance of %s: %v", addr.Hex(), err)
		}
	}
	return nil
}

// SetupGenesisBlock writes the genesis block and its balances. It fails if the db already has a block
func SetupGenesisBlock(db protocol.ChainDB, genesis *Genesis) (*types.Block, error) {
	if _, err := db.GetCurrentBlock(); err == nil {
		return nil, ErrGenesisExist
	} else if err != store.ErrNotExist {
		return nil, err
	}
	if genesis == nil {
		log.Info("Writing default genesis block.")
		genesis = DefaultGenesisBlock()
	}

	am := account.NewManager(db, journal.New())
	if err := genesis.setBalance(am); err != nil {
		return nil, fmt.Errorf("setup genesis block failed: %v", err)
	}
	block := genesis.ToBlock()
	batch := db.NewBatch()
	if err := am.Save(batch); err != nil {
		return nil, fmt.Errorf("setup genesis block failed: %v", err)
	}
	if err := batch.SetAssetCount(0); err != nil {
		return nil, fmt.Errorf("setup genesis block failed: %v", err)
	}
	if err := batch.SetBlock(block, nil); err != nil {
		return nil, fmt.Errorf("setup genesis block failed: %v", err)
	}
	if err := batch.Write(); err != nil {
		return nil, fmt.Errorf("setup genesis block failed: %v", err)
	}
	log.Info("Genesis block is written", "hash", block.Hash().Prefix(), "accounts", len(genesis.Alloc))
	return block, nil
}
