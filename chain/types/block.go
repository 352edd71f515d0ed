package types

import (
	"encoding/binary"
	"fmt"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
	"github.com/LemoFoundationLtd/lemochain-nft/common/merkle"
)

// Header is the block context transactions are executed in
type Header struct {
	ParentHash common.Hash `json:"parentHash"`
	Height     uint32      `json:"height"`
	TxRoot     common.Hash `json:"transactionRoot"`
	AssetRoot  common.Hash `json:"assetRoot"`
}

// Hash covers the parent hash, the height and both roots
func (h *Header) Hash() common.Hash {
	var height [4]byte
	binary.BigEndian.PutUint32(height[:], h.Height)
	return crypto.Keccak256Hash(h.ParentHash[:], height[:], h.TxRoot[:], h.AssetRoot[:])
}

func (h *Header) String() string {
	return fmt.Sprintf("{Height: %d, ParentHash: %s, TxRoot: %s, AssetRoot: %s}", h.Height, h.ParentHash.Prefix(), h.TxRoot.Prefix(), h.AssetRoot.Prefix())
}

type Block struct {
	Header *Header      `json:"header"`
	Txs    Transactions `json:"transactions"`
}

func NewBlock(header *Header, txs Transactions) *Block {
	return &Block{Header: header, Txs: txs}
}

func (b *Block) Hash() common.Hash { return b.Header.Hash() }
func (b *Block) Height() uint32    { return b.Header.Height }
func (b *Block) ParentHash() common.Hash {
	return b.Header.ParentHash
}

// DeriveTxsRoot calculates the merkle root of the transaction hashes
func DeriveTxsRoot(txs Transactions) common.Hash {
	leaves := make([]common.Hash, len(txs))
	for i, tx := range txs {
		leaves[i] = tx.Hash()
	}
	return merkle.New(leaves).Root()
}

// Receipt is the result of executing one transaction
type Receipt struct {
	TxHash  common.Hash    `json:"transactionHash"`
	TxIndex uint32         `json:"transactionIndex"`
	From    common.Address `json:"from"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Events  []*Event       `json:"events"`
}

type Receipts []*Receipt
