package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
)

type Transactions []*Transaction

type Transaction struct {
	data txdata

	hash atomic.Value
	from atomic.Value
}

type txdata struct {
	Type    uint8         `json:"type"`
	ChainID uint16        `json:"chainID"`
	Data    hexutil.Bytes `json:"data"`
	Sig     hexutil.Bytes `json:"sig"`

	// This is only used when marshaling to JSON.
	Hash *common.Hash `json:"hash,omitempty"`
}

// NewTransaction creates an unsigned transaction
func NewTransaction(txType uint8, chainID uint16, data []byte) *Transaction {
	d := txdata{
		Type:    txType,
		ChainID: chainID,
		Data:    common.CopyBytes(data),
	}
	return &Transaction{data: d}
}

// NewCreateAssetTx creates a transaction which mints an asset for the sender
func NewCreateAssetTx(chainID uint16) *Transaction {
	return NewTransaction(params.CreateAsset_tx, chainID, nil)
}

// NewTransferAssetTx creates a transaction which sends an asset to another account
func NewTransferAssetTx(chainID uint16, to common.Address, assetId common.Hash) *Transaction {
	data, _ := json.Marshal(&TransferAsset{To: to, AssetId: assetId})
	return NewTransaction(params.TransferAsset_tx, chainID, data)
}

// NewSetAssetPriceTx creates a transaction which lists an asset. Pass nil price to delist it
func NewSetAssetPriceTx(chainID uint16, assetId common.Hash, price *hexutil.Big10) *Transaction {
	data, _ := json.Marshal(&SetAssetPrice{AssetId: assetId, Price: price})
	return NewTransaction(params.SetAssetPrice_tx, chainID, data)
}

// NewBuyAssetTx creates a transaction which buys a listed asset for at most maxPrice
func NewBuyAssetTx(chainID uint16, assetId common.Hash, maxPrice *hexutil.Big10) *Transaction {
	data, _ := json.Marshal(&BuyAsset{AssetId: assetId, MaxPrice: maxPrice})
	return NewTransaction(params.BuyAsset_tx, chainID, data)
}

// MarshalJSON encodes the transaction with its hash
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	hash := tx.Hash()
	data := tx.data
	data.Hash = &hash
	return json.Marshal(&data)
}

// UnmarshalJSON decodes the transaction. The hash field is ignored and recomputed
func (tx *Transaction) UnmarshalJSON(input []byte) error {
	var dec txdata
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if len(dec.Sig) != 0 && len(dec.Sig) != crypto.SignatureLength {
		return ErrInvalidSig
	}
	dec.Hash = nil
	*tx = Transaction{data: dec}
	return nil
}

func (tx *Transaction) Type() uint8     { return tx.data.Type }
func (tx *Transaction) ChainID() uint16 { return tx.data.ChainID }
func (tx *Transaction) Data() []byte    { return common.CopyBytes(tx.data.Data) }
func (tx *Transaction) Sig() []byte     { return common.CopyBytes(tx.data.Sig) }

// From returns the address which signed the transaction
func (tx *Transaction) From() (common.Address, error) {
	from := tx.from.Load()
	if from != nil {
		return from.(common.Address), nil
	}
	addr, err := MakeSigner(tx.data.ChainID).GetSender(tx)
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(addr)
	return addr, nil
}

// Hash identifies the transaction including its signature
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return hash.(common.Hash)
	}
	v := crypto.Keccak256Hash(tx.signingBytes(), tx.data.Sig)
	tx.hash.Store(v)
	return v
}

// signingBytes is the canonical content covered by the signature
func (tx *Transaction) signingBytes() []byte {
	enc, _ := json.Marshal(&txdata{
		Type:    tx.data.Type,
		ChainID: tx.data.ChainID,
		Data:    tx.data.Data,
	})
	return enc
}

// WithSignature returns a new transaction with the given signature.
func (tx *Transaction) WithSignature(sig []byte) (*Transaction, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, ErrInvalidSig
	}
	cpy := &Transaction{data: tx.data}
	cpy.data.Sig = common.CopyBytes(sig)
	return cpy, nil
}

// VerifyTx checks the static fields of the transaction
func (tx *Transaction) VerifyTx(chainID uint16) error {
	if tx.data.ChainID != chainID {
		return ErrTxChainID
	}
	switch tx.data.Type {
	case params.CreateAsset_tx, params.TransferAsset_tx, params.SetAssetPrice_tx, params.BuyAsset_tx:
	default:
		return ErrTxType
	}
	if len(tx.data.Data) > params.MaxTxDataLength {
		return ErrTxDataLength
	}
	if _, err := tx.From(); err != nil {
		return ErrInvalidSig
	}
	return nil
}

func (tx *Transaction) String() string {
	set := []string{
		fmt.Sprintf("Hash: %s", tx.Hash().Hex()),
		fmt.Sprintf("Type: %d", tx.data.Type),
		fmt.Sprintf("ChainID: %d", tx.data.ChainID),
	}
	if from, err := tx.From(); err == nil {
		set = append(set, fmt.Sprintf("From: %s", from.Hex()))
	}
	if len(tx.data.Data) > 0 {
		set = append(set, fmt.Sprintf("Data: %s", string(tx.data.Data)))
	}
	return fmt.Sprintf("{%s}", strings.Join(set, ", "))
}
