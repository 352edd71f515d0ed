package types

import (
	"errors"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
	"github.com/btcsuite/btcd/btcec"
)

var (
	ErrInvalidChainId = errors.New("invalid chain id for signer")
)

// MakeSigner returns a Signer based on the given chainId.
func MakeSigner(chainId uint16) DefaultSigner {
	return DefaultSigner{
		chainId: chainId,
	}
}

// SignTx signs the transaction using the given signer and private key
func SignTx(tx *Transaction, s Signer, prv *btcec.PrivateKey) (*Transaction, error) {
	h := s.Hash(tx)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(sig)
}

// Signer encapsulates transaction signature handling.
type Signer interface {
	// GetSender returns the sender address of the transaction.
	GetSender(tx *Transaction) (common.Address, error)
	// Hash returns the hash to be signed.
	Hash(tx *Transaction) common.Hash
}

// DefaultSigner implements Signer.
type DefaultSigner struct {
	chainId uint16
}

func (s DefaultSigner) GetSender(tx *Transaction) (common.Address, error) {
	if tx.ChainID() != s.chainId {
		return common.Address{}, ErrInvalidChainId
	}
	if len(tx.data.Sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSig
	}
	h := s.Hash(tx)
	addr, err := crypto.SigToAddress(h[:], tx.data.Sig)
	if err != nil {
		return common.Address{}, ErrInvalidSig
	}
	return addr, nil
}

// Hash returns the hash to be signed by the sender.
// It does not uniquely identify the transaction.
func (s DefaultSigner) Hash(tx *Transaction) common.Hash {
	return crypto.Keccak256Hash(tx.signingBytes())
}
