package transaction

import (
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
)

// SignatureVerifier authenticates the caller by recovering the signer of the transaction
type SignatureVerifier struct {
	ChainID uint16
}

func NewSignatureVerifier(chainID uint16) *SignatureVerifier {
	return &SignatureVerifier{ChainID: chainID}
}

func (v *SignatureVerifier) VerifyCaller(tx *types.Transaction) (common.Address, error) {
	if err := tx.VerifyTx(v.ChainID); err != nil {
		return common.Address{}, err
	}
	return tx.From()
}
