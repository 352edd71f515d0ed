package types

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/stretchr/testify/assert"
)

const testChainID uint16 = 200

var (
	testPrivate, _ = crypto.HexToPrivateKey("c21b6b2fbf230f665b936194d14da67187732bf9d28768aef1a3cbb26608f8aa")
	testAddr       = crypto.PubkeyToAddress(testPrivate.PubKey())
	testSigner     = MakeSigner(testChainID)
)

func signed(t *testing.T, tx *Transaction) *Transaction {
	tx, err := SignTx(tx, testSigner, testPrivate)
	assert.NoError(t, err)
	return tx
}

func TestTransaction_From(t *testing.T) {
	tx := signed(t, NewCreateAssetTx(testChainID))
	from, err := tx.From()
	assert.NoError(t, err)
	assert.Equal(t, testAddr, from)
	// cached
	from, err = tx.From()
	assert.NoError(t, err)
	assert.Equal(t, testAddr, from)

	unsigned := NewCreateAssetTx(testChainID)
	_, err = unsigned.From()
	assert.Equal(t, ErrInvalidSig, err)
}

func TestSigner_GetSender(t *testing.T) {
	tx := signed(t, NewTransferAssetTx(testChainID, testOwner, testAssetId))

	_, err := MakeSigner(testChainID + 1).GetSender(tx)
	assert.Equal(t, ErrInvalidChainId, err)

	// the signature of another payload recovers another account
	other := NewTransferAssetTx(testChainID, common.HexToAddress("0x02"), testAssetId)
	other, err = other.WithSignature(tx.Sig())
	assert.NoError(t, err)
	from, err := other.From()
	if err == nil {
		assert.NotEqual(t, testAddr, from)
	}

	_, err = tx.WithSignature([]byte{1, 2, 3})
	assert.Equal(t, ErrInvalidSig, err)
}

func TestTransaction_Hash(t *testing.T) {
	tx := NewSetAssetPriceTx(testChainID, testAssetId, (*hexutil.Big10)(big.NewInt(100)))
	unsignedHash := tx.Hash()
	signedTx := signed(t, tx)
	assert.NotEqual(t, unsignedHash, signedTx.Hash())
	assert.Equal(t, testSigner.Hash(tx), testSigner.Hash(signedTx))

	delist := NewSetAssetPriceTx(testChainID, testAssetId, nil)
	assert.NotEqual(t, testSigner.Hash(tx), testSigner.Hash(delist))
}

func TestTransaction_JSON(t *testing.T) {
	tx := signed(t, NewBuyAssetTx(testChainID, testAssetId, (*hexutil.Big10)(big.NewInt(100))))
	data, err := json.Marshal(tx)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"type":4`)
	assert.Contains(t, string(data), `"hash":"`+tx.Hash().Hex()+`"`)

	decoded := new(Transaction)
	assert.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, tx.Hash(), decoded.Hash())
	from, err := decoded.From()
	assert.NoError(t, err)
	assert.Equal(t, testAddr, from)

	buy, err := GetBuyAsset(decoded.Data())
	assert.NoError(t, err)
	assert.Equal(t, testAssetId, buy.AssetId)
	assert.Equal(t, big.NewInt(100), buy.MaxPrice.ToInt())

	assert.Equal(t, ErrInvalidSig, json.Unmarshal([]byte(`{"type":1,"chainID":200,"data":"0x","sig":"0x0102"}`), decoded))
}

func TestTransaction_VerifyTx(t *testing.T) {
	tx := signed(t, NewCreateAssetTx(testChainID))
	assert.NoError(t, tx.VerifyTx(testChainID))
	assert.Equal(t, ErrTxChainID, tx.VerifyTx(testChainID+1))

	unknown := signed(t, NewTransaction(9, testChainID, nil))
	assert.Equal(t, ErrTxType, unknown.VerifyTx(testChainID))

	long := signed(t, NewTransaction(params.TransferAsset_tx, testChainID, []byte(strings.Repeat("a", params.MaxTxDataLength+1))))
	assert.Equal(t, ErrTxDataLength, long.VerifyTx(testChainID))

	assert.Equal(t, ErrInvalidSig, NewCreateAssetTx(testChainID).VerifyTx(testChainID))
}

func TestTransaction_String(t *testing.T) {
	tx := signed(t, NewTransferAssetTx(testChainID, testOwner, testAssetId))
	s := tx.String()
	assert.Contains(t, s, "Type: 2")
	assert.Contains(t, s, "From: "+testAddr.Hex())
	// the json payload is printed as it is
	assert.Contains(t, s, `"to":"`+testOwner.Hex()+`"`)
	assert.Contains(t, s, testAssetId.Hex())

	assert.NotContains(t, NewCreateAssetTx(testChainID).String(), "Data:")
}
