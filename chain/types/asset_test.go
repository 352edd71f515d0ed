package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/stretchr/testify/assert"
)

var (
	testAssetId = common.HexToHash("0x8a4b1c5e2f3d6a7b8c9d0e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d")
	testOwner   = common.HexToAddress("0x9a6a8d3a1e3f5d1e0c7b2a4f6e8d0c2b4a6f8e01")
)

func TestAsset_MarshalJSON(t *testing.T) {
	asset := &Asset{Id: testAssetId, Owner: testOwner}
	data, err := json.Marshal(asset)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"0x8a4b1c5e2f3d6a7b8c9d0e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d","owner":"0x9a6a8d3a1e3f5d1e0c7b2a4f6e8d0c2b4a6f8e01","price":null}`, string(data))

	asset.Price = big.NewInt(100)
	data, err = json.Marshal(asset)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"price":"100"`)

	decoded := new(Asset)
	assert.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, asset, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"0x01","owner":"0x9a6a8d3a1e3f5d1e0c7b2a4f6e8d0c2b4a6f8e01","price":null}`), decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"price":"-1"}`), decoded))
}

func TestAsset_Clone(t *testing.T) {
	var nilAsset *Asset
	assert.Nil(t, nilAsset.Clone())

	asset := &Asset{Id: testAssetId, Owner: testOwner, Price: big.NewInt(5)}
	cpy := asset.Clone()
	assert.Equal(t, asset, cpy)
	cpy.Price.SetInt64(6)
	assert.Equal(t, big.NewInt(5), asset.Price)

	asset.Price = nil
	assert.False(t, asset.IsForSale())
	assert.Nil(t, asset.Clone().Price)
}

func TestAsset_String(t *testing.T) {
	asset := &Asset{Id: testAssetId, Owner: testOwner}
	assert.Contains(t, asset.String(), "Price: none")
	asset.Price = big.NewInt(42)
	assert.Contains(t, asset.String(), "Price: 42")
	assert.Contains(t, asset.String(), testOwner.Hex())
}

func TestPriceEqual(t *testing.T) {
	assert.True(t, PriceEqual(nil, nil))
	assert.False(t, PriceEqual(nil, big.NewInt(0)))
	assert.False(t, PriceEqual(big.NewInt(0), nil))
	assert.True(t, PriceEqual(big.NewInt(7), big.NewInt(7)))
	assert.False(t, PriceEqual(big.NewInt(7), big.NewInt(8)))
}

func TestGetPayloads(t *testing.T) {
	transfer, err := GetTransferAsset([]byte(`{"to":"0x9a6a8d3a1e3f5d1e0c7b2a4f6e8d0c2b4a6f8e01","assetId":"0x8a4b1c5e2f3d6a7b8c9d0e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d"}`))
	assert.NoError(t, err)
	assert.Equal(t, testOwner, transfer.To)
	assert.Equal(t, testAssetId, transfer.AssetId)
	_, err = GetTransferAsset([]byte(`{"to":"abc"}`))
	assert.Error(t, err)

	setPrice, err := GetSetAssetPrice([]byte(`{"assetId":"0x8a4b1c5e2f3d6a7b8c9d0e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d","price":"100"}`))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), setPrice.Price.ToInt())
	setPrice, err = GetSetAssetPrice([]byte(`{"assetId":"0x8a4b1c5e2f3d6a7b8c9d0e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d","price":null}`))
	assert.NoError(t, err)
	assert.Nil(t, setPrice.Price)

	buy, err := GetBuyAsset([]byte(`{"assetId":"0x8a4b1c5e2f3d6a7b8c9d0e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d","maxPrice":"100"}`))
	assert.NoError(t, err)
	assert.Equal(t, (*hexutil.Big10)(big.NewInt(100)), buy.MaxPrice)
	_, err = GetBuyAsset([]byte(`{"assetId":"0x8a4b1c5e2f3d6a7b8c9d0e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d"}`))
	assert.Equal(t, ErrMissingMaxPrice, err)
	_, err = GetBuyAsset([]byte(`{"maxPrice":"-3"}`))
	assert.Error(t, err)
}

func TestAsset_Hash(t *testing.T) {
	asset := &Asset{Id: testAssetId, Owner: testOwner}
	h := asset.Hash()
	assert.Equal(t, h, asset.Clone().Hash())
	asset.Price = big.NewInt(1)
	assert.NotEqual(t, h, asset.Hash())
	asset.Price = nil
	assert.Equal(t, h, asset.Hash())
}
