package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/stretchr/testify/assert"
)

func TestEvent_Constructors(t *testing.T) {
	buyer := common.HexToAddress("0x03")

	created := NewCreatedEvent(testOwner, testAssetId)
	assert.Equal(t, EventCreated, created.Type)
	assert.Equal(t, testOwner, *created.Owner)
	assert.Nil(t, created.From)
	assert.Nil(t, created.Price)

	transferred := NewTransferredEvent(testOwner, buyer, testAssetId)
	assert.Equal(t, testOwner, *transferred.From)
	assert.Equal(t, buyer, *transferred.To)
	assert.Nil(t, transferred.Owner)

	price := big.NewInt(100)
	priceSet := NewPriceSetEvent(testOwner, testAssetId, price)
	price.SetInt64(1)
	assert.Equal(t, big.NewInt(100), priceSet.Price)
	assert.Nil(t, NewPriceSetEvent(testOwner, testAssetId, nil).Price)

	sold := NewSoldEvent(buyer, testAssetId, big.NewInt(100))
	assert.Equal(t, buyer, *sold.Buyer)
	assert.Equal(t, big.NewInt(100), sold.Price)
}

func TestEvent_JSON(t *testing.T) {
	sold := NewSoldEvent(testOwner, testAssetId, big.NewInt(100))
	sold.TxHash = common.HexToHash("0xabcd")
	data, err := json.Marshal(sold)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"type":"Sold"`)
	assert.Contains(t, string(data), `"buyer":"0x9a6a8d3a1e3f5d1e0c7b2a4f6e8d0c2b4a6f8e01"`)
	assert.Contains(t, string(data), `"price":"100"`)
	assert.NotContains(t, string(data), `"owner"`)

	decoded := new(Event)
	assert.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, sold, decoded)

	delisted := NewPriceSetEvent(testOwner, testAssetId, nil)
	data, err = json.Marshal(delisted)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"price":null`)
	decoded = new(Event)
	assert.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, delisted, decoded)
}

func TestEvent_String(t *testing.T) {
	e := NewTransferredEvent(testOwner, common.HexToAddress("0x02"), testAssetId)
	s := e.String()
	assert.Contains(t, s, "Type: Transferred")
	assert.Contains(t, s, "from: "+testOwner.Hex())
	assert.Contains(t, s, "to: 0x0000000000000000000000000000000000000002")
	assert.NotContains(t, s, "price")
}
