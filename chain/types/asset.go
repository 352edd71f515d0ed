package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
)

// Asset is one unique item. Price == nil means it is not for sale.
type Asset struct {
	Id    common.Hash    `json:"id"`
	Owner common.Address `json:"owner"`
	Price *big.Int       `json:"price"`
}

type assetMarshaling struct {
	Id    common.Hash    `json:"id"`
	Owner common.Address `json:"owner"`
	Price *hexutil.Big10 `json:"price"`
}

// MarshalJSON writes the price as a decimal string, or null if the asset is not listed.
func (a *Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(&assetMarshaling{
		Id:    a.Id,
		Owner: a.Owner,
		Price: (*hexutil.Big10)(a.Price),
	})
}

func (a *Asset) UnmarshalJSON(input []byte) error {
	var dec assetMarshaling
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	a.Id = dec.Id
	a.Owner = dec.Owner
	a.Price = nil
	if dec.Price != nil {
		a.Price = new(big.Int).Set(dec.Price.ToInt())
	}
	return nil
}

// IsForSale reports whether the asset has a listing price.
func (a *Asset) IsForSale() bool {
	return a.Price != nil
}

// Hash is the keccak256 of the asset's json encoding
func (a *Asset) Hash() common.Hash {
	data, err := json.Marshal(a)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(data)
}

func (a *Asset) Clone() *Asset {
	if a == nil {
		return nil
	}
	return &Asset{
		Id:    a.Id,
		Owner: a.Owner,
		Price: CopyPrice(a.Price),
	}
}

func (a *Asset) String() string {
	set := []string{
		fmt.Sprintf("Id: %s", a.Id.Hex()),
		fmt.Sprintf("Owner: %s", a.Owner.Hex()),
	}
	if a.Price == nil {
		set = append(set, "Price: none")
	} else {
		set = append(set, fmt.Sprintf("Price: %s", a.Price.String()))
	}
	return fmt.Sprintf("{%s}", strings.Join(set, ", "))
}

// CopyPrice deep copies an optional price.
func CopyPrice(price *big.Int) *big.Int {
	if price == nil {
		return nil
	}
	return new(big.Int).Set(price)
}

// PriceEqual compares two optional prices.
func PriceEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}

// TransferAsset is the payload of a transfer transaction.
type TransferAsset struct {
	To      common.Address `json:"to"`
	AssetId common.Hash    `json:"assetId"`
}

// SetAssetPrice is the payload of a set-price transaction. A nil price delists the asset.
type SetAssetPrice struct {
	AssetId common.Hash    `json:"assetId"`
	Price   *hexutil.Big10 `json:"price"`
}

// BuyAsset is the payload of a buy transaction.
type BuyAsset struct {
	AssetId  common.Hash    `json:"assetId"`
	MaxPrice *hexutil.Big10 `json:"maxPrice"`
}

// GetTransferAsset parses the transfer payload in txData
func GetTransferAsset(txData []byte) (*TransferAsset, error) {
	transfer := &TransferAsset{}
	if err := json.Unmarshal(txData, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// GetSetAssetPrice parses the set-price payload in txData
func GetSetAssetPrice(txData []byte) (*SetAssetPrice, error) {
	setPrice := &SetAssetPrice{}
	if err := json.Unmarshal(txData, setPrice); err != nil {
		return nil, err
	}
	return setPrice, nil
}

// GetBuyAsset parses the buy payload in txData
func GetBuyAsset(txData []byte) (*BuyAsset, error) {
	buy := &BuyAsset{}
	if err := json.Unmarshal(txData, buy); err != nil {
		return nil, err
	}
	if buy.MaxPrice == nil {
		return nil, ErrMissingMaxPrice
	}
	return buy, nil
}
