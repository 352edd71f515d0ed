package wallet

import (
	"errors"
	"strings"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/base26"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/btcsuite/btcd/btcec"
)

// the prefix of the text address
const logo = "Lemo"

var ErrInvalidLemoAddress = errors.New("invalid lemo address")

type Wallet struct {
	Address    common.Address
	PrivateKey *btcec.PrivateKey
}

func newWalletFromKey(privateKey *btcec.PrivateKey) *Wallet {
	return &Wallet{
		Address:    crypto.PubkeyToAddress(privateKey.PubKey()),
		PrivateKey: privateKey,
	}
}

// NewWallet generates a random key
func NewWallet() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return newWalletFromKey(privateKey), nil
}

// LoadWallet restores the wallet from a hex private key
func LoadWallet(hexKey string) (*Wallet, error) {
	privateKey, err := crypto.HexToPrivateKey(hexKey)
	if err != nil {
		return nil, err
	}
	return newWalletFromKey(privateKey), nil
}

func (w *Wallet) PrivateKeyHex() string {
	return hexutil.Encode(crypto.FromPrivateKey(w.PrivateKey))
}

// GenerateAddress returns the text address, e.g. "Lemo83GN72GYH2NZ8BA729Z9TCT7KQ5FC3CR6DJF"
func (w *Wallet) GenerateAddress() string {
	return ToLemoAddress(w.Address)
}

func checkSum(address common.Address) byte {
	var temp = address[0]
	for _, c := range address {
		temp ^= c
	}
	return temp
}

// ToLemoAddress encodes the address and an xor check byte with base26
func ToLemoAddress(address common.Address) string {
	fullPayload := append(address.Bytes(), checkSum(address))
	return logo + string(base26.Encode(fullPayload))
}

// ValidateAddress decodes the text address and verifies its check byte
func ValidateAddress(lemoAddress string) (bool, common.Address) {
	if !strings.HasPrefix(lemoAddress, logo) {
		return false, common.Address{}
	}
	body := lemoAddress[len(logo):]
	if len(body) != base26.EncodedLength {
		return false, common.Address{}
	}
	decoded, ok := base26.Decode([]byte(body))
	if !ok || len(decoded) > common.AddressLength+1 {
		return false, common.Address{}
	}
	// restore the leading zero bytes
	fullPayload := make([]byte, common.AddressLength+1)
	copy(fullPayload[len(fullPayload)-len(decoded):], decoded)
	address := common.BytesToAddress(fullPayload[:common.AddressLength])
	return fullPayload[common.AddressLength] == checkSum(address), address
}

// ParseAddress accepts both the text address and the hex address
func ParseAddress(s string) (common.Address, error) {
	if strings.HasPrefix(s, logo) {
		ok, address := ValidateAddress(s)
		if !ok {
			return common.Address{}, ErrInvalidLemoAddress
		}
		return address, nil
	}
	return common.ParseAddress(s)
}
