// Package crypto wraps the hash and signature primitives used to authenticate transaction
// senders and to derive asset ids.
package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/sha3"
)

// SignatureLength is the length of a compact recoverable signature: 1 byte header, 32 bytes R, 32 bytes S.
const SignatureLength = 65

var (
	ErrInvalidSignatureLen = errors.New("invalid signature length")
	ErrInvalidPrivateKey   = errors.New("invalid private key")
)

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// GenerateKey creates a new secp256k1 private key.
func GenerateKey() (*btcec.PrivateKey, error) {
	return btcec.NewPrivateKey(btcec.S256())
}

// ToPrivateKey creates a private key with the given D value. It rejects zero and values >= N.
func ToPrivateKey(d []byte) (*btcec.PrivateKey, error) {
	if len(d) != 32 {
		return nil, fmt.Errorf("invalid length, need 256 bits")
	}
	k := new(big.Int).SetBytes(d)
	if k.Sign() <= 0 {
		return nil, fmt.Errorf("invalid private key, zero or negative")
	}
	if k.Cmp(btcec.S256().N) >= 0 {
		return nil, fmt.Errorf("invalid private key, >=N")
	}
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), d)
	return priv, nil
}

// HexToPrivateKey parses a secp256k1 private key.
func HexToPrivateKey(hexkey string) (*btcec.PrivateKey, error) {
	if len(hexkey) >= 2 && hexkey[0] == '0' && (hexkey[1] == 'x' || hexkey[1] == 'X') {
		hexkey = hexkey[2:]
	}
	b, err := hex.DecodeString(hexkey)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	return ToPrivateKey(b)
}

// FromPrivateKey exports a private key into a binary dump.
func FromPrivateKey(priv *btcec.PrivateKey) []byte {
	if priv == nil {
		return nil
	}
	return priv.Serialize()
}

// PubkeyToAddress derives the account address from the uncompressed public key.
func PubkeyToAddress(pub *btcec.PublicKey) common.Address {
	raw := pub.SerializeUncompressed()
	return common.BytesToAddress(Keccak256(raw[1:])[12:])
}

// Sign calculates a compact recoverable signature. The hash must be 32 bytes.
func Sign(hash []byte, priv *btcec.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash is required to be exactly 32 bytes (%d)", len(hash))
	}
	if priv == nil {
		return nil, ErrInvalidPrivateKey
	}
	return btcec.SignCompact(btcec.S256(), priv, hash, false)
}

// SigToPub returns the public key that created the given signature.
func SigToPub(hash, sig []byte) (*btcec.PublicKey, error) {
	if len(sig) != SignatureLength {
		return nil, ErrInvalidSignatureLen
	}
	pub, _, err := btcec.RecoverCompact(btcec.S256(), sig, hash)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// SigToAddress recovers the signer address of the hash.
func SigToAddress(hash, sig []byte) (common.Address, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return PubkeyToAddress(pub), nil
}
