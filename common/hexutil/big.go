package hexutil

import (
	"errors"
	"math/big"
)

// maxAmountBits bounds the amounts accepted from JSON.
const maxAmountBits = 256

var (
	ErrEmptyNumber = errors.New("empty number string")
	ErrBigRange    = errors.New("number is out of 256 bits range")
	ErrNegative    = errors.New("negative number is not allowed")
)

// Big10 marshals/unmarshals a non-negative big integer as a decimal JSON string. Prices and
// balances use it so that large amounts survive JavaScript clients.
type Big10 big.Int

func (b Big10) MarshalText() ([]byte, error) {
	return []byte((*big.Int)(&b).String()), nil
}

func (b *Big10) UnmarshalJSON(input []byte) error {
	if isString(input) {
		input = input[1 : len(input)-1]
	}
	return b.UnmarshalText(input)
}

func (b *Big10) UnmarshalText(input []byte) error {
	if len(input) == 0 {
		return ErrEmptyNumber
	}
	dec, ok := new(big.Int).SetString(string(input), 10)
	if !ok {
		return ErrSyntax
	}
	if dec.Sign() < 0 {
		return ErrNegative
	}
	if dec.BitLen() > maxAmountBits {
		return ErrBigRange
	}
	*b = (Big10)(*dec)
	return nil
}

// ToInt converts b to a big.Int.
func (b *Big10) ToInt() *big.Int {
	return (*big.Int)(b)
}

func (b *Big10) String() string {
	return b.ToInt().String()
}
