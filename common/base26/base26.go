// Package base26 encodes bytes with the 26 characters which are hard to be misread.
package base26

import (
	"bytes"
	"math/big"
)

var b26Alphabet = []byte("83456729ABCDFGHJKNPQRSTWYZ")

// EncodedLength is the minimum length of the encoded text. Shorter results are left padded with the zero character.
// 36 characters hold 21 bytes
const EncodedLength = 36

// Encode encodes the bytes as a big endian number
func Encode(input []byte) []byte {
	var result []byte
	x := new(big.Int).SetBytes(input)
	base := big.NewInt(int64(len(b26Alphabet)))
	zero := big.NewInt(0)
	mod := new(big.Int)
	for x.Cmp(zero) != 0 {
		x.DivMod(x, base, mod)
		result = append(result, b26Alphabet[mod.Int64()])
	}
	ReverseBytes(result)

	for len(result) < EncodedLength {
		result = append([]byte{b26Alphabet[0]}, result...)
	}
	return result
}

// Decode decodes the text produced by Encode. The leading zero bytes are lost.
// It returns false if there is any character out of the alphabet
func Decode(input []byte) ([]byte, bool) {
	result := big.NewInt(0)
	base := big.NewInt(int64(len(b26Alphabet)))
	for _, b := range input {
		charIndex := bytes.IndexByte(b26Alphabet, b)
		if charIndex < 0 {
			return nil, false
		}
		result.Mul(result, base)
		result.Add(result, big.NewInt(int64(charIndex)))
	}
	return result.Bytes(), true
}

func ReverseBytes(data []byte) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
