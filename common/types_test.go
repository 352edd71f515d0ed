package common

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesConversion(t *testing.T) {
	hash := BytesToHash([]byte{5})

	var exp Hash
	exp[31] = 5
	assert.Equal(t, exp, hash)

	// cropped from the left
	long := make([]byte, 40)
	long[39] = 7
	assert.Equal(t, byte(7), BytesToHash(long)[31])
	assert.Equal(t, byte(7), BytesToAddress(long)[19])
}

func TestIsHexAddress(t *testing.T) {
	tests := []struct {
		str string
		exp bool
	}{
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0X5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed1", false},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae", false},
		{"0xxaaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, IsHexAddress(test.str), test.str)
	}
}

func TestHashJsonValidation(t *testing.T) {
	var tests = []struct {
		Prefix  string
		Size    int
		wantErr bool
	}{
		{"", 64, true},
		{"0x", 66, true},
		{"0x", 63, true},
		{"0x", 0, true},
		{"0x", 64, false},
		{"0X", 64, false},
	}
	for _, test := range tests {
		input := `"` + test.Prefix + strings.Repeat("0", test.Size) + `"`
		var v Hash
		err := json.Unmarshal([]byte(input), &v)
		if test.wantErr {
			assert.Error(t, err, input)
		} else {
			assert.NoError(t, err, input)
		}
	}
}

func TestAddress_JSON(t *testing.T) {
	addr := HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	data, err := json.Marshal(addr)
	assert.NoError(t, err)
	assert.Equal(t, `"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"`, string(data))

	var dec Address
	assert.NoError(t, json.Unmarshal(data, &dec))
	assert.Equal(t, addr, dec)
	assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", dec.String())
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("0x" + strings.Repeat("ab", 32))
	assert.NoError(t, err)
	assert.Equal(t, byte(0xab), h[0])

	_, err = ParseHash("0x1234")
	assert.Equal(t, ErrInvalidHash, err)
	_, err = ParseAddress("0x1234")
	assert.Equal(t, ErrInvalidAddress, err)
}

func TestFromHex(t *testing.T) {
	assert.Equal(t, []byte{0x01}, FromHex("0x1"))
	assert.Equal(t, []byte{0x01, 0x02}, FromHex("0102"))
	assert.Equal(t, "0x0102", ToHex([]byte{1, 2}))
}
