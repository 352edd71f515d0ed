package common

import (
	"errors"
	"math/big"
	"strings"
)

var (
	OneLEMO          = big.NewInt(1000000000000000000)
	ErrParseLemoFail = errors.New("parse input lemo failed, please make sure it is a non-negative number")
)

const lemoDecimals = 18

// ParseLemo change LEMO to mo. 1 LEMO = 1e18 mo. Digits beyond 18 decimals are dropped
func ParseLemo(lemo string) (*big.Int, error) {
	if len(lemo) == 0 {
		return new(big.Int), nil
	}
	if strings.HasPrefix(lemo, "-") {
		return nil, ErrParseLemoFail
	}

	// split the string to integer part and decimal part, big.Float would lose the lowest bits
	parts := strings.Split(lemo, ".")
	if len(parts) > 2 {
		return nil, ErrParseLemoFail
	}
	intB, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		return nil, ErrParseLemoFail
	}
	result := new(big.Int).Mul(intB, OneLEMO)

	if len(parts) == 2 {
		decB, ok := new(big.Int).SetString(setWith(parts[1], lemoDecimals), 10)
		if !ok || decB.Sign() < 0 {
			return nil, ErrParseLemoFail
		}
		result.Add(result, decB)
	}
	return result, nil
}

// FormatLemo prints an amount of mo as LEMO without trailing zeros
func FormatLemo(mo *big.Int) string {
	if mo == nil {
		return "0"
	}
	integer, decimal := new(big.Int).QuoRem(mo, OneLEMO, new(big.Int))
	if decimal.Sign() == 0 {
		return integer.String()
	}
	dec := decimal.String()
	dec = strings.Repeat("0", lemoDecimals-len(dec)) + dec
	return integer.String() + "." + strings.TrimRight(dec, "0")
}

func setWith(str string, totalLength int) string {
	if totalLength > len(str) {
		return str + strings.Repeat("0", totalLength-len(str))
	} else {
		return str[:totalLength]
	}
}
