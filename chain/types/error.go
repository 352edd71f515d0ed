package types

import (
	"errors"
)

var (
	// asset ledger
	ErrOverflow       = errors.New("asset counter overflow")
	ErrDuplicateId    = errors.New("asset id already exists")
	ErrOwnerListFull  = errors.New("the owned asset list of the account is full")
	ErrTransferToSelf = errors.New("can't transfer an asset to its owner")
	ErrAssetNotFound  = errors.New("asset does not exist")
	ErrNotOwner       = errors.New("the sender is not the owner of the asset")
	ErrNotForSale     = errors.New("the asset is not for sale")
	ErrPriceTooLow    = errors.New("the bid price is lower than the listed price")

	// transaction
	ErrInvalidSig      = errors.New("invalid transaction signature")
	ErrTxType          = errors.New("the 'type' field of transaction does not exist")
	ErrTxChainID       = errors.New("the 'chainID' field of transaction is incorrect")
	ErrTxDataLength    = errors.New("the length of 'data' field in transaction is out of limit")
	ErrNegativeValue   = errors.New("amount can't be negative")
	ErrMissingMaxPrice = errors.New("missing required field 'maxPrice' for buy asset transaction")
)
