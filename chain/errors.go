package chain

import "errors"

var (
	ErrNoGenesis    = errors.New("can't get genesis block")
	ErrGenesisExist = errors.New("genesis block already exists")
	ErrLoadBlock    = errors.New("load block fail")
	ErrNoTxs        = errors.New("no transaction to apply")
)
