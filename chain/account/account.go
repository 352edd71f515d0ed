package account

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/journal"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
)

var (
	ErrNegativeBalance = errors.New("balance can't be negative")
)

// Account holds the currency balance of an address. Every change is recorded in the journal
type Account struct {
	address common.Address
	balance *big.Int
	journal *journal.Journal
	dirty   bool
}

func NewAccount(address common.Address, balance *big.Int, j *journal.Journal) *Account {
	if balance == nil {
		balance = new(big.Int)
	}
	return &Account{
		address: address,
		balance: new(big.Int).Set(balance),
		journal: j,
	}
}

func (a *Account) GetAddress() common.Address { return a.address }
func (a *Account) GetBalance() *big.Int       { return new(big.Int).Set(a.balance) }
func (a *Account) IsDirty() bool              { return a.dirty }

// SetBalance panics if balance is negative. The callers must check it
func (a *Account) SetBalance(balance *big.Int) {
	if balance.Sign() < 0 {
		panic(ErrNegativeBalance)
	}
	prev := a.balance
	prevDirty := a.dirty
	a.balance = new(big.Int).Set(balance)
	a.dirty = true
	a.journal.Push(journal.UndoFunc(func() {
		a.balance = prev
		a.dirty = prevDirty
	}))
}

func (a *Account) String() string {
	return fmt.Sprintf("{Address: %s, Balance: %s}", a.address.String(), common.FormatLemo(a.balance))
}
