package account

import (
	"errors"
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/journal"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/store/protocol"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimumBalance = errors.New("the balance left would be lower than the minimum balance")
	ErrNegativeAmount      = errors.New("amount can't be negative")
)

// Manager is used to maintain the newest balances. It will save the changed balances to a batch
// when a block's transactions are processed.
type Manager struct {
	db      protocol.BalanceReader
	journal *journal.Journal

	// This map holds 'live' accounts, which will get modified while processing a block.
	accountCache   map[common.Address]*Account
	minimumBalance *big.Int
}

// NewManager creates a new Manager. The changes are recorded in j
func NewManager(db protocol.BalanceReader, j *journal.Journal) *Manager {
	if db == nil {
		panic("account.NewManager is called without a database")
	}
	return &Manager{
		db:             db,
		journal:        j,
		accountCache:   make(map[common.Address]*Account),
		minimumBalance: new(big.Int).Set(params.MinimumBalance),
	}
}

// GetAccount loads account from cache or db. An unknown address has zero balance
func (am *Manager) GetAccount(address common.Address) *Account {
	cached := am.accountCache[address]
	if cached == nil {
		balance, err := am.db.GetBalance(address)
		if err != nil {
			log.Errorf("load balance of %s fail: %v", address.Hex(), err)
			panic(err)
		}
		cached = NewAccount(address, balance, am.journal)
		am.accountCache[address] = cached
	}
	return cached
}

func (am *Manager) GetBalance(address common.Address) *big.Int {
	return am.GetAccount(address).GetBalance()
}

// CanTransfer checks that from can pay amount and still keep the minimum balance
func (am *Manager) CanTransfer(from common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	balance := am.GetAccount(from).GetBalance()
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if new(big.Int).Sub(balance, amount).Cmp(am.minimumBalance) < 0 {
		return ErrBelowMinimumBalance
	}
	return nil
}

// Transfer moves amount from one account to another
func (am *Manager) Transfer(from, to common.Address, amount *big.Int) error {
	if err := am.CanTransfer(from, amount); err != nil {
		return err
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	sender := am.GetAccount(from)
	recipient := am.GetAccount(to)
	sender.SetBalance(new(big.Int).Sub(sender.GetBalance(), amount))
	recipient.SetBalance(new(big.Int).Add(recipient.GetBalance(), amount))
	return nil
}

// AddBalance credits an account. It is used to allocate the initial balances
func (am *Manager) AddBalance(address common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	account := am.GetAccount(address)
	account.SetBalance(new(big.Int).Add(account.GetBalance(), amount))
	return nil
}

// GetChangedAccounts returns the accounts whose balance has been set since last reset
func (am *Manager) GetChangedAccounts() []*Account {
	result := make([]*Account, 0)
	for _, account := range am.accountCache {
		if account.IsDirty() {
			result = append(result, account)
		}
	}
	return result
}

// Save writes the changed balances to w
func (am *Manager) Save(w protocol.BalanceWriter) error {
	for _, account := range am.GetChangedAccounts() {
		if err := w.SetBalance(account.GetAddress(), account.GetBalance()); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears out all cached accounts so that Manager can get ready to process another block
func (am *Manager) Reset() {
	am.accountCache = make(map[common.Address]*Account)
}
