package nft

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/journal"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/common/merkle"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/LemoFoundationLtd/lemochain-nft/store/protocol"
)

// Manager is the only writer of the asset ledger. It loads assets, owned lists and the counter
// from db on demand, keeps the changes of the current block in memory and records every change
// into the journal so that a failed transaction can be rolled back.
// It will save all changes to a batch when the block's transactions are processed.
type Manager struct {
	db      protocol.AssetReader
	journal *journal.Journal

	// This map holds 'live' assets. A nil value means the asset doesn't exist
	assets map[common.Hash]*types.Asset
	owned  map[common.Address]*OwnedList
	count  uint32
	// false until count is loaded from db
	countLoaded bool

	dirtyAssets map[common.Hash]struct{}
	dirtyOwned  map[common.Address]struct{}
	dirtyCount  bool

	maxOwned int
	maxCount uint32
}

// NewManager creates a Manager with the capacities in params
func NewManager(db protocol.AssetReader, j *journal.Journal) *Manager {
	return NewManagerWithLimits(db, j, params.MaxOwnedAssets, params.MaxAssetCount)
}

func NewManagerWithLimits(db protocol.AssetReader, j *journal.Journal, maxOwned int, maxCount uint32) *Manager {
	if db == nil {
		panic("nft.NewManager is called without a database")
	}
	m := &Manager{
		db:       db,
		journal:  j,
		maxOwned: maxOwned,
		maxCount: maxCount,
	}
	m.Reset()
	return m
}

// Reset drops all cached data and changes. The next access loads data from db again
func (m *Manager) Reset() {
	m.assets = make(map[common.Hash]*types.Asset)
	m.owned = make(map[common.Address]*OwnedList)
	m.count = 0
	m.countLoaded = false
	m.dirtyAssets = make(map[common.Hash]struct{})
	m.dirtyOwned = make(map[common.Address]struct{})
	m.dirtyCount = false
}

func (m *Manager) loadAsset(id common.Hash) *types.Asset {
	if asset, ok := m.assets[id]; ok {
		return asset
	}
	asset, err := m.db.GetAsset(id)
	if err == store.ErrNotExist {
		asset = nil
	} else if err != nil {
		log.Errorf("load asset %s fail: %v", id.Hex(), err)
		panic(err)
	}
	m.assets[id] = asset
	return asset
}

func (m *Manager) loadOwned(owner common.Address) *OwnedList {
	if list, ok := m.owned[owner]; ok {
		return list
	}
	ids, err := m.db.GetOwned(owner)
	if err != nil {
		log.Errorf("load owned assets of %s fail: %v", owner.Hex(), err)
		panic(err)
	}
	list := NewOwnedList(ids, m.maxOwned)
	m.owned[owner] = list
	return list
}

func (m *Manager) loadCount() uint32 {
	if !m.countLoaded {
		count, err := m.db.GetAssetCount()
		if err != nil {
			log.Errorf("load asset count fail: %v", err)
			panic(err)
		}
		m.count = count
		m.countLoaded = true
	}
	return m.count
}

// setAsset replaces the cached asset. The old object is kept untouched for undo.
// The undo also clears the dirty mark if the asset was clean before
func (m *Manager) setAsset(asset *types.Asset) {
	id := asset.Id
	prev := m.assets[id]
	_, wasDirty := m.dirtyAssets[id]
	m.assets[id] = asset
	m.dirtyAssets[id] = struct{}{}
	m.journal.Push(journal.UndoFunc(func() {
		m.assets[id] = prev
		if !wasDirty {
			delete(m.dirtyAssets, id)
		}
	}))
}

func (m *Manager) changeOwned(owner common.Address, change func(list *OwnedList)) {
	list := m.loadOwned(owner)
	prev := list.Ids()
	_, wasDirty := m.dirtyOwned[owner]
	change(list)
	m.dirtyOwned[owner] = struct{}{}
	m.journal.Push(journal.UndoFunc(func() {
		list.restore(prev)
		if !wasDirty {
			delete(m.dirtyOwned, owner)
		}
	}))
}

func (m *Manager) setCount(count uint32) {
	prev, wasDirty := m.count, m.dirtyCount
	m.count = count
	m.dirtyCount = true
	m.journal.Push(journal.UndoFunc(func() {
		m.count = prev
		m.dirtyCount = wasDirty
	}))
}

// Mint creates a new asset owned by owner. Nothing is changed if it fails
func (m *Manager) Mint(owner common.Address, id common.Hash) error {
	if m.loadAsset(id) != nil {
		return types.ErrDuplicateId
	}
	count := m.loadCount()
	if count >= m.maxCount {
		return types.ErrOverflow
	}
	if m.loadOwned(owner).IsFull() {
		return types.ErrOwnerListFull
	}

	m.setAsset(&types.Asset{Id: id, Owner: owner})
	m.changeOwned(owner, func(list *OwnedList) {
		_ = list.Append(id)
	})
	m.setCount(count + 1)
	return nil
}

// CheckTransfer reports whether Transfer would succeed, and returns a copy of the asset if so
func (m *Manager) CheckTransfer(from, to common.Address, id common.Hash) (*types.Asset, error) {
	if from == to {
		return nil, types.ErrTransferToSelf
	}
	asset := m.loadAsset(id)
	if asset == nil {
		return nil, types.ErrAssetNotFound
	}
	if asset.Owner != from {
		return nil, types.ErrNotOwner
	}
	if m.loadOwned(to).IsFull() {
		return nil, types.ErrOwnerListFull
	}
	if !m.loadOwned(from).Contains(id) {
		log.Errorf("asset %s is missing in the owned list of %s", id.Hex(), from.Hex())
		return nil, types.ErrAssetNotFound
	}
	return asset.Clone(), nil
}

// Transfer changes the owner of an asset. The price is kept
func (m *Manager) Transfer(from, to common.Address, id common.Hash) error {
	asset, err := m.CheckTransfer(from, to, id)
	if err != nil {
		return err
	}
	asset.Owner = to
	m.setAsset(asset)
	m.changeOwned(to, func(list *OwnedList) {
		_ = list.Append(id)
	})
	m.changeOwned(from, func(list *OwnedList) {
		list.Remove(id)
	})
	return nil
}

// SetPrice lists the asset at price, or delists it if price is nil
func (m *Manager) SetPrice(owner common.Address, id common.Hash, price *big.Int) error {
	asset := m.loadAsset(id)
	if asset == nil {
		return types.ErrAssetNotFound
	}
	if asset.Owner != owner {
		return types.ErrNotOwner
	}
	if types.PriceEqual(asset.Price, price) {
		return nil
	}
	changed := asset.Clone()
	changed.Price = types.CopyPrice(price)
	m.setAsset(changed)
	return nil
}

// GetAsset returns a copy of the asset, or ErrAssetNotFound
func (m *Manager) GetAsset(id common.Hash) (*types.Asset, error) {
	asset := m.loadAsset(id)
	if asset == nil {
		return nil, types.ErrAssetNotFound
	}
	return asset.Clone(), nil
}

func (m *Manager) GetOwned(owner common.Address) []common.Hash {
	return m.loadOwned(owner).Ids()
}

func (m *Manager) Count() uint32 {
	return m.loadCount()
}

// ChangedAssets returns the assets changed since last reset in id order
func (m *Manager) ChangedAssets() []*types.Asset {
	result := make([]*types.Asset, 0, len(m.dirtyAssets))
	for id := range m.dirtyAssets {
		if asset := m.assets[id]; asset != nil {
			result = append(result, asset.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return bytes.Compare(result[i].Id[:], result[j].Id[:]) < 0
	})
	return result
}

// Root is the merkle root of the changed assets' hashes
func (m *Manager) Root() common.Hash {
	changed := m.ChangedAssets()
	hashes := make([]common.Hash, len(changed))
	for i, asset := range changed {
		hashes[i] = asset.Hash()
	}
	return merkle.New(hashes).Root()
}

// Save writes all changes to the writer. The owned list which becomes empty is removed
func (m *Manager) Save(w protocol.AssetWriter) error {
	for _, asset := range m.ChangedAssets() {
		if err := w.SetAsset(asset); err != nil {
			return err
		}
	}
	for owner := range m.dirtyOwned {
		if err := w.SetOwned(owner, m.owned[owner].Ids()); err != nil {
			return err
		}
	}
	if m.dirtyCount {
		if err := w.SetAssetCount(m.count); err != nil {
			return err
		}
	}
	return nil
}
