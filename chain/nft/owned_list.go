package nft

import (
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
)

// OwnedList is the bounded list of asset ids held by one account. Removing an id moves the
// last id into its place, so the order of the list is not stable.
type OwnedList struct {
	ids      []common.Hash
	capacity int
}

func NewOwnedList(ids []common.Hash, capacity int) *OwnedList {
	list := &OwnedList{ids: make([]common.Hash, len(ids)), capacity: capacity}
	copy(list.ids, ids)
	return list
}

func (l *OwnedList) Len() int {
	return len(l.ids)
}

func (l *OwnedList) IsFull() bool {
	return len(l.ids) >= l.capacity
}

// Ids returns a copy of the ids
func (l *OwnedList) Ids() []common.Hash {
	result := make([]common.Hash, len(l.ids))
	copy(result, l.ids)
	return result
}

func (l *OwnedList) index(id common.Hash) int {
	for i, item := range l.ids {
		if item == id {
			return i
		}
	}
	return -1
}

func (l *OwnedList) Contains(id common.Hash) bool {
	return l.index(id) >= 0
}

// Append adds id to the tail. It fails with ErrOwnerListFull if there is no room left
func (l *OwnedList) Append(id common.Hash) error {
	if l.IsFull() {
		return types.ErrOwnerListFull
	}
	l.ids = append(l.ids, id)
	return nil
}

// Remove swaps the last id into the position of id and shrinks the list. It returns false if id is not in the list
func (l *OwnedList) Remove(id common.Hash) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	last := len(l.ids) - 1
	l.ids[i] = l.ids[last]
	l.ids = l.ids[:last]
	return true
}

// restore replaces the content. Used to undo changes
func (l *OwnedList) restore(ids []common.Hash) {
	l.ids = ids
}
