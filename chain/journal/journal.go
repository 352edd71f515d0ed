package journal

import (
	"errors"
	"sort"

	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
)

var (
	ErrRevisionNotExist = errors.New("revision cannot be reverted")
	ErrSnapshotIsBroken = errors.New("the snapshot is broken")
)

// Entry is a change which knows how to undo itself
type Entry interface {
	Undo()
}

// UndoFunc adapts a closure to Entry
type UndoFunc func()

func (f UndoFunc) Undo() { f() }

type revision struct {
	id           int
	journalIndex int
}

// Journal records the changes made during a block's transaction execution so that any suffix
// of them can be rolled back.
type Journal struct {
	entries        []Entry
	validRevisions []revision
	nextRevisionId int
}

func New() *Journal {
	return &Journal{entries: make([]Entry, 0)}
}

// Push appends a change. It must be called after the change is applied
func (j *Journal) Push(entry Entry) {
	j.entries = append(j.entries, entry)
}

// Len returns the count of recorded changes
func (j *Journal) Len() int {
	return len(j.entries)
}

// Snapshot returns an identifier for the current revision of the journal.
func (j *Journal) Snapshot() int {
	id := j.nextRevisionId
	j.nextRevisionId++
	j.validRevisions = append(j.validRevisions, revision{id, len(j.entries)})
	return id
}

// RevertToSnapshot undoes all changes made since the given revision.
func (j *Journal) RevertToSnapshot(revid int) {
	// Find the snapshot in the stack of valid snapshots.
	idx := sort.Search(len(j.validRevisions), func(i int) bool {
		return j.validRevisions[i].id >= revid
	})
	if idx == len(j.validRevisions) || j.validRevisions[idx].id != revid {
		log.Errorf("revision id %v cannot be reverted", revid)
		panic(ErrRevisionNotExist)
	}
	snapshot := j.validRevisions[idx].journalIndex
	if snapshot > len(j.entries) {
		panic(ErrSnapshotIsBroken)
	}

	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].Undo()
	}
	j.entries = j.entries[:snapshot]

	// Remove invalidated snapshots from the stack.
	j.validRevisions = j.validRevisions[:idx]
}

// Clear forgets all changes and revisions. The changes are kept, only the ability to undo them is lost
func (j *Journal) Clear() {
	j.entries = make([]Entry, 0)
	j.validRevisions = j.validRevisions[:0]
	j.nextRevisionId = 0
}
