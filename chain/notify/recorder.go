package notify

import (
	"github.com/LemoFoundationLtd/lemochain-nft/chain/journal"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/common/subscribe"
	"github.com/LemoFoundationLtd/lemochain-nft/metrics"
)

var publishMeter = metrics.NewMeter(metrics.EventPublish_meterName)

// Recorder collects the events of the block being processed. Events of a reverted transaction are
// dropped together with its other changes. The collected events are published only after the block
// is committed.
type Recorder struct {
	journal *journal.Journal
	events  []*types.Event
	txHash  common.Hash
	feed    subscribe.Feed
}

func NewRecorder(j *journal.Journal) *Recorder {
	return &Recorder{
		journal: j,
		events:  make([]*types.Event, 0),
	}
}

// SetTxContext sets the transaction which the following events belong to
func (r *Recorder) SetTxContext(txHash common.Hash) {
	r.txHash = txHash
}

// Emit records an event of current transaction
func (r *Recorder) Emit(event *types.Event) {
	event.TxHash = r.txHash
	r.events = append(r.events, event)
	size := len(r.events) - 1
	r.journal.Push(journal.UndoFunc(func() { r.events = r.events[:size] }))
}

// Events returns all events since last reset
func (r *Recorder) Events() []*types.Event {
	return r.events[:]
}

// Subscribe registers a channel which receives the events of every committed block
func (r *Recorder) Subscribe(ch chan<- []*types.Event) subscribe.Subscription {
	return r.feed.Subscribe(ch)
}

// Publish writes the events to the event log and sends them to subscribers, then forgets them.
// It blocks until all subscribers have received the events
func (r *Recorder) Publish() int {
	events := r.events
	r.Reset()
	for _, event := range events {
		log.Event(log.AssetEvent, string(event.Type), event.LogContext()...)
	}
	if len(events) == 0 {
		return 0
	}
	publishMeter.Mark(int64(len(events)))
	return r.feed.Send(events)
}

// Reset drops all recorded events
func (r *Recorder) Reset() {
	r.events = make([]*types.Event, 0)
	r.txHash = common.Hash{}
}
