package subscribe

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

type Subscription interface {
	Err() <-chan error
	Unsubscribe()
}

// Feed delivers values of one type to every subscribed channel. Send blocks until all
// current subscribers have received the value, so subscribers must keep reading.
type Feed struct {
	mu     sync.Mutex
	subs   []*feedSub
	eType  reflect.Type
	sendMu sync.Mutex
}

var errBadChannel = errors.New("subscribe channel can't be used to send")

type feedTypeError struct {
	got, want reflect.Type
	op        string
}

func (e feedTypeError) Error() string {
	return fmt.Sprintf("event: wrong type in %s got %s, want %s", e.op, e.got.String(), e.want.String())
}

// Subscribe adds a channel to the feed. It panics if the channel can't receive the feed's type.
func (f *Feed) Subscribe(channel interface{}) Subscription {
	chanVal := reflect.ValueOf(channel)
	chanType := chanVal.Type()
	if chanType.Kind() != reflect.Chan || chanType.ChanDir()&reflect.SendDir == 0 {
		panic(errBadChannel)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.checkType(chanType.Elem()) {
		panic(feedTypeError{op: "Subscribe", got: chanType, want: reflect.ChanOf(reflect.SendDir, f.eType)})
	}
	sub := &feedSub{feed: f, channel: chanVal, err: make(chan error, 1)}
	f.subs = append(f.subs, sub)
	return sub
}

func (f *Feed) checkType(t reflect.Type) bool {
	if f.eType == nil {
		f.eType = t
		return true
	}
	return f.eType == t
}

func (f *Feed) remove(sub *feedSub) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subs {
		if s == sub {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

// Send delivers value to all subscribed channels and returns the number of them.
func (f *Feed) Send(value interface{}) (nsent int) {
	rValue := reflect.ValueOf(value)

	f.sendMu.Lock()
	defer f.sendMu.Unlock()

	f.mu.Lock()
	if !f.checkType(rValue.Type()) {
		f.mu.Unlock()
		panic(feedTypeError{op: "Send", got: rValue.Type(), want: f.eType})
	}
	subs := make([]*feedSub, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, sub := range subs {
		if sub.deliver(rValue) {
			nsent++
		}
	}
	return nsent
}

// SubscriberCount returns the number of live subscriptions.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

type feedSub struct {
	feed    *Feed
	channel reflect.Value
	errOnce sync.Once
	err     chan error
	quit    chan struct{}
	quitMu  sync.Mutex
}

// deliver blocks until the channel accepts the value or the subscription is cancelled.
func (sub *feedSub) deliver(v reflect.Value) bool {
	quit := sub.quitChan()
	cases := []reflect.SelectCase{
		{Dir: reflect.SelectSend, Chan: sub.channel, Send: v},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(quit)},
	}
	chosen, _, _ := reflect.Select(cases)
	return chosen == 0
}

func (sub *feedSub) quitChan() chan struct{} {
	sub.quitMu.Lock()
	defer sub.quitMu.Unlock()
	if sub.quit == nil {
		sub.quit = make(chan struct{})
	}
	return sub.quit
}

func (sub *feedSub) Err() <-chan error {
	return sub.err
}

func (sub *feedSub) Unsubscribe() {
	sub.errOnce.Do(func() {
		sub.feed.remove(sub)
		close(sub.quitChan())
		close(sub.err)
	})
}
