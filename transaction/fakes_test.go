package transaction

import (
	"context"
	"sync"

	"go-unique-sdk/models"
)

type fakeCall struct {
	method string
	signer string
}

func (c *fakeCall) IsSigned() bool { return c.signer != "" }

type fakeSigner struct {
	address    string
	err        error
	panics     bool
	returnsNil bool
	calls      int
}

func (s *fakeSigner) Address() string { return s.address }

func (s *fakeSigner) Sign(_ context.Context, call Call) (Call, error) {
	s.calls++
	if s.panics {
		panic("bad payload")
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.returnsNil {
		return (*fakeCall)(nil), nil
	}
	signed := *call.(*fakeCall)
	signed.signer = s.address
	return &signed, nil
}

type fakeSubscription struct {
	statuses chan models.SubmittableResult
	errs     chan error
	once     sync.Once
	done     chan struct{}
}

func newFakeSubscription(statuses ...models.SubmittableResult) *fakeSubscription {
	sub := &fakeSubscription{
		statuses: make(chan models.SubmittableResult, len(statuses)+1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	for _, status := range statuses {
		sub.statuses <- status
	}
	return sub
}

func (s *fakeSubscription) Statuses() <-chan models.SubmittableResult { return s.statuses }
func (s *fakeSubscription) Err() <-chan error { return s.errs }
func (s *fakeSubscription) Unsubscribe() { s.once.Do(func() { close(s.done) }) }

func (s *fakeSubscription) unsubscribed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

type fakeNode struct {
	mu        sync.Mutex
	sub       *fakeSubscription
	submitErr error
	submitted []Call
	numbers   map[string]uint64
	lookupErr error
}

func (n *fakeNode) Submit(_ context.Context, call Call) (Subscription, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, call)
	if n.submitErr != nil {
		return nil, n.submitErr
	}
	return n.sub, nil
}

func (n *fakeNode) BlockNumber(_ context.Context, blockHash string) (uint64, error) {
	if n.lookupErr != nil {
		return 0, n.lookupErr
	}
	return n.numbers[blockHash], nil
}

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) OnSubmitted(call string) {
	o.events = append(o.events, "submitted "+call)
}

func (o *recordingObserver) OnIncluded(call string, status models.SubmittableResult) {
	o.events = append(o.events, "included "+call+" "+status.BlockHash)
}

func (o *recordingObserver) OnResult(call string, result models.ExtrinsicResult) {
	o.events = append(o.events, "result "+call)
}

func (o *recordingObserver) OnRejected(call string, err error) {
	o.events = append(o.events, "rejected "+call)
}
