package substrate

import (
	"context"
	"sync"

	"go-unique-sdk/models"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

// statusSource is satisfied by the author_submitAndWatchExtrinsic subscription
type statusSource interface {
	Chan() <-chan types.ExtrinsicStatus
	Err() <-chan error
	Unsubscribe()
}

type inclusionResolver interface {
	inclusion(ctx context.Context, blockHash, txHash string) (int, []models.EventRecord, error)
}

// subscription translates node statuses into SubmittableResults. Inclusion statuses are
// completed with the transaction index and the events of the extrinsic before delivery.
type subscription struct {
	source   statusSource
	resolver inclusionResolver
	txHash   string

	statuses chan models.SubmittableResult
	errs     chan error

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

func watch(source statusSource, resolver inclusionResolver, txHash string) *subscription {
	ctx, cancel := context.WithCancel(context.Background())
	s := &subscription{
		source:   source,
		resolver: resolver,
		txHash:   txHash,
		statuses: make(chan models.SubmittableResult),
		errs:     make(chan error, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *subscription) Statuses() <-chan models.SubmittableResult { return s.statuses }

func (s *subscription) Err() <-chan error { return s.errs }

// Unsubscribe stops the node subscription and waits for the translation goroutine
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		s.source.Unsubscribe()
	})
	<-s.done
}

func (s *subscription) run() {
	defer close(s.done)
	defer close(s.statuses)

	source, sourceErrs := s.source.Chan(), s.source.Err()
	for {
		select {
		case <-s.ctx.Done():
			return
		case err, ok := <-sourceErrs:
			if !ok {
				sourceErrs = nil
				continue
			}
			if err == nil {
				continue
			}
			s.errs <- err
			return
		case status, ok := <-source:
			if !ok {
				return
			}
			result := translateStatus(status, s.txHash)
			if result.IsIncluded() {
				txIndex, events, err := s.resolver.inclusion(s.ctx, result.BlockHash, s.txHash)
				if err != nil {
					if s.ctx.Err() == nil {
						s.errs <- errors.Wrapf(err, "resolve inclusion in %s", result.BlockHash)
					}
					return
				}
				result.TxIndex = txIndex
				result.Events = events
			}
			select {
			case s.statuses <- result:
			case <-s.ctx.Done():
				return
			}
		}
	}
}

func translateStatus(status types.ExtrinsicStatus, txHash string) models.SubmittableResult {
	result := models.SubmittableResult{TxHash: txHash, TxIndex: -1}
	switch {
	case status.IsFuture:
		result.Status = models.StatusFuture
	case status.IsReady:
		result.Status = models.StatusReady
	case status.IsBroadcast:
		result.Status = models.StatusBroadcast
	case status.IsInBlock:
		result.Status = models.StatusInBlock
		result.BlockHash = status.AsInBlock.Hex()
	case status.IsRetracted:
		result.Status = models.StatusRetracted
		result.BlockHash = status.AsRetracted.Hex()
	case status.IsFinalityTimeout:
		result.Status = models.StatusFinalityTimeout
		result.BlockHash = status.AsFinalityTimeout.Hex()
	case status.IsFinalized:
		result.Status = models.StatusFinalized
		result.BlockHash = status.AsFinalized.Hex()
	case status.IsUsurped:
		result.Status = models.StatusUsurped
		result.BlockHash = status.AsUsurped.Hex()
	case status.IsDropped:
		result.Status = models.StatusDropped
	case status.IsInvalid:
		result.Status = models.StatusInvalid
	}
	return result
}
