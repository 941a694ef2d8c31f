package transaction

import (
	"context"
	"fmt"
	"reflect"

	"go-unique-sdk/internal/messages"
	"go-unique-sdk/models"

	"github.com/pkg/errors"
)

type (
	// Result is implemented by every result type through the embedded models.ExtrinsicResult
	Result interface {
		Base() models.ExtrinsicResult
	}

	// Extractor turns the terminal status and the normalized base result into the call
	// specific result. It decides IsSuccess, usually by scanning status.Events.
	Extractor[R Result] func(status models.SubmittableResult, base models.ExtrinsicResult) R

	Options struct {
		// GetBlockNumber resolves the block height after inclusion, at the cost of one
		// extra round trip to the node
		GetBlockNumber bool
		Observer       Observer
	}

	// Transaction holds one call through signing, submission and result extraction.
	// Values are immutable: Sign returns a new value and the receiver keeps the unsigned call.
	Transaction[P any, R Result] struct {
		name    string
		node    Node
		call    Call
		params  P
		extract Extractor[R]
		options Options
		guard   *sendGuard
	}
)

// New wraps a freshly built call. name identifies the call type in logs and observers,
// e.g. "unique.addCollectionAdmin".
func New[P any, R Result](node Node, name string, call Call, params P, extract Extractor[R], options Options) Transaction[P, R] {
	if options.Observer == nil {
		options.Observer = nopObserver{}
	}
	return Transaction[P, R]{
		name:    name,
		node:    node,
		call:    call,
		params:  params,
		extract: extract,
		options: options,
		guard:   &sendGuard{},
	}
}

// NewBase wraps a call whose result needs no call specific extraction
func NewBase[P any](node Node, name string, call Call, params P, options Options) Transaction[P, models.TransactionResult] {
	return New[P, models.TransactionResult](node, name, call, params, BaseExtractor, options)
}

// BaseExtractor keeps the base result, IsSuccess stays true, and attaches the raw status
func BaseExtractor(status models.SubmittableResult, base models.ExtrinsicResult) models.TransactionResult {
	return models.TransactionResult{ExtrinsicResult: base, TxResult: status}
}

func (tx Transaction[P, R]) Name() string { return tx.name }

func (tx Transaction[P, R]) Params() P { return tx.params }

// RawTx returns the underlying call for inspection or manual submission
func (tx Transaction[P, R]) RawTx() Call { return tx.call }

func (tx Transaction[P, R]) IsSigned() bool {
	return !isNilCall(tx.call) && tx.call.IsSigned()
}

// isNilCall also catches a nil pointer stored in the Call interface
func isNilCall(call Call) bool {
	if call == nil {
		return true
	}
	v := reflect.ValueOf(call)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// State reports the lifecycle state. Once any value derived from the same New call was
// sent, every such value reports the submission state.
func (tx Transaction[P, R]) State() State {
	if tx.guard != nil {
		if s := tx.guard.load(); s != StateCreated {
			return s
		}
	}
	if tx.IsSigned() {
		return StateSigned
	}
	return StateCreated
}

// Sign returns a copy of the transaction holding the call signed by signer. Signing an
// already signed or already submitted call fails instead of replacing the signature.
func (tx Transaction[P, R]) Sign(ctx context.Context, signer Signer) (Transaction[P, R], error) {
	if signer == nil {
		return tx, &SigningError{Call: tx.name, Reason: ErrNoSigner}
	}
	address := signer.Address()

	switch {
	case isNilCall(tx.call):
		return tx, &SigningError{Call: tx.name, Signer: address, Reason: ErrUnsupportedCall}
	case tx.guard == nil || tx.guard.load() != StateCreated:
		return tx, &SigningError{Call: tx.name, Signer: address, Reason: ErrAlreadySubmitted}
	case tx.IsSigned():
		return tx, &SigningError{Call: tx.name, Signer: address, Reason: ErrAlreadySigned}
	}

	messages.NewSDKMessage(
		messages.LOG_LEVEL_DEBUG,
		"",
		nil,
		messages.TX_SIGNING,
		tx.name,
		address,
	).ConsoleLog()

	signed, err := safeSign(ctx, signer, tx.call)
	if err != nil {
		if signingErr, ok := err.(*SigningError); ok {
			return tx, signingErr
		}
		return tx, &SigningError{Call: tx.name, Signer: address, Reason: ErrSigning, Err: err}
	}
	if isNilCall(signed) || !signed.IsSigned() {
		return tx, &SigningError{Call: tx.name, Signer: address, Reason: ErrSigning, Err: errors.New("signer returned an unsigned call")}
	}

	messages.NewSDKMessage(
		messages.LOG_LEVEL_DEBUG,
		"",
		nil,
		messages.TX_SIGNED,
		tx.name,
	).ConsoleLog()

	next := tx
	next.call = signed
	return next, nil
}

// safeSign shields the caller from signers that panic on malformed payloads
func safeSign(ctx context.Context, signer Signer, call Call) (signed Call, err error) {
	defer func() {
		if r := recover(); r != nil {
			signed = nil
			err = fmt.Errorf("signer panicked: %v", r)
		}
	}()
	return signer.Sign(ctx, call)
}

// Send submits the call and waits until the node reports it in a block. Finalization is
// not awaited. Cancelling ctx abandons the wait but does not retract the submission.
func (tx Transaction[P, R]) Send(ctx context.Context) (R, error) {
	var zero R

	if tx.guard == nil || tx.node == nil || tx.extract == nil {
		return zero, &SubmissionError{Call: tx.name, Reason: ErrSubmission, Err: errors.New("transaction was not built with New")}
	}
	if !tx.guard.begin() {
		return zero, &SubmissionError{Call: tx.name, Reason: ErrAlreadySubmitted}
	}

	messages.NewSDKMessage(
		messages.LOG_LEVEL_INFO,
		"",
		nil,
		messages.TX_SUBMITTING,
		tx.name,
	).ConsoleLog()
	tx.options.Observer.OnSubmitted(tx.name)

	sub, err := tx.node.Submit(ctx, tx.call)
	if err != nil {
		return zero, tx.reject(&SubmissionError{Call: tx.name, Reason: ErrRejected, Err: err})
	}
	defer sub.Unsubscribe()

	statuses := sub.Statuses()
	errs := sub.Err()
	txHash := ""

	for {
		select {
		case <-ctx.Done():
			return zero, errors.Wrapf(ctx.Err(), "waiting for %s", tx.name)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err == nil {
				continue
			}
			return zero, tx.reject(&SubmissionError{Call: tx.name, TxHash: txHash, Reason: ErrRejected, Err: err})

		case status, ok := <-statuses:
			if !ok {
				// the watcher reports its failure before closing the stream
				select {
				case err, ok := <-errs:
					if ok && err != nil {
						return zero, tx.reject(&SubmissionError{Call: tx.name, TxHash: txHash, Reason: ErrRejected, Err: err})
					}
				default:
				}
				return zero, tx.reject(&SubmissionError{Call: tx.name, TxHash: txHash, Reason: ErrStreamClosed})
			}
			if status.TxHash != "" {
				txHash = status.TxHash
			}

			messages.NewSDKMessage(
				messages.LOG_LEVEL_DEBUG,
				"",
				nil,
				messages.TX_STATUS,
				tx.name,
				status.Status,
			).ConsoleLog()

			if status.IsRejected() {
				return zero, tx.reject(&SubmissionError{
					Call:   tx.name,
					TxHash: txHash,
					Reason: ErrRejected,
					Err:    fmt.Errorf("status %s", status.Status),
				})
			}
			if !status.IsIncluded() {
				continue
			}

			tx.guard.set(StateIncluded)
			messages.NewSDKMessage(
				messages.LOG_LEVEL_INFO,
				"",
				nil,
				messages.TX_INCLUDED,
				tx.name,
				status.BlockHash,
				status.TxIndex,
			).ConsoleLog()
			tx.options.Observer.OnIncluded(tx.name, status)

			return tx.processResult(ctx, status)
		}
	}
}

// SignAndSend signs with signer and sends the signed call
func (tx Transaction[P, R]) SignAndSend(ctx context.Context, signer Signer) (R, error) {
	signed, err := tx.Sign(ctx, signer)
	if err != nil {
		var zero R
		return zero, err
	}
	return signed.Send(ctx)
}

func (tx Transaction[P, R]) processResult(ctx context.Context, status models.SubmittableResult) (R, error) {
	var zero R

	base, err := tx.baseResult(ctx, status)
	if err != nil {
		return zero, tx.reject(err)
	}

	result := tx.extract(status, base)
	tx.guard.set(StateResultReady)

	messages.NewSDKMessage(
		messages.LOG_LEVEL_INFO,
		"",
		nil,
		messages.TX_RESULT,
		tx.name,
		result.Base().IsSuccess,
	).ConsoleLog()
	tx.options.Observer.OnResult(tx.name, result.Base())

	return result, nil
}

// baseResult reads the normalized fields from the inclusion status
func (tx Transaction[P, R]) baseResult(ctx context.Context, status models.SubmittableResult) (models.ExtrinsicResult, error) {
	base := models.ExtrinsicResult{
		IsSuccess: true,
		BlockHash: status.BlockHash,
		TxIndex:   status.TxIndex,
		TxHash:    status.TxHash,
	}

	if tx.options.GetBlockNumber && status.BlockHash != "" {
		number, err := tx.node.BlockNumber(ctx, status.BlockHash)
		if err != nil {
			return base, &SubmissionError{Call: tx.name, TxHash: status.TxHash, Reason: ErrBlockLookup, Err: err}
		}
		messages.NewSDKMessage(
			messages.LOG_LEVEL_DEBUG,
			"",
			nil,
			messages.TX_BLOCK_NUMBER,
			status.BlockHash,
			number,
		).ConsoleLog()
		base.BlockNumber = &number
	}

	return base, nil
}

func (tx Transaction[P, R]) reject(err error) error {
	tx.guard.set(StateRejected)
	messages.NewSDKMessage(
		messages.LOG_LEVEL_WARNING,
		messages.GetComponent(tx.reject),
		err,
		messages.TX_REJECTED,
		tx.name,
	).ConsoleLog()
	tx.options.Observer.OnRejected(tx.name, err)
	return err
}
