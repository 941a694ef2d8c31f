package transaction

import (
	"context"
	"io"
	"testing"

	"go-unique-sdk/internal/messages"
	"go-unique-sdk/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	messages.SetOutput(io.Discard)
	goleak.VerifyTestMain(m)
}

type adminParams struct {
	CollectionID uint32
	Address      string
}

type adminResult struct {
	models.ExtrinsicResult
	CollectionID uint32
}

func adminExtractor(status models.SubmittableResult, base models.ExtrinsicResult) adminResult {
	data, ok := FindEventData(status.Events, "unique", "CollectionAdminAdded")
	base.IsSuccess = ok && len(data) > 0 && data[0] == "7"
	return adminResult{ExtrinsicResult: base, CollectionID: 7}
}

var (
	alice = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"

	ready   = models.SubmittableResult{Status: models.StatusReady, TxHash: "0x01"}
	inBlock = models.SubmittableResult{
		Status:    models.StatusInBlock,
		BlockHash: "0xabc",
		TxHash:    "0x01",
		TxIndex:   2,
		Events: []models.EventRecord{
			{Module: "Unique", Method: "CollectionAdminAdded", Data: []string{"7", alice}},
		},
	}
)

func newAdminTx(node Node, opts Options) Transaction[adminParams, adminResult] {
	return New[adminParams, adminResult](
		node,
		"unique.addCollectionAdmin",
		&fakeCall{method: "add_collection_admin"},
		adminParams{CollectionID: 7, Address: alice},
		adminExtractor,
		opts,
	)
}

func TestSignAndSendWithoutBlockNumber(t *testing.T) {
	sub := newFakeSubscription(ready, inBlock)
	node := &fakeNode{sub: sub}
	tx := newAdminTx(node, Options{})

	result, err := tx.SignAndSend(context.Background(), &fakeSigner{address: alice})
	require.NoError(t, err)

	assert.True(t, result.IsSuccess)
	assert.Equal(t, "0xabc", result.BlockHash)
	assert.Equal(t, 2, result.TxIndex)
	assert.Equal(t, "0x01", result.TxHash)
	assert.Nil(t, result.BlockNumber)
	assert.Equal(t, uint32(7), result.CollectionID)
	assert.True(t, sub.unsubscribed())
	assert.Equal(t, StateResultReady, tx.State())

	require.Len(t, node.submitted, 1)
	assert.True(t, node.submitted[0].IsSigned())
}

func TestSendResolvesBlockNumber(t *testing.T) {
	node := &fakeNode{
		sub:     newFakeSubscription(ready, inBlock),
		numbers: map[string]uint64{"0xabc": 42},
	}
	tx := newAdminTx(node, Options{GetBlockNumber: true})

	result, err := tx.SignAndSend(context.Background(), &fakeSigner{address: alice})
	require.NoError(t, err)
	require.NotNil(t, result.BlockNumber)
	assert.Equal(t, uint64(42), *result.BlockNumber)
}

func TestSendBlockLookupFailure(t *testing.T) {
	node := &fakeNode{
		sub:       newFakeSubscription(inBlock),
		lookupErr: errors.New("unknown block"),
	}
	tx := newAdminTx(node, Options{GetBlockNumber: true})

	_, err := tx.SignAndSend(context.Background(), &fakeSigner{address: alice})
	assert.ErrorIs(t, err, ErrSubmission)
	assert.ErrorIs(t, err, ErrBlockLookup)
	assert.Equal(t, StateRejected, tx.State())
}

func TestFinalizedWithoutInBlockCountsAsInclusion(t *testing.T) {
	finalized := inBlock
	finalized.Status = models.StatusFinalized
	node := &fakeNode{sub: newFakeSubscription(ready, finalized)}

	result, err := newAdminTx(node, Options{}).Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xabc", result.BlockHash)
}

func TestSoftFailureIsNotAnError(t *testing.T) {
	noEvent := inBlock
	noEvent.Events = nil
	node := &fakeNode{sub: newFakeSubscription(noEvent)}

	result, err := newAdminTx(node, Options{}).Send(context.Background())
	require.NoError(t, err)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, "0xabc", result.BlockHash)
}

func TestSendRejectedStatuses(t *testing.T) {
	for _, status := range []models.TxStatus{models.StatusDropped, models.StatusInvalid, models.StatusUsurped} {
		t.Run(string(status), func(t *testing.T) {
			sub := newFakeSubscription(ready, models.SubmittableResult{Status: status, TxHash: "0x01"})
			tx := newAdminTx(&fakeNode{sub: sub}, Options{})

			_, err := tx.Send(context.Background())
			assert.ErrorIs(t, err, ErrSubmission)
			assert.ErrorIs(t, err, ErrRejected)

			var submissionErr *SubmissionError
			require.ErrorAs(t, err, &submissionErr)
			assert.Equal(t, "0x01", submissionErr.TxHash)
			assert.Equal(t, StateRejected, tx.State())
			assert.True(t, sub.unsubscribed())
		})
	}
}

func TestSendSubmitError(t *testing.T) {
	cause := errors.New("1010: Invalid Transaction")
	tx := newAdminTx(&fakeNode{submitErr: cause}, Options{})

	_, err := tx.Send(context.Background())
	assert.ErrorIs(t, err, ErrSubmission)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, StateRejected, tx.State())
}

func TestSendStreamError(t *testing.T) {
	sub := newFakeSubscription(ready)
	cause := errors.New("connection reset")
	sub.errs <- cause
	close(sub.errs)

	_, err := newAdminTx(&fakeNode{sub: sub}, Options{}).Send(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, cause)
}

func TestSendKeepsErrorReportedBeforeStreamClose(t *testing.T) {
	cause := errors.New("resolve inclusion in 0xblock: extrinsic not found")

	for i := 0; i < 200; i++ {
		sub := newFakeSubscription(ready)
		sub.errs <- cause
		close(sub.statuses)

		_, err := newAdminTx(&fakeNode{sub: sub}, Options{}).Send(context.Background())
		require.ErrorIs(t, err, ErrRejected)
		require.ErrorIs(t, err, cause)
		require.NotErrorIs(t, err, ErrStreamClosed)
	}
}

func TestSendStreamClosedBeforeInclusion(t *testing.T) {
	sub := newFakeSubscription(ready)
	close(sub.statuses)
	close(sub.errs)

	_, err := newAdminTx(&fakeNode{sub: sub}, Options{}).Send(context.Background())
	assert.ErrorIs(t, err, ErrStreamClosed)
}

func TestSendIsAtMostOnce(t *testing.T) {
	node := &fakeNode{sub: newFakeSubscription(inBlock)}
	tx := newAdminTx(node, Options{})
	signed, err := tx.Sign(context.Background(), &fakeSigner{address: alice})
	require.NoError(t, err)

	_, err = signed.Send(context.Background())
	require.NoError(t, err)

	_, err = signed.Send(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// the unsigned original shares the guard
	_, err = tx.Send(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	_, err = tx.Sign(context.Background(), &fakeSigner{address: alice})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	assert.Len(t, node.submitted, 1)
}

func TestSignReturnsNewValue(t *testing.T) {
	tx := newAdminTx(&fakeNode{}, Options{})
	signer := &fakeSigner{address: alice}

	signed, err := tx.Sign(context.Background(), signer)
	require.NoError(t, err)

	assert.False(t, tx.IsSigned())
	assert.Equal(t, StateCreated, tx.State())
	assert.True(t, signed.IsSigned())
	assert.Equal(t, StateSigned, signed.State())
	assert.Equal(t, tx.Params(), signed.Params())
	assert.Equal(t, "unique.addCollectionAdmin", signed.Name())
	assert.Equal(t, alice, signed.RawTx().(*fakeCall).signer)
}

func TestSignTwiceFails(t *testing.T) {
	signed, err := newAdminTx(&fakeNode{}, Options{}).Sign(context.Background(), &fakeSigner{address: alice})
	require.NoError(t, err)

	other := &fakeSigner{address: "other"}
	again, err := signed.Sign(context.Background(), other)
	assert.ErrorIs(t, err, ErrSigning)
	assert.ErrorIs(t, err, ErrAlreadySigned)
	assert.Zero(t, other.calls)
	assert.Equal(t, alice, again.RawTx().(*fakeCall).signer)
}

func TestSignErrors(t *testing.T) {
	cause := errors.New("locked keystore")

	tests := []struct {
		name   string
		tx     Transaction[adminParams, adminResult]
		signer Signer
		reason error
	}{
		{
			name:   "no signer",
			tx:     newAdminTx(&fakeNode{}, Options{}),
			signer: nil,
			reason: ErrNoSigner,
		},
		{
			name:   "nil call",
			tx:     New[adminParams, adminResult](&fakeNode{}, "unique.addCollectionAdmin", nil, adminParams{}, adminExtractor, Options{}),
			signer: &fakeSigner{address: alice},
			reason: ErrUnsupportedCall,
		},
		{
			name:   "typed nil call",
			tx:     New[adminParams, adminResult](&fakeNode{}, "unique.addCollectionAdmin", (*fakeCall)(nil), adminParams{}, adminExtractor, Options{}),
			signer: &fakeSigner{address: alice},
			reason: ErrUnsupportedCall,
		},
		{
			name:   "signer returns typed nil",
			tx:     newAdminTx(&fakeNode{}, Options{}),
			signer: &fakeSigner{address: alice, returnsNil: true},
			reason: ErrSigning,
		},
		{
			name:   "signer failure",
			tx:     newAdminTx(&fakeNode{}, Options{}),
			signer: &fakeSigner{address: alice, err: cause},
			reason: cause,
		},
		{
			name:   "signer panic",
			tx:     newAdminTx(&fakeNode{}, Options{}),
			signer: &fakeSigner{address: alice, panics: true},
			reason: ErrSigning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = tt.tx.Sign(context.Background(), tt.signer)
			})
			assert.False(t, tt.tx.IsSigned())
			var signingErr *SigningError
			require.ErrorAs(t, err, &signingErr)
			assert.ErrorIs(t, err, ErrSigning)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
}

func TestSignAndSendDoesNotSubmitOnSigningError(t *testing.T) {
	node := &fakeNode{sub: newFakeSubscription(inBlock)}
	_, err := newAdminTx(node, Options{}).SignAndSend(context.Background(), &fakeSigner{address: alice, err: errors.New("denied")})
	assert.ErrorIs(t, err, ErrSigning)
	assert.Empty(t, node.submitted)
}

func TestSendContextCancelled(t *testing.T) {
	sub := newFakeSubscription(ready)
	tx := newAdminTx(&fakeNode{sub: sub}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tx.Send(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateSubmitted, tx.State())
	assert.True(t, sub.unsubscribed())
}

func TestNewBaseKeepsRawStatus(t *testing.T) {
	node := &fakeNode{sub: newFakeSubscription(inBlock)}
	tx := NewBase(node, "system.remark", &fakeCall{method: "remark"}, "hello", Options{})

	result, err := tx.Send(context.Background())
	require.NoError(t, err)
	assert.True(t, result.IsSuccess)
	assert.Equal(t, inBlock, result.TxResult)
	assert.Equal(t, result.ExtrinsicResult, result.Base())
}

func TestObserverNotifications(t *testing.T) {
	observer := &recordingObserver{}
	node := &fakeNode{sub: newFakeSubscription(ready, inBlock)}

	_, err := newAdminTx(node, Options{Observer: Observers{observer}}).Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"submitted unique.addCollectionAdmin",
		"included unique.addCollectionAdmin 0xabc",
		"result unique.addCollectionAdmin",
	}, observer.events)

	rejected := &recordingObserver{}
	_, err = newAdminTx(&fakeNode{submitErr: errors.New("bad")}, Options{Observer: rejected}).Send(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{
		"submitted unique.addCollectionAdmin",
		"rejected unique.addCollectionAdmin",
	}, rejected.events)
}

func TestFindEventData(t *testing.T) {
	events := []models.EventRecord{
		{Module: "System", Method: "ExtrinsicSuccess"},
		{Module: "Unique", Method: "CollectionAdminAdded", Data: []string{"1"}},
		{Module: "unique", Method: "CollectionAdminAdded", Data: []string{"2"}},
	}

	data, ok := FindEventData(events, "unique", "CollectionAdminAdded")
	assert.True(t, ok)
	assert.Equal(t, []string{"1"}, data)

	_, ok = FindEventData(events, "unique", "CollectionAdminRemoved")
	assert.False(t, ok)
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateResultReady.Terminal())
	assert.True(t, StateRejected.Terminal())
	assert.False(t, StateIncluded.Terminal())
	assert.Equal(t, "SUBMITTED", StateSubmitted.String())
}
