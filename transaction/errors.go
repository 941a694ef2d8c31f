package transaction

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrSigning         = errors.New("signing failed")
	ErrAlreadySigned   = errors.New("call is already signed")
	ErrUnsupportedCall = errors.New("call cannot be signed")
	ErrNoSigner        = errors.New("no signer")

	ErrSubmission       = errors.New("submission failed")
	ErrAlreadySubmitted = errors.New("call was already submitted")
	ErrRejected         = errors.New("call rejected by node")
	ErrStreamClosed     = errors.New("status stream closed before inclusion")
	ErrBlockLookup      = errors.New("block lookup failed")
)

// SigningError is returned when a call cannot be signed. Reason is one of the signing
// sentinels, Err the cause reported by the signer if any.
type SigningError struct {
	Call   string
	Signer string
	Reason error
	Err    error
}

func (e *SigningError) Error() string {
	msg := fmt.Sprintf("sign %s", e.Call)
	if e.Signer != "" {
		msg += " with " + e.Signer
	}
	msg += ": " + e.Reason.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SigningError) Unwrap() error { return e.Err }

func (e *SigningError) Is(target error) bool {
	return target == ErrSigning || target == e.Reason
}

// SubmissionError is returned when the node refuses a call before inclusion
type SubmissionError struct {
	Call   string
	TxHash string
	Reason error
	Err    error
}

func (e *SubmissionError) Error() string {
	msg := fmt.Sprintf("submit %s", e.Call)
	if e.TxHash != "" {
		msg += " (" + e.TxHash + ")"
	}
	msg += ": " + e.Reason.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmission || target == e.Reason
}
