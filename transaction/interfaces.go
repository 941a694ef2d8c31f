package transaction

import (
	"context"

	"go-unique-sdk/models"
)

type (
	// Call is an opaque, possibly unsigned extrinsic owned by the node client
	Call interface {
		IsSigned() bool
	}

	// CallBuilder constructs unsigned calls for a pallet module and method
	CallBuilder interface {
		NewCall(module, method string, args ...interface{}) (Call, error)
	}

	// Signer produces a signed copy of a call. The call passed in is never modified.
	Signer interface {
		Address() string
		Sign(ctx context.Context, call Call) (Call, error)
	}

	// Node submits calls and resolves block heights. It is shared by many transactions
	// and only used for requests.
	Node interface {
		Submit(ctx context.Context, call Call) (Subscription, error)
		BlockNumber(ctx context.Context, blockHash string) (uint64, error)
	}

	// Subscription delivers status updates of one submitted call in the order the node
	// emits them. Statuses is closed when the node ends the stream.
	Subscription interface {
		Statuses() <-chan models.SubmittableResult
		Err() <-chan error
		Unsubscribe()
	}
)
