package transaction

import "go-unique-sdk/models"

// Observer is notified of lifecycle transitions. Implementations must not block.
type Observer interface {
	OnSubmitted(call string)
	OnIncluded(call string, status models.SubmittableResult)
	OnResult(call string, result models.ExtrinsicResult)
	OnRejected(call string, err error)
}

// Observers fans out notifications to every observer in order
type Observers []Observer

func (o Observers) OnSubmitted(call string) {
	for _, observer := range o {
		observer.OnSubmitted(call)
	}
}

func (o Observers) OnIncluded(call string, status models.SubmittableResult) {
	for _, observer := range o {
		observer.OnIncluded(call, status)
	}
}

func (o Observers) OnResult(call string, result models.ExtrinsicResult) {
	for _, observer := range o {
		observer.OnResult(call, result)
	}
}

func (o Observers) OnRejected(call string, err error) {
	for _, observer := range o {
		observer.OnRejected(call, err)
	}
}

type nopObserver struct{}

func (nopObserver) OnSubmitted(string) {}
func (nopObserver) OnIncluded(string, models.SubmittableResult) {}
func (nopObserver) OnResult(string, models.ExtrinsicResult) {}
func (nopObserver) OnRejected(string, error) {}
