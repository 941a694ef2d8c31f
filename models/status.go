package models

import "strings"

type TxStatus string

const (
	StatusFuture          TxStatus = "future"
	StatusReady           TxStatus = "ready"
	StatusBroadcast       TxStatus = "broadcast"
	StatusInBlock         TxStatus = "inBlock"
	StatusRetracted       TxStatus = "retracted"
	StatusFinalityTimeout TxStatus = "finalityTimeout"
	StatusFinalized       TxStatus = "finalized"
	StatusUsurped         TxStatus = "usurped"
	StatusDropped         TxStatus = "dropped"
	StatusInvalid         TxStatus = "invalid"
)

type (
	// SubmittableResult is one status update of a submitted extrinsic. BlockHash is set
	// for inBlock, retracted, finalityTimeout and finalized; TxIndex and Events only once
	// the extrinsic is in a block.
	SubmittableResult struct {
		Status    TxStatus      `json:"status"`
		BlockHash string        `json:"blockHash,omitempty"`
		TxHash    string        `json:"txHash"`
		TxIndex   int           `json:"txIndex"`
		Events    []EventRecord `json:"events,omitempty"`
	}

	// EventRecord is an event emitted in a block
	EventRecord struct {
		Index          int      `json:"index"`
		Phase          int      `json:"phase"` // 0 = ApplyExtrinsic, 1 = Finalization, 2 = Initialization
		ExtrinsicIndex int      `json:"extrinsicIndex"`
		Module         string   `json:"module"`
		Method         string   `json:"method"`
		Data           []string `json:"data"`
	}
)

const PhaseApplyExtrinsic = 0

// IsIncluded reports whether the status proves the extrinsic is recorded in a block
func (result SubmittableResult) IsIncluded() bool {
	return (result.Status == StatusInBlock || result.Status == StatusFinalized) && result.BlockHash != ""
}

// IsRejected reports whether the node gave up on the extrinsic
func (result SubmittableResult) IsRejected() bool {
	switch result.Status {
	case StatusDropped, StatusInvalid, StatusUsurped:
		return true
	}
	return false
}

// Is compares the event module case insensitively, node metadata reports "Unique"
// where the event section is "unique"
func (event EventRecord) Is(module, method string) bool {
	return strings.EqualFold(event.Module, module) && event.Method == method
}
