package models

type (
	// ExtrinsicResult is the normalized outcome of an extrinsic that reached a block.
	// IsSuccess must always be checked: inclusion does not mean the call succeeded on chain.
	ExtrinsicResult struct {
		IsSuccess   bool    `json:"isSuccess"`
		BlockHash   string  `json:"blockHash"`
		BlockNumber *uint64 `json:"blockNumber,omitempty"`
		TxIndex     int     `json:"txIndex"`
		TxHash      string  `json:"txHash"`
	}

	// TransactionResult is the result of a call without call specific extraction
	TransactionResult struct {
		ExtrinsicResult
		TxResult SubmittableResult `json:"txResult"`
	}
)

// Base returns the normalized part of a result. Call specific results embed ExtrinsicResult
// and get this method promoted.
func (result ExtrinsicResult) Base() ExtrinsicResult {
	return result
}
