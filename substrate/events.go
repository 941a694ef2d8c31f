package substrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-unique-sdk/internal/messages"
	"go-unique-sdk/models"
	"go-unique-sdk/utils"

	scalecodec "github.com/itering/scale.go"
	"github.com/itering/scale.go/types"
	"github.com/itering/scale.go/utiles"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

var ErrExtrinsicNotFound = errors.New("extrinsic not found in block")

// eventReader resolves where an extrinsic landed in a block and what it emitted
type eventReader struct {
	chain chainReader
	cache metadataCache
}

func newEventReader(chain chainReader) *eventReader {
	return &eventReader{chain: chain}
}

// inclusion returns the index of the extrinsic with txHash in blockHash and its events
func (r *eventReader) inclusion(ctx context.Context, blockHash, txHash string) (int, []models.EventRecord, error) {
	extrinsics, err := r.chain.BlockExtrinsics(ctx, blockHash)
	if err != nil {
		return -1, nil, err
	}
	txIndex := extrinsicIndex(extrinsics, txHash)
	if txIndex < 0 {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_WARNING,
			messages.GetComponent(extrinsicIndex),
			nil,
			messages.TX_UNKNOWN_EXTRINSIC,
			txHash,
			blockHash,
		).ConsoleLog()
		return -1, nil, errors.Wrapf(ErrExtrinsicNotFound, "%s in %s", txHash, blockHash)
	}

	events, err := r.extrinsicEvents(ctx, blockHash, txIndex)
	if err != nil {
		return txIndex, nil, err
	}
	return txIndex, events, nil
}

// extrinsicEvents returns the events emitted while applying extrinsic txIndex
func (r *eventReader) extrinsicEvents(ctx context.Context, blockHash string, txIndex int) ([]models.EventRecord, error) {
	events, err := r.blockEvents(ctx, blockHash)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.EventRecord, 0, len(events))
	for _, event := range events {
		if event.Phase == models.PhaseApplyExtrinsic && event.ExtrinsicIndex == txIndex {
			filtered = append(filtered, event)
		}
	}
	return filtered, nil
}

func (r *eventReader) blockEvents(ctx context.Context, blockHash string) ([]models.EventRecord, error) {
	raw, err := r.chain.EventsStorage(ctx, blockHash)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	meta, specVersion, err := r.metadataAt(ctx, blockHash)
	if err != nil {
		return nil, err
	}

	decoded, err := decodeEvents(raw, meta, specVersion)
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(decodeEvents),
			err,
			messages.EVENTS_FAILED_TO_DECODE,
			blockHash,
		).ConsoleLog()
		return nil, errors.Wrapf(err, "events of block %s", blockHash)
	}
	return toEventRecords(decoded)
}

// extrinsicIndex finds txHash among the hex encoded extrinsics of a block, -1 if absent
func extrinsicIndex(extrinsics []string, txHash string) int {
	want := strings.ToLower(strings.TrimPrefix(txHash, "0x"))
	for i, extrinsic := range extrinsics {
		raw, err := utils.HexToBytes(extrinsic)
		if err != nil {
			continue
		}
		hash := blake2b.Sum256(raw)
		if utils.BytesToHex(hash[:]) == want {
			return i
		}
	}
	return -1
}

func decodeEvents(raw string, meta *types.MetadataStruct, specVersion int) (value []interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("events decoder panicked: %v", r)
		}
	}()

	option := types.ScaleDecoderOption{Metadata: meta, Spec: specVersion}
	e := scalecodec.EventsDecoder{}
	e.Init(types.ScaleBytes{Data: utiles.HexToBytes(raw)}, &option)
	e.Process()

	value, ok := e.Value.([]interface{})
	if !ok {
		return nil, errors.Errorf("decoded events are %T", e.Value)
	}
	return value, nil
}

// decodedEvent is the shape of one event produced by the scale decoder
type decodedEvent struct {
	EventIdx     int    `json:"event_idx"`
	ModuleID     string `json:"module_id"`
	EventID      string `json:"event_id"`
	Phase        int    `json:"phase"`
	ExtrinsicIdx int    `json:"extrinsic_idx"`
	Params       []struct {
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	} `json:"params"`
}

// toEventRecords converts decoder output to event records, every param value rendered as
// text: strings as they are, numbers in decimal, anything else as JSON
func toEventRecords(decoded []interface{}) ([]models.EventRecord, error) {
	records := make([]models.EventRecord, 0, len(decoded))
	for _, evt := range decoded {
		b, err := json.Marshal(evt)
		if err != nil {
			return nil, errors.Wrap(err, "encode decoded event")
		}

		var event decodedEvent
		d := json.NewDecoder(bytes.NewReader(b))
		d.UseNumber()
		if err := d.Decode(&event); err != nil {
			return nil, errors.Wrap(err, "read decoded event")
		}

		data := make([]string, 0, len(event.Params))
		for _, param := range event.Params {
			data = append(data, paramText(param.Value))
		}

		records = append(records, models.EventRecord{
			Index:          event.EventIdx,
			Phase:          event.Phase,
			ExtrinsicIndex: event.ExtrinsicIdx,
			Module:         event.ModuleID,
			Method:         event.EventID,
			Data:           data,
		})
	}
	return records, nil
}

func paramText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}
