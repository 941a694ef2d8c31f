package substrate

import (
	"context"
	"fmt"
	"sync"

	"go-unique-sdk/internal/messages"

	scalecodec "github.com/itering/scale.go"
	"github.com/itering/scale.go/source"
	"github.com/itering/scale.go/types"
	"github.com/itering/scale.go/utiles"
)

var registerOnce sync.Once

func registerTypes(c []byte) {
	registerOnce.Do(func() {
		types.RuntimeType{}.Reg()
	})
	types.RegCustomTypes(source.LoadTypeRegistry(c))
}

type chainReader interface {
	BlockExtrinsics(ctx context.Context, blockHash string) ([]string, error)
	RuntimeSpecVersion(ctx context.Context, blockHash string) (int, error)
	Metadata(ctx context.Context, blockHash string) (string, error)
	EventsStorage(ctx context.Context, blockHash string) (string, error)
}

// metadataCache keeps one decoded metadata per runtime spec version
type metadataCache struct {
	sync.Mutex
	specVersionMetadataMap map[int]*types.MetadataStruct
}

func (cache *metadataCache) get(specVersion int) (*types.MetadataStruct, bool) {
	cache.Lock()
	defer cache.Unlock()
	meta, ok := cache.specVersionMetadataMap[specVersion]
	return meta, ok
}

func (cache *metadataCache) put(specVersion int, meta *types.MetadataStruct) {
	cache.Lock()
	defer cache.Unlock()
	if cache.specVersionMetadataMap == nil {
		cache.specVersionMetadataMap = make(map[int]*types.MetadataStruct)
	}
	cache.specVersionMetadataMap[specVersion] = meta
}

// metadataAt returns the metadata and spec version of the runtime that produced blockHash
func (r *eventReader) metadataAt(ctx context.Context, blockHash string) (*types.MetadataStruct, int, error) {
	specVersion, err := r.chain.RuntimeSpecVersion(ctx, blockHash)
	if err != nil {
		return nil, 0, err
	}
	if meta, ok := r.cache.get(specVersion); ok {
		return meta, specVersion, nil
	}

	raw, err := r.chain.Metadata(ctx, blockHash)
	if err != nil {
		return nil, 0, err
	}
	meta, err := decodeMetadata(raw)
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(decodeMetadata),
			err,
			messages.META_FAILED_TO_DECODE,
			specVersion,
		).ConsoleLog()
		return nil, 0, err
	}
	r.cache.put(specVersion, meta)

	messages.NewSDKMessage(
		messages.LOG_LEVEL_DEBUG,
		"",
		nil,
		messages.META_CACHED,
		specVersion,
	).ConsoleLog()
	return meta, specVersion, nil
}

func decodeMetadata(raw string) (meta *types.MetadataStruct, err error) {
	defer func() {
		if r := recover(); r != nil {
			meta = nil
			err = fmt.Errorf("metadata decoder panicked: %v", r)
		}
	}()

	m := scalecodec.MetadataDecoder{}
	m.Init(utiles.HexToBytes(raw))
	if err := m.Process(); err != nil {
		return nil, err
	}
	return &m.Metadata, nil
}
