package connection

import (
	"context"
	"strconv"
	"strings"

	"github.com/itering/substrate-api-rpc/rpc"
	"github.com/pkg/errors"
)

// EventsStorageKey is twox128("System") ++ twox128("Events")
const EventsStorageKey = "0x26aa394eea5630e07c48ae0c9558cef780d41e5e16056765bc8461851072c9d7"

// BlockHash returns the hash of the block at height, height 0 being the genesis block
func (c *RpcClient) BlockHash(ctx context.Context, height int) (string, error) {
	res, err := c.Call(ctx, "chain_getBlockHash", func(id int) []byte {
		return rpc.ChainGetBlockHash(id, height)
	})
	if err != nil {
		return "", err
	}
	return res.ToString()
}

// BlockNumber resolves a block hash to its height through the block header
func (c *RpcClient) BlockNumber(ctx context.Context, blockHash string) (uint64, error) {
	block, err := c.block(ctx, blockHash)
	if err != nil {
		return 0, err
	}
	return parseHexNumber(block.Block.Header.Number)
}

// BlockExtrinsics returns the hex encoded extrinsics of a block in block order
func (c *RpcClient) BlockExtrinsics(ctx context.Context, blockHash string) ([]string, error) {
	block, err := c.block(ctx, blockHash)
	if err != nil {
		return nil, err
	}
	return block.Block.Extrinsics, nil
}

func (c *RpcClient) block(ctx context.Context, blockHash string) (*rpc.BlockResult, error) {
	res, err := c.Call(ctx, "chain_getBlock", func(id int) []byte {
		return rpc.ChainGetBlock(id, blockHash)
	})
	if err != nil {
		return nil, err
	}
	if _, ok := res.Result.(map[string]interface{}); !ok {
		return nil, errors.Errorf("unknown block %s", blockHash)
	}
	block := res.ToBlock()
	if block == nil {
		return nil, errors.Errorf("unknown block %s", blockHash)
	}
	return block, nil
}

// RuntimeSpecVersion returns the runtime spec version active at blockHash, or at the best
// block when blockHash is empty
func (c *RpcClient) RuntimeSpecVersion(ctx context.Context, blockHash string) (int, error) {
	build := Request("state_getRuntimeVersion")
	if blockHash != "" {
		build = func(id int) []byte {
			return rpc.ChainGetRuntimeVersion(id, blockHash)
		}
	}
	res, err := c.Call(ctx, "state_getRuntimeVersion", build)
	if err != nil {
		return 0, err
	}
	if _, ok := res.Result.(map[string]interface{}); !ok {
		return 0, errors.Errorf("no runtime version for block %s", blockHash)
	}
	version := res.ToRuntimeVersion()
	if version == nil {
		return 0, errors.Errorf("no runtime version for block %s", blockHash)
	}
	return version.SpecVersion, nil
}

// Metadata returns the hex encoded runtime metadata at blockHash
func (c *RpcClient) Metadata(ctx context.Context, blockHash string) (string, error) {
	res, err := c.Call(ctx, "state_getMetadata", func(id int) []byte {
		return rpc.StateGetMetadata(id, blockHash)
	})
	if err != nil {
		return "", err
	}
	return res.ToString()
}

// EventsStorage returns the raw System.Events storage of a block, empty when the block
// emitted nothing. rpc.StateGetStorage sends state_getStorageAt for a block hash, which
// current nodes no longer serve.
func (c *RpcClient) EventsStorage(ctx context.Context, blockHash string) (string, error) {
	res, err := c.Call(ctx, "state_getStorage", Request("state_getStorage", EventsStorageKey, blockHash))
	if err != nil {
		return "", err
	}
	if res.Result == nil {
		return "", nil
	}
	return res.ToString()
}

func parseHexNumber(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("block header has no number")
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "block number %q", s)
	}
	return n, nil
}
