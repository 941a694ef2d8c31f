package substrate

import (
	"bytes"
	"context"
	"os"
	"sync"

	"go-unique-sdk/internal/config"
	"go-unique-sdk/internal/connection"
	"go-unique-sdk/internal/messages"
	"go-unique-sdk/models"
	"go-unique-sdk/transaction"
	"go-unique-sdk/utils"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// Extrinsic is the call value handed out by Client. It is never modified after construction,
// signing produces a new Extrinsic.
type Extrinsic struct {
	ext  types.Extrinsic
	name string
}

func (e *Extrinsic) IsSigned() bool { return e != nil && e.ext.IsSigned() }

// Name is the Module.method of the call
func (e *Extrinsic) Name() string { return e.name }

// Encode returns the SCALE encoding as submitted to the node
func (e *Extrinsic) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := scale.NewEncoder(&buf).Encode(e.ext); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash is the blake2b-256 hash of the encoded extrinsic, hex encoded with 0x prefix
func (e *Extrinsic) Hash() (string, error) {
	encoded, err := e.Encode()
	if err != nil {
		return "", err
	}
	hash := blake2b.Sum256(encoded)
	return "0x" + utils.BytesToHex(hash[:]), nil
}

// Client is the node handle used to build, sign and submit extrinsics. Submission goes
// through the substrate rpc client, block and event reads through the websocket rpc
// connection.
type Client struct {
	api        *gsrpc.SubstrateAPI
	rpc        *connection.RpcClient
	events     *eventReader
	ss58Prefix uint16

	metaMu sync.RWMutex
	meta   *types.Metadata
}

func Connect(ctx context.Context, chain config.ChainConfig) (*Client, error) {
	if chain.DecoderTypesFile != "" {
		if err := RegisterTypes(chain.DecoderTypesFile); err != nil {
			return nil, err
		}
	}

	rpcClient, err := connection.Dial(ctx, chain.WsRpcEndpoint)
	if err != nil {
		return nil, err
	}

	api, err := gsrpc.NewSubstrateAPI(chain.WsRpcEndpoint)
	if err != nil {
		rpcClient.Close()
		return nil, errors.Wrapf(err, "connect %s", chain.WsRpcEndpoint)
	}

	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		rpcClient.Close()
		api.Client.Close()
		return nil, errors.Wrap(err, "read latest metadata")
	}

	return &Client{
		api:        api,
		rpc:        rpcClient,
		events:     newEventReader(rpcClient),
		ss58Prefix: chain.SS58Prefix,
		meta:       meta,
	}, nil
}

// RegisterTypes loads a scale.go type registry file, used for runtimes with types the
// decoder does not know
func RegisterTypes(path string) error {
	c, err := os.ReadFile(path)
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(RegisterTypes),
			err,
			messages.TYPES_REGISTERED,
			path,
		).ConsoleLog()
		return errors.Wrapf(err, "read decoder types %s", path)
	}
	registerTypes(c)

	messages.NewSDKMessage(
		messages.LOG_LEVEL_DEBUG,
		"",
		nil,
		messages.TYPES_REGISTERED,
		path,
	).ConsoleLog()
	return nil
}

func (c *Client) Close() {
	c.api.Client.Close()
	c.rpc.Close()
}

func (c *Client) SS58Prefix() uint16 { return c.ss58Prefix }

func (c *Client) Endpoint() string { return c.rpc.Endpoint() }

// Metadata returns the runtime metadata calls are built against
func (c *Client) Metadata() *types.Metadata {
	c.metaMu.RLock()
	defer c.metaMu.RUnlock()
	return c.meta
}

// RefreshMetadata reloads the metadata, needed after a runtime upgrade
func (c *Client) RefreshMetadata() error {
	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return errors.Wrap(err, "read latest metadata")
	}
	c.metaMu.Lock()
	c.meta = meta
	c.metaMu.Unlock()
	return nil
}

// NewCall builds an unsigned extrinsic for module.method, e.g. NewCall("Unique", "add_collection_admin", ...)
func (c *Client) NewCall(module, method string, args ...interface{}) (transaction.Call, error) {
	encoded, err := encodeArgs(args)
	if err != nil {
		return nil, err
	}

	name := module + "." + method
	call, err := types.NewCall(c.Metadata(), name, encoded...)
	if err != nil {
		return nil, errors.Wrapf(err, "new call %s", name)
	}
	return &Extrinsic{ext: types.NewExtrinsic(call), name: name}, nil
}

func (c *Client) Submit(ctx context.Context, call transaction.Call) (transaction.Subscription, error) {
	xt, ok := call.(*Extrinsic)
	if !ok {
		return nil, errors.Errorf("unsupported call %T", call)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txHash, err := xt.Hash()
	if err != nil {
		return nil, errors.Wrap(err, "encode extrinsic")
	}

	sub, err := c.api.RPC.Author.SubmitAndWatchExtrinsic(xt.ext)
	if err != nil {
		return nil, err
	}
	return watch(sub, c.events, txHash), nil
}

func (c *Client) BlockNumber(ctx context.Context, blockHash string) (uint64, error) {
	return c.rpc.BlockNumber(ctx, blockHash)
}

func (c *Client) GenesisHash(ctx context.Context) (string, error) {
	return c.rpc.BlockHash(ctx, 0)
}

func (c *Client) SpecVersion(ctx context.Context) (int, error) {
	return c.rpc.RuntimeSpecVersion(ctx, "")
}

// Events returns the events emitted by the extrinsic with index txIndex of a block
func (c *Client) Events(ctx context.Context, blockHash string, txIndex int) ([]models.EventRecord, error) {
	return c.events.extrinsicEvents(ctx, blockHash, txIndex)
}
