package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"go-unique-sdk/internal/messages"

	"github.com/gorilla/websocket"
	"github.com/itering/substrate-api-rpc/rpc"
	"github.com/pkg/errors"
)

var ErrClosed = errors.New("rpc connection closed")

// RpcClient is a JSON-RPC client over one websocket. Responses are routed back to the
// caller by request id, so a single client can be shared by many goroutines.
type RpcClient struct {
	endpoint string
	conn     *websocket.Conn
	writeMu  sync.Mutex
	nextID   atomic.Int64
	caller   sync.Map // request id -> chan *rpc.JsonRpcResult

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func Dial(ctx context.Context, endpoint string) (*RpcClient, error) {
	messages.NewSDKMessage(
		messages.LOG_LEVEL_INFO,
		"",
		nil,
		messages.CONNECTION_DIALING,
		endpoint,
	).ConsoleLog()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(Dial),
			err,
			messages.CONNECTION_FAILED_DIAL,
			endpoint,
		).ConsoleLog()
		return nil, errors.Wrapf(err, "dial %s", endpoint)
	}

	c := &RpcClient{
		endpoint: endpoint,
		conn:     conn,
		done:     make(chan struct{}),
	}
	go c.readMessages()

	messages.NewSDKMessage(
		messages.LOG_LEVEL_SUCCESS,
		"",
		nil,
		messages.CONNECTION_CONNECTED,
	).ConsoleLog()
	return c, nil
}

func (c *RpcClient) Endpoint() string { return c.endpoint }

// Call sends the request produced by build for a fresh id and waits for its response.
// An error object in the response is returned as an error.
func (c *RpcClient) Call(ctx context.Context, method string, build func(id int) []byte) (*rpc.JsonRpcResult, error) {
	id := int(c.nextID.Add(1))
	responseChan := make(chan *rpc.JsonRpcResult, 1)
	c.caller.Store(id, responseChan)
	defer c.caller.Delete(id)

	if err := c.write(build(id)); err != nil {
		return nil, errors.Wrapf(err, "%s", method)
	}

	select {
	case res := <-responseChan:
		if res.Error != nil {
			err := fmt.Errorf("%s: %v", method, res.Error)
			messages.NewSDKMessage(
				messages.LOG_LEVEL_DEBUG,
				messages.GetComponent(c.Call),
				err,
				messages.CONNECTION_RPC_ERROR,
				method,
			).ConsoleLog()
			return nil, err
		}
		return res, nil
	case <-c.done:
		return nil, errors.Wrapf(c.closeErr, "%s", method)
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "%s", method)
	}
}

func (c *RpcClient) write(message []byte) error {
	select {
	case <-c.done:
		return c.closeErr
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(c.write),
			err,
			messages.CONNECTION_FAILED_WRITE,
		).ConsoleLog()
		return err
	}
	return nil
}

func (c *RpcClient) readMessages() {
	for {
		v := &rpc.JsonRpcResult{}
		if err := c.conn.ReadJSON(v); err != nil {
			c.shutdown(errors.Wrap(ErrClosed, err.Error()))
			return
		}
		callerChan, ok := c.caller.Load(v.Id)
		if !ok {
			continue
		}
		select {
		case callerChan.(chan *rpc.JsonRpcResult) <- v:
		default:
		}
	}
}

func (c *RpcClient) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.closeErr = err
		close(c.done)
		messages.NewSDKMessage(
			messages.LOG_LEVEL_DEBUG,
			"",
			nil,
			messages.CONNECTION_CLOSED,
			err,
		).ConsoleLog()
	})
}

// Close ends the connection. Pending calls return ErrClosed.
func (c *RpcClient) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	err := c.conn.Close()
	c.shutdown(ErrClosed)
	return err
}

// Done is closed once the connection is gone
func (c *RpcClient) Done() <-chan struct{} { return c.done }

type request struct {
	Id      int           `json:"id"`
	JsonRpc string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// Request encodes a JSON-RPC 2.0 request for methods the rpc package does not build the
// way the node expects
func Request(method string, params ...string) func(id int) []byte {
	args := make([]interface{}, 0, len(params))
	for _, p := range params {
		args = append(args, p)
	}
	return func(id int) []byte {
		// strings and ints only, Marshal cannot fail
		b, _ := json.Marshal(request{Id: id, JsonRpc: "2.0", Method: method, Params: args})
		return b
	}
}
