package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bitfsorg/tariscan-go/transaction"
)

const (
	// maxResponseSize caps how much of a reply is read.
	maxResponseSize = 64 << 20

	// DefaultPageSize is the number of blocks requested per get_outputs call.
	DefaultPageSize = 100
)

// RPCClient speaks JSON-RPC 2.0 over HTTP POST to a base node or indexer.
type RPCClient struct {
	endpoint string
	user     string
	password string
	http     *http.Client
	seq      atomic.Int64
}

// NewRPCClient creates a client for cfg. Basic Auth is sent when User is set.
func NewRPCClient(cfg RPCConfig) *RPCClient {
	return &RPCClient{
		endpoint: cfg.URL,
		user:     cfg.User,
		password: cfg.Password,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     time.Minute,
			},
		},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Call invokes method with params and unmarshals the result into result,
// which may be nil.
//
// Transport failures wrap ErrConnectionFailed, undecodable replies wrap
// ErrInvalidResponse and JSON-RPC error objects wrap ErrRemote.
func (c *RPCClient) Call(ctx context.Context, method string, result any, params ...any) error {
	if params == nil {
		params = []any{}
	}
	req := rpcRequest{JSONRPC: "2.0", ID: c.seq.Add(1), Method: method, Params: params}

	raw, err := c.post(ctx, req)
	if err != nil {
		return err
	}
	return decodeReply(raw, req.ID, result)
}

func (c *RPCClient) post(ctx context.Context, req rpcRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("network: encode %s request: %w", req.Method, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("network: build %s request: %w", req.Method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.user != "" {
		httpReq.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnectionFailed, req.Method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s reply: %w", ErrConnectionFailed, req.Method, err)
	}
	if resp.StatusCode/100 != 2 {
		if len(raw) > 256 {
			raw = raw[:256]
		}
		return nil, fmt.Errorf("%w: %s: HTTP %d: %s", ErrConnectionFailed, req.Method, resp.StatusCode, bytes.TrimSpace(raw))
	}
	return raw, nil
}

func decodeReply(raw []byte, id int64, result any) error {
	var reply rpcResponse
	if err := json.Unmarshal(raw, &reply); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if reply.ID != id {
		return fmt.Errorf("%w: reply id %d does not match request id %d", ErrInvalidResponse, reply.ID, id)
	}
	if reply.Error != nil {
		return fmt.Errorf("%w %d: %s", ErrRemote, reply.Error.Code, reply.Error.Message)
	}
	if result == nil || len(reply.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(reply.Result, result); err != nil {
		return fmt.Errorf("%w: result: %w", ErrInvalidResponse, err)
	}
	return nil
}

// TipHeight returns the height of the node's best block.
func (c *RPCClient) TipHeight(ctx context.Context) (uint64, error) {
	var tip struct {
		Height uint64 `json:"height"`
	}
	if err := c.Call(ctx, "get_tip_info", &tip); err != nil {
		return 0, err
	}
	return tip.Height, nil
}

// RPCSource fetches the outputs mined in [FromHeight, ToHeight], PageSize
// blocks per "get_outputs" call. A zero ToHeight means the current tip.
type RPCSource struct {
	Client     *RPCClient
	FromHeight uint64
	ToHeight   uint64
	PageSize   uint64
}

// Outputs implements OutputSource.
func (s *RPCSource) Outputs(ctx context.Context) ([]*transaction.TransactionOutput, error) {
	to := s.ToHeight
	if to == 0 {
		tip, err := s.Client.TipHeight(ctx)
		if err != nil {
			return nil, err
		}
		to = tip
	}
	if s.FromHeight > to {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidRange, s.FromHeight, to)
	}
	page := s.PageSize
	if page == 0 {
		page = DefaultPageSize
	}

	var outputs []*transaction.TransactionOutput
	for start := s.FromHeight; start <= to; start += page {
		end := min(start+page-1, to)
		var encoded []string
		if err := s.Client.Call(ctx, "get_outputs", &encoded, start, end); err != nil {
			return nil, fmt.Errorf("blocks %d-%d: %w", start, end, err)
		}
		for i, h := range encoded {
			out, err := transaction.DecodeHex(h)
			if err != nil {
				return nil, fmt.Errorf("%w: blocks %d-%d output %d: %w", ErrInvalidResponse, start, end, i, err)
			}
			outputs = append(outputs, out)
		}
		if end == to {
			break
		}
	}
	return outputs, nil
}
