package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode answers JSON-RPC requests with handle and records every request.
type fakeNode struct {
	t      *testing.T
	handle func(req rpcRequest) (any, *rpcError)

	mu       sync.Mutex
	requests []rpcRequest
}

func newFakeNode(t *testing.T, handle func(req rpcRequest) (any, *rpcError)) (*fakeNode, *httptest.Server) {
	t.Helper()
	node := &fakeNode{t: t, handle: handle}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)
	return node, srv
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.mu.Lock()
	n.requests = append(n.requests, req)
	n.mu.Unlock()

	result, rpcErr := n.handle(req)
	reply := rpcResponse{ID: req.ID, Error: rpcErr}
	if rpcErr == nil {
		raw, err := json.Marshal(result)
		require.NoError(n.t, err)
		reply.Result = raw
	}
	_ = json.NewEncoder(w).Encode(reply)
}

func (n *fakeNode) methods() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, r := range n.requests {
		out = append(out, r.Method)
	}
	return out
}

// --- RPCClient tests ---

func TestRPCClientCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "scanner", user)
		assert.Equal(t, "hunter2", pass)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "echo", req.Method)
		assert.Equal(t, []any{"a", float64(7)}, req.Params)
		_ = json.NewEncoder(w).Encode(rpcResponse{ID: req.ID, Result: json.RawMessage(`"ok"`)})
	}))
	defer srv.Close()

	client := NewRPCClient(RPCConfig{URL: srv.URL, User: "scanner", Password: "hunter2"})
	var got string
	require.NoError(t, client.Call(context.Background(), "echo", &got, "a", 7))
	assert.Equal(t, "ok", got)
}

func TestRPCClientNoAuthWithoutUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		var req rpcRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.NotNil(t, req.Params)
		_ = json.NewEncoder(w).Encode(rpcResponse{ID: req.ID})
	}))
	defer srv.Close()

	require.NoError(t, NewRPCClient(RPCConfig{URL: srv.URL}).Call(context.Background(), "ping", nil))
}

func TestRPCClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "remote error object",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req rpcRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				_ = json.NewEncoder(w).Encode(rpcResponse{ID: req.ID, Error: &rpcError{Code: -32601, Message: "method not found"}})
			},
			wantErr: ErrRemote,
		},
		{
			name: "http status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "overloaded", http.StatusServiceUnavailable)
			},
			wantErr: ErrConnectionFailed,
		},
		{
			name: "id mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(rpcResponse{ID: 999, Result: json.RawMessage(`1`)})
			},
			wantErr: ErrInvalidResponse,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantErr: ErrInvalidResponse,
		},
		{
			name: "result of wrong type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req rpcRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				_ = json.NewEncoder(w).Encode(rpcResponse{ID: req.ID, Result: json.RawMessage(`"tall"`)})
			},
			wantErr: ErrInvalidResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			var height int
			err := NewRPCClient(RPCConfig{URL: srv.URL}).Call(context.Background(), "get_tip_info", &height)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRPCClientConnectionRefused(t *testing.T) {
	err := NewRPCClient(RPCConfig{URL: "http://localhost:1"}).Call(context.Background(), "ping", nil)
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestRPCClientTipHeight(t *testing.T) {
	_, srv := newFakeNode(t, func(req rpcRequest) (any, *rpcError) {
		assert.Equal(t, "get_tip_info", req.Method)
		return map[string]uint64{"height": 4242}, nil
	})
	tip, err := NewRPCClient(RPCConfig{URL: srv.URL}).TipHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4242), tip)
}

// --- RPCSource tests ---

func TestRPCSourcePages(t *testing.T) {
	outputs := sampleOutputs(t, 3)
	encoded := make([]string, len(outputs))
	for i, o := range outputs {
		h, err := o.Hex()
		require.NoError(t, err)
		encoded[i] = h
	}

	var ranges [][2]float64
	node, srv := newFakeNode(t, func(req rpcRequest) (any, *rpcError) {
		require.Len(t, req.Params, 2)
		from, to := req.Params[0].(float64), req.Params[1].(float64)
		ranges = append(ranges, [2]float64{from, to})
		// One output per page.
		return encoded[len(ranges)-1 : len(ranges)], nil
	})

	src := &RPCSource{Client: NewRPCClient(RPCConfig{URL: srv.URL}), FromHeight: 10, ToHeight: 34, PageSize: 10}
	got, err := src.Outputs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][2]float64{{10, 19}, {20, 29}, {30, 34}}, ranges)
	assert.Equal(t, []string{"get_outputs", "get_outputs", "get_outputs"}, node.methods())
	require.Len(t, got, 3)
	for i := range outputs {
		assert.Equal(t, outputs[i].Commitment, got[i].Commitment)
	}
}

func TestRPCSourceScansToTip(t *testing.T) {
	node, srv := newFakeNode(t, func(req rpcRequest) (any, *rpcError) {
		switch req.Method {
		case "get_tip_info":
			return map[string]uint64{"height": 5}, nil
		case "get_outputs":
			assert.Equal(t, []any{float64(0), float64(5)}, req.Params)
			return []string{}, nil
		}
		return nil, &rpcError{Code: -32601, Message: "method not found"}
	})

	src := &RPCSource{Client: NewRPCClient(RPCConfig{URL: srv.URL})}
	got, err := src.Outputs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []string{"get_tip_info", "get_outputs"}, node.methods())
}

func TestRPCSourceInvalidRange(t *testing.T) {
	node, srv := newFakeNode(t, func(req rpcRequest) (any, *rpcError) {
		return []string{}, nil
	})
	src := &RPCSource{Client: NewRPCClient(RPCConfig{URL: srv.URL}), FromHeight: 20, ToHeight: 10}
	_, err := src.Outputs(context.Background())
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, node.methods())
}

func TestRPCSourceMalformedOutput(t *testing.T) {
	_, srv := newFakeNode(t, func(req rpcRequest) (any, *rpcError) {
		return []string{"zz"}, nil
	})
	src := &RPCSource{Client: NewRPCClient(RPCConfig{URL: srv.URL}), ToHeight: 1}
	_, err := src.Outputs(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestRPCSourceRemoteError(t *testing.T) {
	_, srv := newFakeNode(t, func(req rpcRequest) (any, *rpcError) {
		return nil, &rpcError{Code: -1, Message: "pruned"}
	})
	src := &RPCSource{Client: NewRPCClient(RPCConfig{URL: srv.URL}), FromHeight: 3, ToHeight: 4}
	_, err := src.Outputs(context.Background())
	require.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "blocks 3-4")
}
