package chain

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(params []json.RawMessage) (any, *RPCError)

// fakeNode is an httptest JSON-RPC server dispatching by method name.
type fakeNode struct {
	mu       sync.Mutex
	handlers map[string]handlerFunc
	calls    map[string]int
	srv      *httptest.Server
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()
	n := &fakeNode{handlers: map[string]handlerFunc{}, calls: map[string]int{}}
	n.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int64             `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		n.mu.Lock()
		n.calls[req.Method]++
		h, ok := n.handlers[req.Method]
		n.mu.Unlock()

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		switch {
		case !ok:
			resp["error"] = &RPCError{Code: -32601, Message: "method not found"}
		default:
			result, rpcErr := h(req.Params)
			if rpcErr != nil {
				resp["error"] = rpcErr
			} else {
				resp["result"] = result
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(n.srv.Close)
	return n
}

func (n *fakeNode) on(method string, h handlerFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

func (n *fakeNode) result(method string, v any) {
	n.on(method, func([]json.RawMessage) (any, *RPCError) { return v, nil })
}

func (n *fakeNode) count(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func TestChainID(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_chainId", "0x5")

	id, err := NewEVMClient(node.srv.URL).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestBlockNumberAndPing(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_blockNumber", "0x10")

	c := NewEVMClient(node.srv.URL)
	n, err := c.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), n)

	latency, block, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), block)
	assert.Greater(t, latency, time.Duration(0))
}

func TestRPCErrorIsReturned(t *testing.T) {
	node := newFakeNode(t)
	node.on("eth_call", func([]json.RawMessage) (any, *RPCError) {
		return nil, &RPCError{Code: 3, Message: "execution reverted: not owner"}
	})

	_, err := NewEVMClient(node.srv.URL).CallContract(context.Background(), CallMsg{})
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, 3, rpcErr.Code)
	assert.Contains(t, err.Error(), "not owner")
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).ChainID(context.Background())
	assert.ErrorContains(t, err, "HTTP 429")
}

func TestCallContractSendsCallObject(t *testing.T) {
	node := newFakeNode(t)
	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	var got map[string]string
	node.on("eth_call", func(params []json.RawMessage) (any, *RPCError) {
		assert.Len(t, params, 2)
		assert.NoError(t, json.Unmarshal(params[0], &got))
		return "0x0000000000000000000000000000000000000000000000000000000000000007", nil
	})

	out, err := NewEVMClient(node.srv.URL).CallContract(context.Background(), CallMsg{
		To:   &to,
		Data: []byte{0x18, 0x16, 0x0d, 0xdd},
	})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), new(big.Int).SetBytes(out))
	assert.Equal(t, "0x18160ddd", got["data"])
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", got["to"])
	_, hasFrom := got["from"]
	assert.False(t, hasFrom, "zero from address must be omitted")
}

func TestEstimateGasIncludesValue(t *testing.T) {
	node := newFakeNode(t)
	var got map[string]string
	node.on("eth_estimateGas", func(params []json.RawMessage) (any, *RPCError) {
		assert.NoError(t, json.Unmarshal(params[0], &got))
		return "0x5208", nil
	})

	gas, err := NewEVMClient(node.srv.URL).EstimateGas(context.Background(), CallMsg{
		From:  common.HexToAddress("0x01"),
		Value: big.NewInt(1_000_000_000_000_000),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas)
	assert.Equal(t, "0x38d7ea4c68000", got["value"])
	_, hasTo := got["to"]
	assert.False(t, hasTo, "contract creation has no to")
}

func TestSendRawTransaction(t *testing.T) {
	node := newFakeNode(t)
	want := common.HexToHash("0xabc")
	var gotRaw string
	node.on("eth_sendRawTransaction", func(params []json.RawMessage) (any, *RPCError) {
		assert.NoError(t, json.Unmarshal(params[0], &gotRaw))
		return want, nil
	})

	hash, err := NewEVMClient(node.srv.URL).SendRawTransaction(context.Background(), []byte{0x02, 0xf8})
	require.NoError(t, err)
	assert.Equal(t, want, hash)
	assert.Equal(t, "0x02f8", gotRaw)
}

func TestReceiptPending(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_getTransactionReceipt", nil)

	r, err := NewEVMClient(node.srv.URL).TransactionReceipt(context.Background(), common.HexToHash("0x1"))
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestWaitForReceiptPollsUntilMined(t *testing.T) {
	node := newFakeNode(t)
	var polls int
	node.on("eth_getTransactionReceipt", func([]json.RawMessage) (any, *RPCError) {
		polls++
		if polls < 3 {
			return nil, nil
		}
		return map[string]any{
			"status":          "0x1",
			"blockNumber":     "0x64",
			"gasUsed":         "0x5208",
			"contractAddress": "0x00000000000000000000000000000000000000cc",
		}, nil
	})

	r, err := NewEVMClient(node.srv.URL).WaitForReceipt(context.Background(), common.HexToHash("0x1"), 5*time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), r.Status)
	assert.Equal(t, uint64(100), r.BlockNumber)
	assert.Equal(t, uint64(21000), r.GasUsed)
	assert.Equal(t, common.HexToAddress("0xcc"), r.ContractAddress)
	assert.Equal(t, 3, node.count("eth_getTransactionReceipt"))
}

func TestWaitForReceiptReverted(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_getTransactionReceipt", map[string]any{
		"status": "0x0", "blockNumber": "0x1", "gasUsed": "0x1", "contractAddress": nil,
	})

	r, err := NewEVMClient(node.srv.URL).WaitForReceipt(context.Background(), common.HexToHash("0x1"), time.Second, 10*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReverted))
	require.NotNil(t, r)
	assert.Equal(t, uint64(0), r.Status)
}

func TestWaitForReceiptTimeout(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_getTransactionReceipt", nil)

	_, err := NewEVMClient(node.srv.URL).WaitForReceipt(context.Background(), common.HexToHash("0x1"), 50*time.Millisecond, 10*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not mined within")
}

func TestPendingNonceUsesPendingTag(t *testing.T) {
	node := newFakeNode(t)
	var tag string
	node.on("eth_getTransactionCount", func(params []json.RawMessage) (any, *RPCError) {
		assert.NoError(t, json.Unmarshal(params[1], &tag))
		return "0x2a", nil
	})

	n, err := NewEVMClient(node.srv.URL).PendingNonce(context.Background(), common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)
	assert.Equal(t, "pending", tag)
}

func TestBalanceAtAndCodeAt(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_getBalance", "0xde0b6b3a7640000")
	node.result("eth_getCode", "0x")

	c := NewEVMClient(node.srv.URL)
	bal, err := c.BalanceAt(context.Background(), common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.Equal(t, "1.0", FormatEther(bal))

	code, err := c.CodeAt(context.Background(), common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.Empty(t, code)
}
