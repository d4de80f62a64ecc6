// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/api/clauses"
	"github.com/umbrella-network/umbledger/api/contracts"
	ledgerapi "github.com/umbrella-network/umbledger/api/ledger"
	"github.com/umbrella-network/umbledger/api/subscriptions"
	"github.com/umbrella-network/umbledger/builtin"
	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/metrics"
	"github.com/umbrella-network/umbledger/test/testledger"
	"github.com/umbrella-network/umbledger/umb"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func newTestServer(t *testing.T) (*testledger.Ledger, *httptest.Server) {
	l := testledger.New(t, nil)
	handler, closeSubs := New(l.Ledger, Options{
		AllowedOrigins:  "*",
		EnableReqLogger: &atomic.Bool{},
		EnableMetrics:   true,
	})
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		closeSubs()
		ts.Close()
	})
	return l, ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}

func httpPost(t *testing.T, url string, body any) ([]byte, int) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}

func encodeCall(t *testing.T, name string, args ...any) hexutil.Bytes {
	data, err := builtin.UMB.EncodeCall(name, args...)
	require.NoError(t, err)
	return data
}

func TestLedgerStatus(t *testing.T) {
	l, ts := newTestServer(t)

	body, code := httpGet(t, ts.URL+"/ledger")
	require.Equal(t, http.StatusOK, code)

	var status ledgerapi.Status
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, l.Genesis().Hash(), status.GenesisHash)
	assert.Equal(t, genesis.DevConfig().LaunchTime, status.LaunchTime)
	assert.Equal(t, status.LaunchTime, status.HeadTime)
}

func TestSetTime(t *testing.T) {
	l, ts := newTestServer(t)
	launch := l.Now()

	body, code := httpPost(t, ts.URL+"/ledger/time", ledgerapi.TimeRequest{Advance: 10})
	require.Equal(t, http.StatusOK, code, string(body))
	var status ledgerapi.Status
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, launch+10, status.HeadTime)

	_, code = httpPost(t, ts.URL+"/ledger/time", ledgerapi.TimeRequest{Time: launch + 100})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, launch+100, l.Now())

	_, code = httpPost(t, ts.URL+"/ledger/time", ledgerapi.TimeRequest{Time: launch})
	assert.Equal(t, http.StatusConflict, code)

	_, code = httpPost(t, ts.URL+"/ledger/time", ledgerapi.TimeRequest{})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, ts.URL+"/ledger/time", ledgerapi.TimeRequest{Time: launch + 200, Advance: 1})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestExecuteAndCall(t *testing.T) {
	l, ts := newTestServer(t)
	accs := l.Accounts()
	umbAddr := l.Contracts().UMB
	amount := genesis.Ether(1).Big()

	body, code := httpPost(t, ts.URL+"/clauses/execute", &clauses.ClauseRequest{
		To:     &umbAddr,
		Data:   encodeCall(t, "transfer", accs[1].Address, amount),
		Caller: &accs[0].Address,
	})
	require.Equal(t, http.StatusOK, code, string(body))

	var out clauses.Output
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Reverted)
	require.Len(t, out.Events, 1)
	assert.Equal(t, umbAddr, out.Events[0].Address)
	assert.Equal(t, builtin.UMB.MustEvent("Transfer").ID(), out.Events[0].Topics[0])

	body, code = httpPost(t, ts.URL+"/clauses/call", &clauses.ClauseRequest{
		To:   &umbAddr,
		Data: encodeCall(t, "balanceOf", accs[1].Address),
	})
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &out))
	values, err := builtin.UMB.MustMethod("balanceOf").DecodeOutputValues(out.Data)
	require.NoError(t, err)
	assert.Equal(t, []any{amount}, values)

	body, code = httpPost(t, ts.URL+"/clauses/execute", &clauses.ClauseRequest{
		To:     &umbAddr,
		Data:   encodeCall(t, "transfer", accs[0].Address, new(big.Int).Add(amount, big.NewInt(1))),
		Caller: &accs[1].Address,
	})
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Reverted)
	assert.Equal(t, "ERC20: transfer amount exceeds balance", out.RevertReason)
	assert.Equal(t, "insufficient_funds", out.RevertKind)
	assert.Empty(t, out.Events)
}

func TestClauseRequestErrors(t *testing.T) {
	l, ts := newTestServer(t)
	umbAddr := l.Contracts().UMB

	tests := []struct {
		name string
		path string
		body any
		code int
	}{
		{"missing caller", "/clauses/execute", &clauses.ClauseRequest{To: &umbAddr}, http.StatusBadRequest},
		{"missing to", "/clauses/call", &clauses.ClauseRequest{}, http.StatusBadRequest},
		{"unknown field", "/clauses/call", map[string]any{"to": umbAddr.String(), "gas": 1}, http.StatusBadRequest},
		{"past time", "/clauses/call", &clauses.ClauseRequest{To: &umbAddr, Time: 1}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := httpPost(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.code, code)
		})
	}

	// subrouters report a method mismatch as not found
	_, code := httpGet(t, ts.URL+"/clauses/execute")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestContracts(t *testing.T) {
	l, ts := newTestServer(t)
	suite := l.Contracts()

	body, code := httpGet(t, ts.URL+"/contracts")
	require.Equal(t, http.StatusOK, code)
	var list []*contracts.Contract
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 6)
	assert.Equal(t, "multiSig", list[0].Name)
	assert.Equal(t, builtin.MultiSig.Kind(), list[0].Kind)
	assert.Equal(t, suite.MultiSig, list[0].Address)
	assert.Equal(t, builtin.Airdrop.Kind(), list[5].Kind)

	body, code = httpGet(t, ts.URL+"/contracts/"+suite.RUMB.String())
	require.Equal(t, http.StatusOK, code)
	var c contracts.Contract
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Equal(t, builtin.RUMB.Kind(), c.Kind)
	assert.Contains(t, string(c.ABI), "swapFor")

	_, code = httpGet(t, ts.URL+"/contracts/"+umb.BytesToAddress([]byte{1}).String())
	assert.Equal(t, http.StatusNotFound, code)

	_, code = httpGet(t, ts.URL+"/contracts/0xzz")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSubscribeEvents(t *testing.T) {
	l, ts := newTestServer(t)
	accs := l.Accounts()
	umbAddr := l.Contracts().UMB

	u := url.URL{
		Scheme:   "ws",
		Host:     strings.TrimPrefix(ts.URL, "http://"),
		Path:     "/subscriptions/events",
		RawQuery: "address=" + umbAddr.String(),
	}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	l.MustExec(accs[0].Address, umbAddr, builtin.UMB, "approve", l.Contracts().Staking, big.NewInt(5))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg subscriptions.ExecutionMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, accs[0].Address, msg.Caller)
	assert.Equal(t, umbAddr, msg.To)
	assert.Equal(t, l.Now(), msg.Time)
	require.Len(t, msg.Events, 1)
	assert.Equal(t, builtin.UMB.MustEvent("Approval").ID(), msg.Events[0].Topics[0])

	_, code := httpGet(t, ts.URL+"/subscriptions/events?address=0x1")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSubscribeAfterClose(t *testing.T) {
	l := testledger.New(t, nil)
	handler, closeSubs := New(l.Ledger, Options{AllowedOrigins: "*", EnableReqLogger: &atomic.Bool{}})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscriptions/events"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		closeSubs()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("close did not wait out the open connection")
	}

	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// closing twice is harmless
	closeSubs()
}

func TestMetricsMiddleware(t *testing.T) {
	_, ts := newTestServer(t)

	httpGet(t, ts.URL+"/ledger")
	httpGet(t, ts.URL+"/ledger")
	httpPost(t, ts.URL+"/ledger/time", ledgerapi.TimeRequest{})

	body, code := httpGet(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, code)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	counts := make(map[string]float64)
	for _, m := range families["umbledger_api_request_count"].GetMetric() {
		labels := make(map[string]string)
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		counts[labels["name"]+" "+labels["method"]+" "+labels["code"]] = m.GetCounter().GetValue()
	}
	assert.GreaterOrEqual(t, counts["ledger_get_status GET 200"], float64(2))
	assert.GreaterOrEqual(t, counts["ledger_set_time POST 400"], float64(1))
	assert.NotContains(t, counts, "metrics GET 200")
	assert.Contains(t, families, "umbledger_api_requests_in_flight")
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Nil(t, parseOrigins(" , "))
	assert.Equal(t, []string{"https://a.io", "*"}, parseOrigins(" https://A.io ,*"))
}

func TestCORS(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/ledger", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dapp.example")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("Access-Control-Allow-Origin"))
}
