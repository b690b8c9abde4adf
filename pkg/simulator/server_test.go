package simulator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mbgatectl/pkg/generic"
	"mbgatectl/pkg/simulator"
)

func newTestServer(t *testing.T) (*httptest.Server, *simulator.Manager) {
	t.Helper()
	mgr := simulator.NewManager(simulator.WithSlaves(1), simulator.WithLogCapacity(4))
	router := generic.Default()
	simulator.InstallHandler(router.Group("/api"), mgr)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mgr
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	decoded := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestWriteThenRead(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := post(t, srv, "/api/modbus/write", `{"slave_id":1,"address":100,"values":[5,6,7]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 3, body["count"])
	assert.EqualValues(t, 100, body["address"])

	resp, body = post(t, srv, "/api/modbus/read", `{"slave_id":1,"address":100,"quantity":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{float64(5), float64(6), float64(7)}, body["values"])
}

func TestSingleWriteShape(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := post(t, srv, "/api/modbus/write", `{"slave_id":1,"address":0,"value":9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["count"])
}

func TestAddressZeroIsValid(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := post(t, srv, "/api/modbus/read", `{"slave_id":1,"address":0,"quantity":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestBusFailuresReplyUnsuccessful(t *testing.T) {
	srv, _ := newTestServer(t)

	// unknown slave never answers
	resp, body := post(t, srv, "/api/modbus/read", `{"slave_id":7,"address":0,"quantity":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	// register range overflow
	resp, body = post(t, srv, "/api/modbus/read", `{"slave_id":1,"address":65535,"quantity":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestMalformedBodiesAreBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := post(t, srv, "/api/modbus/read", `{"address":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// both write shapes at once
	resp, _ = post(t, srv, "/api/modbus/write", `{"slave_id":1,"address":0,"value":1,"values":[2]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// neither write shape
	resp, _ = post(t, srv, "/api/modbus/write", `{"slave_id":1,"address":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogsAndStatus(t *testing.T) {
	srv, mgr := newTestServer(t)

	for i := 0; i < 6; i++ {
		_, _ = post(t, srv, "/api/modbus/read", `{"slave_id":1,"address":0,"quantity":1}`)
	}
	_, _ = post(t, srv, "/api/modbus/read", `{"slave_id":9,"address":0,"quantity":1}`)

	// the ring keeps only the newest entries
	entries := mgr.Logs()
	require.Len(t, entries, 4)
	last := entries[len(entries)-1]
	assert.Equal(t, "read", last.Op)
	assert.False(t, last.Success)
	assert.NotEmpty(t, last.ID)

	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.EqualValues(t, 7, status["reads"])
	assert.EqualValues(t, 1, status["failures"])
}
