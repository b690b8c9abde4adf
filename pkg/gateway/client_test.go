package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mbgatectl/pkg/gateway"
	"mbgatectl/pkg/generic"
	"mbgatectl/pkg/simulator"
)

func newGatewayStub(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *gateway.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, gateway.New(srv.URL)
}

func TestReadRegisters(t *testing.T) {
	_, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/modbus/read", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 1, body["slave_id"])
		assert.EqualValues(t, 0, body["address"])
		assert.EqualValues(t, 10, body["quantity"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"slave_id": 1,
			"address":  0,
			"values":   []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		})
	})

	result, err := client.ReadRegisters(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, result.Values, 10)
	for i, v := range result.Values {
		assert.Equal(t, uint16(i), v)
	}
}

func TestReadRegistersRejectedCarriesDetailURL(t *testing.T) {
	srv, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
	})

	_, err := client.ReadRegisters(context.Background(), 1, 0, 2)
	require.True(t, gateway.IsGatewayFailure(err))
	assert.Equal(t, gateway.FailureRejected, gateway.FailureCategoryOf(err))
	assert.Contains(t, err.Error(), srv.URL+"/api/logs")
}

func TestValidationFailsBeforeAnyNetworkCall(t *testing.T) {
	calls := 0
	_, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.ReadRegisters(context.Background(), 1, 65535, 2)
	require.True(t, gateway.IsValidationError(err))

	_, err = client.WriteRegisters(context.Background(), 0, 0, []uint16{1})
	require.True(t, gateway.IsValidationError(err))

	_, err = client.WriteRegisters(context.Background(), 1, 0, nil)
	require.True(t, gateway.IsValidationError(err))

	assert.Zero(t, calls)
}

func TestTransportFailureClassification(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		t.Cleanup(srv.Close)
		client := gateway.New(srv.URL, gateway.WithTimeout(30*time.Millisecond))

		_, err := client.ReadRegisters(context.Background(), 1, 0, 1)
		require.True(t, gateway.IsTransportError(err))
		assert.Equal(t, gateway.TransportTimeout, gateway.TransportCategoryOf(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		_, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.ReadRegisters(ctx, 1, 0, 1)
		require.True(t, gateway.IsTransportError(err))
		assert.Equal(t, gateway.TransportCancelled, gateway.TransportCategoryOf(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := gateway.New(url).ReadRegisters(context.Background(), 1, 0, 1)
		require.True(t, gateway.IsTransportError(err))
		assert.Equal(t, gateway.TransportUnreachable, gateway.TransportCategoryOf(err))
	})

	t.Run("undecodable body", func(t *testing.T) {
		_, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>device busy</html>"))
		})

		_, err := client.ReadRegisters(context.Background(), 1, 0, 1)
		require.True(t, gateway.IsTransportError(err))
		assert.Equal(t, gateway.TransportBadReply, gateway.TransportCategoryOf(err))
	})

	t.Run("http error status", func(t *testing.T) {
		_, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := client.ReadRegisters(context.Background(), 1, 0, 1)
		require.True(t, gateway.IsTransportError(err))
		assert.Equal(t, gateway.TransportBadReply, gateway.TransportCategoryOf(err))
	})
}

func TestWriteShapeSelection(t *testing.T) {
	var bodies []map[string]interface{}
	_, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)

		count := 1
		if values, ok := body["values"].([]interface{}); ok {
			count = len(values)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"slave_id": body["slave_id"],
			"address":  body["address"],
			"count":    count,
		})
	})

	result, err := client.WriteRegisters(context.Background(), 1, 100, []uint16{1234})
	require.NoError(t, err)
	assert.Equal(t, uint16(1), result.Count)

	result, err = client.WriteRegisters(context.Background(), 1, 100, []uint16{1234, 5678})
	require.NoError(t, err)
	assert.Equal(t, uint16(2), result.Count)

	require.Len(t, bodies, 2)
	assert.Contains(t, bodies[0], "value")
	assert.NotContains(t, bodies[0], "values")
	assert.Contains(t, bodies[1], "values")
	assert.NotContains(t, bodies[1], "value")
}

func newSimulatedGateway(t *testing.T) (*httptest.Server, *gateway.Client) {
	t.Helper()
	router := generic.Default()
	simulator.InstallHandler(router.Group("/api"), simulator.NewManager(simulator.WithSlaves(1, 2)))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, gateway.New(srv.URL)
}

func TestRoundTripAgainstSimulatedGateway(t *testing.T) {
	_, client := newSimulatedGateway(t)
	ctx := context.Background()

	written := []uint16{11, 22, 33}
	wres, err := client.WriteRegisters(ctx, 1, 100, written)
	require.NoError(t, err)
	assert.Equal(t, uint16(3), wres.Count)
	assert.Equal(t, uint16(100), wres.Address)

	rres, err := client.ReadRegisters(ctx, 1, 100, 3)
	require.NoError(t, err)
	assert.Equal(t, written, rres.Values)

	// the other slave's register space is untouched
	rres, err = client.ReadRegisters(ctx, 2, 100, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 0, 0}, rres.Values)
}

func TestSingleAndBatchWriteObservablyEquivalent(t *testing.T) {
	srv, client := newSimulatedGateway(t)
	ctx := context.Background()

	single, err := client.WriteRegisters(ctx, 1, 10, []uint16{4321})
	require.NoError(t, err)
	assert.Equal(t, uint16(1), single.Count)

	// a one-element batch body lands identically
	resp, err := http.Post(srv.URL+"/api/modbus/write", "application/json",
		strings.NewReader(`{"slave_id":1,"address":10,"values":[4321]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	var reply struct {
		Success bool   `json:"success"`
		Address uint16 `json:"address"`
		Count   uint16 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.True(t, reply.Success)
	assert.Equal(t, single.Address, reply.Address)
	assert.Equal(t, single.Count, reply.Count)

	rres, err := client.ReadRegisters(ctx, 1, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint16{4321}, rres.Values)
}

func TestUnknownSlaveIsRejectedBySimulatedGateway(t *testing.T) {
	_, client := newSimulatedGateway(t)

	_, err := client.ReadRegisters(context.Background(), 9, 0, 1)
	require.True(t, gateway.IsGatewayFailure(err))
	assert.Equal(t, gateway.FailureRejected, gateway.FailureCategoryOf(err))
}

func TestGetLogs(t *testing.T) {
	_, client := newGatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/logs", r.URL.Path)
		_, _ = w.Write([]byte(`{"entries":[]}`))
	})

	body, err := client.GetLogs(context.Background())
	require.NoError(t, err)
	assert.Contains(t, body, "entries")
}
