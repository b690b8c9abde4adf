package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"mbgatectl/pkg/utils/uuidutil"
)

const (
	readPath  = "/api/modbus/read"
	writePath = "/api/modbus/write"
	logsPath  = "/api/logs"

	// cap on reply body size, a register reply is far below this
	maxReplyBytes = 1 << 16

	_defaultTimeout = 5 * time.Second
)

type Option func(*Client)

// WithTimeout bounds each request/response exchange.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient substitutes the underlying HTTP client, e.g. to share a
// connection pool across gateway clients.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithStrictEcho requires write replies to echo address and count.
func WithStrictEcho(strict bool) Option {
	return func(c *Client) {
		c.strictEcho = strict
	}
}

// Client executes register read/write exchanges against one HTTP gateway.
// It holds no per-call state: concurrent use is safe, and every operation is
// a single exchange with no retries. Retry policy belongs to the caller,
// since replaying a write is not safe without idempotency the gateway does
// not provide.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	strictEcho bool
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: _defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// LogsURL is the gateway diagnostic endpoint referenced in failure detail.
func (c *Client) LogsURL() string {
	return c.baseURL + logsPath
}

// ReadRegisters reads quantity holding registers from slave starting at
// address. Validation failures surface before any network activity.
func (c *Client) ReadRegisters(ctx context.Context, slave, address, quantity uint) (*ReadResult, error) {
	req, err := BuildRead(slave, address, quantity)
	if err != nil {
		return nil, err
	}
	env, err := c.exchange(ctx, readPath, readBody{
		SlaveID:  req.Slave,
		Address:  req.Address,
		Quantity: req.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return InterpretRead(env, req, c.interpretOptions())
}

// WriteRegisters writes values to consecutive holding registers of slave
// starting at address. A one-element payload uses the single-register wire
// shape; the result is identical either way.
func (c *Client) WriteRegisters(ctx context.Context, slave, address uint, values []uint16) (*WriteResult, error) {
	req, err := BuildWrite(slave, address, values)
	if err != nil {
		return nil, err
	}
	env, err := c.exchange(ctx, writePath, writeBodyFor(req))
	if err != nil {
		return nil, err
	}
	return InterpretWrite(env, req, c.interpretOptions())
}

// GetLogs fetches the gateway diagnostic log verbatim. Presentation
// convenience only; read and write never call it.
func (c *Client) GetLogs(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LogsURL(), nil)
	if err != nil {
		return "", &TransportError{Category: TransportUnreachable, Err: err}
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyExchangeError(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", classifyExchangeError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Category: TransportBadReply, Err: errors.Errorf("gateway replied HTTP %d", resp.StatusCode)}
	}
	return string(body), nil
}

func (c *Client) interpretOptions() InterpretOptions {
	return InterpretOptions{
		StrictEcho: c.strictEcho,
		DetailURL:  c.LogsURL(),
	}
}

type readBody struct {
	SlaveID  uint8  `json:"slave_id"`
	Address  uint16 `json:"address"`
	Quantity uint16 `json:"quantity"`
}

type singleWriteBody struct {
	SlaveID uint8  `json:"slave_id"`
	Address uint16 `json:"address"`
	Value   uint16 `json:"value"`
}

type batchWriteBody struct {
	SlaveID uint8    `json:"slave_id"`
	Address uint16   `json:"address"`
	Values  []uint16 `json:"values"`
}

func writeBodyFor(req *WriteRequest) interface{} {
	if len(req.Values) == 1 {
		return singleWriteBody{SlaveID: req.Slave, Address: req.Address, Value: req.Values[0]}
	}
	return batchWriteBody{SlaveID: req.Slave, Address: req.Address, Values: req.Values}
}

// exchange performs one bounded request/response round trip and decodes the
// reply into the tagged envelope. Anything short of a decodable envelope is a
// transport error; a decoded-but-unsuccessful reply is not.
func (c *Client) exchange(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{Category: TransportBadReply, Err: errors.Wrap(err, "encode request body")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestID := uuidutil.ShortUUID()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Category: TransportUnreachable, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)

	klog.V(4).InfoS("Sending gateway request", "path", path, "requestId", requestID)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		klog.V(2).InfoS("Failed to exchange with gateway", "path", path, "requestId", requestID, "err", err)
		return nil, classifyExchangeError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		klog.V(2).InfoS("Failed to read gateway reply", "path", path, "requestId", requestID, "err", err)
		return nil, classifyExchangeError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Category: TransportBadReply, Err: errors.Errorf("gateway replied HTTP %d", resp.StatusCode)}
	}
	env, err := DecodeEnvelope(raw)
	if err != nil {
		return nil, &TransportError{Category: TransportBadReply, Err: err}
	}
	klog.V(4).InfoS("Decoded gateway reply", "path", path, "requestId", requestID, "success", env.Success)
	return env, nil
}

func classifyExchangeError(err error) *TransportError {
	switch {
	case errors.Is(err, context.Canceled):
		return &TransportError{Category: TransportCancelled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &TransportError{Category: TransportTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Category: TransportTimeout, Err: err}
	}
	return &TransportError{Category: TransportUnreachable, Err: err}
}
