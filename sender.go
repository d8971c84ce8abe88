package sender

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 9001
)

// healthProbeWindow bounds how long the fallback connection check waits for
// the peer to reveal a closed or reset socket.
const healthProbeWindow = time.Millisecond

type ErrorListener func(err error)

type Config struct {
	// Endpoint is the agent's "host:port". When set, Host and Port are ignored.
	Endpoint string
	// Host defaults to DefaultHost.
	Host string
	// Port defaults to DefaultPort.
	Port int

	// DialTimeout and WriteTimeout are disabled when zero.
	DialTimeout  time.Duration
	WriteTimeout time.Duration

	// CloseAfterReport closes the connection at the end of every Report and
	// ReportAll instead of keeping it open for the next call.
	CloseAfterReport bool

	// Encoder defaults to LineEncoder.
	Encoder Encoder
	Logger  *slog.Logger
	// ErrorListener, when set, is also given every error Report and ReportAll return.
	ErrorListener
}

// Client reports metrics over a single TCP connection to the monitoring agent.
// The connection is opened by the first report and reused until it is found
// closed, in which case the next report reconnects.
//
// A Client is not safe for concurrent use. Callers reporting from several
// goroutines must serialize access or use one Client per goroutine.
type Client struct {
	ctx     context.Context
	config  Config
	addr    string
	dialer  net.Dialer
	encoder Encoder
	logger  *slog.Logger

	// conn is nil while disconnected.
	conn net.Conn
}

func NewClient(ctx context.Context, config Config) (*Client, error) {
	addr := config.Endpoint
	if addr == "" {
		host := config.Host
		if host == "" {
			host = DefaultHost
		}
		port := config.Port
		if port == 0 {
			port = DefaultPort
		}
		if port < 0 || port > 65535 {
			return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidArgument, port)
		}
		addr = net.JoinHostPort(host, strconv.Itoa(port))
	} else if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("%w: endpoint %q: %v", ErrInvalidArgument, addr, err)
	}

	encoder := config.Encoder
	if encoder == nil {
		encoder = LineEncoder{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return &Client{
		ctx:     ctx,
		config:  config,
		addr:    addr,
		dialer:  net.Dialer{Timeout: config.DialTimeout},
		encoder: encoder,
		logger:  logger.With(slog.String("agent", addr)),
	}, nil
}

// Addr is the "host:port" the client connects to.
func (c *Client) Addr() string {
	return c.addr
}

// Connected reports whether the client holds an open connection. It does not
// probe the connection.
func (c *Client) Connected() bool {
	return c.conn != nil
}

// Report writes one metric to the agent, connecting first if needed.
// Nothing is read back from the agent; a failed write loses the metric.
func (c *Client) Report(m *Metric) error {
	if m == nil {
		return c.reportError(fmt.Errorf("%w: metric is nil", ErrInvalidArgument))
	}
	return c.ReportAll([]*Metric{m})
}

// ReportAll writes the metrics in order over one connection, opening it at most once.
// The first failure stops the batch; the remaining metrics are not sent.
// A nil metric anywhere in the batch rejects the whole batch before anything is written.
func (c *Client) ReportAll(metrics []*Metric) error {
	lines := make([]string, len(metrics))
	for i, m := range metrics {
		line, err := c.encoder.Encode(m)
		if err != nil {
			return c.reportError(fmt.Errorf("metric %d: %w", i, err))
		}
		lines[i] = line
	}
	if len(lines) == 0 {
		return nil
	}

	if c.config.CloseAfterReport {
		defer c.Close()
	}

	conn, err := c.connection()
	if err != nil {
		return c.reportError(err)
	}

	for _, line := range lines {
		if err := c.write(conn, line); err != nil {
			return c.reportError(err)
		}
	}
	return nil
}

// Close releases the connection. It is a no-op when disconnected.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.logger.Debug("closed connection")
	if err != nil && !errors.Is(err, net.ErrClosed) {
		c.logger.Debug("error while closing connection", slog.String("error", err.Error()))
	}
	return nil
}

func (c *Client) connection() (net.Conn, error) {
	if c.conn != nil {
		if c.healthy(c.conn) {
			return c.conn, nil
		}
		c.logger.Debug("connection lost, reconnecting")
		c.Close()
	}

	conn, err := c.dialer.DialContext(c.ctx, "tcp", c.addr)
	if err != nil {
		return nil, &ConnectionError{Op: "connect", Addr: c.addr, Err: err}
	}
	c.logger.Debug("connected", slog.String("local", conn.LocalAddr().String()))
	c.conn = conn
	return conn, nil
}

// healthy reports whether the peer has not closed or reset conn. Sockets are
// peeked without blocking; other conns fall back to a short read. The agent
// never writes to us, so a timeout means the connection is still open.
func (c *Client) healthy(conn net.Conn) bool {
	if healthy, ok := peekHealthy(conn); ok {
		return healthy
	}

	if err := conn.SetReadDeadline(time.Now().Add(healthProbeWindow)); err != nil {
		return false
	}
	defer conn.SetReadDeadline(time.Time{})

	var b [1]byte
	_, err := conn.Read(b[:])
	if err == nil {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}

func (c *Client) write(conn net.Conn, line string) error {
	if c.config.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout)); err != nil {
			c.Close()
			return &ConnectionError{Op: "write to", Addr: c.addr, Err: err}
		}
	}
	if _, err := conn.Write([]byte(line)); err != nil {
		c.Close()
		return &ConnectionError{Op: "write to", Addr: c.addr, Err: err}
	}
	return nil
}

func (c *Client) reportError(err error) error {
	if c.config.ErrorListener != nil {
		c.config.ErrorListener(err)
	}
	return err
}
