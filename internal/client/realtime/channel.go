// Package realtime keeps the WebSocket connection to the chat server for the
// lifetime of a session.
//
// A Channel dials the server, delivers decoded inbound messages in arrival
// order, sends composed text, and reconnects after any drop according to its
// RetryPolicy. Its lifecycle is the Status machine in status.go; every change
// is reported through Options.OnStatus.
package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultWriteWait = 10 * time.Second
	defaultPongWait  = 60 * time.Second
)

// Options configure a Channel. Only URL is required.
//
// OnMessage and OnStatus run on channel goroutines, one call at a time and
// in order. They must not call Close.
type Options struct {
	URL    string
	Policy RetryPolicy

	// PingInterval <= 0 disables keepalive. With keepalive on, a connection
	// silent for longer than PongWait is treated as dropped.
	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration

	OnMessage func(models.Message)
	OnStatus  func(Status)

	Dialer Dialer
	Wait   WaitFunc
	Logger logging.Logger
}

type Channel struct {
	opts Options
	log  logging.Logger

	// notifyMu keeps status changes and their callbacks in order.
	notifyMu sync.Mutex

	mu     sync.Mutex
	status Status
	conn   Conn
	cancel context.CancelFunc
	done   chan struct{}

	writeMu sync.Mutex
	dropped atomic.Int64
}

func New(opts Options) *Channel {
	if opts.Dialer == nil {
		opts.Dialer = NewWSDialer(defaultWriteWait)
	}
	if opts.Wait == nil {
		opts.Wait = sleep
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = defaultWriteWait
	}
	if opts.PongWait <= 0 {
		opts.PongWait = defaultPongWait
	}

	return &Channel{
		opts:   opts,
		log:    opts.Logger.With("component", "realtime"),
		status: StatusUninstantiated,
	}
}

// Connect starts the connection loop and returns at once; progress is
// observed through OnStatus. The token travels as a query parameter.
// The loop runs until Close, ctx cancellation, or an exhausted policy.
func (c *Channel) Connect(ctx context.Context, token string) error {
	endpoint, err := endpointWithToken(c.opts.URL, token)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go c.run(loopCtx, endpoint, done)
	return nil
}

// Send writes {"text": text} as one frame. There is no acknowledgement and
// no local echo.
func (c *Channel) Send(text string) error {
	c.mu.Lock()
	conn, status := c.conn, c.status
	c.mu.Unlock()

	if status != StatusOpen || conn == nil {
		return ErrNotConnected
	}

	payload, err := EncodeText(text)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Close stops the loop. An open connection goes through Closing and gets a
// normal-closure frame first. Close waits for the channel goroutines and is
// safe to call more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	cancel, done, conn := c.cancel, c.done, c.conn
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}

	if conn != nil && c.transition(StatusOpen, StatusClosing) {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.opts.WriteWait)); err != nil {
			c.log.Debug(context.Background(), "close frame not sent", "error", err)
		}
	}

	cancel()
	<-done
	return nil
}

func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Dropped counts inbound frames discarded as malformed.
func (c *Channel) Dropped() int64 {
	return c.dropped.Load()
}

func (c *Channel) run(ctx context.Context, endpoint string, done chan struct{}) {
	defer func() {
		c.mu.Lock()
		if c.done == done {
			c.cancel()
			c.cancel, c.done = nil, nil
		}
		c.mu.Unlock()
		close(done)
	}()

	failures := 0
	for {
		c.moveTo(StatusConnecting)

		log := c.log.With("conn_id", uuid.NewString())
		conn, err := c.opts.Dialer.Dial(ctx, endpoint)
		if err != nil {
			log.Warn(ctx, "connect failed", "error", err)
			c.moveTo(StatusClosed)
		} else {
			failures = 0
			c.setConn(conn)
			c.moveTo(StatusOpen)
			log.Info(ctx, "channel open")

			err = c.serve(ctx, conn, log)

			c.setConn(nil)
			_ = conn.Close()
			c.moveTo(StatusClosed)
			log.Info(ctx, "channel closed", "reason", err)
		}

		if ctx.Err() != nil || c.detached(done) {
			return
		}

		failures++
		delay, ok := c.opts.Policy.Next(failures)
		if !ok {
			log.Warn(ctx, "reconnect attempts exhausted", "attempts", failures-1)
			return
		}
		log.Debug(ctx, "reconnecting", "attempt", failures, "delay", delay)
		if err := c.opts.Wait(ctx, delay); err != nil {
			return
		}
	}
}

// serve reads frames until the connection fails or ctx is done.
func (c *Channel) serve(ctx context.Context, conn Conn, log logging.Logger) error {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	keepalive := c.opts.PingInterval > 0
	if keepalive {
		_ = conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		})
		go c.keepalive(ctx, conn, log, stop)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if keepalive {
			_ = conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		}

		msg, err := DecodeMessage(data)
		if err != nil {
			c.dropped.Add(1)
			log.Warn(ctx, "dropping inbound frame", "error", err, "size", len(data))
			continue
		}

		if c.opts.OnMessage != nil {
			c.opts.OnMessage(msg)
		}
	}
}

func (c *Channel) keepalive(ctx context.Context, conn Conn, log logging.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.opts.WriteWait)); err != nil {
				log.Debug(ctx, "ping failed", "error", err)
				return
			}
		}
	}
}

// detached reports whether Close has already taken this loop over.
func (c *Channel) detached(done chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done != done
}

func (c *Channel) setConn(conn Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

// moveTo changes status from whatever it is now.
func (c *Channel) moveTo(to Status) bool {
	return c.change(func(from Status) bool { return CanTransition(from, to) }, to)
}

// transition changes status only when it currently equals from.
func (c *Channel) transition(from, to Status) bool {
	return c.change(func(cur Status) bool { return cur == from && CanTransition(from, to) }, to)
}

func (c *Channel) change(allowed func(Status) bool, to Status) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	from := c.status
	if from == to {
		c.mu.Unlock()
		return false
	}
	if !allowed(from) {
		c.mu.Unlock()
		c.log.Debug(context.Background(), "status change rejected", "from", from, "to", to)
		return false
	}
	c.status = to
	c.mu.Unlock()

	if c.opts.OnStatus != nil {
		c.opts.OnStatus(to)
	}
	return true
}
