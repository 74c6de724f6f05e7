package socket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"

	"PairTalk/client/internal/models"
)

// Client maintains the push channel: a single reader goroutine delivers
// inbound envelopes in arrival order, and a mutex guards outbound writes.
// Reconnection lives here, not in the engine; the engine never retries.
type Client struct {
	url   string
	token func() string

	mu   sync.Mutex
	conn *websocket.Conn

	events chan models.Envelope
}

func NewClient(url string, token func() string) *Client {
	return &Client{
		url:    url,
		token:  token,
		events: make(chan models.Envelope, 64),
	}
}

// Events is the serialized inbound stream. Closed when Run returns.
func (c *Client) Events() <-chan models.Envelope {
	return c.events
}

// Run connects and pumps inbound frames until the context is cancelled,
// reconnecting with capped backoff after a broken read.
func (c *Client) Run(ctx context.Context) {
	defer close(c.events)

	for {
		if err := c.connect(ctx); err != nil {
			log.Printf("Push channel unavailable: %v", err)
			return
		}

		if err := c.readLoop(ctx); err != nil {
			log.Printf("Push channel read stopped: %v", err)
		}
		c.Close()

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (c *Client) connect(ctx context.Context) error {
	b := retry.WithCappedDuration(10*time.Second, retry.NewFibonacci(500*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := c.dial(ctx); err != nil {
			log.Printf("Push channel dial failed: %v", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (c *Client) dial(ctx context.Context) error {
	url := c.url
	if token := c.token(); token != "" {
		url += "?token=" + token
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return errors.Wrapf(err, "dialing %s", c.url)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	log.Printf("Connected to push channel at %s", c.url)
	return nil
}

func (c *Client) readLoop(ctx context.Context) error {
	conn := c.current()
	if conn == nil {
		return errors.New("not connected")
	}

	for {
		var env models.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}

		select {
		case c.events <- env:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// Emit writes one outbound event. A failed write is terminal for the caller;
// the read loop notices the broken connection and reconnects on its own.
func (c *Client) Emit(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("push channel not connected")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encoding event data")
	}

	if err := c.conn.WriteJSON(models.Envelope{Event: event, Data: raw}); err != nil {
		return errors.Wrapf(err, "sending %s", event)
	}
	return nil
}

// Close drops the current connection. Run's read loop unblocks with an error
// and either reconnects or, after cancellation, returns.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
