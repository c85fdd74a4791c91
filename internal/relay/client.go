package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"nestkeeper/internal/domain"
)

// frame is the JSON message exchanged with the relay. Clients send sub,
// unsub and pub; the relay sends event (tagged with the subscription id)
// and ok.
type frame struct {
	Op     string         `json:"op"`
	ID     string         `json:"id,omitempty"`
	Filter *domain.Filter `json:"filter,omitempty"`
	Event  *domain.Event  `json:"event,omitempty"`
}

// subEventBuffer bounds how many undelivered events a subscription holds
// before the read pump starts dropping for it.
const subEventBuffer = 16

// Client speaks the relay wire protocol over a single websocket. One Client
// covers one relay; it does not retry or reconnect.
type Client struct {
	url  string
	log  *logrus.Entry
	conn *websocket.Conn

	writeMu sync.Mutex
	mu      sync.Mutex
	subs    map[string]*subscription
	closed  atomic.Bool
}

// Dial connects to the relay at wsURL and starts the read pump.
func Dial(ctx context.Context, wsURL string, log *logrus.Logger) (*Client, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("relay dial %s: %w", wsURL, err)
	}
	c := &Client{
		url:  wsURL,
		log:  log.WithField("relay", wsURL),
		conn: conn,
		subs: make(map[string]*subscription),
	}
	go c.readPump()
	return c, nil
}

// Subscribe opens one filtered stream. The subscription ends when Close is
// called on it, when ctx is cancelled, or when the connection dies; its
// Events channel is closed in every case.
func (c *Client) Subscribe(ctx context.Context, filter domain.Filter) (domain.Subscription, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("relay %s: client closed", c.url)
	}

	s := &subscription{
		id:   uuid.NewString(),
		c:    c,
		ch:   make(chan domain.Event, subEventBuffer),
		done: make(chan struct{}),
	}

	c.mu.Lock()
	c.subs[s.id] = s
	c.mu.Unlock()

	if err := c.send(frame{Op: "sub", ID: s.id, Filter: &filter}); err != nil {
		s.terminate(false)
		return nil, fmt.Errorf("relay subscribe: %w", err)
	}
	c.log.WithField("sub", s.id).Debug("subscription opened")

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
	return s, nil
}

// Publish sends one event to the relay, filling in ID and CreatedAt when
// the caller left them zero.
func (c *Client) Publish(ctx context.Context, ev domain.Event) error {
	if c.closed.Load() {
		return fmt.Errorf("relay %s: client closed", c.url)
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt == 0 {
		ev.CreatedAt = time.Now().Unix()
	}
	if deadline, ok := ctx.Deadline(); ok {
		c.writeMu.Lock()
		_ = c.conn.SetWriteDeadline(deadline)
		c.writeMu.Unlock()
	}
	return c.send(frame{Op: "pub", Event: &ev})
}

// Close tears the connection down. Safe to call more than once; all open
// subscriptions end as the read pump exits.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) send(f frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(f)
}

// readPump demultiplexes inbound frames to subscriptions by id. It owns the
// lifecycle end of every subscription channel: channels close here or in
// subscription.terminate, never elsewhere.
func (c *Client) readPump() {
	defer c.terminateAll()
	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if !c.closed.Load() {
				c.log.WithError(err).Debug("relay read loop ended")
			}
			return
		}
		if f.Op != "event" || f.Event == nil {
			continue
		}
		c.mu.Lock()
		if s, ok := c.subs[f.ID]; ok {
			select {
			case s.ch <- *f.Event:
			default:
				c.log.WithField("sub", f.ID).Warn("subscription buffer full, dropping event")
			}
		}
		c.mu.Unlock()
	}
}

func (c *Client) terminateAll() {
	c.mu.Lock()
	subs := make([]*subscription, 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()
	for _, s := range subs {
		s.terminate(false)
	}
}

// subscription is one live filter registered on the relay.
type subscription struct {
	id   string
	c    *Client
	ch   chan domain.Event
	done chan struct{}
	once sync.Once
}

// Events returns the inbound stream. It is closed when the subscription
// ends.
func (s *subscription) Events() <-chan domain.Event { return s.ch }

// Close ends the subscription. Idempotent.
func (s *subscription) Close() { s.terminate(true) }

func (s *subscription) terminate(sendUnsub bool) {
	s.once.Do(func() {
		s.c.mu.Lock()
		delete(s.c.subs, s.id)
		close(s.ch)
		s.c.mu.Unlock()
		close(s.done)
		if sendUnsub && !s.c.closed.Load() {
			_ = s.c.send(frame{Op: "unsub", ID: s.id})
		}
	})
}

// Compile-time assertions against the consumed capabilities.
var (
	_ domain.RelayClient  = (*Client)(nil)
	_ domain.Subscription = (*subscription)(nil)
)
