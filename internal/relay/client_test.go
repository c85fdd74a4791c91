package relay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestkeeper/internal/domain"
	"nestkeeper/internal/relay"
)

// testFrame mirrors the client wire protocol for the in-test relay.
type testFrame struct {
	Op     string         `json:"op"`
	ID     string         `json:"id,omitempty"`
	Filter *domain.Filter `json:"filter,omitempty"`
	Event  *domain.Event  `json:"event,omitempty"`
}

// newTestRelay runs a single-connection relay: subscriptions and publishes
// from the same websocket, events fanned back to matching filters.
func newTestRelay(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		var writeMu sync.Mutex
		subs := map[string]domain.Filter{}
		for {
			var f testFrame
			if err := ws.ReadJSON(&f); err != nil {
				return
			}
			switch f.Op {
			case "sub":
				if f.Filter != nil {
					subs[f.ID] = *f.Filter
				}
			case "unsub":
				delete(subs, f.ID)
			case "pub":
				if f.Event == nil {
					continue
				}
				for id, filter := range subs {
					if filter.Matches(*f.Event) {
						writeMu.Lock()
						_ = ws.WriteJSON(testFrame{Op: "event", ID: id, Event: f.Event})
						writeMu.Unlock()
					}
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSubscribePublishRoundTrip(t *testing.T) {
	srv := newTestRelay(t)
	c, err := relay.Dial(context.Background(), wsURL(srv), quietLog())
	require.NoError(t, err)
	defer c.Close()

	to := strings.Repeat("ab", 32)
	sub, err := c.Subscribe(context.Background(), domain.Filter{To: to, Kinds: []int{domain.KindPairing}})
	require.NoError(t, err)
	defer sub.Close()

	// A non-matching publish must not reach the subscription.
	require.NoError(t, c.Publish(context.Background(), domain.Event{
		Kind: domain.KindPairing, To: strings.Repeat("cd", 32), Content: "wrong-recipient",
	}))
	require.NoError(t, c.Publish(context.Background(), domain.Event{
		Kind: domain.KindPing, To: to, Content: "wrong-kind",
	}))
	require.NoError(t, c.Publish(context.Background(), domain.Event{
		Kind: domain.KindPairing, To: to, Content: "expected",
	}))

	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok)
		assert.Equal(t, "expected", ev.Content, "only the matching event is delivered")
		assert.NotEmpty(t, ev.ID, "publish fills in the event id")
		assert.NotZero(t, ev.CreatedAt)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestSubscriptionCloseEndsStream(t *testing.T) {
	srv := newTestRelay(t)
	c, err := relay.Dial(context.Background(), wsURL(srv), quietLog())
	require.NoError(t, err)
	defer c.Close()

	sub, err := c.Subscribe(context.Background(), domain.Filter{To: strings.Repeat("ab", 32)})
	require.NoError(t, err)

	sub.Close()
	sub.Close() // idempotent

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel closes with the subscription")
	case <-time.After(time.Second):
		t.Fatal("events channel still open")
	}
}

func TestSubscriptionEndsWithContext(t *testing.T) {
	srv := newTestRelay(t)
	c, err := relay.Dial(context.Background(), wsURL(srv), quietLog())
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := c.Subscribe(ctx, domain.Filter{To: strings.Repeat("ab", 32)})
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "cancelling the context closes the stream")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel still open after context cancel")
	}
}

func TestClientCloseIsIdempotent(t *testing.T) {
	srv := newTestRelay(t)
	c, err := relay.Dial(context.Background(), wsURL(srv), quietLog())
	require.NoError(t, err)

	sub, err := c.Subscribe(context.Background(), domain.Filter{To: strings.Repeat("ab", 32)})
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "subscriptions end when the client closes")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel still open after client close")
	}

	_, err = c.Subscribe(context.Background(), domain.Filter{})
	assert.Error(t, err, "no new subscriptions on a closed client")

	err = c.Publish(context.Background(), domain.Event{})
	assert.Error(t, err, "no publishes on a closed client")
}
