package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"nestkeeper/internal/domain"
)

var log = logrus.New()

// frame mirrors the client wire protocol: sub/unsub/pub in, event/ok out.
type frame struct {
	Op     string         `json:"op"`
	ID     string         `json:"id,omitempty"`
	Filter *domain.Filter `json:"filter,omitempty"`
	Event  *domain.Event  `json:"event,omitempty"`
}

type subscriber struct {
	conn   *conn
	id     string
	filter domain.Filter
}

type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (c *conn) send(f frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(f)
}

// hub fans published events out to every matching subscription.
type hub struct {
	mu   sync.RWMutex
	subs map[*conn]map[string]*subscriber
}

func newHub() *hub {
	return &hub{subs: make(map[*conn]map[string]*subscriber)}
}

func (h *hub) subscribe(c *conn, id string, filter domain.Filter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[c] == nil {
		h.subs[c] = make(map[string]*subscriber)
	}
	h.subs[c][id] = &subscriber{conn: c, id: id, filter: filter}
}

func (h *hub) unsubscribe(c *conn, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[c], id)
}

func (h *hub) drop(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, c)
}

func (h *hub) broadcast(ev domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, byID := range h.subs {
		for _, s := range byID {
			if !s.filter.Matches(ev) {
				continue
			}
			if err := s.conn.send(frame{Op: "event", ID: s.id, Event: &ev}); err != nil {
				log.WithError(err).Debug("dropping slow subscriber write")
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	// Local development relay: accept any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func serve(h *hub, w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade failed")
		return
	}
	c := &conn{ws: ws}
	defer func() {
		h.drop(c)
		_ = ws.Close()
	}()
	log.WithField("remote", r.RemoteAddr).Info("client connected")

	for {
		var f frame
		if err := ws.ReadJSON(&f); err != nil {
			log.WithField("remote", r.RemoteAddr).Info("client disconnected")
			return
		}
		switch f.Op {
		case "sub":
			if f.ID == "" || f.Filter == nil {
				continue
			}
			h.subscribe(c, f.ID, *f.Filter)
			_ = c.send(frame{Op: "ok", ID: f.ID})
		case "unsub":
			h.unsubscribe(c, f.ID)
		case "pub":
			if f.Event == nil {
				continue
			}
			h.broadcast(*f.Event)
			_ = c.send(frame{Op: "ok", ID: f.Event.ID})
		default:
			// Unknown ops are ignored so older clients keep working.
			b, _ := json.Marshal(f)
			log.WithField("frame", string(b)).Debug("ignoring unknown op")
		}
	}
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	h := newHub()
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		serve(h, w, r)
	})

	log.WithField("addr", *addr).Info("relay listening")
	log.Fatal(http.ListenAndServe(*addr, nil))
}
