package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/DrmagicE/gcolor"
)

const (
	watchQueueSize = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
)

// Event types of the change feed.
const (
	EventColorSet   = "color_set"
	EventRandomized = "randomized"
)

// Event is the message sent to the websocket watchers.
type Event struct {
	Type string `json:"type"`
	// Cell, Color, Label and Previous are set for EventColorSet.
	Cell     *Cell  `json:"cell,omitempty"`
	Color    *uint8 `json:"color,omitempty"`
	Label    string `json:"label,omitempty"`
	Previous *uint8 `json:"previous,omitempty"`
	// Seed is set for EventRandomized.
	Seed int64     `json:"seed,omitempty"`
	Time time.Time `json:"time"`
}

var upgrader = &websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// watcher broadcasts color changes to websocket clients.
type watcher struct {
	mu      sync.Mutex
	closed  bool
	clients map[*watchConn]struct{}
}

type watchConn struct {
	conn *websocket.Conn
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func (w *watchConn) close() {
	w.once.Do(func() {
		close(w.done)
	})
}

func newWatcher() *watcher {
	return &watcher{
		clients: make(map[*watchConn]struct{}),
	}
}

func (w *watcher) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		zaplog.Warn("websocket upgrade error", zap.String("Msg", err.Error()))
		return
	}
	wc := &watchConn{
		conn: c,
		out:  make(chan []byte, watchQueueSize),
		done: make(chan struct{}),
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		c.Close()
		return
	}
	w.clients[wc] = struct{}{}
	w.mu.Unlock()
	zaplog.Debug("watcher connected", zap.String("remote_addr", r.RemoteAddr))

	go w.readLoop(wc)
	w.writeLoop(wc)

	w.mu.Lock()
	delete(w.clients, wc)
	w.mu.Unlock()
	c.Close()
	zaplog.Debug("watcher disconnected", zap.String("remote_addr", r.RemoteAddr))
}

// readLoop discards incoming messages and detects the close of the connection.
func (w *watcher) readLoop(wc *watchConn) {
	defer wc.close()
	wc.conn.SetReadLimit(512)
	_ = wc.conn.SetReadDeadline(time.Now().Add(pongWait))
	wc.conn.SetPongHandler(func(string) error {
		return wc.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := wc.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (w *watcher) writeLoop(wc *watchConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-wc.done:
			_ = wc.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case b := <-wc.out:
			_ = wc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wc.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = wc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// publish sends the event to every watcher. Slow watchers drop the event.
func (w *watcher) publish(e *Event) {
	b, err := json.Marshal(e)
	if err != nil {
		zaplog.Error("marshal event error", zap.Error(err))
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for wc := range w.clients {
		select {
		case wc.out <- b:
		default:
			zaplog.Warn("watcher queue is full, event dropped", zap.String("remote_addr", wc.conn.RemoteAddr().String()))
		}
	}
}

func (w *watcher) len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for wc := range w.clients {
		wc.close()
	}
}

func (w *watcher) onColorSetWrapper(pre OnColorSet) OnColorSet {
	return func(ctx context.Context, cell Cell, old, new gcolor.Color) {
		pre(ctx, cell, old, new)
		c, o := uint8(new), uint8(old)
		w.publish(&Event{
			Type:     EventColorSet,
			Cell:     &cell,
			Color:    &c,
			Label:    new.String(),
			Previous: &o,
			Time:     time.Now(),
		})
	}
}

func (w *watcher) onRandomizedWrapper(pre OnRandomized) OnRandomized {
	return func(ctx context.Context, seed int64) {
		pre(ctx, seed)
		w.publish(&Event{
			Type: EventRandomized,
			Seed: seed,
			Time: time.Now(),
		})
	}
}
