package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"cafeteria/internal/ledger"
	"cafeteria/internal/models"
	"cafeteria/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Feed polls the order ledger on a fixed interval and pushes the full
// snapshot to every websocket subscriber. Each poll replaces the previous
// working set; subscribers never receive incremental merges, so a client is
// at most one interval stale but never internally inconsistent.
type Feed struct {
	ledger   *ledger.Ledger
	interval time.Duration
	monitor  *monitoring.Monitor

	mu     sync.Mutex
	subs   map[*feedClient]struct{}
	cancel context.CancelFunc
}

// Snapshot is one poll result pushed to subscribers.
type Snapshot struct {
	Type   string         `json:"type"`
	Orders []models.Order `json:"orders"`
}

// NewFeed creates a feed over the given ledger.
func NewFeed(l *ledger.Ledger, interval time.Duration, monitor *monitoring.Monitor) *Feed {
	return &Feed{
		ledger:   l,
		interval: interval,
		monitor:  monitor,
		subs:     make(map[*feedClient]struct{}),
	}
}

// Start launches the poll loop. Stop cancels it.
func (f *Feed) Start(ctx context.Context) {
	ctx, f.cancel = context.WithCancel(ctx)
	go f.run(ctx)
}

// Stop cancels the poll loop. Connected subscribers stay connected but
// receive no further snapshots.
func (f *Feed) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *Feed) run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.poll(ctx)
		}
	}
}

func (f *Feed) poll(ctx context.Context) {
	orders, err := f.ledger.ListAll(ctx)
	if err != nil {
		log.Printf("order feed poll failed: %v", err)
		return
	}

	data, err := json.Marshal(Snapshot{Type: "orders", Orders: orders})
	if err != nil {
		log.Printf("order feed marshal failed: %v", err)
		return
	}

	f.mu.Lock()
	for sub := range f.subs {
		select {
		case sub.send <- data:
		default:
			log.Println("order feed buffer full, dropping snapshot")
		}
	}
	subscribers := len(f.subs)
	f.mu.Unlock()

	if f.monitor != nil {
		f.monitor.RecordSnapshot(len(orders), subscribers)
	}
}

func (f *Feed) register(sub *feedClient) {
	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	monitoring.FeedSubscribers.Inc()
}

func (f *Feed) unregister(sub *feedClient) {
	f.mu.Lock()
	if _, ok := f.subs[sub]; ok {
		delete(f.subs, sub)
		close(sub.send)
		monitoring.FeedSubscribers.Dec()
	}
	f.mu.Unlock()
}

// feedClient maintains one subscriber connection.
type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// OrderFeed upgrades the connection and subscribes it to ledger snapshots.
// The first snapshot is pushed immediately rather than waiting a full poll
// interval.
func (s *Server) OrderFeed(c *gin.Context) {
	if s.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order feed not running"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}

	sub := &feedClient{conn: conn, send: make(chan []byte, 8)}
	s.feed.register(sub)

	orders, err := s.session.Orders.ListAll(c.Request.Context())
	if err == nil {
		if data, merr := json.Marshal(Snapshot{Type: "orders", Orders: orders}); merr == nil {
			sub.send <- data
		}
	}

	go sub.writePump()
	go sub.readPump(s.feed)
}

// readPump drains client messages until the connection drops, then
// unsubscribes.
func (c *feedClient) readPump(f *Feed) {
	defer func() {
		f.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("order feed connection error: %v", err)
			}
			return
		}
	}
}

// writePump pushes queued snapshots and keeps the connection alive with
// pings.
func (c *feedClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
