// Package websocket serves live FruitLink games to browsers.
//
// Each connection gets its own session driven by a live.Runner. The read
// pump turns JSON commands into runner commands; a forwarder turns runner
// updates into JSON messages for the write pump. When a game ends the
// outcome is submitted to the ranking collaborator and the rank (or null)
// is sent along with the game over message.
//
// Incoming: {"action":"select","index":3}, {"action":"hint"}, ...
// Outgoing: {"type":"result"|"tick"|"state"|"gameover"|"error", ...}
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/live"
	"github.com/vovakirdan/fruit-link/internal/ranking"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Time allowed for a score submission.
	submitTimeout = 5 * time.Second

	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SessionFactory creates an idle session for a new connection.
type SessionFactory func() *core.Session

// Handler upgrades requests to play connections.
type Handler struct {
	newSession SessionFactory
	submitter  ranking.Submitter
	logger     *log.Logger
	opts       []live.Option
}

// NewHandler creates a play handler. submitter may be nil, in which case
// runs are never ranked.
func NewHandler(newSession SessionFactory, submitter ranking.Submitter, logger *log.Logger, opts ...live.Option) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		newSession: newSession,
		submitter:  submitter,
		logger:     logger,
		opts:       opts,
	}
}

// ServeHTTP handles GET /ws/play?nickname=...&level=... and blocks until
// the connection ends.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	level := 1
	if s := r.URL.Query().Get("level"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, `{"success":false,"message":"invalid level"}`, http.StatusBadRequest)
			return
		}
		level = n
	}

	session := h.newSession()
	if err := session.StartGame(level); err != nil {
		http.Error(w, `{"success":false,"message":"cannot start level"}`, http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{
		conn:      conn,
		runner:    live.New(session, h.opts...),
		send:      make(chan any, sendBuffer),
		nickname:  r.URL.Query().Get("nickname"),
		submitter: h.submitter,
		logger:    h.logger.With("remote", r.RemoteAddr),
	}
	c.serve()
}

// client is one play connection.
type client struct {
	conn      *websocket.Conn
	runner    *live.Runner
	send      chan any
	nickname  string
	submitter ranking.Submitter
	logger    *log.Logger
}

func (c *client) serve() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.logger.Info("play connection opened", "nickname", c.nickname)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		c.runner.Run(ctx) //nolint:errcheck // Always ends with ctx.Err()
	}()
	go func() {
		defer wg.Done()
		c.forward(ctx)
	}()
	go func() {
		defer wg.Done()
		c.writePump()
	}()

	if err := c.runner.Send(ctx, live.Command{Action: live.ActionState}); err == nil {
		c.readPump(ctx)
	}

	cancel()
	wg.Wait()
	c.conn.Close()
	c.logger.Info("play connection closed", "nickname", c.nickname)
}

// readPump decodes commands until the peer goes away.
func (c *client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck // Fails only on closed conns
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("play connection read failed", "err", err)
			}
			return
		}

		var cmd live.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.push(ctx, ErrorMessage{Type: TypeError, Message: "malformed command"})
			continue
		}
		if err := c.runner.Send(ctx, cmd); err != nil {
			return
		}
	}
}

// forward turns runner updates into outgoing messages and closes send once
// the runner has stopped.
func (c *client) forward(ctx context.Context) {
	defer close(c.send)

	for u := range c.runner.Updates() {
		if u.Err != nil {
			c.push(ctx, ErrorMessage{Type: TypeError, Action: u.Action, Message: u.Err.Error()})
		}
		if u.Result != nil {
			c.push(ctx, ResultMessage{Type: TypeResult, Action: u.Action, Kind: u.Result.Action(), Result: u.Result})
		}
		for _, ev := range u.Events {
			switch ev := ev.(type) {
			case core.TickEvent:
				c.push(ctx, TickMessage{Type: TypeTick, TimeLeft: ev.TimeLeft})
			case core.GameOverEvent:
				c.push(ctx, GameOverMessage{Type: TypeGameOver, Outcome: ev.Outcome, Rank: c.submit(ctx, ev.Outcome)})
			}
		}
		if u.Action != "" || u.Result != nil {
			c.push(ctx, StateMessage{Type: TypeState, State: NewStateView(u.State)})
		}
	}
}

// submit records the outcome and returns the rank, nil when unranked.
func (c *client) submit(ctx context.Context, out core.Outcome) *int {
	if c.submitter == nil || c.nickname == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	rank, ok, err := c.submitter.Submit(ctx, c.nickname, out)
	if err != nil {
		c.logger.Warn("score submission failed", "nickname", c.nickname, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	c.logger.Info("score submitted", "nickname", c.nickname, "score", out.Score, "rank", rank)
	return &rank
}

// push queues a message unless the connection is shutting down.
func (c *client) push(ctx context.Context, msg any) {
	select {
	case c.send <- msg:
	case <-ctx.Done():
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // Fails only on closed conns
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck // Best-effort goodbye
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.drain()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // Fails only on closed conns
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.drain()
				return
			}
		}
	}
}

// drain discards messages after a write failure so forward never blocks.
func (c *client) drain() {
	c.conn.Close()
	for range c.send {
	}
}
