package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"energy-dashboard/internal/observability/metrics"
	query "energy-dashboard/internal/query/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Evaluator computes the five views for a selection.
type Evaluator interface {
	Evaluate(sel query.Selection) query.FiveViews
}

// Handler upgrades /ws/views connections and answers selection changes.
type Handler struct {
	hub    *Hub
	engine Evaluator
	logger *log.Logger
}

func NewHandler(hub *Hub, engine Evaluator, logger *log.Logger) (*Handler, error) {
	if hub == nil {
		return nil, errors.New("ws handler: nil hub")
	}
	if engine == nil {
		return nil, errors.New("ws handler: nil engine")
	}
	return &Handler{hub: hub, engine: engine, logger: logger}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logf("ws: upgrade error: %v", err)
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.hub.Register(client)
	go client.writePump()

	h.send(client, TypeOptions, query.Catalog())
	h.sendViews(client, query.DefaultSelection())

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logf("ws: read error: %v", err)
			}
			return
		}
		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.sendError(c, "invalid message")
		return
	}

	switch env.Type {
	case TypeSelectionSet:
		var p SelectionPayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				h.sendError(c, "invalid selection payload")
				return
			}
		}
		h.sendViews(c, p.Selection())
	default:
		h.sendError(c, "unknown message type "+env.Type)
	}
}

func (h *Handler) sendViews(c *Client, sel query.Selection) {
	start := time.Now()
	views := h.engine.Evaluate(sel)
	metrics.ObserveQuery(views.IsEmpty(), time.Since(start))
	h.send(c, TypeViews, views)
}

func (h *Handler) sendError(c *Client, message string) {
	h.send(c, TypeError, ErrorPayload{Message: message})
}

func (h *Handler) send(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		h.logf("ws: marshal %s: %v", msgType, err)
		return
	}
	h.hub.enqueue(c, msg)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
