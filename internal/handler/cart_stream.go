package handler

import (
	"context"
	"net/http"
	"time"

	"coffee-kart/internal/model"
	"coffee-kart/internal/service"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// CartStreamHandler pushes cart snapshots to a websocket whenever the user's cart changes.
// The current cart is sent first so a client never has to race a separate GET.
type CartStreamHandler struct {
	service  service.CartService
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewCartStreamHandler creates a cart stream handler. allowedOrigin "*" accepts any origin.
func NewCartStreamHandler(service service.CartService, allowedOrigin string, logger zerolog.Logger) *CartStreamHandler {
	return &CartStreamHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
		logger: logger.With().Str("handler", "cart_stream").Logger(),
	}
}

// Stream handles GET /api/cart/stream requests.
func (h *CartStreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	// Subscribe before reading the cart so no change between the two is lost.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates, unsubscribe, err := h.service.Subscribe(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	defer unsubscribe()

	current, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.Info().Str("user_id", userID).Msg("cart stream opened")

	// The read loop only services control frames and notices the client going away.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeSnapshot(conn, *current); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str("user_id", userID).Msg("cart stream closed")
			return

		case snapshot, ok := <-updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream ended"))
				return
			}
			if err := writeSnapshot(conn, snapshot); err != nil {
				h.logger.Debug().Err(err).Str("user_id", userID).Msg("cart stream write failed")
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, cart model.CartResponse) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(cart)
}
