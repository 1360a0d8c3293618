package notifications

import (
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/GlebRadaev/novafunded/internal/notify"
	"github.com/GlebRadaev/novafunded/pkg/auth"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notifications.go -destination=mock_notifications.go -package=notifications

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

type Service interface {
	Subscribe(userID int, fn func(notify.Event)) (unsubscribe func())
}

type NotificationHandler struct {
	hub      Service
	upgrader websocket.Upgrader
}

// New accepts websocket handshakes from the given origins; "*" accepts any.
func New(hub Service, allowedOrigins []string) *NotificationHandler {
	return &NotificationHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || slices.Contains(allowedOrigins, "*") {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return slices.Contains(allowedOrigins, u.Scheme+"://"+u.Host)
			},
		},
	}
}

// Stream godoc
//
//	@Summary		Live notifications
//	@Description	Websocket stream of payment and challenge events of the current user. The token may be passed as the token query parameter.
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Success		101
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/notifications/ws [get]
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	events := make(chan notify.Event, sendBuffer)
	unsubscribe := h.hub.Subscribe(userID, func(event notify.Event) {
		select {
		case events <- event:
		default:
			zap.L().Warn("notification dropped, client too slow", zap.Int("user_id", userID), zap.String("type", event.Type))
		}
	})
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Int("user_id", userID), zap.Error(err))
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go readPump(conn, done)
	writePump(conn, events, done)
}

// readPump discards client frames and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
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
}

func writePump(conn *websocket.Conn, events <-chan notify.Event, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
