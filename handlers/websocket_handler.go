package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ImVadimush/brawl-stars-tournament-bot/brackets"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Шлюз ходит сервер-сервер, Origin не проверяем.
		return true
	},
}

type WebSocketHandler struct {
	hub    *brackets.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *brackets.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs подписывает соединение на события одного чата: ?chat_id=N.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	rawChatID := r.URL.Query().Get("chat_id")
	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		http.Error(w, "missing or invalid chat_id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader сам пишет HTTP-ошибку клиенту.
		h.logger.Error("upgrade ws connection", slog.Int64("chat_id", chatID), slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: brackets.RoomForChat(chatID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("ws subscriber attached", slog.Int64("chat_id", chatID))
}
