package handlers

import (
	"net/http"

	"github.com/ImVadimush/brawl-stars-tournament-bot/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// IssueToken выдаёт шлюзу JWT от имени игрока в обмен на общий ключ.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var input services.TokenInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	token, player, err := h.auth.IssueToken(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"token": token, "player": player}, nil)
}
