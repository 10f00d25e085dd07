package handlers

import (
	"net/http"

	"github.com/ImVadimush/brawl-stars-tournament-bot/middleware"
	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/services"
)

type TournamentHandler struct {
	tournaments services.TournamentService
}

func NewTournamentHandler(tournaments services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournaments: tournaments}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournaments.Create(r.Context(), chatID, models.Player{ID: actor.ID}, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view, nil)
}

func (h *TournamentHandler) Current(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournaments.Current(r.Context(), chatID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, nil)
}

func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	// Имя используется в составах и подписях матчей.
	var input struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player := models.Player{ID: actor.ID, Username: input.Username, FirstName: input.FirstName}
	view, err := h.tournaments.Join(r.Context(), chatID, player)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, nil)
}

func (h *TournamentHandler) Leave(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	view, err := h.tournaments.Leave(r.Context(), chatID, actor.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, nil)
}

func (h *TournamentHandler) Start(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	view, err := h.tournaments.Start(r.Context(), chatID, actor.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, nil)
}

// Bracket отдаёт все раунды вместе со счётом активного раунда.
func (h *TournamentHandler) Bracket(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournaments.Current(r.Context(), chatID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"rounds":        view.Tournament.Rounds,
		"current_round": view.Tournament.CurrentRound,
		"scores":        view.Scores,
	}, nil)
}

func (h *TournamentHandler) ActiveMatches(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, scores, err := h.tournaments.ActiveRound(r.Context(), chatID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"round": round, "scores": scores}, nil)
}

func (h *TournamentHandler) RecordWin(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := intParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Side models.Side `json:"side"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.tournaments.RecordWin(r.Context(), chatID, matchID, input.Side)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, nil)
}
