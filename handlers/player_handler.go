package handlers

import (
	"net/http"

	"github.com/ImVadimush/brawl-stars-tournament-bot/middleware"
	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/services"
	"github.com/go-chi/chi/v5"
)

type PlayerHandler struct {
	stats services.StatsService
}

func NewPlayerHandler(stats services.StatsService) *PlayerHandler {
	return &PlayerHandler{stats: stats}
}

func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	playerID, err := int64Param(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.stats.Profile(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile, nil)
}

func (h *PlayerHandler) SetTrophies(w http.ResponseWriter, r *http.Request) {
	playerID, err := int64Param(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Trophies int `json:"trophies"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.stats.SetTrophies(r.Context(), actor, playerID, input.Trophies); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"updated": true}, nil)
}

func (h *PlayerHandler) SetClan(w http.ResponseWriter, r *http.Request) {
	playerID, err := int64Param(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Clan string `json:"clan"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.stats.SetClan(r.Context(), actor, playerID, input.Clan); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"updated": true}, nil)
}

func (h *PlayerHandler) GrantRole(w http.ResponseWriter, r *http.Request) {
	playerID, err := int64Param(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := middleware.PlayerFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Role models.PlayerRole `json:"role"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.stats.GrantRole(r.Context(), actor, playerID, input.Role); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"updated": true}, nil)
}

func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	entries, err := h.stats.Leaderboard(r.Context(), category)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"category": category, "entries": entries}, nil)
}

func (h *PlayerHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.stats.Totals(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals, nil)
}
