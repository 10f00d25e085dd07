package handlers

import (
	"net/http"

	"github.com/ImVadimush/brawl-stars-tournament-bot/middleware"
	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/services"
)

type ScheduleHandler struct {
	schedules services.ScheduleService
}

func NewScheduleHandler(schedules services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	chatID, err := chatIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.schedules.Create(r.Context(), chatID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule, nil)
}

func (h *ScheduleHandler) Vote(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := intParam(r, "id")
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
		Attend    bool   `json:"attend"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player := models.Player{ID: actor.ID, Username: input.Username, FirstName: input.FirstName}
	schedule, err := h.schedules.Vote(r.Context(), scheduleID, player, input.Attend)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule, nil)
}
