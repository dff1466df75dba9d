package handler

import (
	"net/http"

	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/interacting"
)

func LogInteraction(service interacting.InteractionLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateInteractionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		interaction, err := service.LogInteraction(r.Context(), actorFrom(r), param(r, "id"), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, interaction)
	}
}

func ListInteractions(service interacting.InteractionLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		interactions, err := service.ListInteractions(r.Context(), actorFrom(r), param(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, interactions)
	}
}

func CreateReminder(service interacting.InteractionLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateReminderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		reminder, err := service.CreateReminder(r.Context(), actorFrom(r), param(r, "id"), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, reminder)
	}
}

func CompleteReminder(service interacting.InteractionLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := service.CompleteReminder(r.Context(), actorFrom(r), param(r, "id"), param(r, "reminder_id"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
