package scoreboardhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	scoreboardservice "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/application"
	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Routes mounts the HTTP read API on r.
func Routes(r chi.Router, h Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/tournaments/{id}/scoreboard", h.HandleHTTPScoreboard)
		r.Get("/tournaments/{id}/ceremony", h.HandleHTTPCeremony)
		r.Get("/tournaments/{id}/titles.png", h.HandleHTTPTitleChart)
		r.Get("/history", h.HandleHTTPHistory)
		r.Get("/history/{id}", h.HandleHTTPHistoryDetail)
		r.Get("/history/{id}/export.xlsx", h.HandleHTTPExport)
		r.Get("/players/{id}", h.HandleHTTPPlayerDetail)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, scoreboardservice.ErrTournamentNotFound), errors.Is(err, scoreboardservice.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, scoreboardservice.ErrNotCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, reply events.Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(reply)
}

func (h *ScoreboardHandlers) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Scoreboard HTTP request failed",
			attr.String("operation", operation),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	writeJSON(w, status, events.FailureFrom(err, scoreboardservice.ErrorCode))
}

func (h *ScoreboardHandlers) writeResult(w http.ResponseWriter, r *http.Request, operation string, data any, err error) {
	if err != nil {
		h.writeError(w, r, operation, err)
		return
	}
	writeJSON(w, http.StatusOK, events.Success(data))
}

// idParam parses the {id} segment, answering 400 itself when it is not a UUID.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, events.Failure(events.CodeInvalidRequest, "invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *ScoreboardHandlers) HandleHTTPScoreboard(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sb, err := h.service.Scoreboard(r.Context(), id)
	h.writeResult(w, r, "Scoreboard", sb, err)
}

func (h *ScoreboardHandlers) HandleHTTPCeremony(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := h.service.Ceremony(r.Context(), id)
	h.writeResult(w, r, "Ceremony", c, err)
}

func (h *ScoreboardHandlers) HandleHTTPTitleChart(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	png, err := h.service.TitleChart(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "TitleChart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// HandleHTTPHistory accepts an optional ?limit=.
func (h *ScoreboardHandlers) HandleHTTPHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, events.Failure(events.CodeInvalidRequest, "invalid limit"))
			return
		}
		limit = n
	}
	entries, err := h.service.History(r.Context(), limit)
	h.writeResult(w, r, "History", entries, err)
}

func (h *ScoreboardHandlers) HandleHTTPHistoryDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := h.service.HistoryDetail(r.Context(), id)
	h.writeResult(w, r, "HistoryDetail", c, err)
}

func (h *ScoreboardHandlers) HandleHTTPExport(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	data, err := h.service.ExportHistory(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "ExportHistory", err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "tournament-"+id.String()+".xlsx"))
	w.Write(data)
}

func (h *ScoreboardHandlers) HandleHTTPPlayerDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	d, err := h.service.PlayerDetail(r.Context(), id)
	h.writeResult(w, r, "PlayerDetail", d, err)
}
