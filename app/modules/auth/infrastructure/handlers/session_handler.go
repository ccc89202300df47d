package authhandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	authservice "github.com/Black-And-White-Club/party-bracket/app/modules/auth/application"
	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// maxSessionBody bounds the session request body.
const maxSessionBody = 4 << 10

// SessionRequest proves ownership of a player seat.
type SessionRequest struct {
	PlayerID uuid.UUID                `json:"player_id"`
	Identity tournamenttypes.Identity `json:"identity"`
}

// HandleHTTPSession exchanges a seat-ownership proof for a session token.
func (h *AuthHandlers) HandleHTTPSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleHTTPSession")
	defer span.End()

	var req SessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSessionBody)).Decode(&req); err != nil || req.PlayerID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, events.Failure(events.CodeInvalidRequest, "player_id and identity are required"))
		return
	}

	resp, err := h.service.IssueSession(ctx, req.PlayerID, req.Identity)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "Session issuance failed",
				attr.UUID("player_id", req.PlayerID),
				attr.Error(err),
			)
		}
		writeJSON(w, status, events.FailureFrom(err, authservice.ErrorCode))
		return
	}

	writeJSON(w, http.StatusOK, events.Success(resp))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, authservice.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, authservice.ErrIdentityMismatch):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, reply events.Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(reply)
}
