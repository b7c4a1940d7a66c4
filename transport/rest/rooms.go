package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/rocketscienceinc/sequence-backend/internal/apperror"
)

const qrSize = 320

// roomHandler reports the lobby state of a room without revealing any hand.
func (that *Server) roomHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := strings.ToUpper(ps.ByName("code"))

	summary, err := that.rooms.RoomSummary(r.Context(), code)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		writeError(w, http.StatusNotFound, apperror.ErrRoomNotFound.Error())
		return
	}
	if err != nil {
		that.logger.Error("failed to get room summary", "roomCode", code, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(summary); err != nil {
		that.logger.Error("failed to write room summary", "error", err)
	}
}

// qrHandler renders the join link of an existing room as a PNG.
func (that *Server) qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := strings.ToUpper(ps.ByName("code"))

	if _, err := that.rooms.RoomSummary(r.Context(), code); err != nil {
		if errors.Is(err, apperror.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, apperror.ErrRoomNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	png, err := qrcode.Encode(JoinURL(that.publicURL, code), qrcode.Medium, qrSize)
	if err != nil {
		that.logger.Error("failed to encode qr", "roomCode", code, "error", err)
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// JoinURL is the link a player opens to join the room.
func JoinURL(publicURL, code string) string {
	return strings.TrimRight(publicURL, "/") + "/?room=" + url.QueryEscape(code)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
