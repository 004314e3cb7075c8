package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bgg-probe/bgg"
)

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleSearch returns the first search hit for ?q=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	result, err := s.client.Search(r.Context(), query)
	if errors.Is(err, bgg.ErrNoName) {
		// the id is still useful without a display name
		writeJSON(w, http.StatusOK, result)
		return
	}
	if err != nil {
		s.writeUpstreamError(w, "search", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGameDetail returns the detail record for a game id
func (s *Server) handleGameDetail(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["game_id"]

	detail, err := s.client.FetchDetail(r.Context(), gameID)
	if err != nil {
		s.writeUpstreamError(w, "detail "+gameID, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, op string, err error) {
	var statusErr *bgg.StatusError
	switch {
	case errors.Is(err, bgg.ErrNoGames), errors.Is(err, bgg.ErrNoBoardgame):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &statusErr):
		s.logger.Printf("BGG %s returned status %d", op, statusErr.Code)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Printf("BGG %s failed: %v", op, err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
