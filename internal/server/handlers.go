package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"carioca/internal/game"
)

// Handler exposes the manager over JSON HTTP. Clients poll the snapshot
// endpoint and compare touchedAt to detect changes; there is no push
// channel.
type Handler struct {
	manager *Manager
	config  *Config
	logger  *log.Logger
}

func NewHandler(manager *Manager, config *Config, logger *log.Logger) *Handler {
	return &Handler{manager: manager, config: config, logger: logger.WithPrefix("http")}
}

// Register mounts the routes on a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{id}", h.getSession)
	mux.HandleFunc("DELETE /sessions/{id}", h.deleteSession)
	mux.HandleFunc("POST /sessions/{id}/join", h.join)
	mux.HandleFunc("POST /sessions/{id}/bots", h.addBot)
	mux.HandleFunc("POST /sessions/{id}/kick", h.kick)
	mux.HandleFunc("POST /sessions/{id}/reorder", h.reorder)
	mux.HandleFunc("POST /sessions/{id}/start", h.start)
	mux.HandleFunc("POST /sessions/{id}/actions", h.action)
	mux.HandleFunc("GET /health", h.health)
}

type createRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.PlayerID == "" || req.Name == "" {
		h.writeError(w, game.IllegalMovef("playerId and name are required"))
		return
	}
	snap, err := h.manager.CreateSession(req.PlayerID, req.Name, h.config.Bots)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, snap)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Snapshot(r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

type deleteRequest struct {
	RequesterID string `json:"requesterId"`
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.manager.DeleteSession(r.PathValue("id"), req.RequesterID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.manager.Join(r.PathValue("id"), req.PlayerID, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

type addBotRequest struct {
	RequesterID string `json:"requesterId"`
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
}

func (h *Handler) addBot(w http.ResponseWriter, r *http.Request) {
	var req addBotRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.manager.AddBot(r.PathValue("id"), req.RequesterID, req.Name, req.Difficulty)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

type kickRequest struct {
	RequesterID string `json:"requesterId"`
	PlayerID    string `json:"playerId"`
}

func (h *Handler) kick(w http.ResponseWriter, r *http.Request) {
	var req kickRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.manager.Kick(r.PathValue("id"), req.RequesterID, req.PlayerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

type reorderRequest struct {
	RequesterID string   `json:"requesterId"`
	Order       []string `json:"order"`
}

func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.manager.Reorder(r.PathValue("id"), req.RequesterID, req.Order)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

type startRequest struct {
	RequesterID string `json:"requesterId"`
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.manager.StartGame(r.PathValue("id"), req.RequesterID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

type actionResponse struct {
	Success bool          `json:"success"`
	Result  *game.Result  `json:"result,omitempty"`
	State   game.Snapshot `json:"state"`
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request) {
	var req game.Request
	if !h.decode(w, r, &req) {
		return
	}
	res, snap, err := h.manager.HandleAction(r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, actionResponse{Success: true, Result: res, State: snap})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, game.IllegalMovef("invalid request body: %v", err))
		return false
	}
	return true
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := game.CodeOf(err)
	if code == game.CodeInternal {
		h.logger.Error("request failed", "err", err)
	}
	h.writeJSON(w, code.HTTPStatus(), errorResponse{
		Error: game.ReasonOf(err),
		Code:  code.String(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encoding response", "err", err)
	}
}
