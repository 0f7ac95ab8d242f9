// Package api is the JSON HTTP surface over the economy engine. It decodes
// requests, delegates to the engine, and maps typed error codes to HTTP
// status. It contains no business rules.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/packvault/collection-api/internal/errors"
	"github.com/packvault/collection-api/internal/orchestrators/economy"
)

// playerHeader carries the authenticated player id. Authentication itself is
// upstream of this service; the header is trusted.
const playerHeader = "X-Player-ID"

// Config holds the dependencies for the API handler
type Config struct {
	Service economy.Service
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Service == nil {
		return errors.InvalidArgument("service cannot be nil")
	}
	return nil
}

// Handler serves the collection API routes
type Handler struct {
	service economy.Service
}

// NewHandler creates a new API handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{service: cfg.Service}, nil
}

// Routes returns the router for the collection API
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/profile", h.getProfile)
		r.Get("/collection", h.listCollection)
		r.Post("/packs/{packID}/purchase", h.purchasePack)
		r.Post("/cards/{instanceID}/evolve", h.evolveCard)
		r.Post("/cards/{instanceID}/sell", h.sellCard)
	})

	return r
}

type evolveRequest struct {
	TargetCreatureID string `json:"target_creature_id"`
}

type sellRequest struct {
	ClaimedValue int64 `json:"claimed_value"`
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerID(w, r)
	if !ok {
		return
	}

	out, err := h.service.GetProfile(r.Context(), &economy.GetProfileInput{PlayerID: playerID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, out.Profile)
}

func (h *Handler) listCollection(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerID(w, r)
	if !ok {
		return
	}

	out, err := h.service.ListCollection(r.Context(), &economy.ListCollectionInput{PlayerID: playerID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"instances": out.Instances})
}

func (h *Handler) purchasePack(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerID(w, r)
	if !ok {
		return
	}

	out, err := h.service.PurchasePack(r.Context(), &economy.PurchasePackInput{
		PlayerID: playerID,
		PackID:   chi.URLParam(r, "packID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"pack_id":   out.Pack.ID,
		"instances": out.Instances,
		"profile":   out.Profile,
	})
}

func (h *Handler) evolveCard(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerID(w, r)
	if !ok {
		return
	}

	var req evolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.EvolveCard(r.Context(), &economy.EvolveCardInput{
		PlayerID:         playerID,
		InstanceID:       chi.URLParam(r, "instanceID"),
		TargetCreatureID: req.TargetCreatureID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"instance": out.Instance})
}

func (h *Handler) sellCard(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerID(w, r)
	if !ok {
		return
	}

	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.SellCard(r.Context(), &economy.SellCardInput{
		PlayerID:     playerID,
		InstanceID:   chi.URLParam(r, "instanceID"),
		ClaimedValue: req.ClaimedValue,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"value":   out.Value,
		"profile": out.Profile,
	})
}

func (h *Handler) playerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	playerID := r.Header.Get(playerHeader)
	if playerID == "" {
		h.writeError(w, r, errors.InvalidArgument("missing "+playerHeader+" header"))
		return "", false
	}
	return playerID, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response",
			"path", r.URL.Path,
			"error", err.Error())
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"code", code.String(),
			"error", err.Error())
	}

	h.writeJSON(w, r, status, map[string]any{
		"error": map[string]any{
			"code":    code.String(),
			"message": errors.GetMessage(err),
		},
	})
}
