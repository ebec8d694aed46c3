package httptransport

import (
	"context"
	"errors"
	"net/http"

	"gobang-server/internal/room"
	"gobang-server/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// BattleReader is the read side of the battle archive.
type BattleReader interface {
	ListBattles(ctx context.Context, limit, offset int) ([]store.BattleRecord, error)
	GetBattle(ctx context.Context, id string) (*store.BattleRecord, error)
}

type Handlers struct {
	registry *room.Registry
	battles  BattleReader
}

func NewHandlers(registry *room.Registry, battles BattleReader) *Handlers {
	return &Handlers{registry: registry, battles: battles}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"rooms":  h.registry.Count(),
			"online": h.registry.Names().Count(),
		})
	}
}

func (h *Handlers) Rooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.registry.Rooms())
	}
}

func (h *Handlers) Battles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.battles == nil {
			WriteHTTPError(w, http.StatusNotFound, "archive_disabled")
			return
		}
		limit, offset := ParsePagination(r)
		items, err := h.battles.ListBattles(r.Context(), limit, offset)
		if err != nil {
			metricBattleQueryErrors.Add(1)
			log.Error().Err(err).Msg("list_battles_failed")
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		metricBattleQueries.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *Handlers) Battle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.battles == nil {
			WriteHTTPError(w, http.StatusNotFound, "archive_disabled")
			return
		}
		id := chi.URLParam(r, "battle_id")
		if !store.ValidID(id) {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_battle_id")
			return
		}
		rec, err := h.battles.GetBattle(r.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			WriteHTTPError(w, http.StatusNotFound, "battle_not_found")
			return
		case err != nil:
			metricBattleQueryErrors.Add(1)
			log.Error().Err(err).Str("battle_id", id).Msg("get_battle_failed")
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		metricBattleQueries.Add(1)
		writeJSON(w, http.StatusOK, rec)
	}
}
