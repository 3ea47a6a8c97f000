package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/standings"
	"github.com/riskibarqy/league-standings/internal/infrastructure/source"
	"github.com/riskibarqy/league-standings/internal/interfaces/render"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	snapshot, err := h.filteredSnapshot(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(snapshot))
}

func (h *Handler) GetMatchdays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchdays")
	defer span.End()

	snapshot, err := h.filteredSnapshot(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdaysToDTO(snapshot))
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	snapshot, err := h.filteredSnapshot(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) GetStandingsText(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandingsText")
	defer span.End()

	snapshot, err := h.filteredSnapshot(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := render.WriteTable(w, snapshot.Table); err != nil {
		h.logger.WarnContext(ctx, "write standings text failed", "error", err)
	}
}

// RefreshStandings drops the cached snapshot and reloads the results source.
func (h *Handler) RefreshStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshStandings")
	defer span.End()

	h.standingsService.Invalidate(ctx)
	snapshot, err := h.standingsService.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh standings snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "standings snapshot refreshed",
		"teams", len(snapshot.Table),
		"last_updated", snapshot.LastUpdated,
	)
	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

// ComputeStandings computes a snapshot for the results document sent in the
// request body. ?format=text returns the plain-text table.
func (h *Handler) ComputeStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComputeStandings")
	defer span.End()

	query := computeQuery{
		Participant: strings.TrimSpace(r.URL.Query().Get("participant")),
		Format:      strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxComputeBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	doc, err := source.DecodeDocument(body)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	snapshot, err := h.standingsService.Compute(ctx, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	snapshot, err = h.standingsService.Filter(snapshot, query.Participant)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if query.Format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := render.WriteTable(w, snapshot.Table); err != nil {
			h.logger.WarnContext(ctx, "write standings text failed", "error", err)
		}
		return
	}
	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) filteredSnapshot(ctx context.Context, r *http.Request) (standings.Snapshot, error) {
	query := participantQuery{Participant: strings.TrimSpace(r.URL.Query().Get("participant"))}
	if err := h.validateRequest(ctx, query); err != nil {
		return standings.Snapshot{}, err
	}

	snapshot, err := h.standingsService.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load standings snapshot failed", "error", err)
		return standings.Snapshot{}, err
	}

	return h.standingsService.Filter(snapshot, query.Participant)
}
