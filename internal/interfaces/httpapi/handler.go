package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

// maxComputeBodyBytes bounds POST /v1/standings/compute payloads.
const maxComputeBodyBytes = 4 << 20

type Handler struct {
	standingsService *usecase.StandingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(standingsService *usecase.StandingsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		standingsService: standingsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type participantQuery struct {
	Participant string `validate:"omitempty,alphanum,max=8"`
}

type computeQuery struct {
	Participant string `validate:"omitempty,alphanum,max=8"`
	Format      string `validate:"omitempty,oneof=json text"`
}
