package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/rosterfile"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

const maxUploadBytes = 8 << 20

type Handler struct {
	rosterService *usecase.RosterService
	rosterDir     rosterfile.Dir
	logger        *logging.Logger
	validator     *validator.Validate
}

// NewHandler serves rosterService. File paths in requests are resolved inside
// rosterDir; with an empty rosterDir, opening and saving by path is refused.
func NewHandler(rosterService *usecase.RosterService, rosterDir string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService: rosterService,
		rosterDir:     rosterfile.NewDir(rosterDir),
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListAttributes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAttributes")
	defer span.End()

	kind, err := parseKindValue(r.PathValue("kind"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	attributes, err := h.rosterService.Attributes(kind)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]attributeDTO, 0, len(attributes))
	for _, item := range attributes {
		items = append(items, attributeDTO{
			Name:   item.Name,
			Order:  item.Order,
			Header: item.Header(),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// decodeJSON decodes the request body into payload. An empty body is accepted
// when optional is set and leaves payload untouched.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, payload any, optional bool) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeJSON")
	defer span.End()

	if optional && r.ContentLength == 0 {
		return nil
	}

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload", usecase.ErrInvalidInput)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
